package models

import (
	"time"
)

// League-average pitcher defaults used when no season line exists for
// a starter. These mirror the substitution policy in the engine:
// missing pitching stats are soft-resolved, never fatal.
const (
	LeagueAverageERA  = 4.50
	LeagueAverageWHIP = 1.30
)

// MinReliableAtBats is the sample size below which a batter's season
// rates are ignored in favour of position-class defaults.
const MinReliableAtBats = 50

// BatterProfile holds one batter's season rate stats as ingested from
// the stats feed. OPS is derivable and not stored.
type BatterProfile struct {
	PlayerID   int64     `db:"player_id" json:"player_id" validate:"required,gt=0"`
	Season     int       `db:"season" json:"season" validate:"required,gt=1900"`
	TeamID     int64     `db:"team_id" json:"team_id"`
	AtBats     int       `db:"at_bats" json:"at_bats" validate:"gte=0"`
	AVG        float64   `db:"avg" json:"avg" validate:"gte=0,lte=1"`
	OBP        float64   `db:"obp" json:"obp" validate:"gte=0,lte=1"`
	SLG        float64   `db:"slg" json:"slg" validate:"gte=0,lte=5"`
	HomeRuns   int       `db:"home_runs" json:"home_runs" validate:"gte=0"`
	WRCPlus    *int      `db:"wrc_plus" json:"wrc_plus"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// HasReliableSample checks whether season rates are usable directly
func (b *BatterProfile) HasReliableSample() bool {
	return b.AtBats > MinReliableAtBats
}

// OPS returns on-base plus slugging
func (b *BatterProfile) OPS() float64 {
	return b.OBP + b.SLG
}

// HomeRunRate returns home runs per at-bat, zero-guarded
func (b *BatterProfile) HomeRunRate() float64 {
	if b.AtBats == 0 {
		return 0
	}
	return float64(b.HomeRuns) / float64(b.AtBats)
}

// PitcherProfile holds one starting pitcher's season line
type PitcherProfile struct {
	PlayerID       int64     `db:"player_id" json:"player_id" validate:"required,gt=0"`
	Season         int       `db:"season" json:"season" validate:"required,gt=1900"`
	TeamID         int64     `db:"team_id" json:"team_id"`
	ERA            float64   `db:"era" json:"era" validate:"gte=0"`
	WHIP           float64   `db:"whip" json:"whip" validate:"gte=0"`
	InningsPitched float64   `db:"innings_pitched" json:"innings_pitched" validate:"gte=0"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultPitcherProfile returns a league-average line for an
// unresolved or stat-less starter.
func DefaultPitcherProfile(playerID int64, season int) *PitcherProfile {
	return &PitcherProfile{
		PlayerID: playerID,
		Season:   season,
		ERA:      LeagueAverageERA,
		WHIP:     LeagueAverageWHIP,
	}
}
