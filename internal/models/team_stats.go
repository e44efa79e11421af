package models

import (
	"time"
)

// TeamSeasonStats holds a team's season aggregates. The fallback
// prediction tiers derive expected runs from these when lineup data
// is too thin for simulation.
type TeamSeasonStats struct {
	TeamID       int64     `db:"team_id" json:"team_id" validate:"required,gt=0"`
	Season       int       `db:"season" json:"season" validate:"required,gt=1900"`
	GamesPlayed  int       `db:"games_played" json:"games_played" validate:"gte=0"`
	RunsScored   int       `db:"runs_scored" json:"runs_scored" validate:"gte=0"`
	RunsAllowed  int       `db:"runs_allowed" json:"runs_allowed" validate:"gte=0"`
	Wins         int       `db:"wins" json:"wins" validate:"gte=0"`
	Losses       int       `db:"losses" json:"losses" validate:"gte=0"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// HasSample checks whether any games have been played
func (t *TeamSeasonStats) HasSample() bool {
	return t.GamesPlayed > 0
}

// RunsPerGame returns the team's scoring rate, zero-guarded
func (t *TeamSeasonStats) RunsPerGame() float64 {
	if t.GamesPlayed == 0 {
		return 0
	}
	return float64(t.RunsScored) / float64(t.GamesPlayed)
}

// WinPct returns the team's winning percentage, zero-guarded
func (t *TeamSeasonStats) WinPct() float64 {
	games := t.Wins + t.Losses
	if games == 0 {
		return 0
	}
	return float64(t.Wins) / float64(games)
}
