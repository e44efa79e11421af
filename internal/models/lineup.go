package models

import (
	"time"
)

// LineupRole distinguishes batting order entries from the starting pitcher
type LineupRole string

const (
	LineupRoleBatting  LineupRole = "batting"
	LineupRolePitching LineupRole = "pitching"
)

// Handedness of a batter or pitcher ("L", "R" or "S" for switch)
type Handedness string

const (
	HandLeft   Handedness = "L"
	HandRight  Handedness = "R"
	HandSwitch Handedness = "S"
)

// Batting lineup size thresholds. A lineup is complete at nine
// batters and usable for simulation at eight.
const (
	FullLineupSize  = 9
	MinUsableLineup = 8
)

// LineupEntry represents one player slot in a game's published lineup.
// BattingOrder is 1-9 and unique per team for the batting role; it is
// nil for the starting pitcher entry.
type LineupEntry struct {
	ID           int64      `db:"id" json:"id"`
	GameID       int64      `db:"game_id" json:"game_id" validate:"required,gt=0"`
	TeamID       int64      `db:"team_id" json:"team_id" validate:"required,gt=0"`
	Role         LineupRole `db:"role" json:"role" validate:"required,oneof=batting pitching"`
	BattingOrder *int       `db:"batting_order" json:"batting_order" validate:"omitempty,min=1,max=9"`
	PlayerID     int64      `db:"player_id" json:"player_id" validate:"required,gt=0"`
	PlayerName   string     `db:"player_name" json:"player_name" validate:"required"`
	Position     string     `db:"position" json:"position"`
	Hand         Handedness `db:"hand" json:"hand"`
	IsStarter    bool       `db:"is_starter" json:"is_starter"`
	IsProjected  bool       `db:"is_projected" json:"is_projected"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// IsBatter checks whether the entry occupies a batting order slot
func (e *LineupEntry) IsBatter() bool {
	return e.Role == LineupRoleBatting
}

// IsStartingPitcher checks whether the entry is a starting pitcher
func (e *LineupEntry) IsStartingPitcher() bool {
	return e.Role == LineupRolePitching && e.IsStarter
}
