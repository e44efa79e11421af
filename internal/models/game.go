package models

import (
	"time"
)

// GameStatus represents the lifecycle state of a scheduled game
type GameStatus string

const (
	GameStatusScheduled  GameStatus = "scheduled"
	GameStatusPostponed  GameStatus = "postponed"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinal      GameStatus = "final"
	GameStatusCancelled  GameStatus = "cancelled"
)

// Game represents a scheduled matchup. The engine treats games as
// read-only input; rows are written by the ingestion service only.
type Game struct {
	ID            int64      `db:"id" json:"id" validate:"required,gt=0"`
	HomeTeamID    int64      `db:"home_team_id" json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID    int64      `db:"away_team_id" json:"away_team_id" validate:"required,gt=0"`
	Venue         string     `db:"venue" json:"venue"`
	ScheduledAt   time.Time  `db:"scheduled_at" json:"scheduled_at" validate:"required"`
	Status        GameStatus `db:"status" json:"status" validate:"oneof=scheduled postponed in_progress final cancelled"`
	HomeScore     *int       `db:"home_score" json:"home_score"`
	AwayScore     *int       `db:"away_score" json:"away_score"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// IsUpcoming checks if the game hasn't started yet
func (g *Game) IsUpcoming() bool {
	return g.Status == GameStatusScheduled
}

// IsFinal checks if the game has completed
func (g *Game) IsFinal() bool {
	return g.Status == GameStatusFinal
}

// TimeToFirstPitch returns the duration until scheduled start
func (g *Game) TimeToFirstPitch() time.Duration {
	return time.Until(g.ScheduledAt)
}
