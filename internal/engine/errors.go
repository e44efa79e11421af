package engine

import (
	"fmt"
)

// GameNotFoundError indicates the requested game id has no scheduled
// game. Fatal for that game; the batch driver skips and logs it.
type GameNotFoundError struct {
	GameID int64
}

func (e *GameNotFoundError) Error() string {
	return fmt.Sprintf("game %d not found", e.GameID)
}

// InsufficientLineupError indicates a Monte Carlo run was attempted
// with fewer than the minimum usable batters, or with no resolvable
// starting pitcher under a strict pitching policy. The tier selector
// routes away from simulation before this can happen, so seeing it
// means the assessor and selector disagree; it is surfaced, never
// silently defaulted.
type InsufficientLineupError struct {
	GameID  int64
	TeamID  int64
	Batters int
	Reason  string
}

func (e *InsufficientLineupError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("insufficient lineup for game %d team %d: %s", e.GameID, e.TeamID, e.Reason)
	}
	return fmt.Sprintf("insufficient lineup for game %d team %d: %d batters", e.GameID, e.TeamID, e.Batters)
}

// MissingTeamStatsError indicates a fallback tier could not find
// season aggregates for one of the teams. There is no tier beneath
// adjusted team stats, so this aborts that single game's prediction.
type MissingTeamStatsError struct {
	GameID int64
	TeamID int64
	Season int
}

func (e *MissingTeamStatsError) Error() string {
	return fmt.Sprintf("missing season stats for team %d (game %d, season %d)", e.TeamID, e.GameID, e.Season)
}

// ErrZeroIterations is returned when a simulation is requested with a
// non-positive iteration count, guarding the win-ratio division.
var ErrZeroIterations = fmt.Errorf("simulation iterations must be positive")
