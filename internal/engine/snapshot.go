package engine

import (
	"context"
	"sort"

	"github.com/yourusername/diamond-sim/internal/models"
)

// Snapshot is the immutable view of everything known about one game at
// prediction time. All reads for one prediction come from the same
// snapshot so stats from different ingestion runs never mix.
type Snapshot struct {
	Game          *models.Game
	Lineups       []*models.LineupEntry
	Batters       map[int64]*models.BatterProfile
	Pitchers      map[int64]*models.PitcherProfile
	HomeTeamStats *models.TeamSeasonStats
	AwayTeamStats *models.TeamSeasonStats
	Env           *models.Environment
}

// SnapshotProvider loads the snapshot for a game. The service layer
// implements it against the repositories; tests implement it in memory.
type SnapshotProvider interface {
	Load(ctx context.Context, gameID int64) (*Snapshot, error)
}

// BattingOrder returns a team's batters sorted by batting order slot.
func (s *Snapshot) BattingOrder(teamID int64) []*models.LineupEntry {
	var batters []*models.LineupEntry
	for _, entry := range s.Lineups {
		if entry.TeamID == teamID && entry.IsBatter() {
			batters = append(batters, entry)
		}
	}
	sort.Slice(batters, func(i, j int) bool {
		oi, oj := 0, 0
		if batters[i].BattingOrder != nil {
			oi = *batters[i].BattingOrder
		}
		if batters[j].BattingOrder != nil {
			oj = *batters[j].BattingOrder
		}
		return oi < oj
	})
	return batters
}

// StartingPitcher returns a team's starting pitcher entry, or nil.
func (s *Snapshot) StartingPitcher(teamID int64) *models.LineupEntry {
	for _, entry := range s.Lineups {
		if entry.TeamID == teamID && entry.IsStartingPitcher() {
			return entry
		}
	}
	return nil
}

// BatterProfile returns the season line for a player, or nil when the
// stats feed has none. Missing profiles are soft: the plate-appearance
// model substitutes position-class defaults.
func (s *Snapshot) BatterProfile(playerID int64) *models.BatterProfile {
	if s.Batters == nil {
		return nil
	}
	return s.Batters[playerID]
}

// PitcherProfile returns the season line for a pitcher, or nil.
func (s *Snapshot) PitcherProfile(playerID int64) *models.PitcherProfile {
	if s.Pitchers == nil {
		return nil
	}
	return s.Pitchers[playerID]
}

// TeamStats returns the season aggregates for one of the two teams.
func (s *Snapshot) TeamStats(teamID int64) *models.TeamSeasonStats {
	if s.Game == nil {
		return nil
	}
	switch teamID {
	case s.Game.HomeTeamID:
		return s.HomeTeamStats
	case s.Game.AwayTeamID:
		return s.AwayTeamStats
	}
	return nil
}
