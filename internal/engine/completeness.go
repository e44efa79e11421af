package engine

import (
	"github.com/yourusername/diamond-sim/internal/models"
)

// Assessment describes how complete a game's lineup data is. It is
// pure metadata: assessing never fails and has no side effects.
type Assessment struct {
	Score         float64 `json:"score"`
	BattingCount  int     `json:"batting_count"`
	PitchingCount int     `json:"pitching_count"`
	HomeBatters   int     `json:"home_batters"`
	AwayBatters   int     `json:"away_batters"`
	HasLineups    bool    `json:"has_lineups"`
	Projected     bool    `json:"projected"`
}

// Assess scores the available lineup rows for one game on [0,1].
// Batting coverage dominates (two full orders = 18 slots); the two
// starting pitchers carry the rest. A projected (non-official) lineup
// discounts the whole score.
func Assess(game *models.Game, lineups []*models.LineupEntry, p Params) Assessment {
	a := Assessment{}
	if len(lineups) == 0 {
		return a
	}
	a.HasLineups = true

	for _, entry := range lineups {
		switch {
		case entry.IsBatter():
			a.BattingCount++
			if game != nil && entry.TeamID == game.HomeTeamID {
				a.HomeBatters++
			} else {
				a.AwayBatters++
			}
		case entry.IsStartingPitcher():
			a.PitchingCount++
		}
		if entry.IsProjected {
			a.Projected = true
		}
	}

	battingCompleteness := capUnit(float64(a.BattingCount) / float64(p.BattingSlots))
	pitchingCompleteness := capUnit(float64(a.PitchingCount) / float64(p.PitchingSlots))
	a.Score = battingCompleteness*p.BattingWeight + pitchingCompleteness*p.PitchingWeight

	if a.Projected {
		a.Score *= p.ProjectedPenalty
	}

	return a
}

func capUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
