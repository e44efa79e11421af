package engine

import (
	"github.com/yourusername/diamond-sim/internal/models"
)

// Deterministic closed-form alternatives to simulation, used when
// lineup data is too thin. Both derive expected runs from team season
// aggregates; the enhanced variant additionally folds in a lineup
// quality adjustment from the completeness score.

// tierOutcome is the common product of every tier evaluator before
// confidence scoring and assembly.
type tierOutcome struct {
	homeWinProb float64
	homeRuns    float64
	awayRuns    float64
	sampleSize  int
	homeBonus   float64
}

// evaluateEnhanced applies the lineup-quality-adjusted team run-rate
// model. Fails with MissingTeamStatsError when either side has no
// season aggregates — there is no tier beneath the fallbacks.
func evaluateEnhanced(snap *Snapshot, assess Assessment, p Params) (*tierOutcome, error) {
	home, away := snap.HomeTeamStats, snap.AwayTeamStats
	if err := requireTeamStats(snap, home, away); err != nil {
		return nil, err
	}

	quality := 1 + (assess.Score-0.5)*p.LineupQualityScale
	homeRuns := home.RunsPerGame()*quality + p.EnhancedHomeBonus
	awayRuns := away.RunsPerGame() * quality

	return &tierOutcome{
		homeWinProb: runShare(homeRuns, awayRuns, p),
		homeRuns:    homeRuns,
		awayRuns:    awayRuns,
		homeBonus:   p.EnhancedHomeBonus,
	}, nil
}

// evaluateAdjusted applies raw team run-rates with a smaller
// home-field bonus and no lineup adjustment.
func evaluateAdjusted(snap *Snapshot, p Params) (*tierOutcome, error) {
	home, away := snap.HomeTeamStats, snap.AwayTeamStats
	if err := requireTeamStats(snap, home, away); err != nil {
		return nil, err
	}

	homeRuns := home.RunsPerGame() + p.AdjustedHomeBonus
	awayRuns := away.RunsPerGame()

	return &tierOutcome{
		homeWinProb: runShare(homeRuns, awayRuns, p),
		homeRuns:    homeRuns,
		awayRuns:    awayRuns,
		homeBonus:   p.AdjustedHomeBonus,
	}, nil
}

// runShare converts two expected run totals into a bounded home win
// probability.
func runShare(homeRuns, awayRuns float64, p Params) float64 {
	total := homeRuns + awayRuns
	if total <= 0 {
		return 0.5
	}
	share := homeRuns / total
	if share < p.WinProbFloor {
		return p.WinProbFloor
	}
	if share > p.WinProbCeiling {
		return p.WinProbCeiling
	}
	return share
}

func requireTeamStats(snap *Snapshot, home, away *models.TeamSeasonStats) error {
	season := snap.Game.ScheduledAt.Year()
	if home == nil || !home.HasSample() {
		return &MissingTeamStatsError{GameID: snap.Game.ID, TeamID: snap.Game.HomeTeamID, Season: season}
	}
	if away == nil || !away.HasSample() {
		return &MissingTeamStatsError{GameID: snap.Game.ID, TeamID: snap.Game.AwayTeamID, Season: season}
	}
	return nil
}
