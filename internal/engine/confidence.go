package engine

import (
	"github.com/yourusername/diamond-sim/internal/models"
)

// ConfidenceInputs are the coverage facts the scorer works from.
type ConfidenceInputs struct {
	Tier                 Tier
	HomeBatters          int
	AwayBatters          int
	BothStartersResolved bool
	RealStatsFraction    float64 // fraction of batters with non-default season stats
}

// ConfidenceScore derives a bounded confidence value from the chosen
// tier and data coverage. Base confidence by tier, additive bonuses
// for full lineups, resolved starters and real season samples, then
// clamped to [0, cap].
func ConfidenceScore(in ConfidenceInputs, p Params) float64 {
	var score float64
	switch in.Tier {
	case TierMonteCarlo:
		score = p.MonteCarloBaseConfidence
	case TierEnhancedStats:
		score = p.EnhancedBaseConfidence
	default:
		score = p.AdjustedBaseConfidence
	}

	if in.HomeBatters >= models.FullLineupSize && in.AwayBatters >= models.FullLineupSize {
		score += p.FullLineupBonus
	}
	if in.BothStartersResolved {
		score += p.StartersBonus
	}

	fraction := in.RealStatsFraction
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	score += fraction * p.RealStatsBonus

	if score < 0 {
		return 0
	}
	if score > p.ConfidenceCap {
		return p.ConfidenceCap
	}
	return score
}
