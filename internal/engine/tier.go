package engine

import (
	"github.com/yourusername/diamond-sim/internal/models"
)

// Tier is the prediction strategy selected from data completeness.
// Each tier has exactly one evaluator registered in the engine's
// dispatch table, so adding a tier never touches existing ones.
type Tier int

const (
	TierMonteCarlo Tier = iota
	TierEnhancedStats
	TierAdjustedTeamStats
)

// Method returns the tier's method tag as recorded on predictions.
func (t Tier) Method() models.PredictionMethod {
	switch t {
	case TierMonteCarlo:
		return models.MethodMonteCarlo
	case TierEnhancedStats:
		return models.MethodEnhancedStats
	default:
		return models.MethodAdjustedTeamStats
	}
}

// String implements fmt.Stringer for logging and metrics labels.
func (t Tier) String() string {
	return string(t.Method())
}

// SelectTier maps a completeness score to a tier. Pure threshold
// dispatch: the same score always yields the same tier.
func SelectTier(score float64, p Params) Tier {
	switch {
	case score >= p.MonteCarloThreshold:
		return TierMonteCarlo
	case score >= p.EnhancedThreshold:
		return TierEnhancedStats
	default:
		return TierAdjustedTeamStats
	}
}
