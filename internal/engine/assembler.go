package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/diamond-sim/internal/models"
)

// assemble normalizes a tier outcome into the persisted prediction
// record. Win probabilities are renormalized to sum exactly to 1 (the
// upstream arithmetic can drift in floating point), scores round to
// integers, and the over/under line snaps to the nearest half run.
func assemble(gameID int64, method models.PredictionMethod, out *tierOutcome, confidence float64, factors *models.KeyFactors, now time.Time, p Params) (*models.Prediction, error) {
	homeProb, awayProb := normalizeProbabilities(out.homeWinProb)

	totalRuns := out.homeRuns + out.awayRuns
	line := roundHalf(totalRuns)

	overProb := p.UnderProbability
	if totalRuns > line {
		overProb = p.OverProbability
	}

	pred := &models.Prediction{
		ID:                 uuid.New(),
		GameID:             gameID,
		Method:             method,
		HomeWinProbability: homeProb,
		AwayWinProbability: awayProb,
		PredictedHomeScore: int(math.Round(out.homeRuns)),
		PredictedAwayScore: int(math.Round(out.awayRuns)),
		PredictedTotalRuns: totalRuns,
		OverUnderLine:      line,
		OverProbability:    overProb,
		UnderProbability:   1 - overProb,
		ConfidenceScore:    confidence,
		SampleSize:         out.sampleSize,
		PredictedAt:        now,
		UpdatedAt:          now,
	}

	if factors != nil {
		if err := pred.EncodeFactors(factors); err != nil {
			return nil, fmt.Errorf("failed to encode key factors: %w", err)
		}
	}

	return pred, nil
}

// normalizeProbabilities clamps the home probability into the open
// interval and returns the complementary pair summing exactly to 1.
func normalizeProbabilities(homeProb float64) (float64, float64) {
	const epsilon = 1e-4
	if homeProb < epsilon {
		homeProb = epsilon
	}
	if homeProb > 1-epsilon {
		homeProb = 1 - epsilon
	}
	return homeProb, 1 - homeProb
}

// roundHalf rounds to the nearest multiple of 0.5.
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
