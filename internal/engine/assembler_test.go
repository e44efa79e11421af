package engine

import (
	"math"
	"testing"
	"time"

	"github.com/yourusername/diamond-sim/internal/models"
)

func TestAssembleNormalizesProbabilities(t *testing.T) {
	out := &tierOutcome{homeWinProb: 0.62, homeRuns: 4.8, awayRuns: 4.1, sampleSize: 1000}

	pred, err := assemble(testGameID, models.MethodMonteCarlo, out, 0.8, nil, time.Now().UTC(), DefaultParams())
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}

	sum := pred.HomeWinProbability + pred.AwayWinProbability
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("probabilities must sum to 1, got %v", sum)
	}
}

func TestAssembleClampsDegenerateProbabilities(t *testing.T) {
	for _, raw := range []float64{0.0, 1.0} {
		out := &tierOutcome{homeWinProb: raw, homeRuns: 4, awayRuns: 4}
		pred, err := assemble(testGameID, models.MethodMonteCarlo, out, 0.5, nil, time.Now().UTC(), DefaultParams())
		if err != nil {
			t.Fatalf("assemble failed: %v", err)
		}
		if pred.HomeWinProbability <= 0 || pred.HomeWinProbability >= 1 {
			t.Errorf("raw %v must clamp into the open interval, got %v", raw, pred.HomeWinProbability)
		}
	}
}

func TestAssembleLineSnapsToHalfRun(t *testing.T) {
	cases := []struct {
		home, away float64
		want       float64
	}{
		{4.8, 4.1, 9.0},  // 8.9 rounds up
		{4.3, 4.3, 8.5},  // 8.6 rounds down to 8.5
		{3.0, 4.25, 7.5}, // 7.25 doubles to 14.5, which rounds away from zero
		{0, 0, 0},
	}

	for _, tc := range cases {
		out := &tierOutcome{homeWinProb: 0.5, homeRuns: tc.home, awayRuns: tc.away}
		pred, err := assemble(testGameID, models.MethodEnhancedStats, out, 0.5, nil, time.Now().UTC(), DefaultParams())
		if err != nil {
			t.Fatalf("assemble failed: %v", err)
		}
		if pred.OverUnderLine != tc.want {
			t.Errorf("total %v: expected line %v, got %v", tc.home+tc.away, tc.want, pred.OverUnderLine)
		}
		if rem := pred.OverUnderLine * 2; rem != math.Trunc(rem) {
			t.Errorf("line %v is not a half-run multiple", pred.OverUnderLine)
		}
	}
}

func TestAssembleOverUnderLean(t *testing.T) {
	p := DefaultParams()

	// Mean total above the snapped line leans over
	out := &tierOutcome{homeWinProb: 0.5, homeRuns: 4.6, awayRuns: 4.1} // 8.7 vs line 8.5
	pred, err := assemble(testGameID, models.MethodMonteCarlo, out, 0.5, nil, time.Now().UTC(), p)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if pred.OverProbability != p.OverProbability {
		t.Errorf("expected over lean %v, got %v", p.OverProbability, pred.OverProbability)
	}

	// Mean total at or below the line leans under
	out = &tierOutcome{homeWinProb: 0.5, homeRuns: 4.2, awayRuns: 4.2} // 8.4 vs line 8.5
	pred, err = assemble(testGameID, models.MethodMonteCarlo, out, 0.5, nil, time.Now().UTC(), p)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if pred.UnderProbability != 1-p.UnderProbability {
		t.Errorf("expected under lean %v, got %v", 1-p.UnderProbability, pred.UnderProbability)
	}
}

func TestAssembleRoundsScores(t *testing.T) {
	out := &tierOutcome{homeWinProb: 0.5, homeRuns: 4.6, awayRuns: 3.2, sampleSize: 500}

	pred, err := assemble(testGameID, models.MethodMonteCarlo, out, 0.5, nil, time.Now().UTC(), DefaultParams())
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}

	if pred.PredictedHomeScore != 5 || pred.PredictedAwayScore != 3 {
		t.Errorf("expected 5-3 rounding, got %d-%d", pred.PredictedHomeScore, pred.PredictedAwayScore)
	}
	if pred.PredictedTotalRuns != 7.8 {
		t.Errorf("mean total stays exact, got %v", pred.PredictedTotalRuns)
	}
}

func TestAssembleEncodesFactors(t *testing.T) {
	out := &tierOutcome{homeWinProb: 0.55, homeRuns: 4, awayRuns: 4}
	factors := &models.KeyFactors{ParkFactor: 1.08, HomeLineupSize: 9, AwayLineupSize: 9, PitcherFatigue: 1.0}

	pred, err := assemble(testGameID, models.MethodMonteCarlo, out, 0.5, factors, time.Now().UTC(), DefaultParams())
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}

	decoded, err := pred.DecodeFactors()
	if err != nil {
		t.Fatalf("DecodeFactors failed: %v", err)
	}
	if decoded.ParkFactor != 1.08 {
		t.Errorf("expected park factor round-trip, got %v", decoded.ParkFactor)
	}
}

func TestRoundHalf(t *testing.T) {
	cases := map[float64]float64{
		8.74: 8.5,
		8.76: 9.0,
		8.25: 8.5, // math.Round(16.5) = 17
		0:    0,
		7.5:  7.5,
	}
	for in, want := range cases {
		if got := roundHalf(in); got != want {
			t.Errorf("roundHalf(%v) = %v, want %v", in, got, want)
		}
	}
}
