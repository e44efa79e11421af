package engine

import (
	"errors"
	"testing"

	"github.com/yourusername/diamond-sim/internal/models"
)

func TestSimulateZeroIterationsFailsFast(t *testing.T) {
	sim := NewSimulator(DefaultParams())

	_, err := sim.Simulate(fullSnapshot(), 0, false, NewSeededFactory(1))
	if !errors.Is(err, ErrZeroIterations) {
		t.Fatalf("expected ErrZeroIterations, got %v", err)
	}

	_, err = sim.Simulate(fullSnapshot(), -5, false, NewSeededFactory(1))
	if !errors.Is(err, ErrZeroIterations) {
		t.Fatalf("expected ErrZeroIterations for negative count, got %v", err)
	}
}

func TestSimulateRejectsShortLineup(t *testing.T) {
	sim := NewSimulator(DefaultParams())

	_, err := sim.Simulate(fullSnapshot(withBatters(6, 9)), 100, false, NewSeededFactory(1))
	if err == nil {
		t.Fatal("expected error for a six-batter order")
	}

	var insufficient *InsufficientLineupError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientLineupError, got %T: %v", err, err)
	}
	if insufficient.TeamID != testHomeTeamID {
		t.Errorf("expected the short home order flagged, got team %d", insufficient.TeamID)
	}
}

func TestSimulateEightBattersIsUsable(t *testing.T) {
	sim := NewSimulator(DefaultParams())

	out, err := sim.Simulate(fullSnapshot(withBatters(8, 8)), 200, false, NewSeededFactory(1))
	if err != nil {
		t.Fatalf("eight batters are above the usable minimum: %v", err)
	}
	if out.Iterations != 200 {
		t.Errorf("expected 200 iterations, got %d", out.Iterations)
	}
}

func TestSimulateStrictPitchingRequiresStarters(t *testing.T) {
	sim := NewSimulator(DefaultParams())
	snap := fullSnapshot(withoutStarters())

	// Lenient policy substitutes league averages
	if _, err := sim.Simulate(snap, 100, false, NewSeededFactory(1)); err != nil {
		t.Fatalf("lenient policy must substitute defaults: %v", err)
	}

	// Strict policy is fatal
	_, err := sim.Simulate(snap, 100, true, NewSeededFactory(1))
	var insufficient *InsufficientLineupError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientLineupError under strict pitching, got %v", err)
	}
}

func TestSimulateDeterministicWithSeed(t *testing.T) {
	sim := NewSimulator(DefaultParams())
	snap := fullSnapshot()

	first, err := sim.Simulate(snap, 1000, false, NewSeededFactory(99))
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := sim.Simulate(snap, 1000, false, NewSeededFactory(99))
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if first.HomeWins != second.HomeWins {
		t.Errorf("same seed must reproduce wins: %d vs %d", first.HomeWins, second.HomeWins)
	}
	if first.MeanTotalRuns() != second.MeanTotalRuns() {
		t.Errorf("same seed must reproduce totals: %v vs %v", first.MeanTotalRuns(), second.MeanTotalRuns())
	}
}

func TestSimulateOutcomeBounds(t *testing.T) {
	sim := NewSimulator(DefaultParams())

	out, err := sim.Simulate(fullSnapshot(), 2000, false, NewSeededFactory(5))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	prob := out.HomeWinProbability()
	if prob < 0 || prob > 1 {
		t.Errorf("win probability out of [0,1]: %v", prob)
	}
	if out.MeanHomeRuns < 0 || out.MeanAwayRuns < 0 {
		t.Errorf("mean runs cannot be negative: %v / %v", out.MeanHomeRuns, out.MeanAwayRuns)
	}
	if out.HomeWins > out.Iterations {
		t.Errorf("wins exceed iterations: %d > %d", out.HomeWins, out.Iterations)
	}
}

// TestSimulateHigherOBPScoresMore checks monotonicity: a lineup that
// reaches base more often must not score fewer runs under the same
// draw stream.
func TestSimulateHigherOBPScoresMore(t *testing.T) {
	sim := NewSimulator(DefaultParams())

	low, err := sim.Simulate(fullSnapshot(withBatterOBP(0.290)), 4000, false, NewSeededFactory(13))
	if err != nil {
		t.Fatalf("low-OBP run failed: %v", err)
	}
	high, err := sim.Simulate(fullSnapshot(withBatterOBP(0.380)), 4000, false, NewSeededFactory(13))
	if err != nil {
		t.Fatalf("high-OBP run failed: %v", err)
	}

	if high.MeanTotalRuns() <= low.MeanTotalRuns() {
		t.Errorf("higher OBP should score more: %.3f vs %.3f",
			high.MeanTotalRuns(), low.MeanTotalRuns())
	}
}

func TestSimulateWorkerSplitCoversAllIterations(t *testing.T) {
	p := DefaultParams()
	p.TrialWorkers = 7 // does not divide 1000 evenly
	sim := NewSimulator(p)

	out, err := sim.Simulate(fullSnapshot(), 1000, false, NewSeededFactory(3))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if out.Iterations != 1000 {
		t.Errorf("expected 1000 iterations, got %d", out.Iterations)
	}
}

func TestResolveBatterRatesThinSampleDefaults(t *testing.T) {
	p := DefaultParams()
	snap := fullSnapshot()

	// Thin the sample on one batter; his rates must come from the
	// position class, not the unreliable season line.
	profile := snap.Batters[500]
	profile.AtBats = 20
	profile.AVG = 0.450

	rates := resolveBatterRates(profile, "CF", p)
	if !rates.defaulted {
		t.Fatal("expected defaulted rates below the at-bat threshold")
	}
	if rates.avg != p.LeagueAverageAVG {
		t.Errorf("expected league average avg, got %v", rates.avg)
	}

	power := resolveBatterRates(nil, "DH", p)
	if power.slg != p.PowerClassSLG {
		t.Errorf("expected power class slg for DH, got %v", power.slg)
	}

	glove := resolveBatterRates(nil, "SS", p)
	if glove.obp != p.GloveClassOBP {
		t.Errorf("expected glove class obp for SS, got %v", glove.obp)
	}
}

func TestPitcherEffectivenessBounds(t *testing.T) {
	p := DefaultParams()

	if eff := pitcherEffectiveness(nil, p); eff != 1.0 {
		t.Errorf("nil pitcher anchors to the league baseline, got %v", eff)
	}

	if eff := pitcherEffectiveness(pitcherWithERA(1.00), p); eff != p.EffectivenessMin {
		t.Errorf("elite era must clamp to the floor, got %v", eff)
	}
	if eff := pitcherEffectiveness(pitcherWithERA(9.00), p); eff != p.EffectivenessMax {
		t.Errorf("poor era must clamp to the ceiling, got %v", eff)
	}
}

func pitcherWithERA(era float64) *models.PitcherProfile {
	return &models.PitcherProfile{PlayerID: 1, Season: 2026, ERA: era}
}
