package engine

import (
	"math"
	"testing"
)

func TestConfidenceBaseByTier(t *testing.T) {
	p := DefaultParams()

	mc := ConfidenceScore(ConfidenceInputs{Tier: TierMonteCarlo}, p)
	enhanced := ConfidenceScore(ConfidenceInputs{Tier: TierEnhancedStats}, p)
	adjusted := ConfidenceScore(ConfidenceInputs{Tier: TierAdjustedTeamStats}, p)

	if !(mc > enhanced && enhanced > adjusted) {
		t.Errorf("tiers must order confidence: %v > %v > %v", mc, enhanced, adjusted)
	}
	if adjusted != p.AdjustedBaseConfidence {
		t.Errorf("no bonuses apply to a bare adjusted run, got %v", adjusted)
	}
}

func TestConfidenceBonuses(t *testing.T) {
	p := DefaultParams()

	full := ConfidenceInputs{
		Tier:                 TierMonteCarlo,
		HomeBatters:          9,
		AwayBatters:          9,
		BothStartersResolved: true,
		RealStatsFraction:    1.0,
	}
	want := p.MonteCarloBaseConfidence + p.FullLineupBonus + p.StartersBonus + p.RealStatsBonus
	if want > p.ConfidenceCap {
		want = p.ConfidenceCap
	}
	if got := ConfidenceScore(full, p); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v with all bonuses, got %v", want, got)
	}

	// One short lineup drops the full-lineup bonus entirely
	short := full
	short.AwayBatters = 8
	if got := ConfidenceScore(short, p); got >= ConfidenceScore(full, p) {
		t.Errorf("short lineup must not earn the full-lineup bonus")
	}
}

func TestConfidenceNeverExceedsCap(t *testing.T) {
	p := DefaultParams()
	p.MonteCarloBaseConfidence = 0.9 // push the sum past the cap

	in := ConfidenceInputs{
		Tier:                 TierMonteCarlo,
		HomeBatters:          9,
		AwayBatters:          9,
		BothStartersResolved: true,
		RealStatsFraction:    1.0,
	}
	if got := ConfidenceScore(in, p); got != p.ConfidenceCap {
		t.Errorf("expected cap %v, got %v", p.ConfidenceCap, got)
	}
}

func TestConfidenceRealStatsFractionClamped(t *testing.T) {
	p := DefaultParams()

	over := ConfidenceScore(ConfidenceInputs{Tier: TierAdjustedTeamStats, RealStatsFraction: 3.0}, p)
	atOne := ConfidenceScore(ConfidenceInputs{Tier: TierAdjustedTeamStats, RealStatsFraction: 1.0}, p)
	if over != atOne {
		t.Errorf("fraction above 1 must clamp: %v vs %v", over, atOne)
	}

	under := ConfidenceScore(ConfidenceInputs{Tier: TierAdjustedTeamStats, RealStatsFraction: -1.0}, p)
	atZero := ConfidenceScore(ConfidenceInputs{Tier: TierAdjustedTeamStats, RealStatsFraction: 0}, p)
	if under != atZero {
		t.Errorf("negative fraction must clamp: %v vs %v", under, atZero)
	}
}
