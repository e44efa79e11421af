package engine

import (
	"errors"
	"testing"

	"github.com/yourusername/diamond-sim/internal/models"
)

func TestEvaluateEnhancedHomeEdge(t *testing.T) {
	p := DefaultParams()
	snap := fullSnapshot()

	// Identical offenses: only the home bonus separates the teams
	snap.AwayTeamStats.RunsScored = snap.HomeTeamStats.RunsScored
	snap.AwayTeamStats.GamesPlayed = snap.HomeTeamStats.GamesPlayed

	assess := Assess(snap.Game, snap.Lineups, p)
	out, err := evaluateEnhanced(snap, assess, p)
	if err != nil {
		t.Fatalf("evaluateEnhanced failed: %v", err)
	}

	if out.homeWinProb <= 0.5 {
		t.Errorf("equal teams must lean home, got %v", out.homeWinProb)
	}
	if out.homeRuns <= out.awayRuns {
		t.Errorf("home runs must carry the bonus: %v vs %v", out.homeRuns, out.awayRuns)
	}
	if out.sampleSize != 0 {
		t.Errorf("closed-form outcome has no sample, got %d", out.sampleSize)
	}
}

func TestEvaluateEnhancedLineupQuality(t *testing.T) {
	p := DefaultParams()

	// Higher completeness scales expected runs up for both teams
	full := fullSnapshot()
	fullAssess := Assess(full.Game, full.Lineups, p)
	fullOut, err := evaluateEnhanced(full, fullAssess, p)
	if err != nil {
		t.Fatalf("evaluateEnhanced failed: %v", err)
	}

	thin := fullSnapshot(withBatters(2, 2))
	thinAssess := Assess(thin.Game, thin.Lineups, p)
	thinOut, err := evaluateEnhanced(thin, thinAssess, p)
	if err != nil {
		t.Fatalf("evaluateEnhanced failed: %v", err)
	}

	if fullOut.awayRuns <= thinOut.awayRuns {
		t.Errorf("fuller lineup data should raise the quality multiplier: %v vs %v",
			fullOut.awayRuns, thinOut.awayRuns)
	}
}

func TestEvaluateAdjustedIgnoresLineups(t *testing.T) {
	p := DefaultParams()

	withFull := fullSnapshot()
	noLineups := fullSnapshot(withoutLineups())

	a, err := evaluateAdjusted(withFull, p)
	if err != nil {
		t.Fatalf("evaluateAdjusted failed: %v", err)
	}
	b, err := evaluateAdjusted(noLineups, p)
	if err != nil {
		t.Fatalf("evaluateAdjusted failed: %v", err)
	}

	if a.homeRuns != b.homeRuns || a.homeWinProb != b.homeWinProb {
		t.Errorf("adjusted model must depend only on team aggregates: %+v vs %+v", a, b)
	}
	if a.homeBonus != p.AdjustedHomeBonus {
		t.Errorf("expected adjusted home bonus %v, got %v", p.AdjustedHomeBonus, a.homeBonus)
	}
}

func TestFallbackMissingTeamStats(t *testing.T) {
	p := DefaultParams()

	snap := fullSnapshot()
	snap.AwayTeamStats = nil

	_, err := evaluateAdjusted(snap, p)
	var missing *MissingTeamStatsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTeamStatsError, got %v", err)
	}
	if missing.TeamID != testAwayTeamID {
		t.Errorf("expected away team flagged, got %d", missing.TeamID)
	}

	// Zero games played is as unusable as no row at all
	snap = fullSnapshot()
	snap.HomeTeamStats = &models.TeamSeasonStats{TeamID: testHomeTeamID, Season: 2026}
	_, err = evaluateAdjusted(snap, p)
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTeamStatsError for empty sample, got %v", err)
	}
	if missing.TeamID != testHomeTeamID {
		t.Errorf("expected home team flagged, got %d", missing.TeamID)
	}
}

func TestRunShareBounds(t *testing.T) {
	p := DefaultParams()

	if got := runShare(0, 0, p); got != 0.5 {
		t.Errorf("zero totals must split even, got %v", got)
	}
	if got := runShare(100, 1, p); got != p.WinProbCeiling {
		t.Errorf("lopsided share must clamp to ceiling, got %v", got)
	}
	if got := runShare(1, 100, p); got != p.WinProbFloor {
		t.Errorf("lopsided share must clamp to floor, got %v", got)
	}
}
