package service

import (
	"log"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/diamond-sim/internal/datasource"
	"github.com/yourusername/diamond-sim/internal/models"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNormalizeGame(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	loc := time.FixedZone("EDT", -4*3600)
	game, err := n.NormalizeGame(&datasource.GameData{
		SourceID:    1001,
		HomeTeamID:  12,
		AwayTeamID:  7,
		Venue:       "FENWAY",
		ScheduledAt: time.Date(2026, 6, 3, 19, 10, 0, 0, loc),
		Status:      "Pre-Game",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if game.Venue != "Fenway Park" {
		t.Errorf("expected canonical venue 'Fenway Park', got %q", game.Venue)
	}

	if game.Status != models.GameStatusScheduled {
		t.Errorf("expected scheduled status, got %s", game.Status)
	}

	if game.ScheduledAt.Location() != time.UTC {
		t.Errorf("expected UTC scheduled time, got %v", game.ScheduledAt.Location())
	}
}

func TestNormalizeGameUnknownStatus(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	game, err := n.NormalizeGame(&datasource.GameData{
		SourceID:    1,
		HomeTeamID:  1,
		AwayTeamID:  2,
		ScheduledAt: time.Now(),
		Status:      "something-new",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if game.Status != models.GameStatusScheduled {
		t.Errorf("unknown status should default to scheduled, got %s", game.Status)
	}
}

func TestNormalizeLineupEntry(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	entry, err := n.NormalizeLineupEntry(&datasource.LineupEntryData{
		GameID:       1001,
		TeamID:       12,
		Role:         "Batting",
		BattingOrder: intPtr(4),
		PlayerID:     501,
		PlayerName:   "  Sam   Ortiz ",
		Position:     " lf ",
		Hand:         strPtr("l"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if entry.PlayerName != "Sam Ortiz" {
		t.Errorf("expected sanitized name 'Sam Ortiz', got %q", entry.PlayerName)
	}

	if entry.Position != "LF" {
		t.Errorf("expected position LF, got %q", entry.Position)
	}

	if entry.Hand != models.HandLeft {
		t.Errorf("expected left hand, got %s", entry.Hand)
	}

	if entry.Role != models.LineupRoleBatting {
		t.Errorf("expected batting role, got %s", entry.Role)
	}
}

func TestNormalizeBatterDecimalRates(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	profile, err := n.NormalizeBatter(&datasource.BatterStatsData{
		PlayerID: 501,
		TeamID:   12,
		Season:   2026,
		AtBats:   320,
		AVG:      decPtr("0.273"),
		OBP:      decPtr("0.341"),
		SLG:      decPtr("0.455"),
		HomeRuns: 14,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.OBP != 0.341 {
		t.Errorf("expected obp 0.341, got %v", profile.OBP)
	}

	if profile.AtBats != 320 || profile.HomeRuns != 14 {
		t.Errorf("counting stats not carried over: %+v", profile)
	}
}

func TestNormalizePitcherDefaultsMissingRates(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	profile, err := n.NormalizePitcher(&datasource.PitcherStatsData{
		PlayerID: 601,
		TeamID:   12,
		Season:   2026,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.ERA != models.LeagueAverageERA {
		t.Errorf("missing era should default to league average, got %v", profile.ERA)
	}

	if profile.WHIP != models.LeagueAverageWHIP {
		t.Errorf("missing whip should default to league average, got %v", profile.WHIP)
	}
}

func TestNormalizePitcherKeepsProvidedRates(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	profile, err := n.NormalizePitcher(&datasource.PitcherStatsData{
		PlayerID: 601,
		TeamID:   12,
		Season:   2026,
		ERA:      decPtr("2.95"),
		WHIP:     decPtr("1.02"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if profile.ERA != 2.95 || profile.WHIP != 1.02 {
		t.Errorf("provided rates should be kept, got era=%v whip=%v", profile.ERA, profile.WHIP)
	}
}

func TestNormalizeWeather(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	snapshot, err := n.NormalizeWeather(&datasource.WeatherData{
		GameID:        1001,
		TemperatureF:  74,
		WindSpeedMPH:  12,
		WindDirection: " out ",
		Conditions:    " Clear ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if snapshot.WindDirection != "OUT" {
		t.Errorf("expected wind direction OUT, got %q", snapshot.WindDirection)
	}

	if snapshot.Conditions != "clear" {
		t.Errorf("expected lowercase conditions, got %q", snapshot.Conditions)
	}
}

func TestNormalizeVenuePassthrough(t *testing.T) {
	n := NewDataNormalizer(log.Default())

	game, err := n.NormalizeGame(&datasource.GameData{
		SourceID:    1,
		HomeTeamID:  1,
		AwayTeamID:  2,
		Venue:       "  Riverside Park ",
		ScheduledAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if game.Venue != "Riverside Park" {
		t.Errorf("unknown venues should pass through trimmed, got %q", game.Venue)
	}
}
