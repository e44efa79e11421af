package service

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/yourusername/diamond-sim/internal/datasource"
	"github.com/yourusername/diamond-sim/internal/models"
)

type fakeDataSource struct {
	name     string
	games    []datasource.GameData
	lineups  map[int64][]datasource.LineupEntryData
	batters  map[int64][]datasource.BatterStatsData
	pitchers map[int64][]datasource.PitcherStatsData
	teams    []datasource.TeamStatsData
}

func (s *fakeDataSource) FetchSchedule(ctx context.Context, startDate, endDate time.Time) ([]datasource.GameData, error) {
	return s.games, nil
}

func (s *fakeDataSource) FetchLineups(ctx context.Context, gameID int64) ([]datasource.LineupEntryData, error) {
	return s.lineups[gameID], nil
}

func (s *fakeDataSource) FetchTeamStats(ctx context.Context, season int) ([]datasource.TeamStatsData, error) {
	return s.teams, nil
}

func (s *fakeDataSource) FetchBatterStats(ctx context.Context, teamID int64, season int) ([]datasource.BatterStatsData, error) {
	return s.batters[teamID], nil
}

func (s *fakeDataSource) FetchPitcherStats(ctx context.Context, teamID int64, season int) ([]datasource.PitcherStatsData, error) {
	return s.pitchers[teamID], nil
}

func (s *fakeDataSource) Name() string    { return s.name }
func (s *fakeDataSource) IsEnabled() bool { return true }

func newTestIngestionService(source *fakeDataSource) (*IngestionService, *fakeGameRepo, *fakeLineupRepo) {
	repos := newFakeRepos()
	svc := NewIngestionService(
		[]datasource.DataSource{source},
		nil,
		repos,
		NewDataValidator(log.Default()),
		NewDataNormalizer(log.Default()),
		nil,
		log.Default(),
		2026,
	)
	return svc, repos.Game.(*fakeGameRepo), repos.Lineup.(*fakeLineupRepo)
}

func TestSyncScheduleUpserts(t *testing.T) {
	source := &fakeDataSource{
		name: "statsfeed",
		games: []datasource.GameData{
			{SourceID: 1001, HomeTeamID: 12, AwayTeamID: 7, Venue: "FENWAY", ScheduledAt: time.Now().Add(12 * time.Hour), Status: "scheduled"},
			{SourceID: 1002, HomeTeamID: 7, AwayTeamID: 7, ScheduledAt: time.Now(), Status: "scheduled"}, // invalid: same teams
		},
	}

	svc, gameRepo, _ := newTestIngestionService(source)

	metrics, err := svc.SyncSchedule(context.Background(), "statsfeed", time.Now(), time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if metrics.SuccessfulGames != 1 {
		t.Errorf("expected 1 successful game, got %d", metrics.SuccessfulGames)
	}
	if metrics.Errors != 1 {
		t.Errorf("expected 1 error for the invalid game, got %d", metrics.Errors)
	}

	stored, ok := gameRepo.games[1001]
	if !ok {
		t.Fatal("expected game 1001 to be stored")
	}
	if stored.Venue != "Fenway Park" {
		t.Errorf("expected canonical venue, got %q", stored.Venue)
	}

	if _, ok := gameRepo.games[1002]; ok {
		t.Error("invalid game 1002 must not be stored")
	}
}

func TestSyncScheduleUnknownSource(t *testing.T) {
	svc, _, _ := newTestIngestionService(&fakeDataSource{name: "statsfeed"})

	if _, err := svc.SyncSchedule(context.Background(), "nope", time.Now(), time.Now()); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestSyncLineupsReplacesCard(t *testing.T) {
	order := func(i int) *int { return &i }
	source := &fakeDataSource{
		name: "statsfeed",
		lineups: map[int64][]datasource.LineupEntryData{
			1001: {
				{GameID: 1001, TeamID: 12, Role: "batting", BattingOrder: order(1), PlayerID: 501, PlayerName: "A", Position: "CF"},
				{GameID: 1001, TeamID: 12, Role: "batting", BattingOrder: order(2), PlayerID: 502, PlayerName: "B", Position: "SS"},
				{GameID: 1001, TeamID: 12, Role: "pitching", PlayerID: 601, PlayerName: "P", IsStarter: true},
			},
		},
	}

	svc, _, lineupRepo := newTestIngestionService(source)

	if err := svc.SyncLineups(context.Background(), "statsfeed", 1001); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(lineupRepo.entries[1001]) != 3 {
		t.Errorf("expected 3 stored entries, got %d", len(lineupRepo.entries[1001]))
	}
}

func TestSyncLineupsRejectsDuplicateSlots(t *testing.T) {
	order := func(i int) *int { return &i }
	source := &fakeDataSource{
		name: "statsfeed",
		lineups: map[int64][]datasource.LineupEntryData{
			1001: {
				{GameID: 1001, TeamID: 12, Role: "batting", BattingOrder: order(1), PlayerID: 501, PlayerName: "A"},
				{GameID: 1001, TeamID: 12, Role: "batting", BattingOrder: order(1), PlayerID: 502, PlayerName: "B"},
			},
		},
	}

	svc, _, lineupRepo := newTestIngestionService(source)

	if err := svc.SyncLineups(context.Background(), "statsfeed", 1001); err == nil {
		t.Fatal("expected error for duplicate batting order slots")
	}

	if len(lineupRepo.entries[1001]) != 0 {
		t.Error("invalid card must not be stored")
	}
}

func TestHandleLineupUpdateMergesTeams(t *testing.T) {
	order := func(i int) *int { return &i }
	svc, _, lineupRepo := newTestIngestionService(&fakeDataSource{name: "statsfeed"})

	// Seed stored document with one row per team
	lineupRepo.entries[1001] = []*models.LineupEntry{
		{GameID: 1001, TeamID: 12, Role: models.LineupRoleBatting, BattingOrder: order(1), PlayerID: 501, PlayerName: "Home A"},
		{GameID: 1001, TeamID: 7, Role: models.LineupRoleBatting, BattingOrder: order(1), PlayerID: 701, PlayerName: "Away A"},
	}

	update := &datasource.LineupUpdate{
		Op:        "lineup",
		GameID:    1001,
		TeamID:    12,
		Projected: true,
		Entries: []datasource.LineupEntryData{
			{GameID: 1001, TeamID: 12, Role: "batting", BattingOrder: order(1), PlayerID: 511, PlayerName: "Home B"},
			{GameID: 1001, TeamID: 12, Role: "batting", BattingOrder: order(2), PlayerID: 512, PlayerName: "Home C"},
		},
	}

	if err := svc.HandleLineupUpdate(context.Background(), update); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stored := lineupRepo.entries[1001]
	if len(stored) != 3 {
		t.Fatalf("expected 3 entries after merge, got %d", len(stored))
	}

	var awayKept, homeReplaced bool
	for _, entry := range stored {
		if entry.TeamID == 7 && entry.PlayerID == 701 {
			awayKept = true
		}
		if entry.TeamID == 12 && entry.PlayerID == 511 && entry.IsProjected {
			homeReplaced = true
		}
		if entry.TeamID == 12 && entry.PlayerID == 501 {
			t.Error("old home card entry should have been replaced")
		}
	}
	if !awayKept {
		t.Error("away team card must survive a home team update")
	}
	if !homeReplaced {
		t.Error("streamed entries must be stored with the projected flag")
	}
}

func TestSyncTeamStats(t *testing.T) {
	source := &fakeDataSource{
		name: "statsfeed",
		teams: []datasource.TeamStatsData{
			{TeamID: 12, Season: 2026, GamesPlayed: 80, RunsScored: 400, RunsAllowed: 350, Wins: 45, Losses: 35},
			{TeamID: 7, Season: 2026, GamesPlayed: 10, Wins: 9, Losses: 5}, // invalid: wins+losses > games
		},
	}

	repos := newFakeRepos()
	svc := NewIngestionService(
		[]datasource.DataSource{source}, nil, repos,
		NewDataValidator(log.Default()), NewDataNormalizer(log.Default()),
		nil, log.Default(), 2026,
	)

	if err := svc.SyncTeamStats(context.Background(), "statsfeed"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	teamRepo := repos.TeamStats.(*fakeTeamStatsRepo)
	if _, ok := teamRepo.stats[12]; !ok {
		t.Error("expected team 12 stats stored")
	}
	if _, ok := teamRepo.stats[7]; ok {
		t.Error("invalid team 7 stats must not be stored")
	}
	if svc.GetMetrics().TeamLines != 1 {
		t.Errorf("expected 1 team line recorded, got %d", svc.GetMetrics().TeamLines)
	}
}
