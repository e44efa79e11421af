package service

import (
	"context"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/yourusername/diamond-sim/internal/models"
	"github.com/yourusername/diamond-sim/internal/repository"
)

type fakeGameRepo struct {
	games map[int64]*models.Game
}

func (r *fakeGameRepo) Upsert(ctx context.Context, game *models.Game) error {
	r.games[game.ID] = game
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return game, nil
}

func (r *fakeGameRepo) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	return nil, nil
}

func (r *fakeGameRepo) GetUpcoming(ctx context.Context, limit int) ([]*models.Game, error) {
	return nil, nil
}

func (r *fakeGameRepo) UpdateStatus(ctx context.Context, id int64, status models.GameStatus) error {
	return nil
}

type fakeLineupRepo struct {
	entries map[int64][]*models.LineupEntry
}

func (r *fakeLineupRepo) ReplaceForGame(ctx context.Context, gameID int64, entries []*models.LineupEntry) error {
	r.entries[gameID] = entries
	return nil
}

func (r *fakeLineupRepo) GetByGameID(ctx context.Context, gameID int64) ([]*models.LineupEntry, error) {
	return r.entries[gameID], nil
}

type fakePlayerStatsRepo struct {
	batters  map[int64]*models.BatterProfile
	pitchers map[int64]*models.PitcherProfile
}

func (r *fakePlayerStatsRepo) UpsertBatter(ctx context.Context, profile *models.BatterProfile) error {
	r.batters[profile.PlayerID] = profile
	return nil
}

func (r *fakePlayerStatsRepo) UpsertPitcher(ctx context.Context, profile *models.PitcherProfile) error {
	r.pitchers[profile.PlayerID] = profile
	return nil
}

func (r *fakePlayerStatsRepo) GetBatters(ctx context.Context, playerIDs []int64, season int) (map[int64]*models.BatterProfile, error) {
	out := make(map[int64]*models.BatterProfile)
	for _, id := range playerIDs {
		if profile, ok := r.batters[id]; ok {
			out[id] = profile
		}
	}
	return out, nil
}

func (r *fakePlayerStatsRepo) GetPitchers(ctx context.Context, playerIDs []int64, season int) (map[int64]*models.PitcherProfile, error) {
	out := make(map[int64]*models.PitcherProfile)
	for _, id := range playerIDs {
		if profile, ok := r.pitchers[id]; ok {
			out[id] = profile
		}
	}
	return out, nil
}

type fakeTeamStatsRepo struct {
	stats map[int64]*models.TeamSeasonStats
}

func (r *fakeTeamStatsRepo) Upsert(ctx context.Context, stats *models.TeamSeasonStats) error {
	r.stats[stats.TeamID] = stats
	return nil
}

func (r *fakeTeamStatsRepo) GetByTeam(ctx context.Context, teamID int64, season int) (*models.TeamSeasonStats, error) {
	stats, ok := r.stats[teamID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return stats, nil
}

type fakeEnvironmentRepo struct {
	parks   map[string]*models.ParkFactors
	weather map[int64]*models.WeatherSnapshot
}

func (r *fakeEnvironmentRepo) UpsertParkFactors(ctx context.Context, park *models.ParkFactors) error {
	r.parks[park.Venue] = park
	return nil
}

func (r *fakeEnvironmentRepo) GetParkFactors(ctx context.Context, venue string) (*models.ParkFactors, error) {
	park, ok := r.parks[venue]
	if !ok {
		return nil, models.ErrNotFound
	}
	return park, nil
}

func (r *fakeEnvironmentRepo) UpsertWeather(ctx context.Context, weather *models.WeatherSnapshot) error {
	r.weather[weather.GameID] = weather
	return nil
}

func (r *fakeEnvironmentRepo) GetWeather(ctx context.Context, gameID int64) (*models.WeatherSnapshot, error) {
	weather, ok := r.weather[gameID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return weather, nil
}

func newFakeRepos() *repository.Repositories {
	return &repository.Repositories{
		Game:        &fakeGameRepo{games: make(map[int64]*models.Game)},
		Lineup:      &fakeLineupRepo{entries: make(map[int64][]*models.LineupEntry)},
		PlayerStats: &fakePlayerStatsRepo{batters: make(map[int64]*models.BatterProfile), pitchers: make(map[int64]*models.PitcherProfile)},
		TeamStats:   &fakeTeamStatsRepo{stats: make(map[int64]*models.TeamSeasonStats)},
		Environment: &fakeEnvironmentRepo{parks: make(map[string]*models.ParkFactors), weather: make(map[int64]*models.WeatherSnapshot)},
	}
}

func seedGame(repos *repository.Repositories) *models.Game {
	game := &models.Game{
		ID:          1001,
		HomeTeamID:  12,
		AwayTeamID:  7,
		Venue:       "Fenway Park",
		ScheduledAt: time.Now().Add(6 * time.Hour),
		Status:      models.GameStatusScheduled,
	}
	_ = repos.Game.Upsert(context.Background(), game)
	return game
}

func TestSnapshotLoadComposesGameData(t *testing.T) {
	repos := newFakeRepos()
	game := seedGame(repos)

	entries := []*models.LineupEntry{
		{GameID: game.ID, TeamID: 12, Role: models.LineupRoleBatting, BattingOrder: intPtr(1), PlayerID: 501, PlayerName: "A"},
		{GameID: game.ID, TeamID: 12, Role: models.LineupRolePitching, PlayerID: 601, PlayerName: "P", IsStarter: true},
	}
	_ = repos.Lineup.ReplaceForGame(context.Background(), game.ID, entries)
	_ = repos.PlayerStats.UpsertBatter(context.Background(), &models.BatterProfile{PlayerID: 501, Season: 2026, AtBats: 300, OBP: 0.350})
	_ = repos.PlayerStats.UpsertPitcher(context.Background(), &models.PitcherProfile{PlayerID: 601, Season: 2026, ERA: 3.20, WHIP: 1.10})
	_ = repos.TeamStats.Upsert(context.Background(), &models.TeamSeasonStats{TeamID: 12, Season: 2026, GamesPlayed: 80, RunsScored: 400, RunsAllowed: 350})

	svc := NewSnapshotService(repos, nil, log.Default(), 2026)

	snapshot, err := svc.Load(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if snapshot.Game.ID != game.ID {
		t.Errorf("expected game %d, got %d", game.ID, snapshot.Game.ID)
	}

	if len(snapshot.Lineups) != 2 {
		t.Errorf("expected 2 lineup entries, got %d", len(snapshot.Lineups))
	}

	if snapshot.BatterProfile(501) == nil {
		t.Error("expected batter profile for player 501")
	}

	if snapshot.PitcherProfile(601) == nil {
		t.Error("expected pitcher profile for player 601")
	}

	if snapshot.HomeTeamStats == nil || snapshot.HomeTeamStats.TeamID != 12 {
		t.Errorf("expected home team stats for team 12, got %+v", snapshot.HomeTeamStats)
	}

	// Away team has no season line stored; that loads as nil, not error
	if snapshot.AwayTeamStats != nil {
		t.Errorf("expected nil away team stats, got %+v", snapshot.AwayTeamStats)
	}
}

func TestSnapshotLoadMissingGame(t *testing.T) {
	repos := newFakeRepos()
	svc := NewSnapshotService(repos, nil, log.Default(), 2026)

	_, err := svc.Load(context.Background(), 9999)
	if err == nil {
		t.Fatal("expected error for missing game")
	}
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound in chain, got %v", err)
	}
}

func TestSnapshotLoadEnvironment(t *testing.T) {
	repos := newFakeRepos()
	game := seedGame(repos)

	_ = repos.Environment.UpsertParkFactors(context.Background(), &models.ParkFactors{Venue: "Fenway Park", RunFactor: 1.08, HomeRunFactor: 0.96})
	_ = repos.Environment.UpsertWeather(context.Background(), &models.WeatherSnapshot{GameID: game.ID, TemperatureF: 74, WindSpeedMPH: 12, WindDirection: "OUT"})

	svc := NewSnapshotService(repos, nil, log.Default(), 2026)

	snapshot, err := svc.Load(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if snapshot.Env == nil || snapshot.Env.Park == nil || snapshot.Env.Park.RunFactor != 1.08 {
		t.Errorf("expected park factors in environment, got %+v", snapshot.Env)
	}

	if snapshot.Env.Weather == nil || snapshot.Env.Weather.WindDirection != "OUT" {
		t.Errorf("expected weather in environment, got %+v", snapshot.Env)
	}
}

func TestSnapshotLoadNoEnvironment(t *testing.T) {
	repos := newFakeRepos()
	game := seedGame(repos)

	svc := NewSnapshotService(repos, nil, log.Default(), 2026)

	snapshot, err := svc.Load(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if snapshot.Env != nil {
		t.Errorf("expected nil environment with no park or weather stored, got %+v", snapshot.Env)
	}
}

func TestSnapshotCacheHitAndInvalidate(t *testing.T) {
	repos := newFakeRepos()
	game := seedGame(repos)

	svc := NewSnapshotService(repos, cache.New(time.Minute, time.Minute), log.Default(), 2026)

	first, err := svc.Load(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Mutate the store; the cached snapshot must be returned unchanged
	_ = repos.Lineup.ReplaceForGame(context.Background(), game.ID, []*models.LineupEntry{
		{GameID: game.ID, TeamID: 12, Role: models.LineupRoleBatting, BattingOrder: intPtr(1), PlayerID: 1, PlayerName: "A"},
	})

	second, err := svc.Load(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if second != first {
		t.Error("expected cache hit to return the same snapshot")
	}

	svc.Invalidate(game.ID)

	third, err := svc.Load(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if third == first {
		t.Error("expected fresh snapshot after invalidation")
	}
	if len(third.Lineups) != 1 {
		t.Errorf("expected reloaded lineups, got %d entries", len(third.Lineups))
	}
}
