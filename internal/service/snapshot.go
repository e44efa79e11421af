package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/patrickmn/go-cache"

	"github.com/yourusername/diamond-sim/internal/engine"
	"github.com/yourusername/diamond-sim/internal/metrics"
	"github.com/yourusername/diamond-sim/internal/models"
	"github.com/yourusername/diamond-sim/internal/repository"
)

// SnapshotService assembles the per-game prediction snapshot from the
// repositories. Snapshots are cached briefly so batch runs over the
// same slate do not refetch unchanged rows.
type SnapshotService struct {
	repos  *repository.Repositories
	cache  *cache.Cache
	logger *log.Logger
	season int
}

var _ engine.SnapshotProvider = (*SnapshotService)(nil)

// NewSnapshotService creates a snapshot service. A nil cache disables
// caching entirely.
func NewSnapshotService(repos *repository.Repositories, snapshotCache *cache.Cache, logger *log.Logger, season int) *SnapshotService {
	return &SnapshotService{
		repos:  repos,
		cache:  snapshotCache,
		logger: logger,
		season: season,
	}
}

// Load builds the snapshot for one game. A missing game is a hard
// error; missing stats, park factors or weather load as nil and the
// engine substitutes defaults downstream.
func (s *SnapshotService) Load(ctx context.Context, gameID int64) (*engine.Snapshot, error) {
	cacheKey := fmt.Sprintf("snapshot:%d", gameID)
	if s.cache != nil {
		if cached, found := s.cache.Get(cacheKey); found {
			return cached.(*engine.Snapshot), nil
		}
	}

	game, err := s.repos.Game.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %d: %w", gameID, err)
	}

	lineups, err := s.repos.Lineup.GetByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lineups for game %d: %w", gameID, err)
	}

	batterIDs := make([]int64, 0, len(lineups))
	pitcherIDs := make([]int64, 0, 2)
	for _, entry := range lineups {
		if entry.IsBatter() {
			batterIDs = append(batterIDs, entry.PlayerID)
		} else {
			pitcherIDs = append(pitcherIDs, entry.PlayerID)
		}
	}

	batters, err := s.repos.PlayerStats.GetBatters(ctx, batterIDs, s.season)
	if err != nil {
		return nil, fmt.Errorf("failed to load batter profiles for game %d: %w", gameID, err)
	}

	pitchers, err := s.repos.PlayerStats.GetPitchers(ctx, pitcherIDs, s.season)
	if err != nil {
		return nil, fmt.Errorf("failed to load pitcher profiles for game %d: %w", gameID, err)
	}

	homeStats, err := s.loadTeamStats(ctx, game.HomeTeamID)
	if err != nil {
		return nil, err
	}
	awayStats, err := s.loadTeamStats(ctx, game.AwayTeamID)
	if err != nil {
		return nil, err
	}

	env, err := s.loadEnvironment(ctx, game)
	if err != nil {
		return nil, err
	}

	snapshot := &engine.Snapshot{
		Game:          game,
		Lineups:       lineups,
		Batters:       batters,
		Pitchers:      pitchers,
		HomeTeamStats: homeStats,
		AwayTeamStats: awayStats,
		Env:           env,
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, snapshot, cache.DefaultExpiration)
		metrics.SnapshotCacheItems.Set(float64(s.cache.ItemCount()))
	}

	return snapshot, nil
}

// Invalidate drops a game's cached snapshot, e.g. after a streamed
// lineup update replaces its card.
func (s *SnapshotService) Invalidate(gameID int64) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(fmt.Sprintf("snapshot:%d", gameID))
	metrics.SnapshotCacheItems.Set(float64(s.cache.ItemCount()))
}

// loadTeamStats returns nil when no season line exists for the team
func (s *SnapshotService) loadTeamStats(ctx context.Context, teamID int64) (*models.TeamSeasonStats, error) {
	stats, err := s.repos.TeamStats.GetByTeam(ctx, teamID, s.season)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load team stats for team %d: %w", teamID, err)
	}
	return stats, nil
}

// loadEnvironment composes park factors and weather, either may be absent
func (s *SnapshotService) loadEnvironment(ctx context.Context, game *models.Game) (*models.Environment, error) {
	env := &models.Environment{}

	if game.Venue != "" {
		park, err := s.repos.Environment.GetParkFactors(ctx, game.Venue)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("failed to load park factors for %q: %w", game.Venue, err)
		}
		env.Park = park
	}

	weather, err := s.repos.Environment.GetWeather(ctx, game.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to load weather for game %d: %w", game.ID, err)
	}
	env.Weather = weather

	if env.Park == nil && env.Weather == nil {
		return nil, nil
	}
	return env, nil
}
