package repository

import (
	"context"
	"time"

	"github.com/yourusername/diamond-sim/internal/models"
)

// GameRepository defines the interface for game schedule data access
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error)
	GetUpcoming(ctx context.Context, limit int) ([]*models.Game, error)
	UpdateStatus(ctx context.Context, id int64, status models.GameStatus) error
}

// LineupRepository defines the interface for lineup data access
type LineupRepository interface {
	ReplaceForGame(ctx context.Context, gameID int64, entries []*models.LineupEntry) error
	GetByGameID(ctx context.Context, gameID int64) ([]*models.LineupEntry, error)
}

// PlayerStatsRepository defines the interface for player season rate stats
type PlayerStatsRepository interface {
	UpsertBatter(ctx context.Context, profile *models.BatterProfile) error
	UpsertPitcher(ctx context.Context, profile *models.PitcherProfile) error
	GetBatters(ctx context.Context, playerIDs []int64, season int) (map[int64]*models.BatterProfile, error)
	GetPitchers(ctx context.Context, playerIDs []int64, season int) (map[int64]*models.PitcherProfile, error)
}

// TeamStatsRepository defines the interface for team season aggregates
type TeamStatsRepository interface {
	Upsert(ctx context.Context, stats *models.TeamSeasonStats) error
	GetByTeam(ctx context.Context, teamID int64, season int) (*models.TeamSeasonStats, error)
}

// EnvironmentRepository defines the interface for park factors and weather snapshots
type EnvironmentRepository interface {
	UpsertParkFactors(ctx context.Context, park *models.ParkFactors) error
	GetParkFactors(ctx context.Context, venue string) (*models.ParkFactors, error)
	UpsertWeather(ctx context.Context, weather *models.WeatherSnapshot) error
	GetWeather(ctx context.Context, gameID int64) (*models.WeatherSnapshot, error)
}

// PredictionRepository defines the interface for prediction persistence.
// Upsert is keyed by game id: re-running a prediction overwrites the
// previous record, never duplicates it.
type PredictionRepository interface {
	Upsert(ctx context.Context, prediction *models.Prediction) error
	GetByGameID(ctx context.Context, gameID int64) (*models.Prediction, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Prediction, error)
}
