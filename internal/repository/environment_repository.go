package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/models"
)

// PostgresEnvironmentRepository implements EnvironmentRepository for PostgreSQL
type PostgresEnvironmentRepository struct {
	db *database.DB
}

// NewPostgresEnvironmentRepository creates a new environment repository
func NewPostgresEnvironmentRepository(db *database.DB) EnvironmentRepository {
	return &PostgresEnvironmentRepository{db: db}
}

// UpsertParkFactors inserts or refreshes a venue's park multipliers
func (r *PostgresEnvironmentRepository) UpsertParkFactors(ctx context.Context, park *models.ParkFactors) error {
	query := `
		INSERT INTO park_factors (venue, run_factor, home_run_factor, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (venue) DO UPDATE SET
			run_factor = EXCLUDED.run_factor,
			home_run_factor = EXCLUDED.home_run_factor,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query, park.Venue, park.RunFactor, park.HomeRunFactor)
	if err != nil {
		return fmt.Errorf("failed to upsert park factors: %w", err)
	}

	return nil
}

// GetParkFactors retrieves a venue's park multipliers
func (r *PostgresEnvironmentRepository) GetParkFactors(ctx context.Context, venue string) (*models.ParkFactors, error) {
	query := `
		SELECT venue, run_factor, home_run_factor, updated_at
		FROM park_factors
		WHERE venue = $1
	`

	park := &models.ParkFactors{}
	err := r.db.GetPool().QueryRow(ctx, query, venue).Scan(
		&park.Venue, &park.RunFactor, &park.HomeRunFactor, &park.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get park factors: %w", err)
	}

	return park, nil
}

// UpsertWeather inserts or refreshes a game's weather snapshot
func (r *PostgresEnvironmentRepository) UpsertWeather(ctx context.Context, weather *models.WeatherSnapshot) error {
	query := `
		INSERT INTO weather_snapshots (game_id, temperature_f, wind_speed_mph, wind_direction, conditions, captured_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (game_id) DO UPDATE SET
			temperature_f = EXCLUDED.temperature_f,
			wind_speed_mph = EXCLUDED.wind_speed_mph,
			wind_direction = EXCLUDED.wind_direction,
			conditions = EXCLUDED.conditions,
			captured_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		weather.GameID, weather.TemperatureF, weather.WindSpeedMPH, weather.WindDirection, weather.Conditions,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert weather snapshot: %w", err)
	}

	return nil
}

// GetWeather retrieves the most recent weather snapshot for a game
func (r *PostgresEnvironmentRepository) GetWeather(ctx context.Context, gameID int64) (*models.WeatherSnapshot, error) {
	query := `
		SELECT game_id, temperature_f, wind_speed_mph, wind_direction, conditions, captured_at
		FROM weather_snapshots
		WHERE game_id = $1
	`

	weather := &models.WeatherSnapshot{}
	err := r.db.GetPool().QueryRow(ctx, query, gameID).Scan(
		&weather.GameID, &weather.TemperatureF, &weather.WindSpeedMPH,
		&weather.WindDirection, &weather.Conditions, &weather.CapturedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weather snapshot: %w", err)
	}

	return weather, nil
}
