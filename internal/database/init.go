package database

import (
	"context"
	"fmt"

	"github.com/yourusername/diamond-sim/internal/config"
)

// schema is the full DDL for the prediction store. Every statement is
// idempotent so Initialize can run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS games (
	id BIGINT PRIMARY KEY,
	home_team_id BIGINT NOT NULL,
	away_team_id BIGINT NOT NULL,
	venue TEXT NOT NULL DEFAULT '',
	scheduled_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'scheduled',
	home_score INT,
	away_score INT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_games_scheduled_at ON games (scheduled_at);

CREATE TABLE IF NOT EXISTS lineup_entries (
	id BIGSERIAL PRIMARY KEY,
	game_id BIGINT NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	team_id BIGINT NOT NULL,
	role TEXT NOT NULL,
	batting_order INT,
	player_id BIGINT NOT NULL,
	player_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	hand TEXT NOT NULL DEFAULT '',
	is_starter BOOLEAN NOT NULL DEFAULT FALSE,
	is_projected BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_lineup_entries_game_id ON lineup_entries (game_id);

CREATE TABLE IF NOT EXISTS batter_profiles (
	player_id BIGINT NOT NULL,
	season INT NOT NULL,
	team_id BIGINT NOT NULL,
	at_bats INT NOT NULL DEFAULT 0,
	avg DOUBLE PRECISION NOT NULL DEFAULT 0,
	obp DOUBLE PRECISION NOT NULL DEFAULT 0,
	slg DOUBLE PRECISION NOT NULL DEFAULT 0,
	home_runs INT NOT NULL DEFAULT 0,
	wrc_plus INT,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (player_id, season)
);

CREATE TABLE IF NOT EXISTS pitcher_profiles (
	player_id BIGINT NOT NULL,
	season INT NOT NULL,
	team_id BIGINT NOT NULL,
	era DOUBLE PRECISION NOT NULL DEFAULT 0,
	whip DOUBLE PRECISION NOT NULL DEFAULT 0,
	innings_pitched DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (player_id, season)
);

CREATE TABLE IF NOT EXISTS team_season_stats (
	team_id BIGINT NOT NULL,
	season INT NOT NULL,
	games_played INT NOT NULL DEFAULT 0,
	runs_scored INT NOT NULL DEFAULT 0,
	runs_allowed INT NOT NULL DEFAULT 0,
	wins INT NOT NULL DEFAULT 0,
	losses INT NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (team_id, season)
);

CREATE TABLE IF NOT EXISTS park_factors (
	venue TEXT PRIMARY KEY,
	run_factor DOUBLE PRECISION NOT NULL DEFAULT 1.0,
	home_run_factor DOUBLE PRECISION NOT NULL DEFAULT 1.0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS weather_snapshots (
	game_id BIGINT PRIMARY KEY REFERENCES games (id) ON DELETE CASCADE,
	temperature_f DOUBLE PRECISION NOT NULL DEFAULT 0,
	wind_speed_mph DOUBLE PRECISION NOT NULL DEFAULT 0,
	wind_direction TEXT NOT NULL DEFAULT '',
	conditions TEXT NOT NULL DEFAULT '',
	captured_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS predictions (
	id UUID PRIMARY KEY,
	game_id BIGINT NOT NULL UNIQUE REFERENCES games (id) ON DELETE CASCADE,
	method TEXT NOT NULL,
	home_win_probability DOUBLE PRECISION NOT NULL,
	away_win_probability DOUBLE PRECISION NOT NULL,
	predicted_home_score INT NOT NULL,
	predicted_away_score INT NOT NULL,
	predicted_total_runs DOUBLE PRECISION NOT NULL,
	over_under_line DOUBLE PRECISION NOT NULL,
	over_probability DOUBLE PRECISION NOT NULL,
	under_probability DOUBLE PRECISION NOT NULL,
	confidence_score DOUBLE PRECISION NOT NULL,
	sample_size INT NOT NULL DEFAULT 0,
	factors JSONB,
	predicted_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_predictions_updated_at ON predictions (updated_at DESC);
`

// Initialize creates a database connection pool and applies the schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
