package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/models"
)

// PostgresTeamStatsRepository implements TeamStatsRepository for PostgreSQL
type PostgresTeamStatsRepository struct {
	db *database.DB
}

// NewPostgresTeamStatsRepository creates a new team stats repository
func NewPostgresTeamStatsRepository(db *database.DB) TeamStatsRepository {
	return &PostgresTeamStatsRepository{db: db}
}

// Upsert inserts or refreshes one team's season aggregates
func (r *PostgresTeamStatsRepository) Upsert(ctx context.Context, stats *models.TeamSeasonStats) error {
	query := `
		INSERT INTO team_season_stats (team_id, season, games_played, runs_scored, runs_allowed, wins, losses, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (team_id, season) DO UPDATE SET
			games_played = EXCLUDED.games_played,
			runs_scored = EXCLUDED.runs_scored,
			runs_allowed = EXCLUDED.runs_allowed,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		stats.TeamID, stats.Season, stats.GamesPlayed, stats.RunsScored,
		stats.RunsAllowed, stats.Wins, stats.Losses,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert team stats: %w", err)
	}

	return nil
}

// GetByTeam retrieves a team's season aggregates
func (r *PostgresTeamStatsRepository) GetByTeam(ctx context.Context, teamID int64, season int) (*models.TeamSeasonStats, error) {
	query := `
		SELECT team_id, season, games_played, runs_scored, runs_allowed, wins, losses, updated_at
		FROM team_season_stats
		WHERE team_id = $1 AND season = $2
	`

	stats := &models.TeamSeasonStats{}
	err := r.db.GetPool().QueryRow(ctx, query, teamID, season).Scan(
		&stats.TeamID, &stats.Season, &stats.GamesPlayed, &stats.RunsScored,
		&stats.RunsAllowed, &stats.Wins, &stats.Losses, &stats.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team stats: %w", err)
	}

	return stats, nil
}
