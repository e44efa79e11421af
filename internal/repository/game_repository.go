package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/models"
)

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Upsert inserts or replaces a scheduled game keyed by its feed id
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, home_team_id, away_team_id, venue, scheduled_at, status, home_score, away_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			home_team_id = EXCLUDED.home_team_id,
			away_team_id = EXCLUDED.away_team_id,
			venue = EXCLUDED.venue,
			scheduled_at = EXCLUDED.scheduled_at,
			status = EXCLUDED.status,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.HomeTeamID, game.AwayTeamID, game.Venue, game.ScheduledAt, game.Status, game.HomeScore, game.AwayScore,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by its feed id
func (r *PostgresGameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	query := `
		SELECT id, home_team_id, away_team_id, venue, scheduled_at, status, home_score, away_score, created_at, updated_at
		FROM games WHERE id = $1
	`

	game := &models.Game{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.HomeTeamID, &game.AwayTeamID, &game.Venue, &game.ScheduledAt,
		&game.Status, &game.HomeScore, &game.AwayScore, &game.CreatedAt, &game.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByDate retrieves all games scheduled on a calendar day (UTC)
func (r *PostgresGameRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT id, home_team_id, away_team_id, venue, scheduled_at, status, home_score, away_score, created_at, updated_at
		FROM games
		WHERE scheduled_at >= $1 AND scheduled_at < $2
		ORDER BY scheduled_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by date: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// GetUpcoming retrieves the next scheduled games
func (r *PostgresGameRepository) GetUpcoming(ctx context.Context, limit int) ([]*models.Game, error) {
	query := `
		SELECT id, home_team_id, away_team_id, venue, scheduled_at, status, home_score, away_score, created_at, updated_at
		FROM games
		WHERE status = 'scheduled' AND scheduled_at > NOW()
		ORDER BY scheduled_at ASC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming games: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// UpdateStatus transitions a game's lifecycle state
func (r *PostgresGameRepository) UpdateStatus(ctx context.Context, id int64, status models.GameStatus) error {
	commandTag, err := r.db.GetPool().Exec(ctx,
		"UPDATE games SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func scanGames(rows pgx.Rows) ([]*models.Game, error) {
	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID, &game.HomeTeamID, &game.AwayTeamID, &game.Venue, &game.ScheduledAt,
			&game.Status, &game.HomeScore, &game.AwayScore, &game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
