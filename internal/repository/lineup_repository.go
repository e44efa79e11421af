package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/models"
)

// PostgresLineupRepository implements LineupRepository for PostgreSQL
type PostgresLineupRepository struct {
	db *database.DB
}

// NewPostgresLineupRepository creates a new lineup repository
func NewPostgresLineupRepository(db *database.DB) LineupRepository {
	return &PostgresLineupRepository{db: db}
}

// ReplaceForGame atomically swaps a game's published lineup for the
// newly ingested one. Lineups arrive as complete documents from the
// feed, so replacement is simpler and safer than row-level diffing.
func (r *PostgresLineupRepository) ReplaceForGame(ctx context.Context, gameID int64, entries []*models.LineupEntry) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM lineup_entries WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("failed to clear previous lineup: %w", err)
	}

	query := `
		INSERT INTO lineup_entries (game_id, team_id, role, batting_order, player_id, player_name, position, hand, is_starter, is_projected, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	for _, entry := range entries {
		_, err := tx.Exec(ctx, query,
			gameID, entry.TeamID, entry.Role, entry.BattingOrder, entry.PlayerID,
			entry.PlayerName, entry.Position, entry.Hand, entry.IsStarter, entry.IsProjected,
		)
		if err != nil {
			return fmt.Errorf("failed to insert lineup entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit lineup replacement: %w", err)
	}

	return nil
}

// GetByGameID retrieves all lineup rows for a game
func (r *PostgresLineupRepository) GetByGameID(ctx context.Context, gameID int64) ([]*models.LineupEntry, error) {
	query := `
		SELECT id, game_id, team_id, role, batting_order, player_id, player_name, position, hand, is_starter, is_projected, created_at
		FROM lineup_entries
		WHERE game_id = $1
		ORDER BY team_id, role, batting_order NULLS LAST
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lineup: %w", err)
	}
	defer rows.Close()

	var entries []*models.LineupEntry
	for rows.Next() {
		entry := &models.LineupEntry{}
		err := rows.Scan(
			&entry.ID, &entry.GameID, &entry.TeamID, &entry.Role, &entry.BattingOrder,
			&entry.PlayerID, &entry.PlayerName, &entry.Position, &entry.Hand,
			&entry.IsStarter, &entry.IsProjected, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lineup entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
