package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// Upsert stores a prediction keyed by game id. Re-predicting a game
// replaces the stored record in place; the original predicted_at is
// preserved so the row tracks first and latest evaluation times.
func (r *PostgresPredictionRepository) Upsert(ctx context.Context, prediction *models.Prediction) error {
	query := `
		INSERT INTO predictions (id, game_id, method, home_win_probability, away_win_probability,
			predicted_home_score, predicted_away_score, predicted_total_runs,
			over_under_line, over_probability, under_probability,
			confidence_score, sample_size, factors, predicted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (game_id) DO UPDATE SET
			method = EXCLUDED.method,
			home_win_probability = EXCLUDED.home_win_probability,
			away_win_probability = EXCLUDED.away_win_probability,
			predicted_home_score = EXCLUDED.predicted_home_score,
			predicted_away_score = EXCLUDED.predicted_away_score,
			predicted_total_runs = EXCLUDED.predicted_total_runs,
			over_under_line = EXCLUDED.over_under_line,
			over_probability = EXCLUDED.over_probability,
			under_probability = EXCLUDED.under_probability,
			confidence_score = EXCLUDED.confidence_score,
			sample_size = EXCLUDED.sample_size,
			factors = EXCLUDED.factors,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		prediction.ID, prediction.GameID, prediction.Method,
		prediction.HomeWinProbability, prediction.AwayWinProbability,
		prediction.PredictedHomeScore, prediction.PredictedAwayScore, prediction.PredictedTotalRuns,
		prediction.OverUnderLine, prediction.OverProbability, prediction.UnderProbability,
		prediction.ConfidenceScore, prediction.SampleSize, prediction.Factors,
		prediction.PredictedAt, prediction.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}

	return nil
}

// GetByGameID retrieves the live prediction for a game
func (r *PostgresPredictionRepository) GetByGameID(ctx context.Context, gameID int64) (*models.Prediction, error) {
	query := `
		SELECT id, game_id, method, home_win_probability, away_win_probability,
			predicted_home_score, predicted_away_score, predicted_total_runs,
			over_under_line, over_probability, under_probability,
			confidence_score, sample_size, factors, predicted_at, updated_at
		FROM predictions
		WHERE game_id = $1
	`

	prediction := &models.Prediction{}
	err := r.db.GetPool().QueryRow(ctx, query, gameID).Scan(
		&prediction.ID, &prediction.GameID, &prediction.Method,
		&prediction.HomeWinProbability, &prediction.AwayWinProbability,
		&prediction.PredictedHomeScore, &prediction.PredictedAwayScore, &prediction.PredictedTotalRuns,
		&prediction.OverUnderLine, &prediction.OverProbability, &prediction.UnderProbability,
		&prediction.ConfidenceScore, &prediction.SampleSize, &prediction.Factors,
		&prediction.PredictedAt, &prediction.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	return prediction, nil
}

// GetRecent retrieves the most recently updated predictions
func (r *PostgresPredictionRepository) GetRecent(ctx context.Context, limit int) ([]*models.Prediction, error) {
	query := `
		SELECT id, game_id, method, home_win_probability, away_win_probability,
			predicted_home_score, predicted_away_score, predicted_total_runs,
			over_under_line, over_probability, under_probability,
			confidence_score, sample_size, factors, predicted_at, updated_at
		FROM predictions
		ORDER BY updated_at DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*models.Prediction
	for rows.Next() {
		prediction := &models.Prediction{}
		err := rows.Scan(
			&prediction.ID, &prediction.GameID, &prediction.Method,
			&prediction.HomeWinProbability, &prediction.AwayWinProbability,
			&prediction.PredictedHomeScore, &prediction.PredictedAwayScore, &prediction.PredictedTotalRuns,
			&prediction.OverUnderLine, &prediction.OverProbability, &prediction.UnderProbability,
			&prediction.ConfidenceScore, &prediction.SampleSize, &prediction.Factors,
			&prediction.PredictedAt, &prediction.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, prediction)
	}

	return predictions, rows.Err()
}
