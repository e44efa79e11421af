package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/models"
)

// PostgresPlayerStatsRepository implements PlayerStatsRepository for PostgreSQL
type PostgresPlayerStatsRepository struct {
	db *database.DB
}

// NewPostgresPlayerStatsRepository creates a new player stats repository
func NewPostgresPlayerStatsRepository(db *database.DB) PlayerStatsRepository {
	return &PostgresPlayerStatsRepository{db: db}
}

// UpsertBatter inserts or refreshes one batter's season line
func (r *PostgresPlayerStatsRepository) UpsertBatter(ctx context.Context, profile *models.BatterProfile) error {
	query := `
		INSERT INTO batter_profiles (player_id, season, team_id, at_bats, avg, obp, slg, home_runs, wrc_plus, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (player_id, season) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			at_bats = EXCLUDED.at_bats,
			avg = EXCLUDED.avg,
			obp = EXCLUDED.obp,
			slg = EXCLUDED.slg,
			home_runs = EXCLUDED.home_runs,
			wrc_plus = EXCLUDED.wrc_plus,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		profile.PlayerID, profile.Season, profile.TeamID, profile.AtBats,
		profile.AVG, profile.OBP, profile.SLG, profile.HomeRuns, profile.WRCPlus,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert batter profile: %w", err)
	}

	return nil
}

// UpsertPitcher inserts or refreshes one pitcher's season line
func (r *PostgresPlayerStatsRepository) UpsertPitcher(ctx context.Context, profile *models.PitcherProfile) error {
	query := `
		INSERT INTO pitcher_profiles (player_id, season, team_id, era, whip, innings_pitched, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (player_id, season) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			era = EXCLUDED.era,
			whip = EXCLUDED.whip,
			innings_pitched = EXCLUDED.innings_pitched,
			updated_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		profile.PlayerID, profile.Season, profile.TeamID, profile.ERA, profile.WHIP, profile.InningsPitched,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pitcher profile: %w", err)
	}

	return nil
}

// GetBatters retrieves season lines for a set of players, keyed by
// player id. Players with no stored line are simply absent from the
// map; the engine substitutes defaults for them.
func (r *PostgresPlayerStatsRepository) GetBatters(ctx context.Context, playerIDs []int64, season int) (map[int64]*models.BatterProfile, error) {
	query := `
		SELECT player_id, season, team_id, at_bats, avg, obp, slg, home_runs, wrc_plus, updated_at
		FROM batter_profiles
		WHERE player_id = ANY($1) AND season = $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, playerIDs, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query batter profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[int64]*models.BatterProfile)
	for rows.Next() {
		profile := &models.BatterProfile{}
		err := rows.Scan(
			&profile.PlayerID, &profile.Season, &profile.TeamID, &profile.AtBats,
			&profile.AVG, &profile.OBP, &profile.SLG, &profile.HomeRuns, &profile.WRCPlus, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batter profile: %w", err)
		}
		profiles[profile.PlayerID] = profile
	}

	return profiles, rows.Err()
}

// GetPitchers retrieves season lines for a set of pitchers, keyed by
// player id.
func (r *PostgresPlayerStatsRepository) GetPitchers(ctx context.Context, playerIDs []int64, season int) (map[int64]*models.PitcherProfile, error) {
	query := `
		SELECT player_id, season, team_id, era, whip, innings_pitched, updated_at
		FROM pitcher_profiles
		WHERE player_id = ANY($1) AND season = $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, playerIDs, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query pitcher profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[int64]*models.PitcherProfile)
	for rows.Next() {
		profile := &models.PitcherProfile{}
		err := rows.Scan(
			&profile.PlayerID, &profile.Season, &profile.TeamID,
			&profile.ERA, &profile.WHIP, &profile.InningsPitched, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pitcher profile: %w", err)
		}
		profiles[profile.PlayerID] = profile
	}

	return profiles, rows.Err()
}
