package repository

import (
	"fmt"

	"github.com/yourusername/diamond-sim/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Game        GameRepository
	Lineup      LineupRepository
	PlayerStats PlayerStatsRepository
	TeamStats   TeamStatsRepository
	Environment EnvironmentRepository
	Prediction  PredictionRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Game:        NewPostgresGameRepository(db),
		Lineup:      NewPostgresLineupRepository(db),
		PlayerStats: NewPostgresPlayerStatsRepository(db),
		TeamStats:   NewPostgresTeamStatsRepository(db),
		Environment: NewPostgresEnvironmentRepository(db),
		Prediction:  NewPostgresPredictionRepository(db),
	}, nil
}
