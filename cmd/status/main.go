package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/diamond-sim/internal/config"
	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	recent     int
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().IntVarP(&recent, "recent", "n", 10, "Number of recent predictions to show")
}

var rootCmd = &cobra.Command{
	Use:   "status",
	Short: "Check prediction pipeline status",
	Long:  `Displays database health, stored prediction counts and the most recent predictions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		displayStatus()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setupDependencies() error {
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func displayStatus() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Printf("diamond-sim status (%s, %s)\n\n", Version, GitCommit)

	fmt.Print("Database: ")
	if err := db.HealthCheck(ctx); err != nil {
		fmt.Printf("UNAVAILABLE (%v)\n", err)
		return
	}
	fmt.Println("ok")

	fmt.Println("\nConfiguration:")
	fmt.Printf("  Environment: %s\n", cfg.App.Environment)
	fmt.Printf("  Season: %d\n", cfg.Prediction.Season)
	fmt.Printf("  Feed URL: %s\n", cfg.Feed.APIURL)
	fmt.Printf("  Lineup Stream: %v\n", cfg.Features.LineupStreamEnabled)
	fmt.Printf("  Weather: %v\n", cfg.Features.WeatherEnabled)

	fmt.Println("\nUpcoming Games:")
	games, err := repos.Game.GetUpcoming(ctx, 5)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
	} else if len(games) == 0 {
		fmt.Println("  none scheduled")
	} else {
		for _, game := range games {
			fmt.Printf("  %d: %d @ %d, %s (%s)\n",
				game.ID, game.AwayTeamID, game.HomeTeamID,
				game.ScheduledAt.Format(time.RFC3339), game.Venue)
		}
	}

	fmt.Println("\nRecent Predictions:")
	predictions, err := repos.Prediction.GetRecent(ctx, recent)
	if err != nil {
		fmt.Printf("  error: %v\n", err)
		return
	}
	if len(predictions) == 0 {
		fmt.Println("  none stored")
		return
	}
	for _, pred := range predictions {
		fmt.Printf("  game %d: %s home %.3f, o/u %.1f, confidence %.2f, updated %s\n",
			pred.GameID, pred.Method, pred.HomeWinProbability,
			pred.OverUnderLine, pred.ConfidenceScore,
			pred.UpdatedAt.Format(time.RFC3339))
	}
}
