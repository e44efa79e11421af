// Package main provides the entry point for the prediction CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/diamond-sim/internal/config"
	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/engine"
	"github.com/yourusername/diamond-sim/internal/logger"
	"github.com/yourusername/diamond-sim/internal/repository"
	"github.com/yourusername/diamond-sim/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		gameID     = flag.Int64("game", 0, "Predict a single game by id")
		games      = flag.String("games", "", "Comma-separated game ids for a batch run")
		date       = flag.String("date", "", "Predict every scheduled game on a date (YYYY-MM-DD)")
		iterations = flag.Int("iterations", 0, "Monte Carlo iterations (0 = configured default)")
		seed       = flag.Int64("seed", 0, "Deterministic seed (0 = clock)")
		strict     = flag.Bool("strict-pitching", false, "Fail simulation when a starter cannot be resolved")
	)
	flag.Parse()

	ctx := context.Background()
	cfg := loadConfigWithSecrets(*configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	eng := buildEngine(cfg, repos, log)
	opts := engine.PredictOptions{
		Iterations:     *iterations,
		Seed:           *seed,
		StrictPitching: *strict,
	}

	switch {
	case *gameID != 0:
		predictOne(ctx, eng, *gameID, opts, log)
	case *games != "":
		predictBatch(ctx, eng, parseGameIDs(*games, log), opts, log)
	case *date != "":
		predictDate(ctx, eng, repos, *date, opts, log)
	default:
		fmt.Fprintln(os.Stderr, "one of -game, -games or -date is required")
		flag.Usage()
		os.Exit(2)
	}
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		stdlog.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			stdlog.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			stdlog.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildEngine(cfg *config.Config, repos *repository.Repositories, log *logrus.Logger) *engine.Engine {
	var snapshotCache *cache.Cache
	if cfg.Features.SnapshotCacheEnabled {
		ttl := cfg.SnapshotCacheTTL()
		snapshotCache = cache.New(ttl, 2*ttl)
	}

	snapshots := service.NewSnapshotService(repos, snapshotCache, stdlog.Default(), cfg.Prediction.Season)

	eng, err := engine.NewEngine(engine.FromConfig(&cfg.Prediction), snapshots, repos.Prediction, log)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	return eng
}

func parseGameIDs(csv string, log *logrus.Logger) []int64 {
	parts := strings.Split(csv, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			log.Fatalf("Invalid game id %q: %v", part, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func predictOne(ctx context.Context, eng *engine.Engine, gameID int64, opts engine.PredictOptions, log *logrus.Logger) {
	pred, err := eng.PredictGame(ctx, gameID, opts)
	if err != nil {
		log.Fatalf("Prediction failed for game %d: %v", gameID, err)
	}

	fmt.Printf("game %d: %s home %.3f / away %.3f, %d-%d, o/u %.1f, confidence %.2f\n",
		pred.GameID, pred.Method, pred.HomeWinProbability, pred.AwayWinProbability,
		pred.PredictedHomeScore, pred.PredictedAwayScore, pred.OverUnderLine, pred.ConfidenceScore)
}

func predictBatch(ctx context.Context, eng *engine.Engine, gameIDs []int64, opts engine.PredictOptions, log *logrus.Logger) {
	report := eng.PredictBatch(ctx, gameIDs, opts)
	fmt.Println(report.Message())
	for _, failure := range report.Failures {
		fmt.Printf("  game %d failed: %s\n", failure.GameID, failure.Error)
	}
	if report.Errors > 0 && report.Processed == 0 {
		os.Exit(1)
	}
}

func predictDate(ctx context.Context, eng *engine.Engine, repos *repository.Repositories, date string, opts engine.PredictOptions, log *logrus.Logger) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		log.Fatalf("Invalid date: %v", err)
	}

	scheduled, err := repos.Game.GetByDate(ctx, day)
	if err != nil {
		log.Fatalf("Failed to load schedule: %v", err)
	}

	ids := make([]int64, 0, len(scheduled))
	for _, game := range scheduled {
		if game.IsUpcoming() {
			ids = append(ids, game.ID)
		}
	}
	if len(ids) == 0 {
		fmt.Printf("no upcoming games on %s\n", date)
		return
	}

	predictBatch(ctx, eng, ids, opts, log)
}
