// Package main provides the entry point for the data ingestion service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/yourusername/diamond-sim/internal/config"
	"github.com/yourusername/diamond-sim/internal/database"
	"github.com/yourusername/diamond-sim/internal/datasource"
	"github.com/yourusername/diamond-sim/internal/engine"
	"github.com/yourusername/diamond-sim/internal/health"
	"github.com/yourusername/diamond-sim/internal/logger"
	"github.com/yourusername/diamond-sim/internal/repository"
	"github.com/yourusername/diamond-sim/internal/scheduler"
	"github.com/yourusername/diamond-sim/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		once       = flag.Bool("once", false, "Run one game-day sync and exit")
		date       = flag.String("date", "", "Sync date for -once (YYYY-MM-DD, default today)")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	ingestionSvc, sourceName := buildIngestionService(cfg, repos)

	if *once {
		runOnce(ctx, ingestionSvc, sourceName, *date)
		return
	}

	runService(ctx, cancel, cfg, db, repos, ingestionSvc, sourceName)
}

func buildIngestionService(cfg *config.Config, repos *repository.Repositories) (*service.IngestionService, string) {
	logg := log.Default()
	factory := datasource.NewFactory(cfg, logg)

	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = cfg.FeedTimeout()
	if cfg.Feed.RetryAttempts > 0 {
		httpCfg.MaxRetries = cfg.Feed.RetryAttempts
	}
	if cfg.Feed.RateLimitPerSecond > 0 {
		httpCfg.RateLimit = float64(cfg.Feed.RateLimitPerSecond)
	}
	httpClient := datasource.NewRateLimitedHTTPClient(httpCfg, logg)

	sources, err := factory.NewDataSources(cfg.DataIngestion, httpClient)
	if err != nil {
		log.Fatalf("Failed to create data sources: %v", err)
	}

	var weather datasource.WeatherSource
	if cfg.Features.WeatherEnabled {
		for _, srcCfg := range cfg.DataIngestion.Sources {
			if srcCfg.Name != string(datasource.WeatherSourceType) || !srcCfg.Enabled {
				continue
			}
			weather, err = factory.NewWeatherSource(srcCfg, httpClient)
			if err != nil {
				log.Fatalf("Failed to create weather source: %v", err)
			}
		}
	}

	audit := logger.NewAuditLogger(logger.NewLogger(cfg.App.LogLevel))
	svc := service.NewIngestionService(
		sources,
		weather,
		repos,
		service.NewDataValidator(logg),
		service.NewDataNormalizer(logg),
		audit,
		logg,
		cfg.Prediction.Season,
	)
	return svc, sources[0].Name()
}

func runOnce(ctx context.Context, svc *service.IngestionService, sourceName, date string) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			log.Fatalf("Invalid date: %v", err)
		}
		day = parsed
	}

	if err := svc.SyncGameDay(ctx, sourceName, day); err != nil {
		log.Fatalf("Game-day sync failed: %v", err)
	}
	fmt.Println(svc.GetMetrics().String())
}

func runService(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, db *database.DB, repos *repository.Repositories, ingestionSvc *service.IngestionService, sourceName string) {
	logg := log.Default()
	logrusLogger := logger.NewLogger(cfg.App.LogLevel)

	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Port:        strconv.Itoa(cfg.Metrics.Port),
		Logger:      logrusLogger,
		DB:          db,
	})
	if err := healthSrv.Start(ctx); err != nil {
		log.Fatalf("Failed to start health server: %v", err)
	}

	sched := scheduler.NewScheduler(ingestionSvc, logg)
	if err := sched.ScheduleNightlySync(cfg.DataIngestion.Schedule.NightlySync, sourceName); err != nil {
		log.Fatalf("Failed to schedule nightly sync: %v", err)
	}
	if err := sched.SchedulePredictionSweep(cfg.DataIngestion.Schedule.PredictionSweep, buildSweep(cfg, repos)); err != nil {
		log.Fatalf("Failed to schedule prediction sweep: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	var stream *datasource.LineupStreamClient
	if cfg.Features.LineupStreamEnabled {
		stream = startLineupStream(ctx, cfg, ingestionSvc, logg)
		if stream != nil {
			defer stream.Close()
		}
	}

	healthSrv.SetReady(true)
	logg.Printf("Ingestion service started; next run at %s", sched.GetNextRun().Format(time.RFC3339))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logg.Printf("Shutting down")
	healthSrv.SetReady(false)
	cancel()
}

// buildSweep wires a prediction pass over today's upcoming games so the
// scheduler can refresh stored predictions as lineups firm up.
func buildSweep(cfg *config.Config, repos *repository.Repositories) scheduler.SweepFunc {
	logrusLogger := logger.NewLogger(cfg.App.LogLevel)
	snapshots := service.NewSnapshotService(repos, nil, log.Default(), cfg.Prediction.Season)

	eng, err := engine.NewEngine(engine.FromConfig(&cfg.Prediction), snapshots, repos.Prediction, logrusLogger)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	return func(ctx context.Context) error {
		games, err := repos.Game.GetUpcoming(ctx, 50)
		if err != nil {
			return fmt.Errorf("failed to load upcoming games: %w", err)
		}

		ids := make([]int64, 0, len(games))
		for _, game := range games {
			ids = append(ids, game.ID)
		}
		if len(ids) == 0 {
			return nil
		}

		report := eng.PredictBatch(ctx, ids, engine.PredictOptions{})
		log.Println(report.Message())
		return nil
	}
}

func startLineupStream(ctx context.Context, cfg *config.Config, ingestionSvc *service.IngestionService, logg *log.Logger) *datasource.LineupStreamClient {
	stream := datasource.NewLineupStreamClient(cfg.Feed.StreamURL, cfg.Feed.APIKey, logg)
	stream.AddHandler(func(update *datasource.LineupUpdate) error {
		return ingestionSvc.HandleLineupUpdate(ctx, update)
	})

	if err := stream.Connect(ctx); err != nil {
		logg.Printf("Lineup stream connect failed, continuing without live updates: %v", err)
		return nil
	}
	if err := stream.Authenticate(ctx); err != nil {
		logg.Printf("Lineup stream auth failed, continuing without live updates: %v", err)
		stream.Close()
		return nil
	}

	logg.Printf("Lineup stream connected")
	return stream
}
