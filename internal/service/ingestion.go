package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/diamond-sim/internal/datasource"
	"github.com/yourusername/diamond-sim/internal/logger"
	"github.com/yourusername/diamond-sim/internal/metrics"
	"github.com/yourusername/diamond-sim/internal/models"
	"github.com/yourusername/diamond-sim/internal/repository"
)

// IngestionService handles the data ingestion workflow: schedule,
// lineups, player and team stat lines flow from the feed through the
// normalizer and validator into the repositories.
type IngestionService struct {
	sources    []datasource.DataSource
	weather    datasource.WeatherSource
	repos      *repository.Repositories
	validator  *DataValidator
	normalizer *DataNormalizer
	metrics    *IngestionMetrics
	audit      *logger.AuditLogger
	logger     *log.Logger
	season     int
}

// NewIngestionService creates a new ingestion service. The weather
// source is optional; without it weather snapshots are simply skipped.
// The audit logger is optional; without it audit events are dropped.
func NewIngestionService(
	sources []datasource.DataSource,
	weather datasource.WeatherSource,
	repos *repository.Repositories,
	validator *DataValidator,
	normalizer *DataNormalizer,
	audit *logger.AuditLogger,
	logg *log.Logger,
	season int,
) *IngestionService {
	return &IngestionService{
		sources:    sources,
		weather:    weather,
		repos:      repos,
		validator:  validator,
		normalizer: normalizer,
		metrics:    NewIngestionMetrics(),
		audit:      audit,
		logger:     logg,
		season:     season,
	}
}

// findSource locates a configured source by name
func (s *IngestionService) findSource(sourceName string) (datasource.DataSource, error) {
	for _, src := range s.sources {
		if src.Name() == sourceName {
			return src, nil
		}
	}
	return nil, fmt.Errorf("data source not found: %s", sourceName)
}

// SyncSchedule fetches and upserts the game schedule for a date range
func (s *IngestionService) SyncSchedule(ctx context.Context, sourceName string, startDate, endDate time.Time) (*IngestionMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	s.logger.Printf("Starting schedule sync from %s (%s to %s)", sourceName, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	source, err := s.findSource(sourceName)
	if err != nil {
		return nil, err
	}

	games, err := source.FetchSchedule(ctx, startDate, endDate)
	if err != nil {
		s.metrics.RecordError()
		metrics.IngestionErrorsTotal.Inc()
		return s.metrics, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	s.logger.Printf("Fetched %d games from %s", len(games), sourceName)
	s.metrics.TotalGames = len(games)

	for i := range games {
		if err := s.processGame(ctx, &games[i]); err != nil {
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
			s.logger.Printf("Error processing game %d: %v", games[i].SourceID, err)
		}
	}

	metrics.RecordIngestedRecords("game", s.metrics.SuccessfulGames)

	s.metrics.Duration = time.Since(startTime)
	s.logger.Printf("Schedule sync complete: %s", s.metrics.String())

	return s.metrics, nil
}

// SyncLineups fetches and replaces the lineup document for one game
func (s *IngestionService) SyncLineups(ctx context.Context, sourceName string, gameID int64) error {
	source, err := s.findSource(sourceName)
	if err != nil {
		return err
	}

	entries, err := source.FetchLineups(ctx, gameID)
	if err != nil {
		metrics.IngestionErrorsTotal.Inc()
		return fmt.Errorf("failed to fetch lineups for game %d: %w", gameID, err)
	}

	return s.storeLineups(ctx, gameID, entries)
}

// HandleLineupUpdate applies a streamed lineup revision. Stream
// updates carry one team's card; the other team's rows are preserved
// by re-fetching the stored document and merging.
func (s *IngestionService) HandleLineupUpdate(ctx context.Context, update *datasource.LineupUpdate) error {
	existing, err := s.repos.Lineup.GetByGameID(ctx, update.GameID)
	if err != nil {
		return fmt.Errorf("failed to load stored lineup for game %d: %w", update.GameID, err)
	}

	merged := existing[:0:0]
	for _, entry := range existing {
		if entry.TeamID != update.TeamID {
			merged = append(merged, entry)
		}
	}

	card := make([]*models.LineupEntry, 0, len(update.Entries))
	for i := range update.Entries {
		entry, err := s.normalizer.NormalizeLineupEntry(&update.Entries[i])
		if err != nil {
			s.metrics.RecordValidationError()
			continue
		}
		entry.IsProjected = update.Projected
		if issues := s.validator.ValidateLineupEntry(entry); len(issues) > 0 {
			s.metrics.RecordValidationError()
			s.logger.Printf("Streamed lineup entry rejected for game %d: %v", update.GameID, issues)
			continue
		}
		card = append(card, entry)
	}

	if issues := s.validator.ValidateLineupDocument(card); len(issues) > 0 {
		return fmt.Errorf("streamed lineup card invalid for game %d team %d: %v", update.GameID, update.TeamID, issues)
	}
	merged = append(merged, card...)

	if err := s.repos.Lineup.ReplaceForGame(ctx, update.GameID, merged); err != nil {
		metrics.IngestionErrorsTotal.Inc()
		return fmt.Errorf("failed to store streamed lineup: %w", err)
	}

	if s.audit != nil {
		s.audit.LogLineupReplacement(update.GameID, update.TeamID, len(card), update.Projected, "stream")
	}
	metrics.RecordIngestedRecords("lineup_entry", len(update.Entries))
	return nil
}

// SyncTeamStats fetches and upserts season aggregates for every team
func (s *IngestionService) SyncTeamStats(ctx context.Context, sourceName string) error {
	source, err := s.findSource(sourceName)
	if err != nil {
		return err
	}

	teamStats, err := source.FetchTeamStats(ctx, s.season)
	if err != nil {
		metrics.IngestionErrorsTotal.Inc()
		return fmt.Errorf("failed to fetch team stats: %w", err)
	}

	for i := range teamStats {
		stats, err := s.normalizer.NormalizeTeamStats(&teamStats[i])
		if err != nil {
			s.metrics.RecordValidationError()
			continue
		}
		if issues := s.validator.ValidateTeamStats(stats); len(issues) > 0 {
			s.metrics.RecordValidationError()
			s.logger.Printf("Team stats rejected for team %d: %v", stats.TeamID, issues)
			continue
		}
		if err := s.repos.TeamStats.Upsert(ctx, stats); err != nil {
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
			s.logger.Printf("Failed to upsert team stats for team %d: %v", stats.TeamID, err)
			continue
		}
		s.metrics.RecordTeamLine()
	}

	metrics.RecordIngestedRecords("team_stats", s.metrics.TeamLines)
	return nil
}

// SyncPlayerStats fetches and upserts batter and pitcher lines for the
// given teams
func (s *IngestionService) SyncPlayerStats(ctx context.Context, sourceName string, teamIDs []int64) error {
	source, err := s.findSource(sourceName)
	if err != nil {
		return err
	}

	for _, teamID := range teamIDs {
		batters, err := source.FetchBatterStats(ctx, teamID, s.season)
		if err != nil {
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
			s.logger.Printf("Failed to fetch batters for team %d: %v", teamID, err)
			continue
		}
		for i := range batters {
			profile, err := s.normalizer.NormalizeBatter(&batters[i])
			if err != nil {
				s.metrics.RecordValidationError()
				continue
			}
			if issues := s.validator.ValidateBatter(profile); len(issues) > 0 {
				s.metrics.RecordValidationError()
				s.logger.Printf("Batter line rejected for player %d: %v", profile.PlayerID, issues)
				continue
			}
			if err := s.repos.PlayerStats.UpsertBatter(ctx, profile); err != nil {
				s.metrics.RecordError()
				continue
			}
			s.metrics.RecordPlayerLine()
		}

		pitchers, err := source.FetchPitcherStats(ctx, teamID, s.season)
		if err != nil {
			s.metrics.RecordError()
			metrics.IngestionErrorsTotal.Inc()
			s.logger.Printf("Failed to fetch pitchers for team %d: %v", teamID, err)
			continue
		}
		for i := range pitchers {
			profile, err := s.normalizer.NormalizePitcher(&pitchers[i])
			if err != nil {
				s.metrics.RecordValidationError()
				continue
			}
			if issues := s.validator.ValidatePitcher(profile); len(issues) > 0 {
				s.metrics.RecordValidationError()
				continue
			}
			if err := s.repos.PlayerStats.UpsertPitcher(ctx, profile); err != nil {
				s.metrics.RecordError()
				continue
			}
			s.metrics.RecordPlayerLine()
		}
	}

	metrics.RecordIngestedRecords("player_stats", s.metrics.PlayerLines)
	return nil
}

// SyncWeather fetches and stores the forecast for one game
func (s *IngestionService) SyncWeather(ctx context.Context, gameID int64, venue string) error {
	if s.weather == nil || !s.weather.IsEnabled() {
		return nil
	}

	forecast, err := s.weather.FetchWeather(ctx, gameID, venue)
	if err != nil {
		metrics.IngestionErrorsTotal.Inc()
		return fmt.Errorf("failed to fetch weather for game %d: %w", gameID, err)
	}

	snapshot, err := s.normalizer.NormalizeWeather(forecast)
	if err != nil {
		return err
	}

	if err := s.repos.Environment.UpsertWeather(ctx, snapshot); err != nil {
		metrics.IngestionErrorsTotal.Inc()
		return fmt.Errorf("failed to store weather for game %d: %w", gameID, err)
	}

	metrics.RecordIngestedRecords("weather", 1)
	return nil
}

// SyncGameDay runs the full per-day pipeline: schedule, then lineups
// and weather for each upcoming game, then stats for the teams involved.
func (s *IngestionService) SyncGameDay(ctx context.Context, sourceName string, date time.Time) error {
	startTime := time.Now()

	if _, err := s.SyncSchedule(ctx, sourceName, date, date.Add(24*time.Hour)); err != nil {
		return err
	}

	games, err := s.repos.Game.GetByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to load synced games: %w", err)
	}

	teamSet := make(map[int64]bool)
	for _, game := range games {
		if !game.IsUpcoming() {
			continue
		}
		teamSet[game.HomeTeamID] = true
		teamSet[game.AwayTeamID] = true

		if err := s.SyncLineups(ctx, sourceName, game.ID); err != nil {
			s.logger.Printf("Lineup sync failed for game %d: %v", game.ID, err)
		}
		if err := s.SyncWeather(ctx, game.ID, game.Venue); err != nil {
			s.logger.Printf("Weather sync failed for game %d: %v", game.ID, err)
		}
	}

	teamIDs := make([]int64, 0, len(teamSet))
	for teamID := range teamSet {
		teamIDs = append(teamIDs, teamID)
	}

	if err := s.SyncTeamStats(ctx, sourceName); err != nil {
		s.logger.Printf("Team stats sync failed: %v", err)
	}
	if err := s.SyncPlayerStats(ctx, sourceName, teamIDs); err != nil {
		s.logger.Printf("Player stats sync failed: %v", err)
	}

	if s.audit != nil {
		records := s.metrics.SuccessfulGames + s.metrics.LineupEntries + s.metrics.PlayerLines + s.metrics.TeamLines
		failures := s.metrics.Errors + s.metrics.ValidationErrors
		s.audit.LogIngestionRun(sourceName, records, failures, time.Since(startTime))
	}

	return nil
}

// processGame normalizes, validates and upserts a single scheduled game
func (s *IngestionService) processGame(ctx context.Context, sourceGame *datasource.GameData) error {
	game, err := s.normalizer.NormalizeGame(sourceGame)
	if err != nil {
		return fmt.Errorf("failed to normalize game: %w", err)
	}

	if issues := s.validator.ValidateGame(game); len(issues) > 0 {
		s.metrics.RecordValidationError()
		return fmt.Errorf("game validation failed: %v", issues)
	}

	if s.audit != nil {
		if existing, err := s.repos.Game.GetByID(ctx, game.ID); err == nil && existing.Status != game.Status {
			s.audit.LogGameStatusChange(game.ID, string(existing.Status), string(game.Status))
		}
	}

	if err := s.repos.Game.Upsert(ctx, game); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	s.metrics.RecordGame()
	return nil
}

// storeLineups normalizes, validates and replaces a game's lineup rows
func (s *IngestionService) storeLineups(ctx context.Context, gameID int64, sourceEntries []datasource.LineupEntryData) error {
	entries := make([]*models.LineupEntry, 0, len(sourceEntries))
	for i := range sourceEntries {
		entry, err := s.normalizer.NormalizeLineupEntry(&sourceEntries[i])
		if err != nil {
			s.metrics.RecordValidationError()
			continue
		}
		if issues := s.validator.ValidateLineupEntry(entry); len(issues) > 0 {
			s.metrics.RecordValidationError()
			s.logger.Printf("Lineup entry rejected for game %d: %v", gameID, issues)
			continue
		}
		entries = append(entries, entry)
	}

	byTeam := make(map[int64][]*models.LineupEntry)
	for _, entry := range entries {
		byTeam[entry.TeamID] = append(byTeam[entry.TeamID], entry)
	}
	for teamID, card := range byTeam {
		if issues := s.validator.ValidateLineupDocument(card); len(issues) > 0 {
			metrics.IngestionErrorsTotal.Inc()
			return fmt.Errorf("lineup card invalid for game %d team %d: %v", gameID, teamID, issues)
		}
	}

	if err := s.repos.Lineup.ReplaceForGame(ctx, gameID, entries); err != nil {
		metrics.IngestionErrorsTotal.Inc()
		return fmt.Errorf("failed to store lineups for game %d: %w", gameID, err)
	}

	if s.audit != nil {
		for teamID, card := range byTeam {
			projected := false
			for _, entry := range card {
				if entry.IsProjected {
					projected = true
					break
				}
			}
			s.audit.LogLineupReplacement(gameID, teamID, len(card), projected, "feed")
		}
	}

	s.metrics.RecordLineupEntries(len(entries))
	metrics.RecordIngestedRecords("lineup_entry", len(entries))
	return nil
}

// GetMetrics returns current ingestion metrics
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}

// ResetMetrics resets ingestion metrics
func (s *IngestionService) ResetMetrics() {
	s.metrics.Reset()
}
