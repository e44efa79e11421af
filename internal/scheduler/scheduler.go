package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yourusername/diamond-sim/internal/service"
)

// SweepFunc runs one prediction pass over the upcoming slate. The
// engine wiring lives in the caller; the scheduler only owns timing.
type SweepFunc func(ctx context.Context) error

// Scheduler manages the recurring ingestion and prediction jobs
type Scheduler struct {
	cron            *cron.Cron
	ingestionSvc    *service.IngestionService
	logger          *log.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(ingestionSvc *service.IngestionService, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		ingestionSvc:    ingestionSvc,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleNightlySync schedules the full game-day data refresh:
// schedule, lineups, weather and stats for today's slate.
func (s *Scheduler) ScheduleNightlySync(cronExpression string, sourceName string) error {
	return s.addJob("nightly sync", cronExpression, 2*time.Hour, func(ctx context.Context) {
		day := time.Now().UTC().Truncate(24 * time.Hour)
		s.logger.Printf("Starting nightly sync from %s for %s", sourceName, day.Format("2006-01-02"))

		if err := s.ingestionSvc.SyncGameDay(ctx, sourceName, day); err != nil {
			s.logger.Printf("Error during nightly sync: %v", err)
			return
		}
		s.logger.Printf("Nightly sync completed: %s", s.ingestionSvc.GetMetrics().String())
	})
}

// SchedulePredictionSweep schedules a recurring prediction pass over
// the upcoming slate, refreshing stored predictions as lineups firm up.
func (s *Scheduler) SchedulePredictionSweep(cronExpression string, sweep SweepFunc) error {
	return s.addJob("prediction sweep", cronExpression, time.Hour, func(ctx context.Context) {
		s.logger.Printf("Starting scheduled prediction sweep")
		if err := sweep(ctx); err != nil {
			s.logger.Printf("Error during prediction sweep: %v", err)
		}
	})
}

// addJob registers a cron entry that runs the job under a deadline.
// Jobs cannot be added once the scheduler has started.
func (s *Scheduler) addJob(name, cronExpression string, timeout time.Duration, run func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule %s while scheduler is running", name)
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled %s job with cron expression: %s", name, cronExpression)

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Printf("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Printf("Scheduler stop timed out after %v", s.gracefulTimeout)
	}
	s.isRunning = false
	s.logger.Printf("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}
