package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/diamond-sim/internal/metrics"
)

// GameFailure records one game's prediction error within a batch.
type GameFailure struct {
	GameID int64  `json:"game_id"`
	Error  string `json:"error"`
}

// BatchReport summarizes a batch run. Per-game errors are collected
// here; the batch entry point itself never fails for a single game.
type BatchReport struct {
	Processed int           `json:"processed"`
	Errors    int           `json:"errors"`
	Failures  []GameFailure `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Message returns the user-visible batch summary.
func (r BatchReport) Message() string {
	return fmt.Sprintf("predicted %d games, %d errors in %s", r.Processed, r.Errors, r.Duration.Round(time.Millisecond))
}

// PredictBatch processes games sequentially, catching and recording
// per-game errors without aborting the remaining batch. The engine
// performs no retries; retry policy belongs to the orchestration
// layer.
func (e *Engine) PredictBatch(ctx context.Context, gameIDs []int64, opts PredictOptions) BatchReport {
	started := time.Now()
	report := BatchReport{}

	for _, gameID := range gameIDs {
		if _, err := e.PredictGame(ctx, gameID, opts); err != nil {
			report.Errors++
			report.Failures = append(report.Failures, GameFailure{GameID: gameID, Error: err.Error()})
			metrics.BatchGameErrorsTotal.Inc()
			e.logger.WithFields(logrus.Fields{
				"game_id": gameID,
				"error":   err,
			}).Warn("Skipping game after prediction failure")
			continue
		}
		report.Processed++
	}

	report.Duration = time.Since(started)
	e.plog.LogBatchSummary(report.Processed, report.Errors, float64(report.Duration.Microseconds())/1000.0)

	return report
}
