package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for engine evaluations.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogTierSelection logs which evaluation tier was chosen for a game.
func (pl *PredictionLogger) LogTierSelection(gameID int64, method string, completenessScore float64, homeBatters, awayBatters int) {
	pl.WithFields(logrus.Fields{
		"game_id":            gameID,
		"method":             method,
		"completeness_score": completenessScore,
		"home_batters":       homeBatters,
		"away_batters":       awayBatters,
	}).Info("Evaluation tier selected")
}

// LogSimulationRun logs a completed Monte Carlo run.
func (pl *PredictionLogger) LogSimulationRun(gameID int64, iterations, workers int, homeWinProb, meanTotalRuns, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"game_id":         gameID,
		"iterations":      iterations,
		"workers":         workers,
		"home_win_prob":   homeWinProb,
		"mean_total_runs": meanTotalRuns,
		"duration_ms":     durationMs,
	}).Info("Simulation run completed")
}

// LogFallback logs a drop to a statistical fallback tier.
func (pl *PredictionLogger) LogFallback(gameID int64, method, reason string, completenessScore float64) {
	pl.WithFields(logrus.Fields{
		"game_id":            gameID,
		"method":             method,
		"reason":             reason,
		"completeness_score": completenessScore,
	}).Warn("Falling back to statistical model")
}

// LogDefaultedBatters logs batters evaluated with league-average rates.
func (pl *PredictionLogger) LogDefaultedBatters(gameID int64, defaulted, total int) {
	pl.WithFields(logrus.Fields{
		"game_id":   gameID,
		"defaulted": defaulted,
		"total":     total,
	}).Debug("Batters defaulted to positional averages")
}

// LogBatchSummary logs the outcome of a batch prediction sweep.
func (pl *PredictionLogger) LogBatchSummary(processed, failed int, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"processed":   processed,
		"failed":      failed,
		"duration_ms": durationMs,
	}).Info("Batch prediction completed")
}
