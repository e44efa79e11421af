package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for prediction
// and ingestion state changes.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogPredictionStored logs a prediction upsert event.
func (al *AuditLogger) LogPredictionStored(gameID int64, method string, homeWinProb, confidence float64, sampleSize int, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"game_id":          gameID,
		"method":           method,
		"home_win_prob":    homeWinProb,
		"confidence_score": confidence,
		"sample_size":      sampleSize,
		"timestamp":        timestamp.Unix(),
	}).Info("Prediction stored")
}

// LogPredictionOverwrite logs a re-prediction replacing a stored record.
func (al *AuditLogger) LogPredictionOverwrite(gameID int64, oldMethod, newMethod string, oldConfidence, newConfidence float64) {
	al.WithFields(logrus.Fields{
		"game_id":        gameID,
		"old_method":     oldMethod,
		"new_method":     newMethod,
		"old_confidence": oldConfidence,
		"new_confidence": newConfidence,
	}).Info("Prediction overwritten")
}

// LogLineupReplacement logs a lineup document swap.
func (al *AuditLogger) LogLineupReplacement(gameID, teamID int64, entries int, projected bool, source string) {
	al.WithFields(logrus.Fields{
		"game_id":   gameID,
		"team_id":   teamID,
		"entries":   entries,
		"projected": projected,
		"source":    source,
	}).Info("Lineup replaced")
}

// LogGameStatusChange logs a game lifecycle transition.
func (al *AuditLogger) LogGameStatusChange(gameID int64, oldStatus, newStatus string) {
	al.WithFields(logrus.Fields{
		"game_id":    gameID,
		"old_status": oldStatus,
		"new_status": newStatus,
	}).Info("Game status changed")
}

// LogIngestionRun logs the outcome of a scheduled ingestion run.
func (al *AuditLogger) LogIngestionRun(source string, records, failures int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"source":      source,
		"records":     records,
		"failures":    failures,
		"duration_ms": duration.Milliseconds(),
	}).Info("Ingestion run completed")
}
