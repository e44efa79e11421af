package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics about data ingestion
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalGames       int
	SuccessfulGames  int
	LineupEntries    int
	PlayerLines      int
	TeamLines        int
	Duplicates       int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalGames = 0
	m.SuccessfulGames = 0
	m.LineupEntries = 0
	m.PlayerLines = 0
	m.TeamLines = 0
	m.Duplicates = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordGame increments successful game count
func (m *IngestionMetrics) RecordGame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulGames++
}

// RecordLineupEntries adds to the lineup entry count
func (m *IngestionMetrics) RecordLineupEntries(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LineupEntries += n
}

// RecordPlayerLine increments the player stat line count
func (m *IngestionMetrics) RecordPlayerLine() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlayerLines++
}

// RecordTeamLine increments the team stat line count
func (m *IngestionMetrics) RecordTeamLine() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeamLines++
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.TotalGames > 0 {
		successRate = float64(m.SuccessfulGames) / float64(m.TotalGames) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Games=%d, Successful=%d (%.1f%%), LineupEntries=%d, PlayerLines=%d, TeamLines=%d, Duplicates=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.TotalGames,
		m.SuccessfulGames,
		successRate,
		m.LineupEntries,
		m.PlayerLines,
		m.TeamLines,
		m.Duplicates,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
