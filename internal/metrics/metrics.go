// Package metrics provides the centralized Prometheus registry for the
// prediction engine and its ingestion collaborators.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diamond_sim",
		Name:      "predictions_total",
		Help:      "Total number of predictions stored, by method",
	}, []string{"method"})
	TierSelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diamond_sim",
		Name:      "tier_selections_total",
		Help:      "Total number of tier selections, by tier",
	}, []string{"tier"})
	PredictionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_sim",
		Name:      "prediction_errors_total",
		Help:      "Total number of failed prediction evaluations",
	})
	BatchGameErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_sim",
		Name:      "batch_game_errors_total",
		Help:      "Total number of games skipped inside batches",
	})
	IngestionRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "diamond_sim",
		Name:      "ingestion_records_total",
		Help:      "Total number of records ingested, by entity",
	}, []string{"entity"})
	IngestionErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_sim",
		Name:      "ingestion_errors_total",
		Help:      "Total number of ingestion failures",
	})
	LineupStreamEventsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "diamond_sim",
		Name:      "lineup_stream_events_total",
		Help:      "Total number of lineup events received on the stream",
	})
)

// Gauge metrics
var (
	DataCompletenessScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "diamond_sim",
		Name:      "data_completeness_score",
		Help:      "Completeness score of the most recently assessed game",
	})
	SnapshotCacheItems = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "diamond_sim",
		Name:      "snapshot_cache_items",
		Help:      "Number of entries in the snapshot service cache",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "diamond_sim",
		Name:      "prediction_duration_seconds",
		Help:      "Wall-clock duration of one game prediction in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	FeedRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "diamond_sim",
		Name:      "feed_request_latency_seconds",
		Help:      "Latency of sports feed requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(TierSelectionsTotal)
		registry.MustRegister(PredictionErrorsTotal)
		registry.MustRegister(BatchGameErrorsTotal)
		registry.MustRegister(IngestionRecordsTotal)
		registry.MustRegister(IngestionErrorsTotal)
		registry.MustRegister(LineupStreamEventsTotal)

		// Register gauge metrics
		registry.MustRegister(DataCompletenessScore)
		registry.MustRegister(SnapshotCacheItems)

		// Register histogram metrics
		registry.MustRegister(PredictionDuration)
		registry.MustRegister(FeedRequestLatency)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a stored prediction and its duration.
func RecordPrediction(method string, durationSeconds float64) {
	PredictionsTotal.WithLabelValues(method).Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordIngestedRecords records a batch of ingested rows for an entity.
func RecordIngestedRecords(entity string, count int) {
	IngestionRecordsTotal.WithLabelValues(entity).Add(float64(count))
}
