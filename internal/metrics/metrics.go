// Package metrics provides the centralized Prometheus metrics registry for
// the prediction pipeline.
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
	ReconcileTransitionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_prophet",
		Name:      "reconcile_transitions_total",
		Help:      "Total injury record transitions applied by reconciliation passes",
	}, []string{"transition"})
	ResolutionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_prophet",
		Name:      "resolution_failures_total",
		Help:      "Total snapshot rows that could not be resolved to a player",
	})
	SnapshotFetchFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_prophet",
		Name:      "snapshot_fetch_failures_total",
		Help:      "Total injury snapshot fetches that failed and aborted a pass",
	})
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_prophet",
		Name:      "predictions_total",
		Help:      "Total margin predictions computed",
	})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_prophet",
		Name:      "recommendations_total",
		Help:      "Total recommendations produced by confidence tier and outcome",
	}, []string{"confidence", "action"})
	OddsFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_prophet",
		Name:      "odds_fetches_total",
		Help:      "Total market line fetches by status",
	}, []string{"status"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_prophet",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker trips on outbound HTTP",
	})
)

// Gauge metrics
var (
	CurrentWeek = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_prophet",
		Name:      "current_week",
		Help:      "Regular-season week the pipeline is currently operating on",
	})
	ActiveInjuries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_prophet",
		Name:      "active_injuries",
		Help:      "Number of current injury records after the last pass",
	})
	StaleInjuryData = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_prophet",
		Name:      "stale_injury_data",
		Help:      "1 when the last injury sync failed and predictions use prior state",
	})
)

// Histogram metrics
var (
	ReconcilePassDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_prophet",
		Name:      "reconcile_pass_duration_seconds",
		Help:      "Duration of reconciliation passes in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_prophet",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of full weekly analysis runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ReconcileTransitionsTotal)
		registry.MustRegister(ResolutionFailuresTotal)
		registry.MustRegister(SnapshotFetchFailuresTotal)
		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(OddsFetchesTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		registry.MustRegister(CurrentWeek)
		registry.MustRegister(ActiveInjuries)
		registry.MustRegister(StaleInjuryData)

		registry.MustRegister(ReconcilePassDuration)
		registry.MustRegister(AnalysisDuration)
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

// RecordTransition records one applied injury record transition.
func RecordTransition(transition string) {
	ReconcileTransitionsTotal.WithLabelValues(transition).Inc()
}

// RecordResolutionFailure records a snapshot row skipped because its player
// could not be resolved.
func RecordResolutionFailure() {
	ResolutionFailuresTotal.Inc()
}

// RecordSnapshotFetchFailure records an aborted pass.
func RecordSnapshotFetchFailure() {
	SnapshotFetchFailuresTotal.Inc()
	StaleInjuryData.Set(1)
}

// RecordPassComplete records a successful pass and clears staleness.
func RecordPassComplete(durationSeconds float64, activeInjuries int) {
	ReconcilePassDuration.Observe(durationSeconds)
	ActiveInjuries.Set(float64(activeInjuries))
	StaleInjuryData.Set(0)
}

// RecordPrediction records a computed margin prediction.
func RecordPrediction() {
	PredictionsTotal.Inc()
}

// RecordRecommendation records a produced recommendation.
// action is "bet" or "pass".
func RecordRecommendation(confidence, action string) {
	RecommendationsTotal.WithLabelValues(confidence, action).Inc()
}

// RecordOddsFetch records a market line fetch outcome.
// status is "success" or "failure".
func RecordOddsFetch(status string) {
	OddsFetchesTotal.WithLabelValues(status).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// UpdateCurrentWeek updates the current-week gauge.
func UpdateCurrentWeek(week int) {
	CurrentWeek.Set(float64(week))
}
