// Package ml provides Prometheus metrics for classifier operations.
package ml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassifierPredictionsTotal tracks total classifier predictions
	ClassifierPredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_predictions_total",
			Help: "Total number of win-probability predictions made",
		},
		[]string{"cache_hit"},
	)

	// ClassifierPredictionLatency tracks prediction latency
	ClassifierPredictionLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classifier_prediction_latency_seconds",
			Help:    "Win-probability prediction latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ClassifierErrorsTotal tracks classifier errors by kind
	ClassifierErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_errors_total",
			Help: "Total classifier request errors by kind",
		},
		[]string{"kind"},
	)

	// ClassifierCacheHitRatio tracks the prediction cache hit ratio
	ClassifierCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "classifier_cache_hit_ratio",
			Help: "Ratio of prediction cache hits to total lookups",
		},
	)
)
