// Package metrics exposes Prometheus instrumentation for the translation
// service. All collectors are registered on the default registry and served
// through promhttp.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request metrics
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rimay_requests_total",
			Help: "Total number of translation requests by outcome",
		},
		[]string{"outcome"},
	)

	translationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rimay_translation_duration_seconds",
			Help:    "Duration of model translation calls in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
		},
		[]string{"status"},
	)

	translationRequestSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rimay_translation_request_size_bytes",
			Help:    "Size of translation input text in bytes",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	literalHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rimay_literal_hits_total",
			Help: "Total number of requests answered from the alphabet fast path",
		},
	)

	// Model lifecycle metrics
	modelState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rimay_model_state",
			Help: "Current model lifecycle state (1 for the active state, 0 otherwise)",
		},
		[]string{"state"},
	)

	modelLoadAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rimay_model_load_attempts_total",
			Help: "Total number of model load attempts",
		},
	)

	modelLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rimay_model_load_duration_seconds",
			Help:    "Duration of model load attempts in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"status"},
	)
)

var knownStates = []string{"not_ready", "loading", "ready", "error"}

// SetModelState marks the given lifecycle state as active.
func SetModelState(state string) {
	for _, s := range knownStates {
		v := 0.0
		if s == state {
			v = 1.0
		}
		modelState.WithLabelValues(s).Set(v)
	}
}

// RecordModelLoadStart records the start of a model load attempt.
func RecordModelLoadStart() {
	modelLoadAttemptsTotal.Inc()
}

// RecordModelLoadOutcome records the duration and result of a load attempt.
func RecordModelLoadOutcome(duration time.Duration, success bool) {
	modelLoadDuration.WithLabelValues(statusLabel(success)).Observe(duration.Seconds())
}

// RecordRequest records a translation request with its dispatcher outcome
// ("ok", "literal", "invalid", "loading", "model_error", "translation_error").
func RecordRequest(outcome string) {
	requestsTotal.WithLabelValues(outcome).Inc()
}

// RecordLiteralHit records a fast-path hit.
func RecordLiteralHit() {
	literalHitsTotal.Inc()
}

// RecordTranslation records the duration and result of one model call, along
// with the input size.
func RecordTranslation(duration time.Duration, success bool, requestSize int) {
	translationDuration.WithLabelValues(statusLabel(success)).Observe(duration.Seconds())
	translationRequestSize.Observe(float64(requestSize))
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
