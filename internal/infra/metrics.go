// README: Prometheus collectors for external calls and pipeline outcomes.
package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ModelRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathplanner_model_requests_total",
			Help: "Model gateway calls by call site and outcome",
		},
		[]string{"call_site", "outcome"},
	)

	ModelRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathplanner_model_request_duration_seconds",
			Help:    "Latency of model gateway calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"call_site"},
	)

	MalformedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathplanner_malformed_responses_total",
			Help: "Model replies that could not be parsed into travel options",
		},
	)

	GeocodeMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathplanner_geocode_misses_total",
			Help: "Currency lookups that fell back to the default symbol",
		},
	)

	SpeechFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathplanner_speech_failures_total",
			Help: "Text-to-speech requests that failed",
		},
	)
)
