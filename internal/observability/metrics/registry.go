// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Summarization metrics track the end-to-end pipeline.
var (
	// SummarizeRequestsTotal counts summarization runs by outcome and error kind.
	// error_kind is "none" for successful runs.
	SummarizeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarize_requests_total",
			Help: "Total number of summarization runs",
		},
		[]string{"outcome", "error_kind"}, // outcome: success, failure
	)

	// SummarizeStageDuration measures each pipeline stage in seconds.
	SummarizeStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarize_stage_duration_seconds",
			Help:    "Time spent in each summarization stage",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage"}, // stage: fetch, rank, total
	)

	// SummarySentencesSelected records how many sentences a summary holds.
	SummarySentencesSelected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summary_sentences_selected",
			Help:    "Number of sentences selected per summary",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 50},
		},
	)

	// DocumentLengthRunes records the length of summarized documents.
	DocumentLengthRunes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarize_document_length_runes",
			Help:    "Length of summarized documents in characters (Unicode runes)",
			Buckets: prometheus.ExponentialBuckets(100, 4, 9), // 100 .. ~6.5M
		},
	)
)

// Content fetch metrics track page downloads.
var (
	// ContentFetchAttemptsTotal counts content fetch attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ContentFetchSize measures extracted text size in bytes
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "content_fetch_size_bytes",
			Help: "Extracted page text size in bytes",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800, 409600, 819200,
				1638400, 3276800, 6553600, 10485760, // up to 10MB
			},
		},
	)
)

// NLPResourcesLoaded is 1 once tokenizers and stopwords are loaded.
var NLPResourcesLoaded = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "nlp_resources_loaded",
		Help: "Whether text analysis resources are loaded (1) or not (0)",
	},
)

// Rate limiting metrics.
var (
	// RateLimitDecisionsTotal counts per-IP limiter decisions.
	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_decisions_total",
			Help: "Total number of rate limit decisions",
		},
		[]string{"decision"}, // decision: allowed, denied
	)

	// RateLimitActiveClients tracks how many client IPs hold a limiter.
	RateLimitActiveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limit_active_clients",
			Help: "Number of client IPs currently tracked by the rate limiter",
		},
	)
)

// CircuitBreakerState exposes the content fetch breaker state
// (0=closed, 1=half-open, 2=open).
var CircuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)
