package summarize

import (
	"time"

	"web-summarizer/internal/domain/entity"
	"web-summarizer/internal/observability/metrics"
)

// MetricsRecorder receives the measurements of one summarization run.
// It lets tests observe the service without a Prometheus registry.
type MetricsRecorder interface {
	// RecordFetch records a page fetch and, on success, the extracted size.
	RecordFetch(duration time.Duration, size int, err error)

	// RecordRank records the time spent tokenizing and scoring.
	RecordRank(duration time.Duration)

	// RecordOutcome records the end of a run.
	RecordOutcome(duration time.Duration, summary entity.Summary, documentRunes int, err error)
}

// PrometheusMetrics implements MetricsRecorder with the process-wide
// Prometheus collectors.
type PrometheusMetrics struct{}

// RecordFetch implements MetricsRecorder.
func (PrometheusMetrics) RecordFetch(duration time.Duration, size int, err error) {
	if err != nil {
		metrics.RecordContentFetchFailed(duration)
		return
	}
	metrics.RecordContentFetchSuccess(duration, size)
}

// RecordRank implements MetricsRecorder.
func (PrometheusMetrics) RecordRank(duration time.Duration) {
	metrics.RecordStageDuration(metrics.StageRank, duration)
}

// RecordOutcome implements MetricsRecorder.
func (PrometheusMetrics) RecordOutcome(duration time.Duration, summary entity.Summary, documentRunes int, err error) {
	if err != nil {
		metrics.RecordSummarizeFailure(duration, entity.KindOf(err).String())
		return
	}
	metrics.RecordSummarizeSuccess(duration, len(summary.Sentences), documentRunes)
}

// NoopMetrics discards all measurements.
type NoopMetrics struct{}

// RecordFetch implements MetricsRecorder.
func (NoopMetrics) RecordFetch(time.Duration, int, error) {}

// RecordRank implements MetricsRecorder.
func (NoopMetrics) RecordRank(time.Duration) {}

// RecordOutcome implements MetricsRecorder.
func (NoopMetrics) RecordOutcome(time.Duration, entity.Summary, int, error) {}
