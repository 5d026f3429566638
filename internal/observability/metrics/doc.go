// Package metrics provides Prometheus metrics for the summarization pipeline.
//
// HTTP request metrics live with the HTTP handlers; this package covers:
//   - summarization runs (outcome, error kind, stage durations)
//   - summary and document sizes
//   - page fetches
//   - text analysis resource readiness
//   - rate limiter decisions and circuit breaker state
//
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	summary, err := summarizer.Summarize(text, 3)
//	metrics.RecordStageDuration(metrics.StageRank, time.Since(start))
package metrics
