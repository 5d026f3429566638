// Package observability groups the logging, metrics and tracing support of
// the summarizer service.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus metrics for summarization, page fetching, rate
//     limiting and the circuit breaker
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
//
// Example usage:
//
//	logger := logging.New(logging.Options{Level: "info"})
//	slog.SetDefault(logger)
//
//	_, shutdown, err := tracing.Init(tracing.Config{Enabled: true, ServiceName: "web-summarizer"})
//	defer shutdown(ctx)
package observability
