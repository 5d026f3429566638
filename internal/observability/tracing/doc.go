// Package tracing provides OpenTelemetry tracing for the summarizer.
//
// Init installs an SDK tracer provider when tracing is enabled; otherwise the
// global no-op provider stays in place. Middleware starts a server span per
// HTTP request and the summarize service adds child spans per stage.
//
// Example usage:
//
//	_, shutdown, err := tracing.Init(tracing.Config{Enabled: true})
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = shutdown(context.Background()) }()
//
//	handler := tracing.Middleware(mux)
package tracing
