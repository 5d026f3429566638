package middleware

import (
	"log/slog"
)

// CORSLogger receives CORS policy events.
type CORSLogger interface {
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// SlogAdapter forwards CORS events to a slog.Logger.
type SlogAdapter struct {
	Logger *slog.Logger
}

// Warn implements CORSLogger.
func (a *SlogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.Logger.Warn(msg, toAttrs(fields)...)
}

// Debug implements CORSLogger.
func (a *SlogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.Logger.Debug(msg, toAttrs(fields)...)
}

func toAttrs(fields map[string]interface{}) []any {
	args := make([]any, 0, len(fields))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return args
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

// Warn implements CORSLogger.
func (NoOpLogger) Warn(string, map[string]interface{}) {}

// Debug implements CORSLogger.
func (NoOpLogger) Debug(string, map[string]interface{}) {}
