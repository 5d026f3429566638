// Package config reads typed values from environment variables.
//
// The GetEnv* helpers never fail: a malformed value is logged and the
// default is used. The LookupEnv* helpers report malformed values as errors
// for callers that must fail fast at startup.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the variable or defaultValue when unset or empty.
func GetEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt parses an integer variable.
//
//	port := GetEnvInt("PORT", 8080)
func GetEnvInt(key string, defaultValue int) int {
	v, ok, err := LookupEnvInt(key)
	if err != nil {
		warnInvalid(key, "integer", defaultValue, err)
		return defaultValue
	}
	if !ok {
		return defaultValue
	}
	return v
}

// GetEnvBool accepts the forms understood by strconv.ParseBool.
func GetEnvBool(key string, defaultValue bool) bool {
	v, ok, err := LookupEnvBool(key)
	if err != nil {
		warnInvalid(key, "boolean", defaultValue, err)
		return defaultValue
	}
	if !ok {
		return defaultValue
	}
	return v
}

// GetEnvDuration parses a time.ParseDuration string such as "30s" or "1m30s".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok, err := LookupEnvDuration(key)
	if err != nil {
		warnInvalid(key, "duration", defaultValue.String(), err)
		return defaultValue
	}
	if !ok {
		return defaultValue
	}
	return v
}

// GetEnvStringList splits a comma-separated variable, trimming blanks.
//
//	// TRUSTED_PROXIES="10.0.0.0/8, 172.16.0.0/12"
//	proxies := GetEnvStringList("TRUSTED_PROXIES", nil)
//	// ["10.0.0.0/8", "172.16.0.0/12"]
func GetEnvStringList(key string, defaultValue []string) []string {
	if list, ok := LookupEnvStringList(key); ok {
		return list
	}
	return defaultValue
}

// LookupEnvInt parses an integer variable. ok is false when it is unset.
func LookupEnvInt(key string) (value int, ok bool, err error) {
	raw, ok := lookup(key)
	if !ok {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return value, true, nil
}

// LookupEnvInt64 parses a 64-bit integer variable.
func LookupEnvInt64(key string) (value int64, ok bool, err error) {
	raw, ok := lookup(key)
	if !ok {
		return 0, false, nil
	}
	value, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s: %q is not an integer", key, raw)
	}
	return value, true, nil
}

// LookupEnvFloat parses a floating point variable.
func LookupEnvFloat(key string) (value float64, ok bool, err error) {
	raw, ok := lookup(key)
	if !ok {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s: %q is not a number", key, raw)
	}
	return value, true, nil
}

// LookupEnvBool parses a boolean variable.
func LookupEnvBool(key string) (value bool, ok bool, err error) {
	raw, ok := lookup(key)
	if !ok {
		return false, false, nil
	}
	value, err = strconv.ParseBool(raw)
	if err != nil {
		return false, true, fmt.Errorf("invalid %s: %q is not a boolean", key, raw)
	}
	return value, true, nil
}

// LookupEnvDuration parses a duration variable.
func LookupEnvDuration(key string) (value time.Duration, ok bool, err error) {
	raw, ok := lookup(key)
	if !ok {
		return 0, false, nil
	}
	value, err = time.ParseDuration(raw)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s: %q (expected format: '10s', '1m')", key, raw)
	}
	return value, true, nil
}

// LookupEnvStringList splits a comma-separated variable. ok is false when
// the variable is unset or holds only separators.
func LookupEnvStringList(key string) ([]string, bool) {
	raw, ok := lookup(key)
	if !ok {
		return nil, false
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func lookup(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func warnInvalid(key, kind string, def any, err error) {
	slog.Warn("invalid "+kind+" value for environment variable, using default",
		slog.String("key", key),
		slog.Any("default", def),
		slog.String("error", err.Error()))
}
