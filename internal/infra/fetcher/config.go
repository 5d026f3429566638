package fetcher

import (
	"fmt"
	"strings"
	"time"

	"web-summarizer/pkg/config"
)

// Extractor names accepted by Config.Extractor.
const (
	// ExtractorParagraphs joins the text of every <p> element.
	ExtractorParagraphs = "paragraphs"
	// ExtractorReadability runs Mozilla Readability over the page.
	ExtractorReadability = "readability"
)

// DefaultUserAgent identifies the summarizer to the sites it fetches.
const DefaultUserAgent = "WebSummarizerBot/1.0"

// Config controls how pages are fetched and turned into text.
//
// Security settings:
//   - DenyPrivateIPs: blocks loopback, private and link-local targets (SSRF)
//   - MaxBodySize: caps how much of a response is read
//   - MaxRedirects: caps redirect chains; every hop is validated
//   - Timeout: caps a single fetch
type Config struct {
	// Timeout is the maximum duration of one fetch including redirects.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// MaxBodySize is the maximum response body size in bytes. It is enforced
	// while reading, not from the Content-Length header.
	// Default: 10485760 (10MB)
	MaxBodySize int64 `yaml:"max_body_size"`

	// MaxRedirects is the maximum number of redirects to follow.
	// Default: 5
	MaxRedirects int `yaml:"max_redirects"`

	// DenyPrivateIPs rejects URLs that resolve to non-public addresses.
	// Should always be true in production.
	// Default: true
	DenyPrivateIPs bool `yaml:"deny_private_ips"`

	// Extractor selects how text is pulled out of the HTML.
	// Default: "paragraphs"
	Extractor string `yaml:"extractor"`

	// UserAgent is sent with every request.
	// Default: DefaultUserAgent
	UserAgent string `yaml:"user_agent"`

	// CircuitBreaker routes fetches through a circuit breaker that opens
	// after repeated failures.
	// Default: false
	CircuitBreaker bool `yaml:"circuit_breaker"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		Extractor:      ExtractorParagraphs,
		UserAgent:      DefaultUserAgent,
		CircuitBreaker: false,
	}
}

// Validate checks the configuration for unsafe or unusable values.
//
// Validation rules:
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
//   - Extractor: "paragraphs" or "readability"
//   - UserAgent: not empty
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	switch c.Extractor {
	case ExtractorParagraphs, ExtractorReadability:
	default:
		return fmt.Errorf("extractor must be %q or %q, got %q", ExtractorParagraphs, ExtractorReadability, c.Extractor)
	}

	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("user agent must not be empty")
	}

	return nil
}

// LoadConfigFromEnv overrides base with CONTENT_FETCH_* environment
// variables and validates the result. A malformed value is an error.
//
// Environment variables:
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g. "10s"
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer in bytes
//   - CONTENT_FETCH_MAX_REDIRECTS: integer
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false"
//   - CONTENT_FETCH_EXTRACTOR: "paragraphs" or "readability"
//   - CONTENT_FETCH_USER_AGENT: string
//   - CONTENT_FETCH_CIRCUIT_BREAKER: "true" or "false"
func LoadConfigFromEnv(base Config) (Config, error) {
	cfg := base

	if v, ok, err := config.LookupEnvDuration("CONTENT_FETCH_TIMEOUT"); err != nil {
		return cfg, err
	} else if ok {
		cfg.Timeout = v
	}

	if v, ok, err := config.LookupEnvInt64("CONTENT_FETCH_MAX_BODY_SIZE"); err != nil {
		return cfg, err
	} else if ok {
		cfg.MaxBodySize = v
	}

	if v, ok, err := config.LookupEnvInt("CONTENT_FETCH_MAX_REDIRECTS"); err != nil {
		return cfg, err
	} else if ok {
		cfg.MaxRedirects = v
	}

	if v, ok, err := config.LookupEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS"); err != nil {
		return cfg, err
	} else if ok {
		cfg.DenyPrivateIPs = v
	}

	if val := config.GetEnvString("CONTENT_FETCH_EXTRACTOR", ""); val != "" {
		cfg.Extractor = strings.ToLower(strings.TrimSpace(val))
	}

	cfg.UserAgent = config.GetEnvString("CONTENT_FETCH_USER_AGENT", cfg.UserAgent)

	if v, ok, err := config.LookupEnvBool("CONTENT_FETCH_CIRCUIT_BREAKER"); err != nil {
		return cfg, err
	} else if ok {
		cfg.CircuitBreaker = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
