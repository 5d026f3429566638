// Package config assembles the service configuration from an optional YAML
// file and environment variables.
//
// Precedence, lowest first: built-in defaults, the YAML file, environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"web-summarizer/internal/handler/http/middleware"
	"web-summarizer/internal/infra/fetcher"
	"web-summarizer/internal/infra/nlp"
	"web-summarizer/internal/observability/logging"
	"web-summarizer/internal/observability/tracing"
	envconfig "web-summarizer/pkg/config"
)

// Sentence count limits for the summarize endpoint.
const (
	DefaultSentenceCount = 3
	MaxSentenceCountCap  = 50
)

// DefaultVersion is reported when neither the config file nor VERSION sets
// one.
const DefaultVersion = "dev"

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// RequestTimeout bounds a whole request including the page fetch.
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// MaxBodyBytes caps the submitted form body.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// MaxURILength rejects longer request URIs with 414.
	MaxURILength int `yaml:"max_uri_length"`
}

// SummaryConfig holds summarizer defaults.
type SummaryConfig struct {
	// DefaultSentences is used when a request omits sentence_count.
	DefaultSentences int `yaml:"default_sentences"`
	// MaxSentences is the largest sentence_count a request may ask for.
	MaxSentences int `yaml:"max_sentences"`
}

// Config is the full service configuration.
type Config struct {
	HTTP      HTTPConfig                       `yaml:"http"`
	Summary   SummaryConfig                    `yaml:"summary"`
	Fetcher   fetcher.Config                   `yaml:"fetcher"`
	CORS      middleware.CORSOptions           `yaml:"cors"`
	RateLimit middleware.IPRateLimiterConfig   `yaml:"rate_limit"`
	Security  middleware.SecurityHeadersConfig `yaml:"security"`
	Tracing   tracing.Config                   `yaml:"tracing"`
	NLP       nlp.Config                       `yaml:"nlp"`
	Log       logging.Options                  `yaml:"log"`
	Version   string                           `yaml:"version"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			RequestTimeout:    60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      1 << 20,
			MaxURILength:      8192,
		},
		Summary: SummaryConfig{
			DefaultSentences: DefaultSentenceCount,
			MaxSentences:     MaxSentenceCountCap,
		},
		Fetcher:   fetcher.DefaultConfig(),
		CORS:      middleware.DefaultCORSOptions(),
		RateLimit: middleware.DefaultIPRateLimiterConfig(),
		Security:  middleware.DefaultSecurityHeadersConfig(),
		Tracing: tracing.Config{
			ServiceName: "web-summarizer",
			SampleRatio: 1,
			Version:     DefaultVersion,
		},
		NLP:     nlp.Config{Language: nlp.LanguageEnglish},
		Log:     logging.Options{Level: "info", Format: "json"},
		Version: DefaultVersion,
	}
}

// Load builds the configuration. path names an optional YAML file; an
// empty path skips it. Environment variables are applied last and the
// result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.HTTP.Addr = envconfig.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	if port := envconfig.GetEnvString("PORT", ""); port != "" && os.Getenv("HTTP_ADDR") == "" {
		c.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}

	var errs []error
	setDuration := func(key string, dst *time.Duration) {
		if v, ok, err := envconfig.LookupEnvDuration(key); err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok, err := envconfig.LookupEnvInt(key); err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok, err := envconfig.LookupEnvBool(key); err != nil {
			errs = append(errs, err)
		} else if ok {
			*dst = v
		}
	}

	setDuration("HTTP_READ_HEADER_TIMEOUT", &c.HTTP.ReadHeaderTimeout)
	setDuration("HTTP_REQUEST_TIMEOUT", &c.HTTP.RequestTimeout)
	setDuration("HTTP_SHUTDOWN_TIMEOUT", &c.HTTP.ShutdownTimeout)
	if v, ok, err := envconfig.LookupEnvInt64("HTTP_MAX_BODY_BYTES"); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.HTTP.MaxBodyBytes = v
	}
	setInt("HTTP_MAX_URI_LENGTH", &c.HTTP.MaxURILength)

	setInt("SUMMARY_SENTENCE_COUNT", &c.Summary.DefaultSentences)
	setInt("SUMMARY_MAX_SENTENCE_COUNT", &c.Summary.MaxSentences)

	c.CORS.AllowedOrigins = envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.CORS.AllowedMethods = envconfig.GetEnvStringList("CORS_ALLOWED_METHODS", c.CORS.AllowedMethods)
	c.CORS.AllowedHeaders = envconfig.GetEnvStringList("CORS_ALLOWED_HEADERS", c.CORS.AllowedHeaders)
	setBool("CORS_ALLOW_CREDENTIALS", &c.CORS.AllowCredentials)
	setInt("CORS_MAX_AGE", &c.CORS.MaxAge)

	setBool("RATELIMIT_ENABLED", &c.RateLimit.Enabled)
	if v, ok, err := envconfig.LookupEnvFloat("RATELIMIT_RPS"); err != nil {
		errs = append(errs, err)
	} else if ok {
		c.RateLimit.RPS = v
	}
	setInt("RATELIMIT_BURST", &c.RateLimit.Burst)
	setDuration("RATELIMIT_IDLE_TTL", &c.RateLimit.IdleTTL)
	c.RateLimit.TrustedProxies = envconfig.GetEnvStringList("RATELIMIT_TRUSTED_PROXIES", c.RateLimit.TrustedProxies)

	setBool("CSP_ENABLED", &c.Security.CSPEnabled)
	setBool("CSP_REPORT_ONLY", &c.Security.CSPReportOnly)

	setBool("TRACING_ENABLED", &c.Tracing.Enabled)
	c.Tracing.ServiceName = envconfig.GetEnvString("OTEL_SERVICE_NAME", c.Tracing.ServiceName)

	c.NLP.Language = envconfig.GetEnvString("NLP_LANGUAGE", c.NLP.Language)
	c.NLP.StopwordsFile = envconfig.GetEnvString("NLP_STOPWORDS_FILE", c.NLP.StopwordsFile)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envconfig.GetEnvString("LOG_FORMAT", c.Log.Format)

	c.Version = envconfig.GetEnvString("VERSION", c.Version)
	c.Tracing.Version = c.Version

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	fc, err := fetcher.LoadConfigFromEnv(c.Fetcher)
	if err != nil {
		return fmt.Errorf("fetcher: %w", err)
	}
	c.Fetcher = fc
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, errors.New("http.addr must not be empty"))
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.ReadHeaderTimeout); err != nil {
		errs = append(errs, fmt.Errorf("http.read_header_timeout: %w", err))
	}
	if err := envconfig.ValidateDurationRange(c.HTTP.RequestTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("http.request_timeout: %w", err))
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("http.shutdown_timeout: %w", err))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}
	if c.HTTP.MaxURILength <= 0 {
		errs = append(errs, fmt.Errorf("http.max_uri_length must be positive, got %d", c.HTTP.MaxURILength))
	}

	if err := envconfig.ValidateIntRange(c.Summary.MaxSentences, 1, MaxSentenceCountCap); err != nil {
		errs = append(errs, fmt.Errorf("summary.max_sentences: %w", err))
	} else if err := envconfig.ValidateIntRange(c.Summary.DefaultSentences, 1, c.Summary.MaxSentences); err != nil {
		errs = append(errs, fmt.Errorf("summary.default_sentences: %w", err))
	}

	if err := c.Fetcher.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("fetcher: %w", err))
	}

	if _, err := middleware.NewCORSConfig(c.CORS, middleware.NoOpLogger{}); err != nil {
		errs = append(errs, fmt.Errorf("cors: %w", err))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.rps must be positive, got %v", c.RateLimit.RPS))
		}
		if c.RateLimit.Burst < 1 {
			errs = append(errs, fmt.Errorf("rate_limit.burst must be at least 1, got %d", c.RateLimit.Burst))
		}
		if _, err := middleware.ParseTrustedProxies(c.RateLimit.TrustedProxies); err != nil {
			errs = append(errs, fmt.Errorf("rate_limit.trusted_proxies: %w", err))
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or text, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
