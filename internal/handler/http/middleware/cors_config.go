package middleware

import (
	"fmt"
	"net/url"
	"strings"
)

// Defaults used when the corresponding option is left empty.
var (
	DefaultCORSMethods        = []string{"GET", "POST", "OPTIONS"}
	DefaultCORSExposedHeaders = []string{"X-Request-ID", "X-Trace-Id", "Retry-After"}
)

// DefaultCORSMaxAge caches preflight results for 24 hours.
const DefaultCORSMaxAge = 86400

// CORSOptions is the user facing CORS configuration.
type CORSOptions struct {
	// AllowedOrigins lists exact origins. Empty or containing "*" allows any
	// origin.
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	// AllowedHeaders lists request headers a preflight may ask for. Empty
	// echoes whatever the preflight requests.
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

// DefaultCORSOptions allows any origin with credentials.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowCredentials: true,
		MaxAge:           DefaultCORSMaxAge,
	}
}

var validCORSMethods = map[string]bool{
	"GET": true, "HEAD": true, "POST": true, "PUT": true,
	"DELETE": true, "PATCH": true, "OPTIONS": true,
}

// NewCORSConfig validates opts and builds the middleware configuration.
// logger may be nil.
func NewCORSConfig(opts CORSOptions, logger CORSLogger) (CORSConfig, error) {
	validator, err := newOriginValidator(opts.AllowedOrigins)
	if err != nil {
		return CORSConfig{}, err
	}

	methods := DefaultCORSMethods
	if len(opts.AllowedMethods) > 0 {
		methods = make([]string, 0, len(opts.AllowedMethods))
		for _, m := range opts.AllowedMethods {
			m = strings.ToUpper(strings.TrimSpace(m))
			if m == "" {
				continue
			}
			if !validCORSMethods[m] {
				return CORSConfig{}, fmt.Errorf("invalid CORS method '%s'", m)
			}
			methods = append(methods, m)
		}
	}

	var headers []string
	for _, h := range opts.AllowedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, h)
		}
	}

	if opts.MaxAge < 0 {
		return CORSConfig{}, fmt.Errorf("CORS max age must be non-negative, got: %d", opts.MaxAge)
	}

	return CORSConfig{
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		ExposedHeaders:   DefaultCORSExposedHeaders,
		AllowCredentials: opts.AllowCredentials,
		MaxAge:           opts.MaxAge,
		Validator:        validator,
		Logger:           logger,
	}, nil
}

func newOriginValidator(origins []string) (OriginValidator, error) {
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			return WildcardValidator{}, nil
		}
		if err := validateOrigin(o); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, o)
	}
	if len(cleaned) == 0 {
		return WildcardValidator{}, nil
	}
	return NewWhitelistValidator(cleaned), nil
}

func validateOrigin(o string) error {
	u, err := url.Parse(o)
	if err != nil {
		return fmt.Errorf("invalid origin URL '%s': %w", o, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", o)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", o)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin must not include path, query or fragment: %s", o)
	}
	return nil
}
