package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy applied to every route.
type CORSConfig struct {
	// AllowedMethods is sent on preflight responses.
	AllowedMethods []string

	// AllowedHeaders is sent on preflight responses. When empty the
	// preflight's Access-Control-Request-Headers is echoed instead.
	AllowedHeaders []string

	// ExposedHeaders lists response headers browsers may read.
	ExposedHeaders []string

	// AllowCredentials adds Access-Control-Allow-Credentials: true.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	// Validator decides which origins receive CORS headers.
	Validator OriginValidator

	// Logger receives policy violations and preflight traces. May be nil.
	Logger CORSLogger
}

// CORS returns middleware enforcing config.
//
// Behavior:
//   - No Origin header: passed through untouched.
//   - Origin not allowed: logged, passed through without CORS headers so the
//     browser blocks the response.
//   - Origin allowed: the origin is echoed back (never "*", which browsers
//     reject alongside credentials).
//   - Preflight (OPTIONS with Access-Control-Request-Method): answered with
//     204 without calling next.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	exposed := strings.Join(config.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Origin")

			if config.Validator == nil || !config.Validator.IsAllowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed", map[string]interface{}{
						"origin":      origin,
						"path":        r.URL.Path,
						"method":      r.Method,
						"remote_addr": r.RemoteAddr,
					})
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				if headers != "" {
					w.Header().Set("Access-Control-Allow-Headers", headers)
				} else if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
					w.Header().Add("Vary", "Access-Control-Request-Headers")
					w.Header().Set("Access-Control-Allow-Headers", requested)
				}
				w.Header().Set("Access-Control-Max-Age", maxAge)

				if config.Logger != nil {
					config.Logger.Debug("CORS: preflight request", map[string]interface{}{
						"origin":            origin,
						"requested_method":  r.Header.Get("Access-Control-Request-Method"),
						"requested_headers": r.Header.Get("Access-Control-Request-Headers"),
					})
				}

				w.WriteHeader(http.StatusNoContent)
				return
			}

			if exposed != "" {
				w.Header().Set("Access-Control-Expose-Headers", exposed)
			}
			next.ServeHTTP(w, r)
		})
	}
}
