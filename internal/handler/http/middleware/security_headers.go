package middleware

import (
	"net/http"
	"sort"
	"strings"

	"web-summarizer/pkg/security/csp"
)

// SecurityHeadersConfig toggles the Content-Security-Policy header.
type SecurityHeadersConfig struct {
	// CSPEnabled sends a CSP on every response. Default: true
	CSPEnabled bool `yaml:"csp_enabled"`
	// CSPReportOnly sends Content-Security-Policy-Report-Only instead.
	CSPReportOnly bool `yaml:"csp_report_only"`
}

// DefaultSecurityHeadersConfig enforces the CSP.
func DefaultSecurityHeadersConfig() SecurityHeadersConfig {
	return SecurityHeadersConfig{CSPEnabled: true}
}

type pathPolicy struct {
	prefix string
	header string
	value  string
}

// SecurityHeaders sets X-Content-Type-Options, X-Frame-Options and
// Referrer-Policy on every response, plus a CSP chosen by the longest
// matching path prefix in pathPolicies, falling back to def.
func SecurityHeaders(cfg SecurityHeadersConfig, def csp.Policy, pathPolicies map[string]csp.Policy) func(http.Handler) http.Handler {
	render := func(prefix string, p csp.Policy) pathPolicy {
		p = p.ReportOnly(cfg.CSPReportOnly)
		return pathPolicy{prefix: prefix, header: p.HeaderName(), value: p.String()}
	}

	// Header values are rendered once; longest prefix first.
	policies := make([]pathPolicy, 0, len(pathPolicies))
	for prefix, p := range pathPolicies {
		policies = append(policies, render(prefix, p))
	}
	sort.Slice(policies, func(i, j int) bool {
		return len(policies[i].prefix) > len(policies[j].prefix)
	})
	fallback := render("", def)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")

			if cfg.CSPEnabled {
				selected := fallback
				for _, p := range policies {
					if strings.HasPrefix(r.URL.Path, p.prefix) {
						selected = p
						break
					}
				}
				if selected.value != "" {
					h.Set(selected.header, selected.value)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
