package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"web-summarizer/pkg/security/csp"
)

func serveSecurityHeaders(t *testing.T, cfg SecurityHeadersConfig, path string) http.Header {
	t.Helper()
	h := SecurityHeaders(cfg, csp.APIPolicy(), map[string]csp.Policy{
		"/swagger/":       csp.SwaggerUIPolicy(),
		"/swagger/embed/": csp.New().DefaultSrc("'self'"),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Header()
}

func TestSecurityHeaders_PolicySelection(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/summarize/", want: csp.APIPolicy().String()},
		{path: "/health", want: csp.APIPolicy().String()},
		{path: "/swagger/index.html", want: csp.SwaggerUIPolicy().String()},
		{path: "/swagger/embed/x", want: "default-src 'self'"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h := serveSecurityHeaders(t, DefaultSecurityHeadersConfig(), tt.path)

			assert.Equal(t, tt.want, h.Get(csp.HeaderEnforce))
			assert.Empty(t, h.Get(csp.HeaderReportOnly))
			assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
			assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
		})
	}
}

func TestSecurityHeaders_ReportOnly(t *testing.T) {
	h := serveSecurityHeaders(t, SecurityHeadersConfig{CSPEnabled: true, CSPReportOnly: true}, "/summarize/")

	assert.Empty(t, h.Get(csp.HeaderEnforce))
	assert.Equal(t, csp.APIPolicy().String(), h.Get(csp.HeaderReportOnly))
}

func TestSecurityHeaders_CSPDisabled(t *testing.T) {
	h := serveSecurityHeaders(t, SecurityHeadersConfig{}, "/summarize/")

	assert.Empty(t, h.Get(csp.HeaderEnforce))
	assert.Empty(t, h.Get(csp.HeaderReportOnly))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
}
