package csp

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_String(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   string
	}{
		{name: "empty", policy: New(), want: ""},
		{
			name:   "insertion order",
			policy: New().ScriptSrc("'self'", "https://cdn.example.com").DefaultSrc("'none'"),
			want:   "script-src 'self' https://cdn.example.com; default-src 'none'",
		},
		{
			name:   "replace keeps position",
			policy: New().DefaultSrc("'self'").ImgSrc("data:").DefaultSrc("'none'"),
			want:   "default-src 'none'; img-src data:",
		},
		{
			name:   "directive without sources skipped",
			policy: New().DefaultSrc("'none'").ObjectSrc(),
			want:   "default-src 'none'",
		},
		{
			name:   "api",
			policy: APIPolicy(),
			want:   "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.String())
		})
	}
}

func TestPolicy_Immutable(t *testing.T) {
	base := New().DefaultSrc("'self'")
	derived := base.DefaultSrc("'none'").ImgSrc("data:")
	reporting := base.ReportOnly(true)

	assert.Equal(t, "default-src 'self'", base.String())
	assert.Equal(t, "default-src 'none'; img-src data:", derived.String())
	assert.Equal(t, HeaderEnforce, base.HeaderName())
	assert.Equal(t, HeaderReportOnly, reporting.HeaderName())
}

func TestPolicy_SourcesCopied(t *testing.T) {
	sources := []string{"'self'"}
	p := New().ScriptSrc(sources...)
	sources[0] = "'unsafe-eval'"

	assert.Equal(t, "script-src 'self'", p.String())
}

func TestSwaggerUIPolicy(t *testing.T) {
	p := SwaggerUIPolicy()

	assert.False(t, p.IsZero())
	assert.Contains(t, p.String(), "script-src 'self' 'unsafe-inline'")
	assert.Contains(t, p.String(), "frame-ancestors 'none'")
	assert.NotContains(t, p.String(), "unsafe-eval")
}

func TestPolicy_ConcurrentUse(t *testing.T) {
	base := APIPolicy()
	want := base.String()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = base.ReportOnly(true).ConnectSrc("'self'").String()
		}()
	}
	wg.Wait()

	assert.Equal(t, want, base.String())
}
