// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

type directive struct {
	name    string
	sources []string
}

// Policy is an immutable CSP. Every setter returns a modified copy, so a
// Policy can be shared between goroutines and reused as a base.
//
//	p := csp.New().DefaultSrc("'none'").FrameAncestors("'none'")
//	p.String() // "default-src 'none'; frame-ancestors 'none'"
type Policy struct {
	directives []directive
	reportOnly bool
}

// New returns an empty policy.
func New() Policy {
	return Policy{}
}

// Set replaces or appends a directive. Directives render in the order they
// were first set.
func (p Policy) Set(name string, sources ...string) Policy {
	out := Policy{
		directives: make([]directive, len(p.directives), len(p.directives)+1),
		reportOnly: p.reportOnly,
	}
	copy(out.directives, p.directives)

	d := directive{name: name, sources: append([]string(nil), sources...)}
	for i := range out.directives {
		if out.directives[i].name == name {
			out.directives[i] = d
			return out
		}
	}
	out.directives = append(out.directives, d)
	return out
}

// Directive shorthands.
func (p Policy) DefaultSrc(sources ...string) Policy { return p.Set("default-src", sources...) }
func (p Policy) ScriptSrc(sources ...string) Policy { return p.Set("script-src", sources...) }
func (p Policy) StyleSrc(sources ...string) Policy { return p.Set("style-src", sources...) }
func (p Policy) ImgSrc(sources ...string) Policy { return p.Set("img-src", sources...) }
func (p Policy) FontSrc(sources ...string) Policy { return p.Set("font-src", sources...) }
func (p Policy) ConnectSrc(sources ...string) Policy { return p.Set("connect-src", sources...) }
func (p Policy) FrameAncestors(sources ...string) Policy { return p.Set("frame-ancestors", sources...) }
func (p Policy) FormAction(sources ...string) Policy { return p.Set("form-action", sources...) }
func (p Policy) BaseURI(sources ...string) Policy { return p.Set("base-uri", sources...) }
func (p Policy) ObjectSrc(sources ...string) Policy { return p.Set("object-src", sources...) }

// ReportOnly switches the policy between enforcing and reporting.
func (p Policy) ReportOnly(enabled bool) Policy {
	p.directives = append([]directive(nil), p.directives...)
	p.reportOnly = enabled
	return p
}

// IsZero reports whether the policy has no directives.
func (p Policy) IsZero() bool {
	return len(p.directives) == 0
}

// String renders the header value. Directives without sources are skipped.
func (p Policy) String() string {
	parts := make([]string, 0, len(p.directives))
	for _, d := range p.directives {
		if len(d.sources) == 0 {
			continue
		}
		parts = append(parts, d.name+" "+strings.Join(d.sources, " "))
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the header the policy should be sent in.
func (p Policy) HeaderName() string {
	if p.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// APIPolicy forbids loading anything. It suits JSON and plain text
// responses that are never rendered as documents.
func APIPolicy() Policy {
	return New().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}

// SwaggerUIPolicy allows what the bundled Swagger UI needs: inline scripts
// and styles, data: images and fetching the OpenAPI document from the same origin.
func SwaggerUIPolicy() Policy {
	return New().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}
