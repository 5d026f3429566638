// Package pathutil maps request paths onto the fixed set of route labels used
// by HTTP metrics.
package pathutil

import (
	"strings"
)

// OtherRoute labels every path the server does not route.
const OtherRoute = "other"

// exact routes, keyed without trailing slash
var routes = map[string]string{
	"/summarize": "/summarize/",
	"/health":    "/health",
	"/ready":     "/ready",
	"/live":      "/live",
	"/metrics":   "/metrics",
}

// prefix routes serve whole subtrees
var prefixRoutes = []struct {
	prefix string
	label  string
}{
	{prefix: "/swagger/", label: "/swagger/*"},
}

// NormalizePath returns a bounded label for path. Query strings and trailing
// slashes are ignored, and anything unrouted collapses to OtherRoute so that
// scanners cannot blow up label cardinality.
//
//	NormalizePath("/summarize")          // "/summarize/"
//	NormalizePath("/summarize/?x=1")     // "/summarize/"
//	NormalizePath("/swagger/index.html") // "/swagger/*"
//	NormalizePath("/wp-login.php")       // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	for _, p := range prefixRoutes {
		if strings.HasPrefix(path, p.prefix) {
			return p.label
		}
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if label, ok := routes[path]; ok {
		return label
	}
	return OtherRoute
}

// ExpectedCardinality is the number of distinct labels NormalizePath can return.
func ExpectedCardinality() int {
	return len(routes) + len(prefixRoutes) + 1
}
