package http

import (
	"net/http"

	"web-summarizer/internal/handler/http/respond"
)

// DefaultMaxURILength bounds the request target.
const DefaultMaxURILength = 8192

// InputValidation rejects oversized request targets with 414 before any
// parsing happens.
func InputValidation(maxURILength int) func(http.Handler) http.Handler {
	if maxURILength <= 0 {
		maxURILength = DefaultMaxURILength
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.RequestURI) > maxURILength || len(r.URL.RawQuery) > maxURILength {
				respond.Detail(w, http.StatusRequestURITooLong, "request URI too long")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
