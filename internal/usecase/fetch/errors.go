// Package fetch defines the contract between the summarize service and the
// component that downloads pages, together with the errors it reports.
package fetch

import (
	"errors"
	"fmt"
)

// Sentinel errors for content fetching.
var (
	// ErrInvalidURL indicates the URL is malformed or uses a scheme other
	// than http or https.
	//
	// Example:
	//   - "not-a-url" → ErrInvalidURL
	//   - "file:///etc/passwd" → ErrInvalidURL
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a loopback, private or
	// link-local address (SSRF prevention).
	//
	// Example:
	//   - "http://localhost" → ErrPrivateIP
	//   - "http://10.0.0.1" → ErrPrivateIP
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrCircuitOpen indicates fetching is suspended after repeated failures.
	ErrCircuitOpen = errors.New("content fetching temporarily suspended")

	// ErrExtractionFailed indicates the HTML could not be turned into text.
	ErrExtractionFailed = errors.New("content extraction failed")

	// ErrReadabilityFailed indicates the Readability extractor found no
	// article. It wraps ErrExtractionFailed.
	ErrReadabilityFailed = fmt.Errorf("readability: %w", ErrExtractionFailed)
)

// StatusError reports a response with a non-2xx status code.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	class := "unexpected status"
	switch {
	case e.StatusCode >= 500:
		class = "server error"
	case e.StatusCode >= 400:
		class = "client error"
	case e.StatusCode >= 300:
		class = "redirect"
	}
	return fmt.Sprintf("%s '%s' for url '%s'", class, e.Status, e.URL)
}
