package entity

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// ValidateURL checks that a submitted URL is well-formed and uses HTTP/HTTPS.
// Reachability and private-network checks happen in the fetcher, where the
// host is actually resolved.
func ValidateURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "field required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "invalid URL: " + err.Error()}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}

// ParseSentenceCount parses an optional sentence count form value.
// An empty value yields def. Values must lie in [1, max].
func ParseSentenceCount(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: "sentence_count", Message: "must be an integer"}
	}
	if n < 1 {
		return 0, &ValidationError{Field: "sentence_count", Message: "must be at least 1"}
	}
	if max > 0 && n > max {
		return 0, &ValidationError{Field: "sentence_count", Message: fmt.Sprintf("must be at most %d", max)}
	}
	return n, nil
}
