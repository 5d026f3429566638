package fetch

import (
	"context"
)

// ContentFetcher downloads a web page and returns its text.
//
// Implementations MUST:
//   - reject non-http(s) URLs and, when configured, non-public targets (SSRF)
//   - validate every redirect target
//   - bound response size and request duration
//
// Example usage:
//
//	text, err := fetcher.FetchContent(ctx, "https://example.com/article")
//	if err != nil {
//	    return err
//	}
type ContentFetcher interface {
	// FetchContent fetches url and extracts its text.
	//
	// Errors wrap one of the sentinels below where one applies:
	//   - ErrInvalidURL: malformed URL or unsupported scheme
	//   - ErrPrivateIP: target resolves to a non-public address
	//   - ErrTooManyRedirects: redirect chain exceeds the configured maximum
	//   - ErrBodyTooLarge: response body exceeds the size limit
	//   - ErrTimeout: request timed out
	//   - ErrCircuitOpen: too many recent failures
	//   - ErrExtractionFailed: text extraction failed
	//   - ErrReadabilityFailed: Readability found no article
	//   - *StatusError: the server answered with a non-2xx status
	//
	// A page without any extractable text yields "" and no error.
	FetchContent(ctx context.Context, url string) (string, error)
}
