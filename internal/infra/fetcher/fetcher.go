package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/net/html/charset"

	"web-summarizer/internal/domain/entity"
	"web-summarizer/internal/resilience/circuitbreaker"
	"web-summarizer/internal/usecase/fetch"
)

// HTTPFetcher implements fetch.ContentFetcher over net/http.
//
// Features:
//   - SSRF prevention for the requested URL and every redirect hop
//   - size limiting while reading the body
//   - per-request timeout
//   - charset detection from the Content-Type header and <meta> tags
//   - optional circuit breaker
//
// HTTPFetcher is safe for concurrent use.
type HTTPFetcher struct {
	client    *http.Client
	breaker   *circuitbreaker.CircuitBreaker
	extractor Extractor
	config    Config
}

// New validates cfg and builds an HTTPFetcher.
func New(cfg Config) (*HTTPFetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fetcher config: %w", err)
	}

	extractor, err := NewExtractor(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	f := &HTTPFetcher{
		extractor: extractor,
		config:    cfg,
	}
	if cfg.CircuitBreaker {
		f.breaker = circuitbreaker.New(circuitbreaker.ContentFetchConfig())
	}

	f.client = &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.config.MaxRedirects {
				return fmt.Errorf("%w: stopped after %d redirects", fetch.ErrTooManyRedirects, f.config.MaxRedirects)
			}
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}

	return f, nil
}

// Config returns the configuration the fetcher was built with.
func (f *HTTPFetcher) Config() Config {
	return f.config
}

// Breaker returns the circuit breaker guarding fetches, or nil when disabled.
func (f *HTTPFetcher) Breaker() *circuitbreaker.CircuitBreaker {
	return f.breaker
}

// FetchContent implements fetch.ContentFetcher. Errors are classified as
// entity.KindExtraction when the HTML could not be turned into text and as
// entity.KindFetch otherwise.
func (f *HTTPFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	const op = "fetch content"

	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", entity.NewError(entity.KindFetch, op, err)
	}

	var (
		text string
		err  error
	)
	if f.breaker != nil {
		var result interface{}
		result, err = f.breaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("%w: %v", fetch.ErrCircuitOpen, err)
		}
		if err == nil {
			text = result.(string)
		}
	} else {
		text, err = f.doFetch(ctx, urlStr)
	}

	if err != nil {
		kind := entity.KindFetch
		if errors.Is(err, fetch.ErrExtractionFailed) {
			kind = entity.KindExtraction
		}
		return "", entity.NewError(kind, op, err)
	}
	return text, nil
}

func (f *HTTPFetcher) doFetch(ctx context.Context, urlStr string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", fetch.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", f.transportError(ctx, reqCtx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &fetch.StatusError{
			URL:        resp.Request.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: reading body exceeded %v", fetch.ErrTimeout, f.config.Timeout)
		}
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response exceeds limit of %d bytes",
			fetch.ErrBodyTooLarge, f.config.MaxBodySize)
	}

	html, err := decodeBody(body, resp.Header.Get("Content-Type"))
	if err != nil {
		slog.Debug("charset detection failed, assuming utf-8",
			slog.String("url", urlStr),
			slog.String("error", err.Error()))
		html = body
	}

	return f.extractor.Extract(html, resp.Request.URL)
}

func (f *HTTPFetcher) transportError(parent, reqCtx context.Context, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, fetch.ErrTooManyRedirects) ||
		errors.Is(urlErr.Err, fetch.ErrPrivateIP) || errors.Is(urlErr.Err, fetch.ErrInvalidURL)) {
		return urlErr.Err
	}

	if parent.Err() == context.Canceled {
		return fmt.Errorf("request canceled: %w", parent.Err())
	}

	var netErr net.Error
	if reqCtx.Err() == context.DeadlineExceeded || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: request exceeded %v", fetch.ErrTimeout, f.config.Timeout)
	}

	return fmt.Errorf("HTTP request failed: %w", err)
}

// decodeBody converts body to UTF-8 using the declared or sniffed charset.
func decodeBody(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
