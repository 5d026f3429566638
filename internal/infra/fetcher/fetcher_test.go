package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-summarizer/internal/domain/entity"
	"web-summarizer/internal/infra/fetcher"
	"web-summarizer/internal/usecase/fetch"
)

// localConfig allows fetching from httptest servers on 127.0.0.1.
func localConfig() fetcher.Config {
	cfg := fetcher.DefaultConfig()
	cfg.DenyPrivateIPs = false
	return cfg
}

func newFetcher(t *testing.T, cfg fetcher.Config) *fetcher.HTTPFetcher {
	t.Helper()
	f, err := fetcher.New(cfg)
	require.NoError(t, err)
	return f
}

func htmlServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := fetcher.DefaultConfig()
	cfg.Extractor = "mercury"

	_, err := fetcher.New(cfg)
	assert.Error(t, err)
}

func TestFetchContent_Paragraphs(t *testing.T) {
	var userAgent atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	f := newFetcher(t, localConfig())

	text, err := f.FetchContent(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Cats are great. Dogs are great too. Cats and dogs are pets.", text)
	assert.Equal(t, fetcher.DefaultUserAgent, userAgent.Load())
}

func TestFetchContent_Readability(t *testing.T) {
	server := htmlServer(t, `<html><head><title>Story</title></head><body><article>
<h1>Story Title</h1>
<p>The first paragraph of the story carries enough words to be treated as real content by the extractor.</p>
<p>The second paragraph adds more detail so that the article is clearly the main content of the page.</p>
</article></body></html>`)

	cfg := localConfig()
	cfg.Extractor = fetcher.ExtractorReadability
	f := newFetcher(t, cfg)

	text, err := f.FetchContent(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "first paragraph of the story")
}

func TestFetchContent_DecodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "Café au lait." in Latin-1
		_, _ = w.Write([]byte("<p>Caf\xe9 au lait.</p>"))
	}))
	defer server.Close()

	f := newFetcher(t, localConfig())

	text, err := f.FetchContent(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Café au lait.", text)
}

func TestFetchContent_NoParagraphs(t *testing.T) {
	server := htmlServer(t, "<html><body><h1>Only a heading</h1></body></html>")
	f := newFetcher(t, localConfig())

	text, err := f.FetchContent(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestFetchContent_HTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"not found", http.StatusNotFound, "client error '404 Not Found'"},
		{"server error", http.StatusInternalServerError, "server error '500 Internal Server Error'"},
		{"forbidden", http.StatusForbidden, "client error '403 Forbidden'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			f := newFetcher(t, localConfig())
			_, err := f.FetchContent(context.Background(), server.URL)
			require.Error(t, err)

			assert.Equal(t, entity.KindFetch, entity.KindOf(err))
			var statusErr *fetch.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFetchContent_InvalidURL(t *testing.T) {
	f := newFetcher(t, localConfig())

	for _, u := range []string{"not-a-valid-url", "ftp://example.com/file", "file:///etc/passwd", "http://"} {
		_, err := f.FetchContent(context.Background(), u)
		assert.True(t, errors.Is(err, fetch.ErrInvalidURL), "url %q: %v", u, err)
		assert.Equal(t, entity.KindFetch, entity.KindOf(err))
	}
}

func TestFetchContent_PrivateIPDenied(t *testing.T) {
	server := htmlServer(t, articleHTML)
	f := newFetcher(t, fetcher.DefaultConfig())

	_, err := f.FetchContent(context.Background(), server.URL)
	assert.True(t, errors.Is(err, fetch.ErrPrivateIP), "got %v", err)
	assert.Equal(t, entity.KindFetch, entity.KindOf(err))
}

func TestFetchContent_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	cfg := localConfig()
	cfg.Timeout = 100 * time.Millisecond
	f := newFetcher(t, cfg)

	_, err := f.FetchContent(context.Background(), server.URL)
	assert.True(t, errors.Is(err, fetch.ErrTimeout), "got %v", err)
}

func TestFetchContent_ContextCanceled(t *testing.T) {
	server := htmlServer(t, articleHTML)
	f := newFetcher(t, localConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FetchContent(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestFetchContent_BodyTooLarge(t *testing.T) {
	server := htmlServer(t, "<p>"+strings.Repeat("x", 4096)+"</p>")

	cfg := localConfig()
	cfg.MaxBodySize = 1024
	f := newFetcher(t, cfg)

	_, err := f.FetchContent(context.Background(), server.URL)
	assert.True(t, errors.Is(err, fetch.ErrBodyTooLarge), "got %v", err)
}

func TestFetchContent_Redirects(t *testing.T) {
	final := htmlServer(t, "<p>Reached after redirect.</p>")
	initial := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusFound)
	}))
	defer initial.Close()

	f := newFetcher(t, localConfig())

	text, err := f.FetchContent(context.Background(), initial.URL)
	require.NoError(t, err)
	assert.Equal(t, "Reached after redirect.", text)
}

func TestFetchContent_TooManyRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.String(), http.StatusFound)
	}))
	defer server.Close()

	cfg := localConfig()
	cfg.MaxRedirects = 2
	f := newFetcher(t, cfg)

	_, err := f.FetchContent(context.Background(), server.URL)
	assert.True(t, errors.Is(err, fetch.ErrTooManyRedirects), "got %v", err)
}

func TestFetchContent_CircuitBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := localConfig()
	cfg.CircuitBreaker = true
	f := newFetcher(t, cfg)

	for i := 0; i < 10; i++ {
		_, _ = f.FetchContent(context.Background(), server.URL)
	}
	require.Equal(t, int32(10), hits.Load())

	_, err := f.FetchContent(context.Background(), server.URL)
	assert.True(t, errors.Is(err, fetch.ErrCircuitOpen), "got %v", err)
	assert.Equal(t, entity.KindFetch, entity.KindOf(err))
	assert.Equal(t, int32(10), hits.Load(), "open circuit must not reach the server")
}
