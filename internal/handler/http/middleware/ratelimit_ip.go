package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"web-summarizer/internal/handler/http/respond"
	"web-summarizer/internal/observability/metrics"
)

// IPRateLimiterConfig configures per-client token buckets.
type IPRateLimiterConfig struct {
	// Enabled toggles the limiter. A disabled limiter passes every request.
	Enabled bool `yaml:"enabled"`

	// RPS is the sustained request rate allowed per IP.
	RPS float64 `yaml:"rps"`

	// Burst is the bucket size.
	Burst int `yaml:"burst"`

	// IdleTTL drops buckets of clients not seen for this long.
	IdleTTL time.Duration `yaml:"idle_ttl"`

	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers are
	// honoured.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// DefaultIPRateLimiterConfig returns a disabled limiter allowing 1 rps with
// a burst of 5 once enabled.
func DefaultIPRateLimiterConfig() IPRateLimiterConfig {
	return IPRateLimiterConfig{
		Enabled: false,
		RPS:     1,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one golang.org/x/time/rate limiter per client IP.
type IPRateLimiter struct {
	config    IPRateLimiterConfig
	extractor IPExtractor
	now       func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewIPRateLimiter creates a limiter. Non-positive RPS, Burst or IdleTTL
// fall back to the defaults.
func NewIPRateLimiter(config IPRateLimiterConfig, extractor IPExtractor) *IPRateLimiter {
	def := DefaultIPRateLimiterConfig()
	if config.RPS <= 0 {
		config.RPS = def.RPS
	}
	if config.Burst <= 0 {
		config.Burst = def.Burst
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = def.IdleTTL
	}
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	return &IPRateLimiter{
		config:    config,
		extractor: extractor,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
	}
}

// Allow consumes one token for ip. It returns whether the request may
// proceed and, when denied, how long until a token is available.
func (rl *IPRateLimiter) Allow(ip string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.config.RPS), rl.config.Burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	r := v.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, delay
}

// Len returns the number of tracked clients.
func (rl *IPRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Cleanup removes clients idle for longer than IdleTTL and returns how many
// were dropped.
func (rl *IPRateLimiter) Cleanup() int {
	cutoff := rl.now().Add(-rl.config.IdleTTL)

	rl.mu.Lock()
	removed := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	active := len(rl.visitors)
	rl.mu.Unlock()

	metrics.SetRateLimitActiveClients(active)
	return removed
}

// Run calls Cleanup every interval until ctx is cancelled.
func (rl *IPRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				slog.Debug("rate limit cleanup completed", slog.Int("removed", n))
			}
		}
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header. Requests whose IP cannot be determined are let through.
func (rl *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip, err := rl.extractor.ExtractIP(r)
			if err != nil {
				slog.Warn("rate limiter: failed to extract IP, allowing request",
					slog.String("remote_addr", r.RemoteAddr),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			allowed, retryAfter := rl.Allow(ip)
			metrics.RecordRateLimitDecision(allowed)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Burst))

			if !allowed {
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				slog.Warn("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
					slog.Int("retry_after_seconds", secs))
				respond.Detail(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
