// Package http serves the summarization API: the summarize endpoint, health
// probes, metrics and the middleware stack around them.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"web-summarizer/internal/handler/http/respond"
)

// HealthResponse is the JSON body of /health.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BreakerStatus exposes a circuit breaker's state.
type BreakerStatus interface {
	Name() string
	State() gobreaker.State
}

// ClientCounter reports how many clients a rate limiter tracks.
type ClientCounter interface {
	Len() int
}

// HealthHandler reports the state of the text analysis resources and the
// optional fetch circuit breaker and rate limiter. Only a failing NLP check
// makes the service unhealthy.
type HealthHandler struct {
	Version     string
	NLP         func() error
	Breaker     BreakerStatus
	RateLimiter ClientCounter
}

// ServeHTTP godoc
// @Summary      Health check
// @Description  Reports NLP resource, circuit breaker and rate limiter status.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{
		"nlp": checkNLP(h.NLP),
	}
	if h.Breaker != nil {
		checks["content_fetch"] = checkBreaker(h.Breaker)
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]interface{}{"active_clients": h.RateLimiter.Len()},
		}
	}

	status, code := "healthy", http.StatusOK
	for _, c := range checks {
		if c.Status == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func checkNLP(check func() error) CheckStatus {
	if check == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if err := check(); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}
	return CheckStatus{Status: "healthy"}
}

// An open breaker means fetches fail fast, which is degraded but not down.
func checkBreaker(b BreakerStatus) CheckStatus {
	state := b.State()
	details := map[string]interface{}{"circuit": b.Name(), "state": state.String()}
	if state == gobreaker.StateOpen {
		return CheckStatus{Status: "degraded", Message: "circuit open", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers readiness probes. It returns 503 until the NLP
// resources are loaded.
type ReadyHandler struct {
	NLP func() error
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.NLP == nil {
		http.Error(w, "nlp resources not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.NLP(); err != nil {
		http.Error(w, "nlp resources not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Debug("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Debug("alive: failed to write response", slog.Any("error", err))
	}
}
