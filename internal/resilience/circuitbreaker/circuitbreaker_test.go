package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
	if cb.IsOpen() {
		t.Error("expected new circuit breaker to be closed")
	}
}

func TestCircuitBreaker_Execute(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "page text", nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "page text" {
		t.Errorf("expected result='page text', got %v", result)
	}

	wantErr := errors.New("boom")
	_, err = cb.Execute(func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}

	counts := cb.Counts()
	if counts.Requests != 2 || counts.TotalFailures != 1 {
		t.Errorf("expected 2 requests and 1 failure, got %+v", counts)
	}
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("failure")
		})
	}

	if cb.IsOpen() {
		t.Error("expected circuit to stay closed below MinRequests")
	}
}

func TestCircuitBreaker_TripsAndRecovers(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("failure")
		})
	}
	if !cb.IsOpen() {
		t.Fatalf("expected circuit to be open, got %v", cb.State())
	}

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
	if called {
		t.Error("function must not run while the circuit is open")
	}

	time.Sleep(100 * time.Millisecond)
	if cb.State() != gobreaker.StateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %v", cb.State())
	}

	if _, err := cb.Execute(func() (interface{}, error) { return "ok", nil }); err != nil {
		t.Fatalf("expected success in half-open state, got %v", err)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected closed after successful probe, got %v", cb.State())
	}
}

func TestPresetConfigs(t *testing.T) {
	def := DefaultConfig("x")
	if def.Name != "x" || def.MinRequests == 0 || def.FailureThreshold <= 0 {
		t.Errorf("unexpected default config: %+v", def)
	}

	cf := ContentFetchConfig()
	if cf.Name != "content-fetch" {
		t.Errorf("expected name='content-fetch', got %q", cf.Name)
	}
	if cf.FailureThreshold != 0.8 || cf.MinRequests != 10 {
		t.Errorf("unexpected content fetch config: %+v", cf)
	}
}
