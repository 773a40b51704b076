package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		if !rl.Allow(1) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if rl.Allow(1) {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentWorkspaces(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.Allow(1)
	}
	if rl.Allow(1) {
		t.Error("Workspace 1 should be rate limited")
	}

	for i := 0; i < 3; i++ {
		if !rl.Allow(2) {
			t.Errorf("Workspace 2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_EvictStale(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	rl.Allow(1)
	rl.evictStale(time.Now().Add(LimiterTTL + time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.limiters) != 0 {
		t.Errorf("Expected stale limiter to be evicted, %d remain", len(rl.limiters))
	}
}

func TestRateLimitMiddleware_SkipsUnscopedRequests(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitMiddleware_LimitsWorkspace(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 2)
	defer rl.Stop()

	handler := RateLimitMiddleware(rl)(func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/forecast/simulation", nil)
		req = req.WithContext(WithWorkspaceID(req.Context(), 9))
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		codes = append(codes, rec.Code)
		last = rec
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected [200 200 429], got %v", codes)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header on limited response")
	}
	if last.Header().Get("X-RateLimit-Limit") != "1" {
		t.Errorf("Expected X-RateLimit-Limit 1, got %q", last.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 1)
	rl.Stop()
	rl.Stop()
}
