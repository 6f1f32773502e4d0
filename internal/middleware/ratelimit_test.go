package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tphummel/it_inventory/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(addr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/pcs", nil)
	r.RemoteAddr = addr
	return r
}

func TestRateLimit_AllowsBurstThenRejects(t *testing.T) {
	// A near-zero refill rate makes the burst the whole allowance.
	h := middleware.RateLimit(middleware.NewIPRateLimiter(0.0001, 2, 0), okHandler)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:5000"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:5001"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over limit: got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("body: got %q, want JSON error", rec.Body.String())
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	h := middleware.RateLimit(middleware.NewIPRateLimiter(0.0001, 1, 0), okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.1:5000"))
	if rec.Code != http.StatusOK {
		t.Fatalf("first client: got %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("10.0.0.2:5000"))
	if rec.Code != http.StatusOK {
		t.Errorf("second client should have its own bucket, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	h := middleware.RateLimit(nil, okHandler)
	for i := 0; i < 100; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("10.0.0.1:5000"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want 200", i+1, rec.Code)
		}
	}
}

func TestIPRateLimiter_ReusesBucket(t *testing.T) {
	l := middleware.NewIPRateLimiter(1, 1, 0)
	if l.Limiter("a") != l.Limiter("a") {
		t.Error("expected the same limiter for the same IP")
	}
	if l.Limiter("a") == l.Limiter("b") {
		t.Error("expected different limiters for different IPs")
	}
}

func TestIPRateLimiter_DropsIdleBuckets(t *testing.T) {
	l := middleware.NewIPRateLimiter(0.0001, 1, 20*time.Millisecond)

	first := l.Limiter("10.0.0.1")
	if !first.Allow() {
		t.Fatal("first request should be allowed")
	}
	if l.Limiter("10.0.0.1").Allow() {
		t.Fatal("bucket should be empty while the client is active")
	}

	time.Sleep(60 * time.Millisecond)

	again := l.Limiter("10.0.0.1")
	if again == first {
		t.Fatal("expected the idle bucket to be dropped")
	}
	if !again.Allow() {
		t.Error("a fresh bucket should allow a request")
	}
}
