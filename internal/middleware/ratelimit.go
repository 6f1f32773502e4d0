package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a client's bucket is kept after its last request.
const DefaultIdleTTL = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client IP. Buckets unused for the
// idle TTL are dropped, so a returning client starts with a full burst.
type IPRateLimiter struct {
	mu   sync.Mutex
	ips  *cache.Cache
	r    rate.Limit
	b    int
	idle time.Duration
}

// NewIPRateLimiter returns a limiter allowing r requests per second with
// bursts of b for each client. idle <= 0 selects DefaultIdleTTL.
func NewIPRateLimiter(r rate.Limit, b int, idle time.Duration) *IPRateLimiter {
	if idle <= 0 {
		idle = DefaultIdleTTL
	}
	return &IPRateLimiter{
		ips:  cache.New(idle, idle),
		r:    r,
		b:    b,
		idle: idle,
	}
}

// Limiter returns the bucket for ip, creating it on first use. Each call
// restarts the bucket's idle timer.
func (l *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	var lim *rate.Limiter
	if v, ok := l.ips.Get(ip); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(l.r, l.b)
	}
	l.ips.Set(ip, lim, l.idle)
	return lim
}

// RateLimit returns a handler that rejects requests with 429 once the
// client's bucket is empty. A nil limiter disables limiting.
func RateLimit(limiter *IPRateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Limiter(clientIP(r)).Allow() {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
