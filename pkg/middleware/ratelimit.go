package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
)

const (
	clientIdle    = 10 * time.Minute
	sweepInterval = time.Minute
)

// Limiter keeps one token bucket per client IP.
type Limiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	proxies   Proxies
	lastSweep time.Time
	now       func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a Limiter allowing perMinute requests per client with
// the given burst. Clients are identified by their connection address unless
// it belongs to one of proxies. Clients idle for longer than ten minutes are
// forgotten.
func NewLimiter(perMinute, burst int, proxies Proxies) *Limiter {
	return &Limiter{
		limiters: make(map[string]*clientLimiter),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		proxies:  proxies,
		now:      time.Now,
	}
}

// Allow reports whether a request from key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	c, ok := l.limiters[key]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

// ClientIP returns the key under which r is limited.
func (l *Limiter) ClientIP(r *http.Request) string {
	return l.proxies.ClientIP(r)
}

func (l *Limiter) sweep(now time.Time) {
	for k, c := range l.limiters {
		if now.Sub(c.lastSeen) > clientIdle {
			delete(l.limiters, k)
		}
	}
	l.lastSweep = now
}

// RateLimit returns middleware rejecting requests over the client's budget
// with 429 Too Many Requests.
func RateLimit(l *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(l.ClientIP(r)) {
				w.Header().Set("Retry-After", "60")
				handlers.WriteError(w, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
