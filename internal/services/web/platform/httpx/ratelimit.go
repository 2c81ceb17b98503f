package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter hands out one token bucket per client address.
type ClientLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
	// trustForwarded keys clients on X-Forwarded-For set by a fronting proxy.
	trustForwarded bool
}

// LimiterOption configures a ClientLimiter.
type LimiterOption func(*ClientLimiter)

// WithForwardedClient keys clients on the address a fronting proxy appended
// to X-Forwarded-For instead of the proxy's own address.
func WithForwardedClient(trust bool) LimiterOption {
	return func(l *ClientLimiter) {
		l.trustForwarded = trust
	}
}

// NewClientLimiter builds a per-client limiter allowing rps requests per
// second with the given burst.
func NewClientLimiter(rps float64, burst int, opts ...LimiterOption) *ClientLimiter {
	if burst <= 0 {
		burst = 1
	}
	l := &ClientLimiter{
		clients: map[string]*clientLimiter{},
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Allow reports whether the client may proceed now.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.clients) >= limiterSweepSize {
		for key, entry := range l.clients {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(l.clients, key)
			}
		}
	}
	entry, ok := l.clients[client]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// RateLimit rejects requests beyond the limiter's budget with 429.
// A nil limiter or a non-positive rate disables limiting.
func RateLimit(limiter *ClientLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil || limiter.limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(limiter.clientAddress(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddress returns the rightmost X-Forwarded-For entry, the one the
// proxy appended, when forwarded headers are trusted.
func (l *ClientLimiter) clientAddress(r *http.Request) string {
	if l.trustForwarded {
		entries := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		for i := len(entries) - 1; i >= 0; i-- {
			if entry := strings.TrimSpace(entries[i]); entry != "" {
				return entry
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
