package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/auth"
	"github.com/flowquote/flowquote/internal/business"
	"github.com/flowquote/flowquote/internal/http/respond"
)

// RateLimiter hands out one token bucket per client IP.
type RateLimiter struct {
	perSecond rate.Limit
	burst     int
	ttl       time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		perSecond: rate.Limit(perSecond),
		burst:     burst,
		ttl:       5 * time.Minute,
		buckets:   make(map[string]*bucket),
	}
}

// Run evicts idle buckets until ctx is done.
func (l *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.evict(now)
		}
	}
}

func (l *RateLimiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ip, b := range l.buckets {
		if now.Sub(b.seen) > l.ttl {
			delete(l.buckets, ip)
		}
	}
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.perSecond, l.burst)}
		l.buckets[ip] = b
	}

	b.seen = time.Now()

	return b.lim.Allow()
}

// Middleware limits writes. Reads pass through untouched.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		if !l.allow(clientIP(r)) {
			respond.Message(w, http.StatusTooManyRequests, "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP expects middleware.RealIP to have already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		host = r.RemoteAddr
	}

	if host == "" {
		return "unknown"
	}

	return host
}

type BusinessLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*business.Business, error)
}

// RequirePaid rejects authenticated businesses whose payment has not been
// confirmed. It must run after auth.Authenticate.
func RequirePaid(businesses BusinessLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.BusinessFromContext(r.Context())
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			b, err := businesses.Get(r.Context(), id)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					respond.Message(w, http.StatusUnauthorized, "Unauthorized")
					return
				}

				respond.Error(w, r, err)

				return
			}

			if !b.Paid() {
				respond.Message(w, respond.StatusPaymentRequired, "payment required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
