package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

// staleAfter is how long an idle client bucket survives before the cleanup
// pass drops it.
const staleAfter = 10 * time.Minute

type tokenBucket struct {
	tokens   float64
	lastFill time.Time
}

// RateLimiter is a per-client token bucket. Buckets refill continuously at
// rps tokens per second up to burst.
type RateLimiter struct {
	rps   float64
	burst float64

	mu      sync.Mutex
	buckets map[string]*tokenBucket

	now func() time.Time
}

// NewRateLimiter builds a limiter; rps <= 0 disables limiting entirely.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rps,
		burst:   float64(burst),
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
}

// Update replaces the rate and burst at runtime, for configuration
// hot-reload. Existing buckets keep their tokens and refill at the new rate.
func (l *RateLimiter) Update(rps float64, burst int) {
	if burst < 1 {
		burst = 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rps = rps
	l.burst = float64(burst)
}

// Allow consumes one token for the client, reporting whether the request may
// proceed.
func (l *RateLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rps <= 0 {
		return true
	}

	now := l.now()
	b, ok := l.buckets[client]
	if !ok {
		b = &tokenBucket{tokens: l.burst, lastFill: now}
		l.buckets[client] = b
		if len(l.buckets)%1024 == 0 {
			l.cleanupLocked(now)
		}
	}

	b.tokens += now.Sub(b.lastFill).Seconds() * l.rps
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (l *RateLimiter) cleanupLocked(now time.Time) {
	for client, b := range l.buckets {
		if now.Sub(b.lastFill) > staleAfter {
			delete(l.buckets, client)
		}
	}
}

// RateLimit enforces the limiter per client IP. Paths in skip bypass the
// limiter; health and metrics endpoints must stay reachable under load.
func RateLimit(limiter *RateLimiter, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skipped[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		if !limiter.Allow(c.ClientIP()) {
			resp := common.NewErrorResponse(
				errors.ErrCodeTooManyRequests.String(),
				errors.DefaultMessageForCode(errors.ErrCodeTooManyRequests))
			resp.RequestID = GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, resp)
			return
		}
		c.Next()
	}
}
