package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyFunc derives the rate-limiting bucket key for a request.
type KeyFunc func(*gin.Context) string

// KeyByUserOrIP buckets authenticated requests per user and everything else
// per client IP. Session middleware must run first for the user key to apply.
func KeyByUserOrIP(c *gin.Context) string {
	if uid, ok := c.Get("userID"); ok {
		if s, ok := uid.(string); ok && s != "" {
			return "u:" + s
		}
	}
	return "ip:" + c.ClientIP()
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter enforces a token-bucket limit per key. Stale buckets are
// garbage-collected after ttl of inactivity. Requests flagged as idempotent
// replays bypass the limiter so a retry is never punished twice.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	rps   rate.Limit
	burst int
	ttl   time.Duration
	key   KeyFunc

	stop chan struct{}
	once sync.Once
}

// NewRateLimiter builds a limiter with rps sustained requests per second and
// the given burst per key. A background sweeper evicts idle buckets.
func NewRateLimiter(rps float64, burst int, ttl time.Duration, key KeyFunc) *RateLimiter {
	if key == nil {
		key = KeyByUserOrIP
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
		key:      key,
		stop:     make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Close stops the background sweeper.
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.ttl)
			rl.mu.Lock()
			for k, v := range rl.visitors {
				if v.lastSeen.Before(cutoff) {
					delete(rl.visitors, k)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Handler returns the Gin middleware enforcing the limit.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}
		if !rl.limiterFor(rl.key(c)).Allow() {
			rid, _ := c.Get(requestIDKey)
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"request_id": asString(rid),
				"code":       "rate_limited",
				"message":    "too many requests",
			})
			return
		}
		c.Next()
	}
}
