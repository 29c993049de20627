package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/internal/presentation/http/dto/response"
	"golang.org/x/time/rate"
)

// ClientRateLimiter keeps a token bucket per client IP so a misbehaving
// terminal cannot starve the others.
type ClientRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	cfg     RateLimiterConfig

	done     chan struct{}
	stopOnce sync.Once
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration // how often idle buckets are swept
	EntryTTL          time.Duration // idle time before a bucket is dropped
}

// DefaultRateLimiterConfig allows 10 requests per second with bursts of 20.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// RateLimiterConfigFromWindow converts "requests per window seconds" into a limiter config
func RateLimiterConfigFromWindow(requests, windowSeconds int) RateLimiterConfig {
	cfg := DefaultRateLimiterConfig()
	if requests <= 0 || windowSeconds <= 0 {
		return cfg
	}
	cfg.RequestsPerSecond = float64(requests) / float64(windowSeconds)
	cfg.BurstSize = requests
	return cfg
}

// NewClientRateLimiter starts a limiter and its sweeper. Call Stop on shutdown.
func NewClientRateLimiter(cfg RateLimiterConfig) *ClientRateLimiter {
	rl := &ClientRateLimiter{
		clients: make(map[string]*clientBucket),
		cfg:     cfg,
		done:    make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Stop ends the sweeper goroutine
func (rl *ClientRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// ActiveClients is the number of clients with a live bucket
func (rl *ClientRateLimiter) ActiveClients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *ClientRateLimiter) bucket(client string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.BurstSize)}
		rl.clients[client] = b
	}
	b.lastSeen = now
	return b.limiter
}

func (rl *ClientRateLimiter) sweep() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			cutoff := now.Add(-rl.cfg.EntryTTL)
			rl.mu.Lock()
			for client, b := range rl.clients {
				if b.lastSeen.Before(cutoff) {
					delete(rl.clients, client)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

// Middleware rejects a request with 429 once its client's bucket is empty.
// Retry-After tells the client how long until the next token.
func (rl *ClientRateLimiter) Middleware() gin.HandlerFunc {
	limit := strconv.Itoa(rl.cfg.BurstSize)

	return func(c *gin.Context) {
		now := time.Now()
		limiter := rl.bucket(c.ClientIP(), now)
		c.Header("X-RateLimit-Limit", limit)

		r := limiter.ReserveN(now, 1)
		if delay := r.DelayFrom(now); !r.OK() || delay > 0 {
			r.CancelAt(now)
			retry := int(math.Ceil(delay.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retry))
			response.ErrorWithCode(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.TokensAt(now))))
		c.Next()
	}
}
