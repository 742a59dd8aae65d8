package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/pageza/recipenest/backend/internal/metrics"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Decision is the outcome of a single limiter check.
type Decision struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Config() RateLimitConfig
	Name() string
}

// RedisLimiter is a fixed-window limiter shared by every API instance.
type RedisLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRedisLimiter creates a new Redis backed limiter
func NewRedisLimiter(redisClient *redis.Client, config RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

func (rl *RedisLimiter) Config() RateLimitConfig { return rl.config }

func (rl *RedisLimiter) Name() string { return "redis" }

// Allow counts the request against the current window.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.TxPipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= rl.config.Limit,
		Remaining: remaining,
		Reset:     windowStart.Add(rl.config.Window),
	}, nil
}

// LocalLimiter keeps a token bucket per key in process memory. It is used
// when no Redis instance is configured.
type LocalLimiter struct {
	config RateLimitConfig
	every  rate.Limit

	mu        sync.Mutex
	buckets   map[string]*localBucket
	lastSwept time.Time
	now       func() time.Time
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalLimiter creates an in-process limiter refilling Limit tokens per Window.
func NewLocalLimiter(config RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{
		config:  config,
		every:   rate.Every(config.Window / time.Duration(config.Limit)),
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

func (l *LocalLimiter) Config() RateLimitConfig { return l.config }

func (l *LocalLimiter) Name() string { return "local" }

// Allow takes one token from key's bucket.
func (l *LocalLimiter) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(l.every, l.config.Limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	remaining := int(math.Max(0, math.Floor(tokens)))

	reset := now
	if tokens < 1 {
		reset = now.Add(time.Duration((1 - tokens) * float64(time.Second) / float64(l.every)))
	}

	return Decision{Allowed: allowed, Remaining: remaining, Reset: reset}, nil
}

// sweep drops buckets idle for longer than a window; a fresh bucket is full.
func (l *LocalLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSwept) < l.config.Window {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.config.Window {
			delete(l.buckets, key)
		}
	}
	l.lastSwept = now
}

// RateLimit returns a Gin middleware that limits requests per authenticated
// chef. It must run after AuthMiddleware. Limiter failures let the request
// through.
func RateLimit(limiter Limiter, log logrus.FieldLogger) gin.HandlerFunc {
	cfg := limiter.Config()
	return func(c *gin.Context) {
		chefID, ok := ChefID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "chef not authenticated"})
			return
		}

		decision, err := limiter.Allow(c.Request.Context(), strconv.FormatUint(uint64(chefID), 10))
		if err != nil {
			log.WithError(err).WithField("limiter", limiter.Name()).Warn("Rate limit check failed")
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.Reset.Unix(), 10))

		if !decision.Allowed {
			metrics.RateLimitRejections.WithLabelValues(limiter.Name()).Inc()
			retryAfter := int(math.Ceil(time.Until(decision.Reset).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You have exceeded the rate limit of %d votes per %v", cfg.Limit, cfg.Window),
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
