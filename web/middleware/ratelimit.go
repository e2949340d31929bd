package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/officeportal/portal/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimitConfig configures a per-client token bucket.
type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
	KeyFunc           func(c *gin.Context) string
	Methods           []string // only these methods are limited; empty limits all
}

func DefaultRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: perMinute,
		BurstSize:         perMinute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		Methods: []string{http.MethodPost},
	}
}

func (config RateLimitConfig) applies(method string) bool {
	if len(config.Methods) == 0 {
		return true
	}
	for _, m := range config.Methods {
		if m == method {
			return true
		}
	}
	return false
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client key.
type RateLimiter struct {
	config   RateLimitConfig
	mu       sync.Mutex
	visitors map[string]*visitor
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.BurstSize <= 0 {
		config.BurstSize = 1
	}
	return &RateLimiter{config: config, visitors: make(map[string]*visitor)}
}

// Allow consumes a token for key.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, k)
		}
	}

	v, ok := l.visitors[key]
	if !ok {
		every := time.Minute / time.Duration(max(l.config.RequestsPerMinute, 1))
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), l.config.BurstSize)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

// RateLimitMiddleware answers with onLimit once a client runs out of tokens.
func RateLimitMiddleware(config RateLimitConfig, onLimit gin.HandlerFunc) gin.HandlerFunc {
	limiter := NewRateLimiter(config)
	return func(c *gin.Context) {
		if !config.applies(c.Request.Method) {
			c.Next()
			return
		}
		key := config.KeyFunc(c)
		if !limiter.Allow(key) {
			logger.Warningf("rate limit exceeded for %s on %s", key, c.Request.URL.Path)
			onLimit(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
