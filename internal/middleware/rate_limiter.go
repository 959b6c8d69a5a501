package middleware

import (
	"net/http"
	"sync"
	"time"

	"nexopos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Fixed-window per-IP rate limiting, kept in process memory. Good enough
// for a single API node; a multi-node deployment would move this to redis.

type windowBucket struct {
	mu        sync.Mutex
	count     int
	windowEnd time.Time
}

// allow counts one hit and reports whether it stays under limit.
func (b *windowBucket) allow(limit int, window time.Duration) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.After(b.windowEnd) {
		b.count = 0
		b.windowEnd = now.Add(window)
	}
	b.count++
	return b.count <= limit
}

type limiter struct {
	mu      sync.Mutex
	buckets map[string]*windowBucket
}

func newLimiter() *limiter {
	l := &limiter{buckets: make(map[string]*windowBucket)}
	go l.purge()
	return l
}

func (l *limiter) bucket(ip string) *windowBucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[ip]
	if !ok {
		b = &windowBucket{}
		l.buckets[ip] = b
	}
	return b
}

// purge drops buckets whose window already expired so one-off IPs do not
// accumulate forever.
func (l *limiter) purge() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0

		l.mu.Lock()
		for ip, b := range l.buckets {
			b.mu.Lock()
			expired := now.After(b.windowEnd)
			b.mu.Unlock()
			if expired {
				delete(l.buckets, ip)
				purged++
			}
		}
		l.mu.Unlock()

		if purged > 0 {
			log.Debug().Int("purged", purged).Msg("rate limiter buckets purged")
		}
	}
}

// LoginRateLimiter caps login attempts at 20 per minute per IP to slow
// down credential stuffing.
func LoginRateLimiter() gin.HandlerFunc {
	l := newLimiter()
	return func(c *gin.Context) {
		if !l.bucket(c.ClientIP()).allow(20, time.Minute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general-purpose limiter. The consulta de precios
// kiosk endpoint runs unauthenticated, so it gets a tight limit; the
// authenticated API a generous one. Each call gets its own buckets, so
// stacked limiters count a request once per limiter, not once globally.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newLimiter()
	return func(c *gin.Context) {
		b := l.bucket(c.ClientIP())
		if !b.allow(limit, window) {
			b.mu.Lock()
			retryAt := b.windowEnd
			b.mu.Unlock()
			c.Header("Retry-After", retryAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}
