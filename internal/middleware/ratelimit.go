package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/biography-backend/pkg/clientip"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// RateLimitKeyPrefix is the Redis key prefix for windowed counters
	RateLimitKeyPrefix = "ratelimit:"
	// BlockedIPKeyPrefix is the Redis key prefix for blocked IPs
	BlockedIPKeyPrefix = "blocked_ip:"
)

// WindowLimiter counts requests per client IP in Redis over a fixed window,
// shared across server instances. An IP that exceeds the limit is blocked for
// BlockFor. Redis failures fail open.
type WindowLimiter struct {
	client *redis.Client
	// Name separates counters of different routes.
	Name        string
	Window      time.Duration
	MaxRequests int
	BlockFor    time.Duration
}

// NewWindowLimiter guards friend search against friend-code enumeration:
// 20 lookups per 2 minutes, then a 15 minute block.
func NewWindowLimiter(client *redis.Client, name string) *WindowLimiter {
	return &WindowLimiter{
		client:      client,
		Name:        name,
		Window:      120 * time.Second,
		MaxRequests: 20,
		BlockFor:    15 * time.Minute,
	}
}

func (l *WindowLimiter) counterKey(ip string) string {
	return RateLimitKeyPrefix + l.Name + ":" + ip
}

func (l *WindowLimiter) blockedKey(ip string) string {
	return BlockedIPKeyPrefix + l.Name + ":" + ip
}

// Middleware applies the limiter to every request it wraps.
func (l *WindowLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientip.RealClientIP(r)

		blocked, err := l.client.Exists(ctx, l.blockedKey(ip)).Result()
		if err == nil && blocked > 0 {
			tooManyRequests(w, "Your IP has been temporarily blocked due to excessive requests. Please try again later.")
			return
		}

		n, err := l.client.Incr(ctx, l.counterKey(ip)).Result()
		if err != nil {
			log.Warn().Err(err).Str("limiter", l.Name).Msg("rate limit counter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if n == 1 {
			// first request in this window
			l.client.Expire(ctx, l.counterKey(ip), l.Window)
		}
		count := int(n)

		if count > l.MaxRequests {
			if err := l.client.Set(ctx, l.blockedKey(ip), "1", l.BlockFor).Err(); err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("failed to block ip")
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(int(l.BlockFor.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(fmt.Sprintf(`{"success":false,"message":"Rate limit exceeded. Please try again later.","retry_after":%d}`, int(l.BlockFor.Seconds()))))
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.MaxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(l.MaxRequests-count))
		next.ServeHTTP(w, r)
	})
}
