package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"news-agency/internal/handler/http/respond"
	"news-agency/internal/observability/metrics"
	"news-agency/pkg/config"
)

// clientLimiter はクライアントごとのリミッターと最終アクセス時刻を保持する。
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	cfg        config.RateLimitConfig
	trustProxy bool
	now        func() time.Time

	mu       sync.RWMutex
	limiters map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewRateLimiter starts the background sweep of idle clients.
// Call Stop to end it.
func NewRateLimiter(cfg config.RateLimitConfig, trustProxy bool) *RateLimiter {
	rl := &RateLimiter{
		cfg:        cfg,
		trustProxy: trustProxy,
		now:        time.Now,
		limiters:   make(map[string]*clientLimiter),
		stopCh:     make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		go rl.cleanupLoop()
	}
	return rl
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r, rl.trustProxy)
		if !rl.limiterFor(ip).Allow() {
			metrics.HTTPRateLimited.Inc()
			slog.Warn("rate limit exceeded",
				slog.String("client_ip", ip),
				slog.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(rl.cfg.RPS)))
			respond.Fail(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	now := rl.now()

	rl.mu.RLock()
	cl, ok := rl.limiters[key]
	rl.mu.RUnlock()
	if ok {
		rl.mu.Lock()
		cl.lastAccess = now
		rl.mu.Unlock()
		return cl.limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	// ダブルチェック: ロック取得までに他のゴルーチンが作成している可能性がある
	if cl, ok := rl.limiters[key]; ok {
		cl.lastAccess = now
		return cl.limiter
	}
	cl = &clientLimiter{
		limiter:    rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst),
		lastAccess: now,
	}
	rl.limiters[key] = cl
	return cl.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.cfg.IdleTTL)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.limiters {
		if cl.lastAccess.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

func (rl *RateLimiter) size() int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return len(rl.limiters)
}

func retryAfterSeconds(rps float64) int {
	if rps <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(1/rps)))
}
