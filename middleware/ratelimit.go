package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 按 key 记录窗口内的请求时间
type slidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	store  map[string][]time.Time
}

func newSlidingWindow(window time.Duration) *slidingWindow {
	return &slidingWindow{window: window, store: make(map[string][]time.Time)}
}

// allow 窗口内请求数未达上限时记录本次请求并放行
func (w *slidingWindow) allow(key string, max int, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ts := prune(w.store[key], now.Add(-w.window))
	if len(ts) >= max {
		w.store[key] = ts
		return false
	}
	w.store[key] = append(ts, now)
	return true
}

// sweep 清理过期记录
func (w *slidingWindow) sweep(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	cutoff := now.Add(-w.window)
	for key, ts := range w.store {
		if ts = prune(ts, cutoff); len(ts) == 0 {
			delete(w.store, key)
		} else {
			w.store[key] = ts
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// rateLimitKey 已登录按用户限流，否则按 IP
func rateLimitKey(c *gin.Context) string {
	if id := GetCurrentUserID(c); id != 0 {
		return fmt.Sprintf("user:%d", id)
	}
	return "ip:" + c.ClientIP()
}

// RateLimit 写接口限流中间件，GET/HEAD/OPTIONS 不计数
// 每个用户（未登录时按 IP）在 window 内最多 maxRequests 次写请求，超过返回 429
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	limiter := newSlidingWindow(window)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			limiter.sweep(now)
		}
	}()

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if !limiter.allow(rateLimitKey(c), maxRequests, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "请求过于频繁，请稍后再试",
			})
			return
		}
		c.Next()
	}
}
