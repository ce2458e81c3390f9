// Package ratelimiter はIP単位の固定ウィンドウ方式レートリミットを提供します。
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"feed_backend/internal/api"
)

// window は1つのクライアントの現在ウィンドウ内のカウントです。
type window struct {
	count     int
	lastReset time.Time
}

// IPRateLimiter は、クライアントIPごとにリクエスト頻度を制限します。
type IPRateLimiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
}

// NewIPRateLimiter は新しいIPRateLimiterのインスタンスを生成します。
func NewIPRateLimiter(limit int, interval time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow は指定キーのリクエストが上限内かを確認し、カウントを進めます。
// 上限超過の場合はfalseを返します（待機はしません）。
func (rl *IPRateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	// interval を過ぎたらカウントリセット
	if now.Sub(w.lastReset) >= rl.interval {
		w.count = 0
		w.lastReset = now
	}

	w.count++
	return w.count <= rl.limit
}

// Middleware はIPRateLimiterを適用するGinミドルウェアを返します。
// 上限を超えたリクエストには429を返します。
func Middleware(rl *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				api.ErrorResponse{Message: "too many requests from this IP, please try again later"})
			return
		}
		c.Next()
	}
}
