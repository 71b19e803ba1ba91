// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/phonemarket/backend/internal/utils"
)

const (
	visitorIdleTTL  = 3 * time.Minute
	cleanupInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client, keyed by user id when known and by
// IP address otherwise. Buckets idle for visitorIdleTTL are dropped.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for now := range ticker.C {
		rl.mu.Lock()
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > visitorIdleTTL {
				delete(rl.visitors, key)
			}
		}
		rl.mu.Unlock()
	}
}

// allow takes one token from key's bucket.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

func clientKey(c *gin.Context) string {
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		return "user:" + strconv.FormatInt(userID, 10)
	}
	return "ip:" + c.ClientIP()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.allow(clientKey(c)) {
			c.Next()
			return
		}
		utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
			"Rate limit exceeded, try again later", nil)
		c.Abort()
	}
}

var (
	generalLimiter = NewRateLimiter(rate.Every(100*time.Millisecond), 20)
	orderLimiter   = NewRateLimiter(rate.Every(10*time.Second), 3)
	uploadLimiter  = NewRateLimiter(rate.Every(time.Minute), 5)
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.Middleware()
}

func OrderRateLimit() gin.HandlerFunc {
	return orderLimiter.Middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.Middleware()
}
