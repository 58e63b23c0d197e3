package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// PerUserRateLimit caps how often one user can trigger generation calls.
// All generation routes share the same limiter per user, which is the HTTP
// rendering of "one generation action at a time" for a wizard session.
func PerUserRateLimit(rpm int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	perSecond := rate.Limit(float64(rpm) / 60.0)

	limiterFor := func(uid string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		lim, ok := limiters[uid]
		if !ok {
			lim = rate.NewLimiter(perSecond, rpm)
			limiters[uid] = lim
		}
		return lim
	}

	return func(c *gin.Context) {
		uid := c.GetString("firebase_uid")
		if uid == "" {
			uid = c.ClientIP()
		}

		if !limiterFor(uid).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many generation requests, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
