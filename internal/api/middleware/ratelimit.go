package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/trendlinehq/builder-api/pkg/utils"
)

// RateLimit throttles query executions per client. Keyed by user when
// authenticated, by client IP otherwise. Limiters idle for over an hour are
// evicted when a new client shows up, so the map does not grow with every
// visitor.
func RateLimit(perMinute int) gin.HandlerFunc {
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	// Caller holds mu.
	evictIdle := func() {
		for key, cl := range clients {
			if time.Since(cl.lastSeen) > time.Hour {
				delete(clients, key)
			}
		}
	}

	return func(c *gin.Context) {
		key := c.ClientIP()
		if uid, err := GetUserID(c); err == nil {
			key = uid
		}

		mu.Lock()
		cl, ok := clients[key]
		if !ok {
			evictIdle()
			cl = &client{limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)}
			clients[key] = cl
		}
		cl.lastSeen = time.Now()
		mu.Unlock()

		if !cl.limiter.Allow() {
			utils.SendError(c, http.StatusTooManyRequests,
				utils.NewAppError(utils.ErrCodeRateLimited, "Too many requests, slow down"))
			c.Abort()
			return
		}

		c.Next()
	}
}
