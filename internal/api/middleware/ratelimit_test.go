package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimit(perMinute))
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func limitedGet(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitThrottlesAfterBurst(t *testing.T) {
	router := newLimitedRouter(2)

	assert.Equal(t, http.StatusOK, limitedGet(router, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusOK, limitedGet(router, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, limitedGet(router, "192.0.2.1:1000").Code)
}

func TestRateLimitKeysClientsSeparately(t *testing.T) {
	router := newLimitedRouter(1)

	assert.Equal(t, http.StatusOK, limitedGet(router, "192.0.2.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, limitedGet(router, "192.0.2.1:1000").Code)

	// A different client starts with its own bucket.
	assert.Equal(t, http.StatusOK, limitedGet(router, "192.0.2.2:1000").Code)
}
