package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedEngine(burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(RateLimiterConfig{Rate: 0, Burst: burst})
	engine := gin.New()
	engine.Use(rl.RateLimit())
	engine.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func requestFrom(engine *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitIsPerClient(t *testing.T) {
	engine := newLimitedEngine(1)

	assert.Equal(t, http.StatusOK, requestFrom(engine, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, requestFrom(engine, "10.0.0.1"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, requestFrom(engine, "10.0.0.2"))
}

func TestRateLimitAllowsWithinBurst(t *testing.T) {
	engine := newLimitedEngine(3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, requestFrom(engine, "10.0.0.3"))
	}
	assert.Equal(t, http.StatusTooManyRequests, requestFrom(engine, "10.0.0.3"))
}
