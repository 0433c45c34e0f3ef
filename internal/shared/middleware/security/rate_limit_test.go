package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/metrics"
)

func newLimiter(enabled bool, burst int) *RateLimiter {
	cfg := &config.Config{RateLimit: config.RateLimitConfig{Enabled: enabled, RequestsPerSec: 0.001, Burst: burst}}
	return NewRateLimiter(cfg, metrics.NewMetrics())
}

func serve(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_BloqueAuDelaDuBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := newLimiter(true, 2)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "10.0.0.1"))

	// Compteur indépendant par IP
	assert.Equal(t, http.StatusOK, serve(r, "10.0.0.2"))
}

func TestRateLimiter_Desactive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := newLimiter(false, 1)
	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "10.0.0.1"))
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := newLimiter(true, 1)
	rl.getVisitor("10.0.0.1")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	rl.getVisitor("10.0.0.2")

	rl.cleanup(3 * time.Minute)

	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}
