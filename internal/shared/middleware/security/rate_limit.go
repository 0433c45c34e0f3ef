package security

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/response"
	"qualite-pro-core/internal/shared/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter un limiteur à jeton par adresse IP
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	enabled  bool
	metrics  *metrics.Metrics
	cancel   context.CancelFunc
}

func NewRateLimiter(cfg *config.Config, m *metrics.Metrics) *RateLimiter {
	rl := cfg.GetRateLimit()
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(rl.RequestsPerSec),
		burst:    rl.Burst,
		enabled:  rl.Enabled,
		metrics:  m,
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Start lance le nettoyage des visiteurs inactifs
func (rl *RateLimiter) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	rl.cancel = cancel

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup(3 * time.Minute)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (rl *RateLimiter) Stop() {
	if rl.cancel != nil {
		rl.cancel()
	}
}

func (rl *RateLimiter) cleanup(maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(rl.visitors, ip)
		}
	}
}

// Middleware 429 au-delà du débit autorisé
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		if !rl.getVisitor(utils.ClientIP(c.Request)).Allow() {
			rl.metrics.RateLimitHits.WithLabelValues(c.FullPath()).Inc()
			retryAfter := 1
			if rl.rate > 0 {
				retryAfter = int(1/float64(rl.rate)) + 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Abort(c, apperrors.TooManyRequests("Trop de requêtes, réessayez plus tard"))
			return
		}

		c.Next()
	}
}

func RegisterRateLimiterLifecycle(lc fx.Lifecycle, rl *RateLimiter) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			rl.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			rl.Stop()
			return nil
		},
	})
}
