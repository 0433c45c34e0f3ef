package logging

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/metrics"
)

// RequestLoggerHandler type spécifique pour Fx
type RequestLoggerHandler gin.HandlerFunc

// DefaultSkipPaths chemins ignorés par le logger
func DefaultSkipPaths() []string {
	return []string{
		"/health",
		"/ready",
		"/metrics",
		"/favicon.ico",
	}
}

// NewRequestLogger journalise chaque requête et alimente les métriques HTTP
func NewRequestLogger(log *zap.Logger, m *metrics.Metrics) RequestLoggerHandler {
	skip := make(map[string]struct{})
	for _, p := range DefaultSkipPaths() {
		skip[p] = struct{}{}
	}
	log = log.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		if _, ok := skip[path]; ok {
			return
		}

		latency := time.Since(start)
		status := c.Writer.Status()

		// Route gin pour éviter l'explosion de cardinalité sur les identifiants
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(latency.Seconds())

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", latency),
			zap.String("request_id", c.GetString("request_id")),
		}
		if userID := c.GetString("user_id"); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.ByType(gin.ErrorTypeAny).String()))
		}

		switch {
		case status >= 500:
			log.Error("requête", fields...)
		case status >= 400:
			log.Warn("requête", fields...)
		default:
			log.Info("requête", fields...)
		}
	}
}
