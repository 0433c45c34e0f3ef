package controllers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/analytics/services"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/response"
)

type AnalyticsController struct {
	analytics *services.AnalyticsService
	charts    *services.ChartsService
}

func NewAnalyticsController(analytics *services.AnalyticsService, charts *services.ChartsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics, charts: charts}
}

// repondre adapte une méthode de service en handler gin
func repondre[T any](fn func(ctx context.Context) (T, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		data, err := fn(ctx.Request.Context())
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, data)
	}
}

// GET /api/ai-analytics/risques
func (c *AnalyticsController) Risques() gin.HandlerFunc { return repondre(c.analytics.Risques) }

// GET /api/ai-analytics/recommandations
func (c *AnalyticsController) Recommandations() gin.HandlerFunc {
	return repondre(c.analytics.Recommandations)
}

// GET /api/ai-analytics/tendances
func (c *AnalyticsController) Tendances() gin.HandlerFunc { return repondre(c.analytics.Tendances) }

// GET /api/ai-analytics/optimisations
func (c *AnalyticsController) Optimisations() gin.HandlerFunc {
	return repondre(c.analytics.Optimisations)
}

// GET /api/ai-analytics/rapport
func (c *AnalyticsController) Rapport() gin.HandlerFunc { return repondre(c.analytics.Rapport) }

// GET /api/ai-analytics/dashboard
func (c *AnalyticsController) Dashboard() gin.HandlerFunc { return repondre(c.analytics.Dashboard) }

// Trends - GET /api/ai-charts/trends?period=8
func (c *AnalyticsController) Trends(ctx *gin.Context) {
	period := services.PeriodeParDefaut
	if raw := ctx.Query("period"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(ctx, apperrors.InvalidArgument("Le paramètre period doit être un entier"))
			return
		}
		period = p
	}

	chart, err := c.charts.Trends(period)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, chart)
}

// Predictions - GET /api/ai-charts/predictions
func (c *AnalyticsController) Predictions(ctx *gin.Context) {
	response.OK(ctx, c.charts.Predictions())
}

// GET /api/ai-charts/kpi
func (c *AnalyticsController) Kpi() gin.HandlerFunc { return repondre(c.charts.Kpi) }

// GET /api/ai-charts/dashboard-data
func (c *AnalyticsController) DashboardData() gin.HandlerFunc { return repondre(c.charts.DashboardData) }

// GET /api/ai-charts/real-trends
func (c *AnalyticsController) RealTrends() gin.HandlerFunc { return repondre(c.charts.RealTrends) }

// GET /api/ai-charts/real-predictions
func (c *AnalyticsController) RealPredictions() gin.HandlerFunc {
	return repondre(c.charts.RealPredictions)
}
