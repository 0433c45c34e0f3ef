package analytics

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/analytics/controllers"
	"qualite-pro-core/internal/modules/analytics/services"
	ficheQueries "qualite-pro-core/internal/modules/fiches/queries"
	projetQueries "qualite-pro-core/internal/modules/projets/queries"
	suiviQueries "qualite-pro-core/internal/modules/suivis/queries"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

func NewSources(
	fiches ficheQueries.FicheRepository,
	suivis suiviQueries.SuiviRepository,
	projets projetQueries.ProjetRepository,
) *services.Sources {
	return services.NewSources(fiches, suivis, projets)
}

var Module = fx.Options(
	fx.Provide(NewSources),

	fx.Provide(services.NewAnalyticsService),
	fx.Provide(services.NewChartsService),
	fx.Provide(controllers.NewAnalyticsController),

	fx.Invoke(RegisterAnalyticsRoutes),
)

func RegisterAnalyticsRoutes(
	r *gin.Engine,
	controller *controllers.AnalyticsController,
	authMw *authMiddleware.AuthMiddleware,
) {
	roles := authMiddleware.RequireRoles(authMw, models.RolePiloteQualite, models.RoleAdmin)

	analytics := r.Group("/api/ai-analytics")
	analytics.Use(roles...)
	{
		analytics.GET("/risques", controller.Risques())
		analytics.GET("/recommandations", controller.Recommandations())
		analytics.GET("/tendances", controller.Tendances())
		analytics.GET("/optimisations", controller.Optimisations())
		analytics.GET("/rapport", controller.Rapport())
		analytics.GET("/dashboard", controller.Dashboard())
	}

	charts := r.Group("/api/ai-charts")
	charts.Use(roles...)
	{
		charts.GET("/trends", controller.Trends)
		charts.GET("/predictions", controller.Predictions)
		charts.GET("/kpi", controller.Kpi())
		charts.GET("/dashboard-data", controller.DashboardData())
		charts.GET("/real-trends", controller.RealTrends())
		charts.GET("/real-predictions", controller.RealPredictions())
	}
}
