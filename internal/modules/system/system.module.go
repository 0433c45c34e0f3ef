package system

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/modules/system/controllers"
	"qualite-pro-core/internal/modules/system/queries"
	"qualite-pro-core/internal/modules/system/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

// Module regroupe tous les providers du domaine System
var Module = fx.Options(
	// Sondes sur les clients d'infrastructure
	fx.Provide(fx.Annotate(queries.NewMongoProbe, fx.As(new(queries.DatabaseProbe)))),
	fx.Provide(fx.Annotate(queries.NewRedisProbe, fx.As(new(queries.CacheProbe)))),

	fx.Provide(services.NewSystemService),
	fx.Provide(controllers.NewSystemController),

	fx.Invoke(RegisterSystemRoutes),
)

// RegisterSystemRoutes sondes publiques et informations réservées aux administrateurs
func RegisterSystemRoutes(
	r *gin.Engine,
	ctrl *controllers.SystemController,
	m *metrics.Metrics,
	authMw *authMiddleware.AuthMiddleware,
) {
	r.GET("/health", ctrl.Health)
	r.GET("/ready", ctrl.Ready)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api/system")
	api.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin)...)
	{
		api.GET("/info", ctrl.GetSystemInfo)
	}
}
