package nomenclatures

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/nomenclatures/cache"
	"qualite-pro-core/internal/modules/nomenclatures/controllers"
	"qualite-pro-core/internal/modules/nomenclatures/queries"
	"qualite-pro-core/internal/modules/nomenclatures/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoNomenclatureRepository, fx.As(new(queries.NomenclatureRepository)))),
	fx.Provide(fx.Annotate(cache.NewRedisNomenclatureCache, fx.As(new(cache.NomenclatureCache)))),

	fx.Provide(services.NewNomenclatureService),
	fx.Provide(controllers.NewNomenclatureController),

	fx.Invoke(RegisterNomenclatureRoutes),
)

// RegisterNomenclatureRoutes lecture pour tous les rôles, écriture réservée à ADMIN
func RegisterNomenclatureRoutes(
	r *gin.Engine,
	controller *controllers.NomenclatureController,
	authMw *authMiddleware.AuthMiddleware,
) {
	lecture := r.Group("/api/nomenclatures")
	lecture.Use(authMiddleware.Protected(authMw)...)
	{
		lecture.GET("", controller.List)
		lecture.GET("/types", controller.Types)
		lecture.GET("/type/:type", controller.ParType)
		lecture.GET("/:id", controller.Get)
	}

	admin := r.Group("/api/nomenclatures")
	admin.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin)...)
	{
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
