package projets

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/projets/controllers"
	"qualite-pro-core/internal/modules/projets/queries"
	"qualite-pro-core/internal/modules/projets/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoProjetRepository, fx.As(new(queries.ProjetRepository)))),

	fx.Provide(services.NewProjetService),
	fx.Provide(controllers.NewProjetController),

	fx.Invoke(RegisterProjetRoutes),
)

func RegisterProjetRoutes(
	r *gin.Engine,
	controller *controllers.ProjetController,
	authMw *authMiddleware.AuthMiddleware,
) {
	lecture := r.Group("/api/projets")
	lecture.Use(authMiddleware.Protected(authMw)...)
	{
		lecture.GET("", controller.List)
		lecture.GET("/:id", controller.Get)
	}

	ecriture := r.Group("/api/projets")
	ecriture.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin, models.RoleChefProjet)...)
	{
		ecriture.POST("", controller.Create)
		ecriture.PUT("/:id", controller.Update)
		ecriture.DELETE("/:id", controller.Delete)
	}
}
