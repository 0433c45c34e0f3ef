package fiches

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/fiches/controllers"
	"qualite-pro-core/internal/modules/fiches/queries"
	"qualite-pro-core/internal/modules/fiches/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoFicheRepository, fx.As(new(queries.FicheRepository)))),

	fx.Provide(services.NewFicheService),
	fx.Provide(controllers.NewFicheController),

	fx.Invoke(RegisterFicheRoutes),
)

func RegisterFicheRoutes(
	r *gin.Engine,
	controller *controllers.FicheController,
	authMw *authMiddleware.AuthMiddleware,
) {
	lecture := r.Group("/api/fiches")
	lecture.Use(authMiddleware.Protected(authMw)...)
	{
		lecture.GET("", controller.List)
		lecture.GET("/stats", controller.Stats)
		lecture.GET("/responsable/:responsable", controller.ParResponsable)
		lecture.GET("/statut/:statut", controller.ParStatut)
		lecture.GET("/:id", controller.Get)
	}

	ecriture := r.Group("/api/fiches")
	ecriture.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin, models.RoleChefProjet)...)
	{
		ecriture.POST("", controller.Create)
		ecriture.PUT("/:id", controller.Update)
		ecriture.DELETE("/:id", controller.Delete)
	}
}
