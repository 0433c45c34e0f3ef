package suivis

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	ficheQueries "qualite-pro-core/internal/modules/fiches/queries"
	"qualite-pro-core/internal/modules/suivis/controllers"
	"qualite-pro-core/internal/modules/suivis/queries"
	"qualite-pro-core/internal/modules/suivis/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

// NewFicheReader réutilise le repository du module fiches
func NewFicheReader(repo ficheQueries.FicheRepository) services.FicheReader {
	return repo
}

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoSuiviRepository, fx.As(new(queries.SuiviRepository)))),
	fx.Provide(NewFicheReader),

	fx.Provide(services.NewSuiviService),
	fx.Provide(controllers.NewSuiviController),

	fx.Invoke(RegisterSuiviRoutes),
)

func RegisterSuiviRoutes(
	r *gin.Engine,
	controller *controllers.SuiviController,
	authMw *authMiddleware.AuthMiddleware,
) {
	lecture := r.Group("/api/suivis")
	lecture.Use(authMiddleware.Protected(authMw)...)
	{
		lecture.GET("", controller.List)
		lecture.GET("/stats", controller.Stats)
		lecture.GET("/fiche/:ficheId", controller.ParFiche)
		lecture.GET("/utilisateur/:utilisateurId", controller.ParUtilisateur)
		lecture.GET("/:id", controller.Get)
	}

	ecriture := r.Group("/api/suivis")
	ecriture.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin, models.RoleChefProjet)...)
	{
		ecriture.POST("", controller.Create)
		ecriture.PUT("/:id", controller.Update)
		ecriture.DELETE("/:id", controller.Delete)
	}
}
