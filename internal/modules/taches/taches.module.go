package taches

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	projetQueries "qualite-pro-core/internal/modules/projets/queries"
	"qualite-pro-core/internal/modules/taches/controllers"
	"qualite-pro-core/internal/modules/taches/queries"
	"qualite-pro-core/internal/modules/taches/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
)

func NewProjetReader(repo projetQueries.ProjetRepository) services.ProjetReader {
	return repo
}

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoTacheRepository, fx.As(new(queries.TacheRepository)))),
	fx.Provide(NewProjetReader),

	fx.Provide(services.NewTacheService),
	fx.Provide(controllers.NewTacheController),

	fx.Invoke(RegisterTacheRoutes),
)

// RegisterTacheRoutes tous les rôles authentifiés
func RegisterTacheRoutes(
	r *gin.Engine,
	controller *controllers.TacheController,
	authMw *authMiddleware.AuthMiddleware,
) {
	taches := r.Group("/api/taches")
	taches.Use(authMiddleware.Protected(authMw)...)
	{
		taches.GET("", controller.List)
		taches.GET("/utilisateur/:userId", controller.ParUtilisateur)
		taches.GET("/projet/:projetId", controller.ParProjet)
		taches.GET("/stats/:userId", controller.Stats)
		taches.GET("/:id", controller.Get)
		taches.POST("", controller.Create)
		taches.PUT("/:id", controller.Update)
		taches.PUT("/:id/terminer", controller.Terminer)
		taches.DELETE("/:id", controller.Delete)
	}
}
