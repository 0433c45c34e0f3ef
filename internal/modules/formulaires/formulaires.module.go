package formulaires

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/formulaires/controllers"
	"qualite-pro-core/internal/modules/formulaires/queries"
	"qualite-pro-core/internal/modules/formulaires/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
)

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoFormulaireRepository, fx.As(new(queries.FormulaireRepository)))),

	fx.Provide(services.NewFormulaireService),
	fx.Provide(controllers.NewFormulaireController),

	fx.Invoke(RegisterFormulaireRoutes),
)

// RegisterFormulaireRoutes ouvert à tous les rôles authentifiés
func RegisterFormulaireRoutes(
	r *gin.Engine,
	controller *controllers.FormulaireController,
	authMw *authMiddleware.AuthMiddleware,
) {
	formulaires := r.Group("/api/formulaires-obligatoires")
	formulaires.Use(authMiddleware.Protected(authMw)...)
	{
		formulaires.GET("", controller.List)
		formulaires.GET("/retards", controller.Retards)
		formulaires.GET("/echeances-proches", controller.EcheancesProches)
		formulaires.GET("/responsable/:responsableId", controller.ParResponsable)
		formulaires.GET("/projet/:projetId", controller.ParProjet)
		formulaires.GET("/statut/:statut", controller.ParStatut)
		formulaires.GET("/priorite/:priorite", controller.ParPriorite)
		formulaires.GET("/stats/retards", controller.CountRetards)
		formulaires.GET("/stats/statut/:statut", controller.CountStatut)
		formulaires.GET("/stats/responsable/:responsableId", controller.CountResponsable)
		formulaires.GET("/:id", controller.Get)

		formulaires.POST("", controller.Create)
		formulaires.POST("/verifier-retards", controller.VerifierRetards)
		formulaires.POST("/verifier-echeances", controller.VerifierEcheances)
		formulaires.PUT("/:id", controller.Update)
		formulaires.PUT("/:id/soumis", controller.MarquerSoumis)
		formulaires.PUT("/:id/retard", controller.MarquerEnRetard)
		formulaires.DELETE("/:id", controller.Delete)
	}
}
