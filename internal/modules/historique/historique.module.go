package historique

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/historique/controllers"
	"qualite-pro-core/internal/modules/historique/dto"
	"qualite-pro-core/internal/modules/historique/queries"
	"qualite-pro-core/internal/modules/historique/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
)

func NewActionRecorder(s *services.HistoriqueService) ports.ActionRecorder {
	return s
}

// Module regroupe tous les providers du domaine Historique
var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoHistoriqueRepository, fx.As(new(queries.HistoriqueRepository)))),
	fx.Provide(services.NewHistoriqueService),
	fx.Provide(NewActionRecorder),
	fx.Provide(controllers.NewHistoriqueController),

	fx.Invoke(RegisterHistoriqueRoutes),
)

func RegisterHistoriqueRoutes(
	r *gin.Engine,
	controller *controllers.HistoriqueController,
	authMw *authMiddleware.AuthMiddleware,
) {
	lecture := r.Group("/api/historique")
	lecture.Use(authMiddleware.Protected(authMw)...)
	{
		lecture.GET("", controller.List)
		lecture.GET("/periode", controller.ParPeriode)
		lecture.GET("/utilisateur/:utilisateurId", controller.ParUtilisateur)
		lecture.GET("/utilisateur/:utilisateurId/periode", controller.ParUtilisateurEtPeriode)
		lecture.GET("/entite/:entite/:entiteId", controller.ParEntiteOuPeriode)

		lecture.GET("/stats", controller.Stats)
		lecture.GET("/stats/utilisateur/:utilisateurId", controller.CountUtilisateur)
		lecture.GET("/stats/entite/:entite", controller.CountEntite)
		lecture.GET("/stats/total", controller.CountPeriode(""))
		lecture.GET("/stats/aujourd-hui", controller.CountPeriode(dto.PeriodeAujourdhui))
		lecture.GET("/stats/semaine", controller.CountPeriode(dto.PeriodeSemaine))
		lecture.GET("/stats/mois", controller.CountPeriode(dto.PeriodeMois))
	}

	analyse := r.Group("/api/historique")
	analyse.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin, models.RolePiloteQualite)...)
	{
		analyse.POST("/filtres", controller.Filtrer)
		analyse.POST("/export", controller.Export)
	}
}
