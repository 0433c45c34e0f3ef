package rapports

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	ficheQueries "qualite-pro-core/internal/modules/fiches/queries"
	formulaireQueries "qualite-pro-core/internal/modules/formulaires/queries"
	projetQueries "qualite-pro-core/internal/modules/projets/queries"
	"qualite-pro-core/internal/modules/rapports/controllers"
	"qualite-pro-core/internal/modules/rapports/services"
	suiviQueries "qualite-pro-core/internal/modules/suivis/queries"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
)

func NewFicheSource(repo ficheQueries.FicheRepository) services.FicheSource {
	return repo
}

func NewSuiviSource(repo suiviQueries.SuiviRepository) services.SuiviSource {
	return repo
}

func NewProjetSource(repo projetQueries.ProjetRepository) services.ProjetSource {
	return repo
}

func NewFormulaireSource(repo formulaireQueries.FormulaireRepository) services.FormulaireSource {
	return repo
}

var Module = fx.Options(
	fx.Provide(NewFicheSource, NewSuiviSource, NewProjetSource, NewFormulaireSource),

	fx.Provide(services.NewRapportService),
	fx.Provide(controllers.NewRapportController),

	fx.Invoke(RegisterRapportRoutes),
)

func RegisterRapportRoutes(
	r *gin.Engine,
	controller *controllers.RapportController,
	authMw *authMiddleware.AuthMiddleware,
) {
	roles := authMiddleware.RequireRoles(authMw, models.RolePiloteQualite, models.RoleAdmin)

	rapports := r.Group("/api/rapports-kpi")
	rapports.Use(roles...)
	{
		rapports.GET("/complet", controller.Complet)
		rapports.GET("/periode", controller.Periode)
		rapports.GET("/telecharger", controller.Telecharger)
		rapports.GET("/telecharger/periode", controller.TelechargerPeriode)
		rapports.GET("/export/excel", controller.ExportExcel)
		rapports.GET("/export/excel/periode", controller.ExportExcelPeriode)
	}

	exports := r.Group("/api/export")
	exports.Use(roles...)
	{
		exports.GET("/rapport-kpi/excel", controller.ExportExcel)
		exports.GET("/statistiques/excel", controller.ExportExcel)
	}
}
