package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/historique/dto"
	"qualite-pro-core/internal/modules/historique/services"
	"qualite-pro-core/internal/shared/response"
)

type HistoriqueController struct {
	service *services.HistoriqueService
}

func NewHistoriqueController(service *services.HistoriqueService) *HistoriqueController {
	return &HistoriqueController{service: service}
}

func (c *HistoriqueController) List(ctx *gin.Context) {
	list, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, list)
}

// ParUtilisateur - GET /api/historique/utilisateur/:utilisateurId
func (c *HistoriqueController) ParUtilisateur(ctx *gin.Context) {
	list, err := c.service.ParUtilisateur(ctx.Request.Context(), ctx.Param("utilisateurId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, list)
}

// ParEntite - GET /api/historique/entite/:entite/:entiteId
func (c *HistoriqueController) ParEntite(ctx *gin.Context) {
	list, err := c.service.ParEntite(ctx.Request.Context(), ctx.Param("entite"), ctx.Param("entiteId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, list)
}

// ParPeriode - GET /api/historique/periode?dateDebut=&dateFin=
func (c *HistoriqueController) ParPeriode(ctx *gin.Context) {
	list, err := c.service.ParPeriode(ctx.Request.Context(), ctx.Query("dateDebut"), ctx.Query("dateFin"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, list)
}

// ParUtilisateurEtPeriode - GET /api/historique/utilisateur/:utilisateurId/periode
func (c *HistoriqueController) ParUtilisateurEtPeriode(ctx *gin.Context) {
	list, err := c.service.ParUtilisateurEtPeriode(ctx.Request.Context(),
		ctx.Param("utilisateurId"), ctx.Query("dateDebut"), ctx.Query("dateFin"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, list)
}

// ParEntiteEtPeriode - GET /api/historique/entite/:entite/periode
func (c *HistoriqueController) ParEntiteEtPeriode(ctx *gin.Context) {
	list, err := c.service.ParEntiteEtPeriode(ctx.Request.Context(),
		ctx.Param("entite"), ctx.Query("dateDebut"), ctx.Query("dateFin"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, list)
}

// ParEntiteOuPeriode "periode" occupe la place de :entiteId dans l'arbre de routes
func (c *HistoriqueController) ParEntiteOuPeriode(ctx *gin.Context) {
	if ctx.Param("entiteId") == "periode" {
		c.ParEntiteEtPeriode(ctx)
		return
	}
	c.ParEntite(ctx)
}

// CountUtilisateur - GET /api/historique/stats/utilisateur/:utilisateurId
func (c *HistoriqueController) CountUtilisateur(ctx *gin.Context) {
	n, err := c.service.CountUtilisateur(ctx.Request.Context(), ctx.Param("utilisateurId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}

// CountEntite - GET /api/historique/stats/entite/:entite
func (c *HistoriqueController) CountEntite(ctx *gin.Context) {
	n, err := c.service.CountEntite(ctx.Request.Context(), ctx.Param("entite"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}

// CountPeriode - GET /api/historique/stats/{total,aujourd-hui,semaine,mois}
func (c *HistoriqueController) CountPeriode(periode string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		n, err := c.service.CountPeriode(ctx.Request.Context(), periode)
		if err != nil {
			response.Error(ctx, err)
			return
		}
		response.OK(ctx, n)
	}
}

// Stats - GET /api/historique/stats
func (c *HistoriqueController) Stats(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, stats)
}

// Filtrer - POST /api/historique/filtres
func (c *HistoriqueController) Filtrer(ctx *gin.Context) {
	var req dto.FiltresRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	list, err := c.service.Filtrer(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, list)
}

// Export - POST /api/historique/export (corps optionnel)
func (c *HistoriqueController) Export(ctx *gin.Context) {
	var req *dto.FiltresRequest
	if ctx.Request.ContentLength != 0 {
		var body dto.FiltresRequest
		if err := ctx.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequestBody(ctx, err)
			return
		} else if err == nil {
			req = &body
		}
	}

	var buf bytes.Buffer
	if err := c.service.ExportCSV(ctx.Request.Context(), req, &buf); err != nil {
		response.Error(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=historique.csv")
	ctx.Data(http.StatusOK, "text/csv; charset=UTF-8", buf.Bytes())
}
