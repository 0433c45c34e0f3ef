package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/suivis/dto"
	"qualite-pro-core/internal/modules/suivis/services"
	"qualite-pro-core/internal/shared/response"
)

type SuiviController struct {
	service *services.SuiviService
}

func NewSuiviController(service *services.SuiviService) *SuiviController {
	return &SuiviController{service: service}
}

// List - GET /api/suivis
func (c *SuiviController) List(ctx *gin.Context) {
	suivis, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, suivis)
}

// Get - GET /api/suivis/:id
func (c *SuiviController) Get(ctx *gin.Context) {
	suivi, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, suivi)
}

// ParFiche - GET /api/suivis/fiche/:ficheId
func (c *SuiviController) ParFiche(ctx *gin.Context) {
	suivis, err := c.service.ParFiche(ctx.Request.Context(), ctx.Param("ficheId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, suivis)
}

// ParUtilisateur - GET /api/suivis/utilisateur/:utilisateurId
func (c *SuiviController) ParUtilisateur(ctx *gin.Context) {
	suivis, err := c.service.ParUtilisateur(ctx.Request.Context(), ctx.Param("utilisateurId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, suivis)
}

// Stats - GET /api/suivis/stats
func (c *SuiviController) Stats(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, stats)
}

// Create - POST /api/suivis
func (c *SuiviController) Create(ctx *gin.Context) {
	var req dto.SuiviRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	suivi, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, suivi)
}

// Update - PUT /api/suivis/:id
func (c *SuiviController) Update(ctx *gin.Context) {
	var req dto.SuiviRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	suivi, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, suivi)
}

// Delete - DELETE /api/suivis/:id
func (c *SuiviController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Fiche de suivi supprimée")
}
