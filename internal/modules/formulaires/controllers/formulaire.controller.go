package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/formulaires/dto"
	"qualite-pro-core/internal/modules/formulaires/services"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/response"
)

type FormulaireController struct {
	service *services.FormulaireService
}

func NewFormulaireController(service *services.FormulaireService) *FormulaireController {
	return &FormulaireController{service: service}
}

func (c *FormulaireController) list(ctx *gin.Context, load func(context.Context) ([]models.FormulaireObligatoire, error)) {
	formulaires, err := load(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, formulaires)
}

// List - GET /api/formulaires-obligatoires
func (c *FormulaireController) List(ctx *gin.Context) {
	c.list(ctx, c.service.List)
}

// Retards - GET /api/formulaires-obligatoires/retards
func (c *FormulaireController) Retards(ctx *gin.Context) {
	c.list(ctx, c.service.Retards)
}

// EcheancesProches - GET /api/formulaires-obligatoires/echeances-proches
func (c *FormulaireController) EcheancesProches(ctx *gin.Context) {
	c.list(ctx, c.service.EcheancesProches)
}

// ParResponsable - GET /api/formulaires-obligatoires/responsable/:responsableId
func (c *FormulaireController) ParResponsable(ctx *gin.Context) {
	formulaires, err := c.service.ParResponsable(ctx.Request.Context(), ctx.Param("responsableId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, formulaires)
}

// ParProjet - GET /api/formulaires-obligatoires/projet/:projetId
func (c *FormulaireController) ParProjet(ctx *gin.Context) {
	formulaires, err := c.service.ParProjet(ctx.Request.Context(), ctx.Param("projetId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, formulaires)
}

// ParStatut - GET /api/formulaires-obligatoires/statut/:statut
func (c *FormulaireController) ParStatut(ctx *gin.Context) {
	formulaires, err := c.service.ParStatut(ctx.Request.Context(), ctx.Param("statut"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, formulaires)
}

// ParPriorite - GET /api/formulaires-obligatoires/priorite/:priorite
func (c *FormulaireController) ParPriorite(ctx *gin.Context) {
	formulaires, err := c.service.ParPriorite(ctx.Request.Context(), ctx.Param("priorite"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, formulaires)
}

// Get - GET /api/formulaires-obligatoires/:id
func (c *FormulaireController) Get(ctx *gin.Context) {
	f, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, f)
}

// Create - POST /api/formulaires-obligatoires
func (c *FormulaireController) Create(ctx *gin.Context) {
	var req dto.FormulaireRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	f, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, f)
}

// Update - PUT /api/formulaires-obligatoires/:id
func (c *FormulaireController) Update(ctx *gin.Context) {
	var req dto.FormulaireRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	f, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, f)
}

// MarquerSoumis - PUT /api/formulaires-obligatoires/:id/soumis
func (c *FormulaireController) MarquerSoumis(ctx *gin.Context) {
	f, err := c.service.MarquerSoumis(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, f)
}

// MarquerEnRetard - PUT /api/formulaires-obligatoires/:id/retard
func (c *FormulaireController) MarquerEnRetard(ctx *gin.Context) {
	f, err := c.service.MarquerEnRetard(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, f)
}

// Delete - DELETE /api/formulaires-obligatoires/:id
func (c *FormulaireController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Formulaire obligatoire supprimé")
}

// VerifierRetards - POST /api/formulaires-obligatoires/verifier-retards
func (c *FormulaireController) VerifierRetards(ctx *gin.Context) {
	result, err := c.service.VerifierRetards(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, result)
}

// VerifierEcheances - POST /api/formulaires-obligatoires/verifier-echeances
func (c *FormulaireController) VerifierEcheances(ctx *gin.Context) {
	result, err := c.service.VerifierEcheances(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, result)
}

// CountRetards - GET /api/formulaires-obligatoires/stats/retards
func (c *FormulaireController) CountRetards(ctx *gin.Context) {
	n, err := c.service.CountRetards(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}

// CountStatut - GET /api/formulaires-obligatoires/stats/statut/:statut
func (c *FormulaireController) CountStatut(ctx *gin.Context) {
	n, err := c.service.CountStatut(ctx.Request.Context(), ctx.Param("statut"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}

// CountResponsable - GET /api/formulaires-obligatoires/stats/responsable/:responsableId
func (c *FormulaireController) CountResponsable(ctx *gin.Context) {
	n, err := c.service.CountResponsable(ctx.Request.Context(), ctx.Param("responsableId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}
