package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/fiches/dto"
	"qualite-pro-core/internal/modules/fiches/services"
	"qualite-pro-core/internal/shared/response"
)

type FicheController struct {
	service *services.FicheService
}

func NewFicheController(service *services.FicheService) *FicheController {
	return &FicheController{service: service}
}

// List - GET /api/fiches
func (c *FicheController) List(ctx *gin.Context) {
	fiches, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, fiches)
}

// Get - GET /api/fiches/:id
func (c *FicheController) Get(ctx *gin.Context) {
	f, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, f)
}

// ParResponsable - GET /api/fiches/responsable/:responsable
func (c *FicheController) ParResponsable(ctx *gin.Context) {
	fiches, err := c.service.ParResponsable(ctx.Request.Context(), ctx.Param("responsable"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, fiches)
}

// ParStatut - GET /api/fiches/statut/:statut
func (c *FicheController) ParStatut(ctx *gin.Context) {
	fiches, err := c.service.ParStatut(ctx.Request.Context(), ctx.Param("statut"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, fiches)
}

// Stats - GET /api/fiches/stats
func (c *FicheController) Stats(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, stats)
}

// Create - POST /api/fiches
func (c *FicheController) Create(ctx *gin.Context) {
	var req dto.FicheRequest
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

// Update - PUT /api/fiches/:id
func (c *FicheController) Update(ctx *gin.Context) {
	var req dto.FicheRequest
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

// Delete - DELETE /api/fiches/:id
func (c *FicheController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Fiche qualité supprimée")
}
