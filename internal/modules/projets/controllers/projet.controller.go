package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/projets/dto"
	"qualite-pro-core/internal/modules/projets/services"
	"qualite-pro-core/internal/shared/response"
)

type ProjetController struct {
	service *services.ProjetService
}

func NewProjetController(service *services.ProjetService) *ProjetController {
	return &ProjetController{service: service}
}

// List - GET /api/projets
func (c *ProjetController) List(ctx *gin.Context) {
	projets, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, projets)
}

// Get - GET /api/projets/:id
func (c *ProjetController) Get(ctx *gin.Context) {
	p, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, p)
}

// Create - POST /api/projets
func (c *ProjetController) Create(ctx *gin.Context) {
	var req dto.ProjetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	p, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, p)
}

// Update - PUT /api/projets/:id
func (c *ProjetController) Update(ctx *gin.Context) {
	var req dto.ProjetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	p, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, p)
}

// Delete - DELETE /api/projets/:id
func (c *ProjetController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Projet supprimé")
}
