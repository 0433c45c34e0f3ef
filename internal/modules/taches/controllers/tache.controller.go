package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/taches/dto"
	"qualite-pro-core/internal/modules/taches/services"
	"qualite-pro-core/internal/shared/response"
)

type TacheController struct {
	service *services.TacheService
}

func NewTacheController(service *services.TacheService) *TacheController {
	return &TacheController{service: service}
}

// List - GET /api/taches
func (c *TacheController) List(ctx *gin.Context) {
	taches, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, taches)
}

// ParUtilisateur - GET /api/taches/utilisateur/:userId
func (c *TacheController) ParUtilisateur(ctx *gin.Context) {
	taches, err := c.service.ParUtilisateur(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, taches)
}

// ParProjet - GET /api/taches/projet/:projetId
func (c *TacheController) ParProjet(ctx *gin.Context) {
	taches, err := c.service.ParProjet(ctx.Request.Context(), ctx.Param("projetId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, taches)
}

func (c *TacheController) Get(ctx *gin.Context) {
	t, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, t)
}

func (c *TacheController) Create(ctx *gin.Context) {
	var req dto.TacheRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	t, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, t)
}

func (c *TacheController) Update(ctx *gin.Context) {
	var req dto.TacheRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	t, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, t)
}

// Terminer - PUT /api/taches/:id/terminer
func (c *TacheController) Terminer(ctx *gin.Context) {
	t, err := c.service.Terminer(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, t)
}

func (c *TacheController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Tâche supprimée")
}

// Stats - GET /api/taches/stats/:userId
func (c *TacheController) Stats(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, stats)
}
