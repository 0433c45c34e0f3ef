package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/utilisateurs/dto"
	"qualite-pro-core/internal/modules/utilisateurs/services"
	"qualite-pro-core/internal/shared/response"
)

type UtilisateurController struct {
	service *services.UtilisateurService
}

func NewUtilisateurController(service *services.UtilisateurService) *UtilisateurController {
	return &UtilisateurController{service: service}
}

// List - GET /api/utilisateurs
func (c *UtilisateurController) List(ctx *gin.Context) {
	users, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, users)
}

// Get - GET /api/utilisateurs/:id
func (c *UtilisateurController) Get(ctx *gin.Context) {
	u, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, u)
}

// Create - POST /api/utilisateurs et POST /api/admin/create-user
func (c *UtilisateurController) Create(ctx *gin.Context) {
	var req dto.CreateUtilisateurRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	u, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, u)
}

// Update - PUT /api/utilisateurs/:id
func (c *UtilisateurController) Update(ctx *gin.Context) {
	var req dto.UpdateUtilisateurRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	u, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, u)
}

// ToggleActif - PUT /api/utilisateurs/:id/toggle-actif
func (c *UtilisateurController) ToggleActif(ctx *gin.Context) {
	u, err := c.service.ToggleActif(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, u)
}

// ResetPassword - POST /api/utilisateurs/:id/reset-password
func (c *UtilisateurController) ResetPassword(ctx *gin.Context) {
	motDePasse, err := c.service.ResetPassword(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, dto.ResetPasswordResponse{
		Message:              "Mot de passe réinitialisé",
		MotDePasseTemporaire: motDePasse,
	})
}

// Delete - DELETE /api/utilisateurs/:id
func (c *UtilisateurController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Utilisateur supprimé")
}

// Stats - GET /api/utilisateurs/stats
func (c *UtilisateurController) Stats(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, stats)
}
