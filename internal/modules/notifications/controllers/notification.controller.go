package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/notifications/dto"
	"qualite-pro-core/internal/modules/notifications/services"
	"qualite-pro-core/internal/shared/response"
)

type NotificationController struct {
	service *services.NotificationService
}

func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

// List - GET /api/notifications
func (c *NotificationController) List(ctx *gin.Context) {
	notifications, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, notifications)
}

// ParUtilisateur - GET /api/notifications/utilisateur/:utilisateurId
func (c *NotificationController) ParUtilisateur(ctx *gin.Context) {
	notifications, err := c.service.ParUtilisateur(ctx.Request.Context(), ctx.Param("utilisateurId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, notifications)
}

// NonLues - GET /api/notifications/utilisateur/:utilisateurId/non-lues
func (c *NotificationController) NonLues(ctx *gin.Context) {
	notifications, err := c.service.NonLues(ctx.Request.Context(), ctx.Param("utilisateurId"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, notifications)
}

// Create - POST /api/notifications
func (c *NotificationController) Create(ctx *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	n, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.Created(ctx, n)
}

// MarquerLue - PUT /api/notifications/:id/lire
func (c *NotificationController) MarquerLue(ctx *gin.Context) {
	n, err := c.service.MarquerLue(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, n)
}

// Delete - DELETE /api/notifications/:id
func (c *NotificationController) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Notification supprimée")
}

// Relancer - POST /api/notifications/relancer
func (c *NotificationController) Relancer(ctx *gin.Context) {
	var req dto.RelanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	if err := c.service.Relancer(ctx.Request.Context(), req); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Relance envoyée")
}
