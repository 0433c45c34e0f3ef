package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/system/services"
	"qualite-pro-core/internal/shared/response"
)

type SystemController struct {
	service *services.SystemService
}

func NewSystemController(service *services.SystemService) *SystemController {
	return &SystemController{
		service: service,
	}
}

// Health - GET /health
// Vivacité du processus, sans appel aux dépendances
func (c *SystemController) Health(ctx *gin.Context) {
	response.OK(ctx, c.service.Health())
}

// Ready - GET /ready
// 503 tant que MongoDB ne répond pas
func (c *SystemController) Ready(ctx *gin.Context) {
	status, ok := c.service.Ready(ctx.Request.Context())
	if !ok {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"data":    status,
		})
		return
	}
	response.OK(ctx, status)
}

// GetSystemInfo - GET /api/system/info
func (c *SystemController) GetSystemInfo(ctx *gin.Context) {
	info, err := c.service.Info(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, info)
}
