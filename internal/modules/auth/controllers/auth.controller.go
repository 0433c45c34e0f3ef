package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/modules/auth/dto"
	"qualite-pro-core/internal/modules/auth/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/response"
	"qualite-pro-core/internal/shared/utils"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login - POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequestBody(ctx, err)
		return
	}

	// route publique : seule la provenance est connue avant authentification
	reqCtx := requestctx.WithActor(ctx.Request.Context(), requestctx.Actor{
		IP:        utils.ClientIP(ctx.Request),
		UserAgent: ctx.Request.UserAgent(),
		RequestID: ctx.GetString("request_id"),
	})

	result, err := c.authService.Login(reqCtx, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, result)
}

// Logout - POST /api/auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), authMiddleware.Claims(ctx)); err != nil {
		response.Error(ctx, err)
		return
	}
	response.Message(ctx, http.StatusOK, "Déconnexion réussie")
}

// Me - GET /api/auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	me, err := c.authService.Me(ctx.Request.Context(), authMiddleware.Claims(ctx))
	if err != nil {
		response.Error(ctx, err)
		return
	}
	response.OK(ctx, me)
}
