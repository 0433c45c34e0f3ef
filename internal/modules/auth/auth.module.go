package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/auth/controllers"
	"qualite-pro-core/internal/modules/auth/queries"
	"qualite-pro-core/internal/modules/auth/services"
	utilisateurQueries "qualite-pro-core/internal/modules/utilisateurs/queries"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/middleware/security"
)

func NewAccountStore(repo utilisateurQueries.UtilisateurRepository) services.AccountStore {
	return repo
}

// Module regroupe tous les providers du domaine Auth
var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewRedisLoginAttempts, fx.As(new(queries.LoginAttempts)))),
	fx.Provide(NewAccountStore),

	fx.Provide(services.NewAuthService),
	fx.Provide(controllers.NewAuthController),

	fx.Invoke(RegisterAuthRoutes),
)

// RegisterAuthRoutes login public et limité par IP ; logout et me protégés
func RegisterAuthRoutes(
	r *gin.Engine,
	authController *controllers.AuthController,
	authMw *authMiddleware.AuthMiddleware,
	limiter *security.RateLimiter,
) {
	authAPI := r.Group("/api/auth")
	authAPI.Use(limiter.Middleware())
	{
		authAPI.POST("/login", authController.Login)
	}

	protected := r.Group("/api/auth")
	protected.Use(limiter.Middleware())
	protected.Use(authMiddleware.Protected(authMw)...)
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/me", authController.Me)
	}
}
