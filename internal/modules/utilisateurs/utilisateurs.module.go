package utilisateurs

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/utilisateurs/controllers"
	"qualite-pro-core/internal/modules/utilisateurs/queries"
	"qualite-pro-core/internal/modules/utilisateurs/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
)

// NewUserDirectory expose le repository aux autres modules (historique, notifications, auth)
func NewUserDirectory(repo queries.UtilisateurRepository) ports.UserDirectory {
	return repo
}

// Module regroupe tous les providers du domaine Utilisateurs
var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoUtilisateurRepository, fx.As(new(queries.UtilisateurRepository)))),
	fx.Provide(NewUserDirectory),

	fx.Provide(services.NewUtilisateurService),
	fx.Provide(controllers.NewUtilisateurController),

	fx.Invoke(RegisterUtilisateurRoutes),
)

// RegisterUtilisateurRoutes lecture pour tous les rôles, écriture réservée à ADMIN
func RegisterUtilisateurRoutes(
	r *gin.Engine,
	controller *controllers.UtilisateurController,
	authMw *authMiddleware.AuthMiddleware,
) {
	lecture := r.Group("/api/utilisateurs")
	lecture.Use(authMiddleware.Protected(authMw)...)
	{
		lecture.GET("", controller.List)
		lecture.GET("/stats", controller.Stats)
		lecture.GET("/:id", controller.Get)
	}

	admin := r.Group("/api/utilisateurs")
	admin.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin)...)
	{
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.PUT("/:id/toggle-actif", controller.ToggleActif)
		admin.POST("/:id/reset-password", controller.ResetPassword)
		admin.DELETE("/:id", controller.Delete)
	}

	adminAPI := r.Group("/api/admin")
	adminAPI.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin)...)
	{
		adminAPI.POST("/create-user", controller.Create)
	}
}
