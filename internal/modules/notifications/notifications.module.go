package notifications

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/modules/notifications/controllers"
	"qualite-pro-core/internal/modules/notifications/queries"
	"qualite-pro-core/internal/modules/notifications/scheduler"
	"qualite-pro-core/internal/modules/notifications/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
)

// NewNotifier expose le service aux modules qui créent des notifications
func NewNotifier(s *services.NotificationService) ports.Notifier {
	return s
}

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoNotificationRepository, fx.As(new(queries.NotificationRepository)))),

	fx.Provide(services.NewNotificationService),
	fx.Provide(NewNotifier),
	fx.Provide(controllers.NewNotificationController),

	scheduler.Module,

	fx.Invoke(RegisterNotificationRoutes),
)

func RegisterNotificationRoutes(
	r *gin.Engine,
	controller *controllers.NotificationController,
	authMw *authMiddleware.AuthMiddleware,
) {
	notifications := r.Group("/api/notifications")
	notifications.Use(authMiddleware.Protected(authMw)...)
	{
		notifications.GET("", controller.List)
		notifications.GET("/utilisateur/:utilisateurId", controller.ParUtilisateur)
		notifications.GET("/utilisateur/:utilisateurId/non-lues", controller.NonLues)
		notifications.POST("/relancer", controller.Relancer)
		notifications.PUT("/:id/lire", controller.MarquerLue)
		notifications.DELETE("/:id", controller.Delete)
	}

	admin := r.Group("/api/notifications")
	admin.Use(authMiddleware.RequireRoles(authMw, models.RoleAdmin)...)
	{
		admin.POST("", controller.Create)
	}
}
