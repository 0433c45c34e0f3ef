package fichiers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"qualite-pro-core/internal/infrastructure/storage"
	"qualite-pro-core/internal/modules/fichiers/controllers"
	"qualite-pro-core/internal/modules/fichiers/queries"
	"qualite-pro-core/internal/modules/fichiers/services"
	authMiddleware "qualite-pro-core/internal/shared/middleware/auth"
)

func NewFileStore(s *storage.LocalStorage) services.FileStore {
	return s
}

var Module = fx.Options(
	fx.Provide(fx.Annotate(queries.NewMongoAttachmentRepository, fx.As(new(queries.AttachmentRepository)))),
	fx.Provide(NewFileStore),

	fx.Provide(services.NewFichierService),
	fx.Provide(controllers.NewFichierController),

	fx.Invoke(RegisterFichierRoutes),
)

func RegisterFichierRoutes(
	r *gin.Engine,
	controller *controllers.FichierController,
	authMw *authMiddleware.AuthMiddleware,
) {
	files := r.Group("/api/files")
	files.Use(authMiddleware.Protected(authMw)...)
	{
		files.POST("/upload", controller.Upload)
		files.GET("/download/:id", controller.Download)
		files.GET("/entity/:entityType/:entityId", controller.ParEntite)
		files.DELETE("/entity/:entityType/:entityId", controller.DeleteParEntite)
		files.GET("/:id", controller.Get)
		files.DELETE("/:id", controller.Delete)
	}
}
