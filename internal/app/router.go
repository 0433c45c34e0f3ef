package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/middleware/core"
	"qualite-pro-core/internal/shared/middleware/logging"
	"qualite-pro-core/internal/shared/middleware/security"
	"qualite-pro-core/internal/shared/response"
)

// Taille mémoire des formulaires multipart avant débordement sur disque
const maxMultipartMemory = 8 << 20

func NewRouter(
	cfg *config.Config,
	requestID core.RequestIDHandler,
	recovery core.RecoveryHandler,
	requestLogger logging.RequestLoggerHandler,
	cors security.CORSHandler,
) *gin.Engine {
	configureGinMode(cfg.Environment)

	// Router sans middleware par défaut : chaîne explicite ci-dessous
	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory
	r.HandleMethodNotAllowed = true

	// Ordre : identifiant de requête d'abord pour qu'il apparaisse dans les logs et les panics
	r.Use(
		gin.HandlerFunc(requestID),
		gin.HandlerFunc(recovery),
		gin.HandlerFunc(requestLogger),
		gin.HandlerFunc(cors),
	)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.NotFound("Route introuvable"))
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, apperrors.New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Méthode non autorisée"))
	})

	// Les routes sont enregistrées par chaque module (fx.Invoke)
	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "docker":
		gin.SetMode(gin.ReleaseMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
