package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"qualite-pro-core/internal/app/config"
)

// Délai laissé aux requêtes en cours à l'arrêt
const shutdownTimeout = 30 * time.Second

type Application struct {
	config *config.Config
	router *gin.Engine
	log    *zap.Logger
	server *http.Server
}

func NewApplication(cfg *config.Config, router *gin.Engine, log *zap.Logger) *Application {
	return &Application{
		config: cfg,
		router: router,
		log:    log.Named("server"),
	}
}

// Start démarre le serveur HTTP avec le lifecycle Fx, après le bootstrap
func (a *Application) Start(lc fx.Lifecycle, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverConfig := a.config.GetServer()
			addr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)

			a.server = &http.Server{
				Addr:         addr,
				Handler:      a.router,
				ReadTimeout:  serverConfig.ReadTimeout,
				WriteTimeout: serverConfig.WriteTimeout,
			}

			go func() {
				a.log.Info("🚀 Démarrage serveur HTTP", zap.String("addr", addr), zap.String("env", a.config.Environment))
				if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.log.Error("❌ Échec démarrage serveur", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			a.log.Info("🛑 Arrêt serveur HTTP")

			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				a.log.Warn("⚠️ Arrêt forcé", zap.Error(err))
				return err
			}

			a.log.Info("✅ Serveur arrêté proprement")
			return nil
		},
	})
}
