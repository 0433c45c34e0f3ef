package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Délai du ping initial : au-delà, le démarrage échoue
const startupPingTimeout = 10 * time.Second

var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Provide(NewCollectionManager),
	fx.Invoke(RegisterLifecycle),
)

// RegisterLifecycle MongoDB est la seule dépendance bloquante du démarrage
func RegisterLifecycle(lc fx.Lifecycle, client *Client, log *zap.Logger) {
	log = log.Named("mongodb")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
			defer cancel()

			if err := client.Ping(pingCtx); err != nil {
				return fmt.Errorf("MongoDB indisponible: %w", err)
			}
			log.Info("✅ MongoDB connecté", zap.String("database", client.Database().Name()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("🛑 Fermeture des connexions MongoDB")
			return client.Close(ctx)
		},
	})
}
