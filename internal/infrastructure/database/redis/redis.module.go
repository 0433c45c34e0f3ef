package redis

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Options(
	fx.Provide(NewRedisKeyGenerator),
	fx.Provide(NewClient),
	fx.Invoke(RegisterLifecycle),
)

// RegisterLifecycle Redis ne porte que du cache et des compteurs : son absence n'empêche pas le démarrage
func RegisterLifecycle(lc fx.Lifecycle, client *Client, log *zap.Logger) {
	log = log.Named("redis")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := client.Ping(pingCtx); err != nil {
				log.Warn("⚠️ Redis indisponible, démarrage sans cache", zap.Error(err))
				return nil
			}
			log.Info("✅ Redis connecté")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.Close()
			return nil
		},
	})
}
