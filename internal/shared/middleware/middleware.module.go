package middleware

import (
	"go.uber.org/fx"

	"qualite-pro-core/internal/shared/middleware/auth"
	"qualite-pro-core/internal/shared/middleware/core"
	"qualite-pro-core/internal/shared/middleware/logging"
	"qualite-pro-core/internal/shared/middleware/security"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	fx.Provide(core.RecoveryMiddleware),
	fx.Provide(core.RequestIDMiddleware),
	fx.Provide(logging.NewRequestLogger),
	fx.Provide(security.CORSMiddleware),

	fx.Provide(security.NewRateLimiter),
	fx.Invoke(security.RegisterRateLimiterLifecycle),

	auth.AuthMiddlewareModule,
)
