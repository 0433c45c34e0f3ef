package database

import (
	"go.uber.org/fx"
	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/database/redis"
)

var Module = fx.Options(
	redis.Module,
	mongodb.Module,
)
