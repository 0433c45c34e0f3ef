package app

import (
	"go.uber.org/fx"

	"qualite-pro-core/internal/app/bootstrap"
	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/database"
	"qualite-pro-core/internal/infrastructure/logger"
	"qualite-pro-core/internal/infrastructure/mail"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/infrastructure/sms"
	"qualite-pro-core/internal/infrastructure/storage"
	"qualite-pro-core/internal/modules/analytics"
	"qualite-pro-core/internal/modules/auth"
	"qualite-pro-core/internal/modules/fiches"
	"qualite-pro-core/internal/modules/fichiers"
	"qualite-pro-core/internal/modules/formulaires"
	"qualite-pro-core/internal/modules/historique"
	"qualite-pro-core/internal/modules/nomenclatures"
	"qualite-pro-core/internal/modules/notifications"
	"qualite-pro-core/internal/modules/projets"
	"qualite-pro-core/internal/modules/rapports"
	"qualite-pro-core/internal/modules/suivis"
	"qualite-pro-core/internal/modules/system"
	"qualite-pro-core/internal/modules/taches"
	"qualite-pro-core/internal/modules/utilisateurs"
	"qualite-pro-core/internal/shared/jwt"
	"qualite-pro-core/internal/shared/middleware"
	"qualite-pro-core/internal/shared/validation"
)

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),
	fx.Provide(config.NewJWTConfig),
	fx.Provide(config.NewLoggerConfig),
	fx.Provide(config.NewMailConfig),
	fx.Provide(config.NewSMSConfig),
	fx.Provide(config.NewStorageConfig),

	// Utilitaires partagés
	fx.Provide(jwt.NewManager),
	fx.Provide(validation.New),

	// Infrastructure
	logger.Module,
	metrics.Module,
	database.Module,
	mail.Module,
	sms.Module,
	storage.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,

	// Router (les modules y enregistrent leurs routes)
	fx.Provide(NewRouter),

	// Modules métier
	historique.Module,
	notifications.Module,
	utilisateurs.Module,
	auth.Module,
	nomenclatures.Module,
	fiches.Module,
	suivis.Module,
	projets.Module,
	taches.Module,
	formulaires.Module,
	fichiers.Module,
	rapports.Module,
	analytics.Module,
	system.Module,

	// Bootstrap : index, nomenclatures, administrateur, avant le serveur HTTP
	bootstrap.Module,

	// Application
	fx.Provide(NewApplication),
	fx.Invoke((*Application).Start),
)
