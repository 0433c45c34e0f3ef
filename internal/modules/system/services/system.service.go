package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/modules/system/dto"
	"qualite-pro-core/internal/modules/system/queries"
	"qualite-pro-core/internal/shared/apperrors"
)

const (
	NomApplication = "qualite-pro-core"
	Version        = "1.0.0"

	// Délai maximal accordé à chaque sonde de /ready
	probeTimeout = 3 * time.Second
)

type SystemService struct {
	db        queries.DatabaseProbe
	cache     queries.CacheProbe
	config    *config.Config
	log       *zap.Logger
	startedAt time.Time
	now       func() time.Time
}

func NewSystemService(db queries.DatabaseProbe, cache queries.CacheProbe, cfg *config.Config, log *zap.Logger) *SystemService {
	return &SystemService{
		db:        db,
		cache:     cache,
		config:    cfg,
		log:       log.Named("system"),
		startedAt: time.Now(),
		now:       time.Now,
	}
}

func (s *SystemService) Health() dto.HealthResponse {
	return dto.HealthResponse{Status: dto.StatusOK, Timestamp: s.now()}
}

// Ready sonde MongoDB et Redis en parallèle.
// MongoDB est indispensable ; sans Redis l'application fonctionne sans cache (statut degraded).
func (s *SystemService) Ready(ctx context.Context) (*dto.ReadinessResponse, bool) {
	var mongo, redis dto.CheckResult

	var g errgroup.Group
	g.Go(func() error {
		mongo = sonder(ctx, s.db.Ping)
		return nil
	})
	g.Go(func() error {
		redis = sonder(ctx, s.cache.Ping)
		return nil
	})
	_ = g.Wait()

	resp := &dto.ReadinessResponse{
		Status: dto.StatusOK,
		Checks: map[string]dto.CheckResult{"mongodb": mongo, "redis": redis},
	}
	switch {
	case mongo.Status != dto.StatusOK:
		resp.Status = dto.StatusDown
		s.log.Warn("MongoDB indisponible", zap.String("erreur", mongo.Erreur))
	case redis.Status != dto.StatusOK:
		resp.Status = dto.StatusDegraded
		s.log.Warn("Redis indisponible", zap.String("erreur", redis.Erreur))
	}
	return resp, resp.Status != dto.StatusDown
}

func sonder(ctx context.Context, ping func(context.Context) error) dto.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	debut := time.Now()
	err := ping(ctx)
	res := dto.CheckResult{Status: dto.StatusOK, LatenceMs: time.Since(debut).Milliseconds()}
	if err != nil {
		res.Status = dto.StatusDown
		res.Erreur = err.Error()
	}
	return res
}

// Info état de l'instance pour l'administrateur
func (s *SystemService) Info(ctx context.Context) (*dto.SystemInfoResponse, error) {
	collections, err := s.db.Collections(ctx)
	if err != nil {
		return nil, apperrors.Internal("Erreur lors de la lecture des collections", err)
	}
	slices.Sort(collections)

	stats, err := s.db.Stats(ctx)
	if err != nil {
		return nil, apperrors.Internal("Erreur lors de la lecture des statistiques", err)
	}

	now := s.now()
	info := &dto.SystemInfoResponse{
		Application: dto.ApplicationInfo{
			Nom:             NomApplication,
			Version:         Version,
			Environnement:   s.config.Environment,
			DemarreeLe:      s.startedAt,
			UptimeSecondes:  int64(now.Sub(s.startedAt).Seconds()),
			FournisseurMail: s.config.Mail.Provider,
			Planificateur:   s.config.Scheduler.Enabled,
		},
		Database: dto.DatabaseInfo{
			Nom:          stats.Nom,
			Collections:  collections,
			Documents:    stats.Documents,
			TailleOctets: stats.TailleOctets,
		},
	}

	cache := sonder(ctx, s.cache.Ping)
	info.Cache.Disponible = cache.Status == dto.StatusOK
	info.Cache.Connexions, info.Cache.ConnexionsLibres = s.cache.Connexions()

	info.Alertes = s.GenerateAlertes(info)
	return info, nil
}

// GenerateAlertes signale les réglages ou dépendances qui méritent attention
func (s *SystemService) GenerateAlertes(info *dto.SystemInfoResponse) []dto.Alerte {
	alertes := []dto.Alerte{}

	if !info.Cache.Disponible {
		alertes = append(alertes, dto.Alerte{
			Niveau:  "WARNING",
			Message: "Redis indisponible : cache des nomenclatures et limitation des connexions désactivés",
		})
	}

	if info.Application.FournisseurMail == "console" && s.config.Environment == "docker" {
		alertes = append(alertes, dto.Alerte{
			Niveau:  "WARNING",
			Message: "Les emails sont seulement journalisés (MAIL_PROVIDER=console)",
		})
	}

	if !info.Application.Planificateur {
		alertes = append(alertes, dto.Alerte{
			Niveau:  "INFO",
			Message: "Tâches planifiées désactivées : aucun passage automatique en retard ni rappel",
		})
	}

	if len(info.Database.Collections) == 0 {
		alertes = append(alertes, dto.Alerte{
			Niveau:  "CRITICAL",
			Message: fmt.Sprintf("Base %s vide : l'initialisation n'a pas été exécutée", info.Database.Nom),
		})
	}

	return alertes
}
