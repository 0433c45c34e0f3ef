// Package scheduler tâches périodiques : digest des notifications non lues,
// bascule des formulaires en retard et rappel des échéances.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/metrics"
	formulaireServices "qualite-pro-core/internal/modules/formulaires/services"
	"qualite-pro-core/internal/modules/notifications/dto"
	"qualite-pro-core/internal/modules/notifications/services"
)

// Noms des jobs, utilisés comme label de métrique
const (
	JobDigest   = "digest"
	JobRetards  = "retards"
	JobEcheance = "echeances"
)

// fenêtre du rappel d'échéance envoyé par le job echeances
const fenetreRappel = 24 * time.Hour

type Digester interface {
	EnvoyerDigest(ctx context.Context) (*dto.DigestResult, error)
}

type FormulaireSweeper interface {
	BasculerRetards(ctx context.Context) (int, error)
	RappelerEcheances(ctx context.Context, fenetre time.Duration) (int, error)
}

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error

	// un passage en cours fait sauter le tick suivant
	mu sync.Mutex
}

type Scheduler struct {
	enabled bool
	jobs    []*job
	metrics *metrics.Metrics
	log     *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(
	cfg *config.Config,
	notifications *services.NotificationService,
	formulaires *formulaireServices.FormulaireService,
	m *metrics.Metrics,
	log *zap.Logger,
) *Scheduler {
	return newScheduler(cfg.GetScheduler(), notifications, formulaires, m, log)
}

func newScheduler(cfg config.SchedulerConfig, digest Digester, sweeper FormulaireSweeper, m *metrics.Metrics, log *zap.Logger) *Scheduler {
	s := &Scheduler{
		enabled: cfg.Enabled,
		metrics: m,
		log:     log.Named("scheduler"),
	}

	s.jobs = []*job{
		{
			name:     JobDigest,
			interval: cfg.DigestInterval,
			run: func(ctx context.Context) error {
				result, err := digest.EnvoyerDigest(ctx)
				if err != nil {
					return err
				}
				s.log.Info("digest envoyé",
					zap.Int("utilisateurs", result.Utilisateurs),
					zap.Int("emails", result.EmailsEnvoyes),
					zap.Int("notifications", result.Notifications),
				)
				return nil
			},
		},
		{
			name:     JobRetards,
			interval: cfg.RetardInterval,
			run: func(ctx context.Context) error {
				n, err := sweeper.BasculerRetards(ctx)
				s.metrics.FormulairesRetard.Add(float64(n))
				if n > 0 {
					s.log.Info("formulaires passés en retard", zap.Int("nombre", n))
				}
				return err
			},
		},
		{
			name:     JobEcheance,
			interval: cfg.EcheanceInterval,
			run: func(ctx context.Context) error {
				n, err := sweeper.RappelerEcheances(ctx, fenetreRappel)
				if n > 0 {
					s.log.Info("rappels d'échéance envoyés", zap.Int("nombre", n))
				}
				return err
			},
		},
	}
	return s
}

// runOnce exécute le job sauf si un passage précédent est encore en cours
func (s *Scheduler) runOnce(ctx context.Context, j *job) bool {
	if !j.mu.TryLock() {
		s.log.Warn("passage ignoré, exécution précédente en cours", zap.String("job", j.name))
		return false
	}
	defer j.mu.Unlock()

	start := time.Now()
	err := j.run(ctx)
	s.metrics.RecordSchedulerRun(j.name, err)
	if err != nil && ctx.Err() == nil {
		s.log.Error("échec du job planifié", zap.String("job", j.name), zap.Error(err))
		return true
	}
	s.log.Debug("job planifié terminé", zap.String("job", j.name), zap.Duration("duree", time.Since(start)))
	return true
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.wg.Done()
	defer s.metrics.SetBackgroundTaskStatus("scheduler_"+j.name, false)

	s.metrics.SetBackgroundTaskStatus("scheduler_"+j.name, true)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// passage asynchrone : un tick pendant une exécution est ignoré
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.runOnce(ctx, j)
			}()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) Start() {
	if !s.enabled {
		s.log.Info("planificateur désactivé")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	for _, j := range s.jobs {
		if j.interval <= 0 {
			s.log.Warn("job sans intervalle, non démarré", zap.String("job", j.name))
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, j)
		s.log.Info("job planifié démarré", zap.String("job", j.name), zap.Duration("intervalle", j.interval))
	}
}

// Stop annule les passages en cours et attend leur fin, dans la limite de ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func RegisterSchedulerLifecycle(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewScheduler),
	fx.Invoke(RegisterSchedulerLifecycle),
)
