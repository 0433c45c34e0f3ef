package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/database/seeds"
	nomenclatureQueries "qualite-pro-core/internal/modules/nomenclatures/queries"
	nomenclatureServices "qualite-pro-core/internal/modules/nomenclatures/services"
	utilisateurQueries "qualite-pro-core/internal/modules/utilisateurs/queries"
)

// IndexManager création idempotente des index MongoDB
type IndexManager interface {
	EnsureIndexes(ctx context.Context) (int, error)
}

// BootstrapSystem orchestre le démarrage : 3 phases séquentielles avant le serveur HTTP
type BootstrapSystem struct {
	indexes        IndexManager
	seedingManager *SeedingManager
	config         *config.Config
	timeout        time.Duration
}

// BootstrapResult contient le résultat d'exécution du bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contient le résultat d'une phase du bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

type phase struct {
	nom         string
	icone       string
	description string
	run         func(ctx context.Context, status *seeds.SeedDataStatus) (string, error)
}

func NewBootstrapSystem(
	indexes IndexManager,
	seedingManager *SeedingManager,
	config *config.Config,
) *BootstrapSystem {
	return &BootstrapSystem{
		indexes:        indexes,
		seedingManager: seedingManager,
		config:         config,
		timeout:        2 * time.Minute,
	}
}

// Execute lance les phases dans l'ordre ; la première en échec interrompt le démarrage
func (bs *BootstrapSystem) Execute() (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), bs.timeout)
	defer cancel()

	fmt.Printf("[BOOTSTRAP] Démarrage BootstrapSystem (timeout: %v)\n", bs.timeout)

	result := &BootstrapResult{
		Success:        true,
		PhasesExecuted: []PhaseResult{},
	}

	var status *seeds.SeedDataStatus
	phases := []phase{
		{
			nom:         "Phase 0: Index MongoDB",
			icone:       "🗄️ ",
			description: "Création des index des collections",
			run: func(ctx context.Context, _ *seeds.SeedDataStatus) (string, error) {
				n, err := bs.indexes.EnsureIndexes(ctx)
				if err != nil {
					return "", err
				}
				// L'état du seeding est lu une fois, après les index (unicité email)
				status, err = bs.seedingManager.CheckSeedDataExists(ctx)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%d index vérifiés", n), nil
			},
		},
		{
			nom:         "Phase 1: Nomenclatures",
			icone:       "📋",
			description: "Référentiels par défaut",
			run: func(ctx context.Context, st *seeds.SeedDataStatus) (string, error) {
				return "Nomenclatures disponibles", bs.seedingManager.SeedNomenclatures(ctx, st)
			},
		},
		{
			nom:         "Phase 2: Administrateur",
			icone:       "👤",
			description: "Compte administrateur par défaut",
			run: func(ctx context.Context, st *seeds.SeedDataStatus) (string, error) {
				return "Administrateur disponible", bs.seedingManager.SeedAdmin(ctx, st)
			},
		},
	}

	for i, p := range phases {
		phaseResult := bs.executePhase(ctx, p, status)
		result.PhasesExecuted = append(result.PhasesExecuted, phaseResult)
		if !phaseResult.Success {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("Phase %d échouée: %s", i, phaseResult.Error)
			return bs.finalizeResult(result, startTime), fmt.Errorf("bootstrap failed at phase %d: %s", i, phaseResult.Error)
		}
	}

	result = bs.finalizeResult(result, startTime)
	fmt.Printf("[BOOTSTRAP] ✅ BootstrapSystem terminé avec succès en %v\n", result.TotalDuration)
	fmt.Printf("[BOOTSTRAP] 🎯 Application prête pour démarrage serveur HTTP\n")

	return result, nil
}

func (bs *BootstrapSystem) executePhase(ctx context.Context, p phase, status *seeds.SeedDataStatus) PhaseResult {
	startTime := time.Now()
	fmt.Printf("[BOOTSTRAP] %s Démarrage %s\n", p.icone, p.nom)

	description, err := p.run(ctx, status)
	duration := time.Since(startTime)

	if err != nil {
		fmt.Printf("[BOOTSTRAP] ❌ %s échouée en %v: %v\n", p.nom, duration, err)
		return PhaseResult{
			Phase:       p.nom,
			Success:     false,
			Duration:    duration,
			Description: p.description,
			Error:       err.Error(),
		}
	}

	fmt.Printf("[BOOTSTRAP] ✅ %s terminée en %v\n", p.nom, duration)
	return PhaseResult{
		Phase:       p.nom,
		Success:     true,
		Duration:    duration,
		Description: description,
	}
}

func (bs *BootstrapSystem) finalizeResult(result *BootstrapResult, startTime time.Time) *BootstrapResult {
	result.TotalDuration = time.Since(startTime)
	return result
}

// SetTimeout configure un nouveau timeout (utile pour les tests)
func (bs *BootstrapSystem) SetTimeout(timeout time.Duration) {
	bs.timeout = timeout
}

// Providers Fx pour le système de bootstrap

// nomenclatureSeeder réunit le comptage du dépôt et l'insertion du service
type nomenclatureSeeder struct {
	nomenclatureQueries.NomenclatureRepository
	service *nomenclatureServices.NomenclatureService
}

func (n nomenclatureSeeder) SeedDefaults(ctx context.Context) (int, error) {
	return n.service.SeedDefaults(ctx)
}

func NewBootstrapSeedingService(
	accounts utilisateurQueries.UtilisateurRepository,
	repo nomenclatureQueries.NomenclatureRepository,
	service *nomenclatureServices.NomenclatureService,
	cfg *config.Config,
) seeds.SeedingService {
	return seeds.NewSeedingService(accounts, nomenclatureSeeder{repo, service}, seeds.AdminSeed{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Nom:      cfg.Seed.AdminNom,
	})
}

func NewBootstrapIndexManager(cm *mongodb.CollectionManager) IndexManager {
	return cm
}

var Module = fx.Options(
	fx.Provide(NewBootstrapIndexManager),
	fx.Provide(NewBootstrapSeedingService),
	fx.Provide(NewSeedingManager),
	fx.Provide(NewBootstrapSystem),
	fx.Invoke(RegisterBootstrapLifecycle),
)

// RegisterBootstrapLifecycle enregistre le système de bootstrap dans le cycle de vie Fx
func RegisterBootstrapLifecycle(
	lc fx.Lifecycle,
	bootstrap *BootstrapSystem,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fmt.Printf("[LIFECYCLE] 🚀 Démarrage BootstrapSystem AVANT serveur HTTP\n")

			result, err := bootstrap.Execute()
			if err != nil {
				fmt.Printf("[LIFECYCLE] ❌ Bootstrap échoué: %v\n", err)
				return fmt.Errorf("bootstrap system failed: %w", err)
			}

			fmt.Printf("[LIFECYCLE] ✅ Bootstrap terminé en %v\n", result.TotalDuration)
			return nil
		},
	})
}
