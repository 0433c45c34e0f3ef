package bootstrap

import (
	"context"
	"fmt"

	"qualite-pro-core/internal/app/config"
	"qualite-pro-core/internal/infrastructure/database/seeds"
)

// SeedingManager gère le seeding des données initiales
type SeedingManager struct {
	config      *config.Config
	seedService seeds.SeedingService
}

func NewSeedingManager(seedService seeds.SeedingService, cfg *config.Config) *SeedingManager {
	return &SeedingManager{
		config:      cfg,
		seedService: seedService,
	}
}

// CheckSeedDataExists vérifie quelles données de seeding existent déjà
func (sm *SeedingManager) CheckSeedDataExists(ctx context.Context) (*seeds.SeedDataStatus, error) {
	fmt.Printf("[SEEDING] Vérification données existantes\n")

	status, err := sm.seedService.CheckSeedDataExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification données seeding: %w", err)
	}

	fmt.Printf("[SEEDING] État données: nomenclatures=%t, admin=%t\n",
		status.NomenclaturesExist, status.AdminExists)

	return status, nil
}

// SeedNomenclatures référentiels par défaut (types, statuts, priorités...)
func (sm *SeedingManager) SeedNomenclatures(ctx context.Context, status *seeds.SeedDataStatus) error {
	if status.NomenclaturesExist {
		fmt.Printf("[SEEDING] ✅ Nomenclatures déjà présentes\n")
		return nil
	}

	fmt.Printf("[SEEDING] 📋 Création des nomenclatures par défaut\n")
	n, err := sm.seedService.SeedNomenclatures(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("[SEEDING] ✅ %d nomenclatures créées\n", n)
	return nil
}

// SeedAdmin compte administrateur issu de la configuration SEED_ADMIN_*
func (sm *SeedingManager) SeedAdmin(ctx context.Context, status *seeds.SeedDataStatus) error {
	if status.AdminExists {
		fmt.Printf("[SEEDING] ✅ Administrateur %s déjà présent\n", sm.config.Seed.AdminEmail)
		return nil
	}

	fmt.Printf("[SEEDING] 👤 Création administrateur par défaut\n")
	password, err := sm.seedService.SeedAdmin(ctx)
	if err != nil {
		return err
	}

	if sm.config.Seed.AdminPassword == "" {
		// Affiché une seule fois : aucun autre moyen de le retrouver
		fmt.Printf("[SEEDING] 🔑 Mot de passe généré pour %s: %s\n", sm.config.Seed.AdminEmail, password)
	}
	fmt.Printf("[SEEDING] ✅ Administrateur %s créé\n", sm.config.Seed.AdminEmail)
	return nil
}
