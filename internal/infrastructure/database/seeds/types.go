package seeds

import (
	"context"

	"qualite-pro-core/internal/shared/models"
)

// SeedDataStatus représente l'état des données de seeding
type SeedDataStatus struct {
	NomenclaturesExist bool `json:"nomenclatures_exist"`
	AdminExists        bool `json:"admin_exists"`
	AllDataExists      bool `json:"all_data_exists"`
}

// AdminSeed compte administrateur créé au premier démarrage
type AdminSeed struct {
	Email    string
	Password string
	Nom      string
}

// AccountStore accès minimal à la collection utilisateurs
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error)
	Insert(ctx context.Context, u *models.Utilisateur) error
}

// NomenclatureSeeder insère les référentiels par défaut ; sans effet si la collection est peuplée
type NomenclatureSeeder interface {
	Count(ctx context.Context) (int64, error)
	SeedDefaults(ctx context.Context) (int, error)
}

// SeedingService données initiales de l'application
type SeedingService interface {
	CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error)
	SeedNomenclatures(ctx context.Context) (int, error)
	// SeedAdmin retourne le mot de passe utilisé, généré quand la configuration n'en fournit pas
	SeedAdmin(ctx context.Context) (string, error)
}

// IsComplete vérifie si le seeding est complet
func (s *SeedDataStatus) IsComplete() bool {
	return s.NomenclaturesExist && s.AdminExists
}

// GetMissingSeeds retourne la liste des seeds manquants
func (s *SeedDataStatus) GetMissingSeeds() []string {
	var missing []string

	if !s.NomenclaturesExist {
		missing = append(missing, "nomenclatures")
	}
	if !s.AdminExists {
		missing = append(missing, "admin")
	}

	return missing
}
