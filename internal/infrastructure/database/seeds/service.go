package seeds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/utils"
)

type seedingService struct {
	accounts      AccountStore
	nomenclatures NomenclatureSeeder
	admin         AdminSeed
	now           func() time.Time
}

func NewSeedingService(accounts AccountStore, nomenclatures NomenclatureSeeder, admin AdminSeed) SeedingService {
	return &seedingService{
		accounts:      accounts,
		nomenclatures: nomenclatures,
		admin:         admin,
		now:           time.Now,
	}
}

// CheckSeedDataExists vérifie quelles données de seeding existent déjà
func (s *seedingService) CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error) {
	status := &SeedDataStatus{}

	count, err := s.nomenclatures.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification nomenclatures: %w", err)
	}
	status.NomenclaturesExist = count > 0

	adminExists, err := s.adminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification administrateur: %w", err)
	}
	status.AdminExists = adminExists

	status.AllDataExists = status.IsComplete()
	return status, nil
}

func (s *seedingService) adminExists(ctx context.Context) (bool, error) {
	if s.admin.Email == "" {
		return false, ErrAdminConfig("SEED_ADMIN_EMAIL")
	}
	_, err := s.accounts.FindByEmail(ctx, s.admin.Email)
	switch {
	case errors.Is(err, mongodb.ErrNotFound):
		return false, nil
	case err != nil:
		return false, err
	default:
		return true, nil
	}
}

func (s *seedingService) SeedNomenclatures(ctx context.Context) (int, error) {
	n, err := s.nomenclatures.SeedDefaults(ctx)
	if err != nil {
		return n, ErrSeedFailed("nomenclatures", err)
	}
	return n, nil
}

func (s *seedingService) SeedAdmin(ctx context.Context) (string, error) {
	if s.admin.Email == "" {
		return "", ErrAdminConfig("SEED_ADMIN_EMAIL")
	}

	password := s.admin.Password
	if password == "" {
		password = utils.GenerateTemporaryPassword()
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", ErrSeedFailed("admin", err)
	}

	nom := s.admin.Nom
	if nom == "" {
		nom = "Administrateur"
	}

	admin := &models.Utilisateur{
		Nom:          nom,
		Email:        strings.ToLower(strings.TrimSpace(s.admin.Email)),
		Password:     hashed,
		Role:         models.RoleAdmin,
		Actif:        true,
		DateCreation: s.now(),
		CreePar:      "bootstrap",
	}
	if err := s.accounts.Insert(ctx, admin); err != nil {
		return "", ErrSeedFailed("admin", err)
	}
	return password, nil
}
