package seeds

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/utils"
)

type memAccounts struct {
	users map[string]*models.Utilisateur
}

func (m *memAccounts) FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, mongodb.ErrNotFound
}

func (m *memAccounts) Insert(ctx context.Context, u *models.Utilisateur) error {
	m.users[u.Email] = u
	return nil
}

type memNomenclatures struct {
	count    int64
	seedErr  error
	appelees int
}

func (m *memNomenclatures) Count(ctx context.Context) (int64, error) { return m.count, nil }

func (m *memNomenclatures) SeedDefaults(ctx context.Context) (int, error) {
	m.appelees++
	if m.seedErr != nil {
		return 0, m.seedErr
	}
	m.count = 12
	return 12, nil
}

func TestCheckSeedDataExists(t *testing.T) {
	accounts := &memAccounts{users: map[string]*models.Utilisateur{}}
	svc := NewSeedingService(accounts, &memNomenclatures{}, AdminSeed{Email: "admin@qualite.fr"})

	status, err := svc.CheckSeedDataExists(context.Background())
	require.NoError(t, err)
	assert.False(t, status.AllDataExists)
	assert.Equal(t, []string{"nomenclatures", "admin"}, status.GetMissingSeeds())

	accounts.users["admin@qualite.fr"] = &models.Utilisateur{}
	status, err = svc.CheckSeedDataExists(context.Background())
	require.NoError(t, err)
	assert.True(t, status.AdminExists)
	assert.Equal(t, []string{"nomenclatures"}, status.GetMissingSeeds())
}

func TestSeedAdmin_MotDePasseConfigure(t *testing.T) {
	accounts := &memAccounts{users: map[string]*models.Utilisateur{}}
	svc := NewSeedingService(accounts, &memNomenclatures{}, AdminSeed{Email: " Admin@Qualite.fr ", Password: "Secret123!"})

	password, err := svc.SeedAdmin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Secret123!", password)

	admin := accounts.users["admin@qualite.fr"]
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrateur", admin.Nom)
	assert.True(t, admin.Actif)
	assert.True(t, utils.CheckPassword(admin.Password, "Secret123!"))
}

func TestSeedAdmin_MotDePasseGenere(t *testing.T) {
	accounts := &memAccounts{users: map[string]*models.Utilisateur{}}
	svc := NewSeedingService(accounts, &memNomenclatures{}, AdminSeed{Email: "admin@qualite.fr", Nom: "Qualité"})

	password, err := svc.SeedAdmin(context.Background())
	require.NoError(t, err)

	assert.Regexp(t, `^Temp[0-9a-f]{8}!$`, password)
	assert.True(t, utils.CheckPassword(accounts.users["admin@qualite.fr"].Password, password))
}

func TestSeedAdmin_SansEmail(t *testing.T) {
	svc := NewSeedingService(&memAccounts{users: map[string]*models.Utilisateur{}}, &memNomenclatures{}, AdminSeed{})

	_, err := svc.SeedAdmin(context.Background())

	var seedErr *SeedingError
	require.ErrorAs(t, err, &seedErr)
	assert.Equal(t, "admin_config", seedErr.Type)
}

func TestSeedNomenclatures_Erreur(t *testing.T) {
	nomenclatures := &memNomenclatures{seedErr: errors.New("duplicate key")}
	svc := NewSeedingService(&memAccounts{users: map[string]*models.Utilisateur{}}, nomenclatures, AdminSeed{Email: "a@b.fr"})

	_, err := svc.SeedNomenclatures(context.Background())

	assert.ErrorContains(t, err, "seeding nomenclatures échoué")
	assert.Equal(t, 1, nomenclatures.appelees)
}
