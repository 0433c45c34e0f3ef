package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/mail"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/modules/utilisateurs/dto"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports/portstest"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/utils"
	"qualite-pro-core/internal/shared/validation"
)

type memoryRepo struct {
	users map[string]*models.Utilisateur
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]*models.Utilisateur{}}
}

func (m *memoryRepo) FindAll(ctx context.Context) ([]models.Utilisateur, error) {
	out := []models.Utilisateur{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id string) (*models.Utilisateur, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryRepo) FindByEmail(ctx context.Context, email string) (*models.Utilisateur, error) {
	for _, u := range m.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, mongodb.ErrNotFound
}

func (m *memoryRepo) Insert(ctx context.Context, u *models.Utilisateur) error {
	u.ID = primitive.NewObjectID()
	cp := *u
	m.users[u.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Replace(ctx context.Context, u *models.Utilisateur) error {
	if _, ok := m.users[u.ID.Hex()]; !ok {
		return mongodb.ErrNotFound
	}
	cp := *u
	m.users[u.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return mongodb.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

type fixture struct {
	service  *UtilisateurService
	repo     *memoryRepo
	sender   *mail.ConsoleSender
	notifier *portstest.Notifier
	recorder *portstest.Recorder
}

func newFixture() *fixture {
	repo := newMemoryRepo()
	sender := mail.NewConsoleSender(zap.NewNop())
	notifier := &portstest.Notifier{}
	recorder := &portstest.Recorder{}
	svc := NewUtilisateurService(repo, validation.New(), mail.NewMailer(sender, metrics.NewMetrics(), zap.NewNop()), notifier, recorder, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }
	return &fixture{service: svc, repo: repo, sender: sender, notifier: notifier, recorder: recorder}
}

func adminCtx() context.Context {
	return requestctx.WithActor(context.Background(), requestctx.Actor{UserID: "admin-1", Role: models.RoleAdmin})
}

func TestCreate_MotDePasseGenereEtEmailDeBienvenue(t *testing.T) {
	f := newFixture()

	u, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{
		Nom:   "Kouassi",
		Email: "  Awa.Kouassi@Qualite.fr ",
		Role:  models.RoleChefProjet,
	})
	require.NoError(t, err)

	assert.Equal(t, "awa.kouassi@qualite.fr", u.Email)
	assert.True(t, u.Actif)
	assert.Equal(t, "admin-1", u.CreePar)
	assert.True(t, strings.HasPrefix(u.Password, "$2"), "mot de passe haché")

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, mail.SubjectBienvenue, sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Temp")
	assert.Equal(t, []string{models.ActionCreation}, f.recorder.Actions())
}

func TestCreate_EmailDuplique(t *testing.T) {
	f := newFixture()
	_, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "A", Email: "a@b.fr", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "B", Email: "A@B.fr", Password: "secret1", Role: models.RoleAdmin})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: " ", Email: "pas-un-email", Role: "STAGIAIRE"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Champs, "nom")
	assert.Contains(t, appErr.Champs, "email")
	assert.Contains(t, appErr.Champs, "role")
}

func TestUpdate_NeModifiePasLeMotDePasse(t *testing.T) {
	f := newFixture()
	u, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "A", Email: "a@b.fr", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)
	hash := f.repo.users[u.ID.Hex()].Password

	actif := false
	updated, err := f.service.Update(adminCtx(), u.ID.Hex(), dto.UpdateUtilisateurRequest{
		Nom: "A2", Email: "a@b.fr", Role: models.RolePiloteQualite, Actif: &actif,
	})
	require.NoError(t, err)

	assert.Equal(t, hash, f.repo.users[u.ID.Hex()].Password)
	assert.Equal(t, models.RolePiloteQualite, updated.Role)
	assert.False(t, updated.Actif)
	require.NotNil(t, updated.DateModification)
}

func TestUpdate_EmailNormaliseAvantValidation(t *testing.T) {
	f := newFixture()
	u, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "A", Email: "a@b.fr", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)

	updated, err := f.service.Update(adminCtx(), u.ID.Hex(), dto.UpdateUtilisateurRequest{
		Nom: "A", Email: "\t A@B.FR  ", Role: models.RoleAdmin,
	})
	require.NoError(t, err, "son propre email, même mal saisi, n'est pas un doublon")
	assert.Equal(t, "a@b.fr", updated.Email)

	_, err = f.service.Update(adminCtx(), u.ID.Hex(), dto.UpdateUtilisateurRequest{
		Nom: "A", Email: "   ", Role: models.RoleAdmin,
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestUpdate_Inconnu(t *testing.T) {
	f := newFixture()
	_, err := f.service.Update(adminCtx(), primitive.NewObjectID().Hex(), dto.UpdateUtilisateurRequest{Nom: "A", Email: "a@b.fr", Role: models.RoleAdmin})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestToggleActif_NotifieLUtilisateur(t *testing.T) {
	f := newFixture()
	u, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "A", Email: "a@b.fr", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)

	toggled, err := f.service.ToggleActif(adminCtx(), u.ID.Hex())
	require.NoError(t, err)
	assert.False(t, toggled.Actif)

	require.Len(t, f.notifier.Calls, 1)
	assert.Equal(t, u.ID.Hex(), f.notifier.Calls[0].UtilisateurID)
	assert.Contains(t, f.notifier.Calls[0].Message, "désactivé")
}

func TestResetPassword(t *testing.T) {
	f := newFixture()
	u, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "A", Email: "a@b.fr", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)

	motDePasse, err := f.service.ResetPassword(adminCtx(), u.ID.Hex())
	require.NoError(t, err)

	assert.True(t, utils.CheckPassword(f.repo.users[u.ID.Hex()].Password, motDePasse))
	sent := f.sender.Sent()
	assert.Equal(t, mail.SubjectResetPassword, sent[len(sent)-1].Subject)
}

func TestDeleteEtStats(t *testing.T) {
	f := newFixture()
	a, err := f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "A", Email: "a@b.fr", Password: "secret1", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = f.service.Create(adminCtx(), dto.CreateUtilisateurRequest{Nom: "B", Email: "b@b.fr", Password: "secret1", Role: models.RoleChefProjet})
	require.NoError(t, err)

	stats, err := f.service.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Actifs)
	assert.Equal(t, 1, stats.ParRole[models.RoleAdmin])
	assert.Equal(t, 0, stats.ParRole[models.RolePiloteQualite])

	require.NoError(t, f.service.Delete(adminCtx(), a.ID.Hex()))
	assert.True(t, apperrors.IsNotFound(f.service.Delete(adminCtx(), a.ID.Hex())))
}
