package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/modules/projets/dto"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports/portstest"
	"qualite-pro-core/internal/shared/validation"
)

type memoryRepo struct {
	projets map[string]*models.FicheProjet
}

func (m *memoryRepo) FindAll(ctx context.Context) ([]models.FicheProjet, error) {
	out := []models.FicheProjet{}
	for _, p := range m.projets {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id string) (*models.FicheProjet, error) {
	p, ok := m.projets[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryRepo) Insert(ctx context.Context, p *models.FicheProjet) error {
	p.ID = primitive.NewObjectID()
	cp := *p
	m.projets[p.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Replace(ctx context.Context, p *models.FicheProjet) error {
	cp := *p
	m.projets[p.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	delete(m.projets, id)
	return nil
}

func newService() (*ProjetService, *memoryRepo, *portstest.Recorder) {
	repo := &memoryRepo{projets: map[string]*models.FicheProjet{}}
	recorder := &portstest.Recorder{}
	return NewProjetService(repo, validation.New(), recorder, zap.NewNop()), repo, recorder
}

func TestCreate_EcheanceISO(t *testing.T) {
	svc, repo, recorder := newService()

	p, err := svc.Create(context.Background(), dto.ProjetRequest{
		Nom:      "Certification ISO 9001",
		Echeance: "2024-12-31",
		Statut:   "EN_COURS",
	})
	require.NoError(t, err)

	require.NotNil(t, p.Echeance)
	assert.True(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local).Equal(*p.Echeance))
	assert.Len(t, repo.projets, 1)

	require.Len(t, recorder.Entries, 1)
	assert.Equal(t, models.EntiteFicheProjet, recorder.Entries[0].Entite)
	assert.Equal(t, "Création du projet: Certification ISO 9001", recorder.Entries[0].Details)
}

func TestCreate_EcheanceInvalide(t *testing.T) {
	svc, repo, recorder := newService()

	_, err := svc.Create(context.Background(), dto.ProjetRequest{Nom: "Projet", Echeance: "31/12/2024"})

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Champs, "echeance")
	assert.Empty(t, repo.projets)
	assert.Empty(t, recorder.Entries)
}

func TestCreate_SansEcheance(t *testing.T) {
	svc, _, _ := newService()

	p, err := svc.Create(context.Background(), dto.ProjetRequest{Nom: "Projet sans date"})
	require.NoError(t, err)
	assert.Nil(t, p.Echeance)
}

func TestCreate_NomRequis(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), dto.ProjetRequest{Nom: "   "})

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Champs, "nom")
}

func TestUpdate_RemplaceLesChamps(t *testing.T) {
	svc, repo, recorder := newService()
	p, err := svc.Create(context.Background(), dto.ProjetRequest{Nom: "Avant", Echeance: "2024-06-01", Objectifs: "A"})
	require.NoError(t, err)

	maj, err := svc.Update(context.Background(), p.ID.Hex(), dto.ProjetRequest{Nom: "Après", Statut: "TERMINE"})
	require.NoError(t, err)

	assert.Equal(t, "Après", maj.Nom)
	assert.Empty(t, maj.Objectifs)
	assert.Nil(t, maj.Echeance, "l'échéance absente efface la précédente")
	assert.Equal(t, "TERMINE", repo.projets[p.ID.Hex()].Statut)
	assert.Equal(t, []string{models.ActionCreation, models.ActionModification}, recorder.Actions())
}

func TestGetEtDelete_Inconnu(t *testing.T) {
	svc, _, recorder := newService()
	id := primitive.NewObjectID().Hex()

	_, err := svc.Get(context.Background(), id)
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.Delete(context.Background(), id)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, recorder.Entries)
}

func TestDelete_Historise(t *testing.T) {
	svc, repo, recorder := newService()
	p, err := svc.Create(context.Background(), dto.ProjetRequest{Nom: "Projet"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID.Hex()))
	assert.Empty(t, repo.projets)
	assert.Equal(t, "Suppression du projet: Projet", recorder.Entries[1].Details)
}
