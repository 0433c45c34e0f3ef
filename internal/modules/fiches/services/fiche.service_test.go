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
	"qualite-pro-core/internal/modules/fiches/dto"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports/portstest"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/validation"
)

type memoryRepo struct {
	fiches map[string]*models.FicheQualite
}

func (m *memoryRepo) list(keep func(*models.FicheQualite) bool) []models.FicheQualite {
	out := []models.FicheQualite{}
	for _, f := range m.fiches {
		if keep(f) {
			out = append(out, *f)
		}
	}
	return out
}

func (m *memoryRepo) FindAll(ctx context.Context) ([]models.FicheQualite, error) {
	return m.list(func(*models.FicheQualite) bool { return true }), nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id string) (*models.FicheQualite, error) {
	f, ok := m.fiches[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memoryRepo) FindByResponsable(ctx context.Context, responsable string) ([]models.FicheQualite, error) {
	return m.list(func(f *models.FicheQualite) bool { return f.Responsable == responsable }), nil
}

func (m *memoryRepo) FindByStatut(ctx context.Context, statut string) ([]models.FicheQualite, error) {
	return m.list(func(f *models.FicheQualite) bool { return f.Statut == statut }), nil
}

func (m *memoryRepo) Insert(ctx context.Context, f *models.FicheQualite) error {
	f.ID = primitive.NewObjectID()
	cp := *f
	m.fiches[f.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Replace(ctx context.Context, f *models.FicheQualite) error {
	if _, ok := m.fiches[f.ID.Hex()]; !ok {
		return mongodb.ErrNotFound
	}
	cp := *f
	m.fiches[f.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.fiches[id]; !ok {
		return mongodb.ErrNotFound
	}
	delete(m.fiches, id)
	return nil
}

var instant = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestService() (*FicheService, *memoryRepo, *portstest.Notifier, *portstest.Recorder) {
	repo := &memoryRepo{fiches: map[string]*models.FicheQualite{}}
	notifier := &portstest.Notifier{}
	recorder := &portstest.Recorder{}
	svc := NewFicheService(repo, validation.New(), notifier, recorder, zap.NewNop())
	svc.now = func() time.Time { return instant }
	return svc, repo, notifier, recorder
}

func validRequest(responsable string) dto.FicheRequest {
	return dto.FicheRequest{
		Titre:        "Audit fournisseurs",
		Description:  "Audit annuel des fournisseurs critiques",
		TypeFiche:    "audit",
		Statut:       "en_cours",
		Responsable:  responsable,
		DateEcheance: "2024-06-30",
	}
}

func TestCreate_TitreVide(t *testing.T) {
	svc, repo, notifier, recorder := newTestService()

	req := validRequest(primitive.NewObjectID().Hex())
	req.Titre = "   "
	_, err := svc.Create(context.Background(), req)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "Ce champ est requis", appErr.Champs["titre"])
	assert.Empty(t, repo.fiches)
	assert.Empty(t, notifier.Calls)
	assert.Empty(t, recorder.Entries)
}

func TestCreate_Validation(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*dto.FicheRequest)
		champ string
	}{
		{"titre trop court", func(r *dto.FicheRequest) { r.Titre = "ab" }, "titre"},
		{"description trop courte", func(r *dto.FicheRequest) { r.Description = "court" }, "description"},
		{"type inconnu", func(r *dto.FicheRequest) { r.TypeFiche = "INSPECTION" }, "typeFiche"},
		{"statut manquant", func(r *dto.FicheRequest) { r.Statut = "" }, "statut"},
		{"responsable manquant", func(r *dto.FicheRequest) { r.Responsable = " " }, "responsable"},
		{"échéance illisible", func(r *dto.FicheRequest) { r.DateEcheance = "fin juin" }, "dateEcheance"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _, _ := newTestService()
			req := validRequest("Jean Dupont")
			tc.edit(&req)

			_, err := svc.Create(context.Background(), req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Contains(t, appErr.Champs, tc.champ)
		})
	}
}

func TestCreate_NotifieLeResponsableEtTrace(t *testing.T) {
	svc, _, notifier, recorder := newTestService()
	responsable := primitive.NewObjectID().Hex()
	ctx := requestctx.WithActor(context.Background(), requestctx.Actor{UserID: "chef-1"})

	f, err := svc.Create(ctx, validRequest(responsable))
	require.NoError(t, err)

	assert.Equal(t, models.TypeFicheAudit, f.TypeFiche)
	assert.Equal(t, models.StatutFicheEnCours, f.Statut)
	assert.Equal(t, instant, f.DateCreation)
	assert.Equal(t, "chef-1", f.CreePar)

	require.Len(t, notifier.Calls, 1)
	assert.Equal(t, responsable, notifier.Calls[0].UtilisateurID)
	assert.Equal(t, "Nouvelle fiche qualité créée: Audit fournisseurs", notifier.Calls[0].Message)
	assert.Equal(t, models.NotifFicheQualite, notifier.Calls[0].Type)
	assert.Equal(t, []string{models.ActionCreation}, recorder.Actions())
}

func TestUpdate_EtDelete(t *testing.T) {
	svc, _, _, recorder := newTestService()
	f, err := svc.Create(context.Background(), validRequest("Jean Dupont"))
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", f.CreePar, "sans utilisateur connecté, le responsable est l'auteur")

	req := validRequest("Jean Dupont")
	req.Statut = models.StatutFicheTerminee
	updated, err := svc.Update(context.Background(), f.ID.Hex(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatutFicheTerminee, updated.Statut)
	require.NotNil(t, updated.DateModification)
	assert.Equal(t, instant, updated.DateModification.UTC())

	require.NoError(t, svc.Delete(context.Background(), f.ID.Hex()))
	_, err = svc.Get(context.Background(), f.ID.Hex())
	assert.True(t, apperrors.IsNotFound(err))

	assert.Equal(t, []string{models.ActionCreation, models.ActionModification, models.ActionSuppression}, recorder.Actions())
}

func TestUpdate_Inconnue(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), validRequest("x"))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStats(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, _ = svc.Create(context.Background(), validRequest("a"))
	req := validRequest("b")
	req.TypeFiche = models.TypeFicheControle
	_, _ = svc.Create(context.Background(), req)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.ParStatut[models.StatutFicheEnCours])
	assert.Equal(t, 1, stats.ParType[models.TypeFicheControle])
}
