package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qualite-pro-core/internal/modules/historique/dto"
	"qualite-pro-core/internal/modules/historique/queries"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
	"qualite-pro-core/internal/shared/ports/portstest"
	"qualite-pro-core/internal/shared/requestctx"
	"qualite-pro-core/internal/shared/validation"
)

type memoryRepo struct {
	entries   []models.HistoriqueAction
	lastQuery queries.Filter
	insertErr error
}

func (m *memoryRepo) Insert(ctx context.Context, h *models.HistoriqueAction) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, *h)
	return nil
}

func (m *memoryRepo) match(f queries.Filter, h models.HistoriqueAction) bool {
	if f.Action != "" && h.Action != f.Action {
		return false
	}
	if f.Entite != "" && h.Entite != f.Entite {
		return false
	}
	if f.EntiteID != "" && h.EntiteID != f.EntiteID {
		return false
	}
	if f.UtilisateurID != "" && h.UtilisateurID != f.UtilisateurID {
		return false
	}
	if f.Debut != nil && h.DateAction.Before(*f.Debut) {
		return false
	}
	if f.Fin != nil && !h.DateAction.Before(*f.Fin) {
		return false
	}
	return true
}

func (m *memoryRepo) Find(ctx context.Context, f queries.Filter) ([]models.HistoriqueAction, error) {
	m.lastQuery = f
	out := []models.HistoriqueAction{}
	for _, h := range m.entries {
		if m.match(f, h) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memoryRepo) Count(ctx context.Context, f queries.Filter) (int64, error) {
	list, _ := m.Find(ctx, f)
	return int64(len(list)), nil
}

// mercredi
var fixedNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func newService(users ...*models.Utilisateur) (*HistoriqueService, *memoryRepo) {
	repo := &memoryRepo{}
	svc := NewHistoriqueService(repo, portstest.NewUsers(users...), validation.New(), zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestEnregistrerAction_SansUtilisateur(t *testing.T) {
	svc, repo := newService()

	svc.EnregistrerAction(context.Background(), ports.ActionEntry{
		Action: models.ActionCreation, Entite: models.EntiteFicheQualite, EntiteID: "f1",
	})

	require.Len(t, repo.entries, 1)
	assert.Equal(t, "Système", repo.entries[0].UtilisateurNom)
	assert.Equal(t, "N/A", repo.entries[0].IPAdresse)
	assert.Equal(t, fixedNow, repo.entries[0].DateAction)
}

func TestEnregistrerAction_ActeurEtValeurs(t *testing.T) {
	u := &models.Utilisateur{Nom: "Kouassi", Prenom: "Awa"}
	svc, repo := newService(u)
	ctx := requestctx.WithActor(context.Background(), requestctx.Actor{
		UserID: u.ID.Hex(), IP: "203.0.113.7", UserAgent: "test-agent",
	})

	svc.EnregistrerAction(ctx, ports.ActionEntry{
		Action:           models.ActionModification,
		Entite:           models.EntiteFicheProjet,
		AnciennesValeurs: map[string]string{"nom": "avant"},
		NouvellesValeurs: map[string]string{"nom": "après"},
	})

	require.Len(t, repo.entries, 1)
	h := repo.entries[0]
	assert.Equal(t, "Awa Kouassi", h.UtilisateurNom)
	assert.Equal(t, "203.0.113.7", h.IPAdresse)
	assert.Equal(t, "test-agent", h.UserAgent)
	assert.JSONEq(t, `{"nom":"avant"}`, h.AnciennesValeurs)
	assert.JSONEq(t, `{"nom":"après"}`, h.NouvellesValeurs)
}

func TestEnregistrerAction_UtilisateurInconnuEtErreurAvalee(t *testing.T) {
	svc, repo := newService()
	ctx := requestctx.WithActor(context.Background(), requestctx.Actor{UserID: "64b7f0c2a1b2c3d4e5f60718"})

	svc.EnregistrerAction(ctx, ports.ActionEntry{Action: models.ActionSuppression})
	assert.Equal(t, "Utilisateur inconnu", repo.entries[0].UtilisateurNom)

	repo.insertErr = errors.New("mongo indisponible")
	assert.NotPanics(t, func() {
		svc.EnregistrerAction(ctx, ports.ActionEntry{Action: models.ActionSuppression})
	})
}

func TestFiltrer_PeriodeSemaine(t *testing.T) {
	svc, repo := newService()
	repo.entries = []models.HistoriqueAction{
		{Action: models.ActionCreation, Entite: models.EntiteFicheQualite, DateAction: fixedNow.AddDate(0, 0, -1)},
		{Action: models.ActionCreation, Entite: models.EntiteFicheQualite, DateAction: fixedNow.AddDate(0, 0, -10)},
		{Action: models.ActionSuppression, Entite: models.EntiteFicheQualite, DateAction: fixedNow},
	}

	list, err := svc.Filtrer(context.Background(), dto.FiltresRequest{TypeAction: "creation", Module: "fiche_qualite", Periode: dto.PeriodeSemaine})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NotNil(t, repo.lastQuery.Debut)
	assert.Equal(t, time.Monday, repo.lastQuery.Debut.Weekday())
	assert.Equal(t, 13, repo.lastQuery.Debut.Day())
}

func TestFiltrer_DatesInvalides(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Filtrer(context.Background(), dto.FiltresRequest{DateDebut: "hier"})
	assert.Error(t, err)

	_, err = svc.Filtrer(context.Background(), dto.FiltresRequest{DateDebut: "2024-05-10", DateFin: "2024-05-01"})
	assert.Error(t, err)

	_, err = svc.Filtrer(context.Background(), dto.FiltresRequest{Periode: "annee"})
	assert.Error(t, err)
}

func TestParPeriode_FinIncluse(t *testing.T) {
	svc, repo := newService()
	repo.entries = []models.HistoriqueAction{
		{Action: models.ActionCreation, DateAction: time.Date(2024, 5, 10, 23, 0, 0, 0, time.Local)},
	}

	list, err := svc.ParPeriode(context.Background(), "2024-05-10", "2024-05-10")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStats(t *testing.T) {
	svc, repo := newService()
	repo.entries = []models.HistoriqueAction{
		{DateAction: fixedNow},
		{DateAction: fixedNow.AddDate(0, 0, -2)},
		{DateAction: fixedNow.AddDate(0, 0, -20)},
		{DateAction: fixedNow.AddDate(0, -2, 0)},
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Aujourdhui)
	assert.Equal(t, int64(2), stats.Semaine)
	assert.Equal(t, int64(2), stats.Mois)
}

func TestExportCSV(t *testing.T) {
	svc, repo := newService()
	repo.entries = []models.HistoriqueAction{
		{Action: models.ActionCreation, Entite: models.EntiteTache, EntiteID: "t1", UtilisateurNom: "Awa", Details: "ligne1\nligne2; suite", DateAction: fixedNow},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), nil, &buf))

	r := csv.NewReader(&buf)
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, "ligne1 ligne2; suite", records[1][5])
}
