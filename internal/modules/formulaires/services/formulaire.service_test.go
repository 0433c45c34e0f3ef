package services

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/infrastructure/mail"
	"qualite-pro-core/internal/infrastructure/metrics"
	"qualite-pro-core/internal/modules/formulaires/dto"
	"qualite-pro-core/internal/modules/formulaires/queries"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports/portstest"
	"qualite-pro-core/internal/shared/validation"
)

// memoryRepo reproduit les filtres Mongo du repository
type memoryRepo struct {
	docs map[string]*models.FormulaireObligatoire
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{docs: map[string]*models.FormulaireObligatoire{}}
}

func (m *memoryRepo) filter(keep func(f *models.FormulaireObligatoire) bool) []models.FormulaireObligatoire {
	out := []models.FormulaireObligatoire{}
	for _, f := range m.docs {
		if keep(f) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateEcheance.Before(out[j].DateEcheance) })
	return out
}

func champ(f *models.FormulaireObligatoire, nom string) string {
	switch nom {
	case queries.ChampResponsable:
		return f.ResponsableID
	case queries.ChampProjet:
		return f.ProjetID
	case queries.ChampStatut:
		return f.Statut
	case queries.ChampPriorite:
		return f.Priorite
	}
	return ""
}

func (m *memoryRepo) FindAll(ctx context.Context) ([]models.FormulaireObligatoire, error) {
	return m.filter(func(*models.FormulaireObligatoire) bool { return true }), nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id string) (*models.FormulaireObligatoire, error) {
	f, ok := m.docs[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memoryRepo) FindBy(ctx context.Context, nom, valeur string) ([]models.FormulaireObligatoire, error) {
	return m.filter(func(f *models.FormulaireObligatoire) bool { return champ(f, nom) == valeur }), nil
}

func (m *memoryRepo) FindRetards(ctx context.Context, maintenant time.Time) ([]models.FormulaireObligatoire, error) {
	return m.filter(func(f *models.FormulaireObligatoire) bool {
		return f.DateEcheance.Before(maintenant) && f.Statut != models.FormulaireSoumis
	}), nil
}

func (m *memoryRepo) FindARetarder(ctx context.Context, maintenant time.Time) ([]models.FormulaireObligatoire, error) {
	return m.filter(func(f *models.FormulaireObligatoire) bool {
		switch f.Statut {
		case models.FormulaireSoumis, models.FormulaireEnRetard, models.FormulaireAnnule:
			return false
		}
		return f.DateEcheance.Before(maintenant)
	}), nil
}

func (m *memoryRepo) FindEcheancesEntre(ctx context.Context, debut, fin time.Time, statut string) ([]models.FormulaireObligatoire, error) {
	return m.filter(func(f *models.FormulaireObligatoire) bool {
		return f.Statut == statut && !f.DateEcheance.Before(debut) && !f.DateEcheance.After(fin)
	}), nil
}

func (m *memoryRepo) CountRetards(ctx context.Context, maintenant time.Time) (int64, error) {
	retards, _ := m.FindRetards(ctx, maintenant)
	return int64(len(retards)), nil
}

func (m *memoryRepo) CountBy(ctx context.Context, nom, valeur string) (int64, error) {
	found, _ := m.FindBy(ctx, nom, valeur)
	return int64(len(found)), nil
}

func (m *memoryRepo) Insert(ctx context.Context, f *models.FormulaireObligatoire) error {
	f.ID = primitive.NewObjectID()
	cp := *f
	m.docs[f.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Replace(ctx context.Context, f *models.FormulaireObligatoire) error {
	if _, ok := m.docs[f.ID.Hex()]; !ok {
		return mongodb.ErrNotFound
	}
	cp := *f
	m.docs[f.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return mongodb.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

var maintenant = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	service     *FormulaireService
	repo        *memoryRepo
	sender      *mail.ConsoleSender
	notifier    *portstest.Notifier
	recorder    *portstest.Recorder
	responsable *models.Utilisateur
}

func newFixture() *fixture {
	responsable := &models.Utilisateur{Nom: "Kouassi", Prenom: "Awa", Email: "awa@qualite.fr"}
	users := portstest.NewUsers(responsable)

	repo := newMemoryRepo()
	sender := mail.NewConsoleSender(zap.NewNop())
	notifier := &portstest.Notifier{}
	recorder := &portstest.Recorder{}
	mailer := mail.NewMailer(sender, metrics.NewMetrics(), zap.NewNop())

	svc := NewFormulaireService(repo, users, validation.New(), mailer, notifier, recorder, zap.NewNop())
	svc.now = func() time.Time { return maintenant }
	return &fixture{service: svc, repo: repo, sender: sender, notifier: notifier, recorder: recorder, responsable: responsable}
}

func (f *fixture) seed(nom, statut string, echeance time.Time) *models.FormulaireObligatoire {
	doc := &models.FormulaireObligatoire{
		Nom:           nom,
		ResponsableID: f.responsable.ID.Hex(),
		DateEcheance:  echeance,
		Statut:        statut,
	}
	_ = f.repo.Insert(context.Background(), doc)
	return doc
}

func (f *fixture) statut(id primitive.ObjectID) string {
	return f.repo.docs[id.Hex()].Statut
}

func TestCreate_ValeursParDefautEtNomDuResponsable(t *testing.T) {
	f := newFixture()

	created, err := f.service.Create(context.Background(), dto.FormulaireRequest{
		Nom:           "Rapport mensuel",
		ResponsableID: f.responsable.ID.Hex(),
		DateEcheance:  "2024-05-31",
		Statut:        models.FormulaireSoumis,
		Priorite:      models.PrioriteHaute,
	})
	require.NoError(t, err)

	assert.Equal(t, models.FormulaireEnAttente, created.Statut, "le statut fourni est ignoré à la création")
	assert.False(t, created.Notifie)
	assert.Zero(t, created.NombreNotifications)
	assert.Equal(t, maintenant, created.DateCreation)
	assert.Equal(t, "Awa Kouassi", created.ResponsableNom)

	require.Len(t, f.notifier.Calls, 1)
	assert.Equal(t, models.NotifFormulaire, f.notifier.Calls[0].Type)
	assert.Equal(t, []string{models.ActionCreation}, f.recorder.Actions())
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), dto.FormulaireRequest{Nom: "  ", ResponsableID: "x", DateEcheance: "demain"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Champs, "nom")

	_, err = f.service.Create(context.Background(), dto.FormulaireRequest{Nom: "Rapport", ResponsableID: "x", DateEcheance: "demain"})
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Champs, "dateEcheance")
	assert.Empty(t, f.repo.docs)
}

func TestRetards_EcheanceStrictementPasseeEtNonSoumis(t *testing.T) {
	f := newFixture()
	enRetard := f.seed("passé", models.FormulaireEnAttente, maintenant.Add(-time.Hour))
	dejaRetard := f.seed("déjà en retard", models.FormulaireEnRetard, maintenant.Add(-48*time.Hour))
	f.seed("soumis", models.FormulaireSoumis, maintenant.Add(-time.Hour))
	f.seed("à l'instant", models.FormulaireEnAttente, maintenant)
	f.seed("futur", models.FormulaireEnAttente, maintenant.Add(time.Hour))

	retards, err := f.service.Retards(context.Background())
	require.NoError(t, err)

	ids := []primitive.ObjectID{}
	for _, r := range retards {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []primitive.ObjectID{enRetard.ID, dejaRetard.ID}, ids)

	n, err := f.service.CountRetards(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestVerifierRetards_AuPlusTroisRelances(t *testing.T) {
	f := newFixture()
	doc := f.seed("Audit interne", models.FormulaireEnAttente, maintenant.Add(-24*time.Hour))

	for i := 0; i < 5; i++ {
		_, err := f.service.VerifierRetards(context.Background())
		require.NoError(t, err)
	}

	stored := f.repo.docs[doc.ID.Hex()]
	assert.True(t, stored.Notifie)
	assert.Equal(t, MaxNotificationsRetard, stored.NombreNotifications)
	require.NotNil(t, stored.DateNotification)
	assert.Equal(t, maintenant, *stored.DateNotification)

	assert.Len(t, f.notifier.Calls, MaxNotificationsRetard)
	assert.Equal(t, models.NotifFormulaireRetard, f.notifier.Calls[0].Type)
	assert.Equal(t, "Formulaire obligatoire en retard : Audit interne", f.notifier.Calls[0].Message)

	sent := f.sender.Sent()
	require.Len(t, sent, MaxNotificationsRetard)
	assert.Equal(t, "awa@qualite.fr", sent[0].To)
	assert.Equal(t, mail.SubjectFormulaireRetard, sent[0].Subject)
}

func TestMarquerSoumis_ArreteLesRelances(t *testing.T) {
	f := newFixture()
	doc := f.seed("Audit interne", models.FormulaireEnAttente, maintenant.Add(-24*time.Hour))

	_, err := f.service.VerifierRetards(context.Background())
	require.NoError(t, err)
	require.Len(t, f.notifier.Calls, 1)

	soumis, err := f.service.MarquerSoumis(context.Background(), doc.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.FormulaireSoumis, soumis.Statut)

	result, err := f.service.VerifierRetards(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Examines)
	assert.Len(t, f.notifier.Calls, 1, "aucune relance après soumission")

	bascules, err := f.service.BasculerRetards(context.Background())
	require.NoError(t, err)
	assert.Zero(t, bascules)
	assert.Equal(t, models.FormulaireSoumis, f.statut(doc.ID))
}

func TestBasculerRetards_SeulementEcheancesStrictementPassees(t *testing.T) {
	f := newFixture()
	passe := f.seed("passé", models.FormulaireEnAttente, maintenant.Add(-time.Minute))
	soumis := f.seed("soumis", models.FormulaireSoumis, maintenant.Add(-time.Hour))
	annule := f.seed("annulé", models.FormulaireAnnule, maintenant.Add(-time.Hour))
	instant := f.seed("à l'instant", models.FormulaireEnAttente, maintenant)
	futur := f.seed("futur", models.FormulaireEnAttente, maintenant.Add(time.Hour))

	bascules, err := f.service.BasculerRetards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, bascules)

	assert.Equal(t, models.FormulaireEnRetard, f.statut(passe.ID))
	assert.Equal(t, models.FormulaireSoumis, f.statut(soumis.ID))
	assert.Equal(t, models.FormulaireAnnule, f.statut(annule.ID))
	assert.Equal(t, models.FormulaireEnAttente, f.statut(instant.ID))
	assert.Equal(t, models.FormulaireEnAttente, f.statut(futur.ID))

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "passé")

	// un formulaire déjà EN_RETARD n'est pas rebasculé ni relancé
	bascules, err = f.service.BasculerRetards(context.Background())
	require.NoError(t, err)
	assert.Zero(t, bascules)
	assert.Len(t, f.sender.Sent(), 1)
}

func TestEcheancesProches_FenetreDeTroisJours(t *testing.T) {
	f := newFixture()
	dans2j := f.seed("dans 2 jours", models.FormulaireEnAttente, maintenant.Add(48*time.Hour))
	f.seed("dans 4 jours", models.FormulaireEnAttente, maintenant.Add(96*time.Hour))
	f.seed("soumis", models.FormulaireSoumis, maintenant.Add(24*time.Hour))
	f.seed("passé", models.FormulaireEnAttente, maintenant.Add(-time.Hour))

	proches, err := f.service.EcheancesProches(context.Background())
	require.NoError(t, err)
	require.Len(t, proches, 1)
	assert.Equal(t, dans2j.ID, proches[0].ID)

	result, err := f.service.VerifierEcheances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Notifies)

	result, err = f.service.VerifierEcheances(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Notifies, "une seule notification par échéance")
	require.Len(t, f.notifier.Calls, 1)
	assert.Equal(t, "Échéance proche pour : dans 2 jours", f.notifier.Calls[0].Message)
}

func TestRappelerEcheances(t *testing.T) {
	f := newFixture()
	f.seed("demain", models.FormulaireEnAttente, maintenant.Add(20*time.Hour))
	f.seed("après-demain", models.FormulaireEnAttente, maintenant.Add(30*time.Hour))

	envoyes, err := f.service.RappelerEcheances(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, envoyes)

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, mail.SubjectEcheanceProche, sent[0].Subject)
}

func TestUpdate_ConserveLesCompteurs(t *testing.T) {
	f := newFixture()
	doc := f.seed("Audit", models.FormulaireEnAttente, maintenant.Add(-time.Hour))
	_, err := f.service.VerifierRetards(context.Background())
	require.NoError(t, err)

	updated, err := f.service.Update(context.Background(), doc.ID.Hex(), dto.FormulaireRequest{
		Nom:           "Audit qualité",
		ResponsableID: f.responsable.ID.Hex(),
		DateEcheance:  "2024-06-01T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "Audit qualité", updated.Nom)
	assert.Equal(t, models.FormulaireEnAttente, updated.Statut)
	assert.Equal(t, 1, updated.NombreNotifications)
	assert.Equal(t, "Awa Kouassi", updated.ResponsableNom)
}

func TestDelete_Inconnu(t *testing.T) {
	f := newFixture()

	err := f.service.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, f.recorder.Entries)
}
