package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/modules/nomenclatures/dto"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports/portstest"
	"qualite-pro-core/internal/shared/validation"
)

type memoryRepo struct {
	items        map[string]*models.Nomenclature
	lecturesType int
}

func (m *memoryRepo) FindAll(ctx context.Context) ([]models.Nomenclature, error) {
	out := []models.Nomenclature{}
	for _, n := range m.items {
		out = append(out, *n)
	}
	return out, nil
}

func (m *memoryRepo) FindByID(ctx context.Context, id string) (*models.Nomenclature, error) {
	n, ok := m.items[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (m *memoryRepo) FindByType(ctx context.Context, typ string) ([]models.Nomenclature, error) {
	m.lecturesType++
	out := []models.Nomenclature{}
	for _, n := range m.items {
		if n.Type == typ {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *memoryRepo) Types(ctx context.Context) ([]string, error) {
	vus := map[string]bool{}
	out := []string{}
	for _, n := range m.items {
		if !vus[n.Type] {
			vus[n.Type] = true
			out = append(out, n.Type)
		}
	}
	return out, nil
}

func (m *memoryRepo) ExisteCode(ctx context.Context, typ, code, exclureID string) (bool, error) {
	for id, n := range m.items {
		if id != exclureID && n.Type == typ && strings.EqualFold(n.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

func (m *memoryRepo) Insert(ctx context.Context, n *models.Nomenclature) error {
	n.ID = primitive.NewObjectID()
	cp := *n
	m.items[n.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Replace(ctx context.Context, n *models.Nomenclature) error {
	cp := *n
	m.items[n.ID.Hex()] = &cp
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	delete(m.items, id)
	return nil
}

type memoryCache struct {
	parType   map[string][]models.Nomenclature
	types     []string
	invalides []string
	vidages   int
	panne     bool
}

func (c *memoryCache) ParType(ctx context.Context, typ string) ([]models.Nomenclature, bool, error) {
	if c.panne {
		return nil, false, errors.New("redis indisponible")
	}
	items, ok := c.parType[typ]
	return items, ok, nil
}

func (c *memoryCache) StockerType(ctx context.Context, typ string, items []models.Nomenclature) error {
	if c.panne {
		return errors.New("redis indisponible")
	}
	c.parType[typ] = items
	return nil
}

func (c *memoryCache) Types(ctx context.Context) ([]string, bool, error) {
	return c.types, c.types != nil, nil
}

func (c *memoryCache) StockerTypes(ctx context.Context, types []string) error {
	c.types = types
	return nil
}

func (c *memoryCache) Invalider(ctx context.Context, types ...string) error {
	for _, t := range types {
		delete(c.parType, t)
	}
	c.types = nil
	c.invalides = append(c.invalides, types...)
	return nil
}

func (c *memoryCache) Vider(ctx context.Context) error {
	if c.panne {
		return errors.New("redis indisponible")
	}
	c.parType = map[string][]models.Nomenclature{}
	c.types = nil
	c.vidages++
	return nil
}

func newService() (*NomenclatureService, *memoryRepo, *memoryCache) {
	repo := &memoryRepo{items: map[string]*models.Nomenclature{}}
	c := &memoryCache{parType: map[string][]models.Nomenclature{}}
	svc := NewNomenclatureService(repo, c, validation.New(), &portstest.Recorder{}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }
	return svc, repo, c
}

func TestCreate_NormaliseEtActifParDefaut(t *testing.T) {
	svc, _, _ := newService()

	n, err := svc.Create(context.Background(), dto.NomenclatureRequest{Type: " statut ", Code: "en_cours", Libelle: "En cours"})
	require.NoError(t, err)

	assert.Equal(t, "STATUT", n.Type)
	assert.Equal(t, "EN_COURS", n.Code)
	assert.True(t, n.Actif)

	inactif := false
	n, err = svc.Create(context.Background(), dto.NomenclatureRequest{Type: "STATUT", Code: "ARCHIVE", Libelle: "Archivé", Actif: &inactif})
	require.NoError(t, err)
	assert.False(t, n.Actif)
}

func TestCreate_DoublonInsensibleALaCasse(t *testing.T) {
	svc, repo, _ := newService()
	repo.items["x"] = &models.Nomenclature{Type: "PRIORITE", Code: "Haute"}

	_, err := svc.Create(context.Background(), dto.NomenclatureRequest{Type: "priorite", Code: "HAUTE", Libelle: "Haute"})

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Len(t, repo.items, 1)
}

func TestCreate_ChampsRequis(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), dto.NomenclatureRequest{Type: "STATUT", Code: strings.Repeat("X", 51)})

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Champs, "code")
	assert.Contains(t, appErr.Champs, "libelle")
}

func TestCreate_LongueurApresNormalisation(t *testing.T) {
	svc, _, _ := newService()
	code := strings.Repeat("x", 50)

	n, err := svc.Create(context.Background(), dto.NomenclatureRequest{Type: "  statut  ", Code: " " + code + "  ", Libelle: "  Cinquante  "})
	require.NoError(t, err)
	assert.Equal(t, strings.ToUpper(code), n.Code)
	assert.Equal(t, "Cinquante", n.Libelle)

	_, err = svc.Update(context.Background(), n.ID.Hex(), dto.NomenclatureRequest{Type: "statut ", Code: code + "\t", Libelle: "Cinquante"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.NomenclatureRequest{Type: "STATUT", Code: "   ", Libelle: "Vide"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Champs, "code")
}

func TestParType_CacheDAbord(t *testing.T) {
	svc, repo, c := newService()
	repo.items["a"] = &models.Nomenclature{Type: "STATUT", Code: "EN_COURS"}

	first, err := svc.ParType(context.Background(), "statut")
	require.NoError(t, err)
	second, err := svc.ParType(context.Background(), "STATUT")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.lecturesType, "la deuxième lecture vient du cache")
	assert.Contains(t, c.parType, "STATUT")
}

func TestParType_RedisIndisponible(t *testing.T) {
	svc, repo, c := newService()
	c.panne = true
	repo.items["a"] = &models.Nomenclature{Type: "STATUT", Code: "EN_COURS"}

	items, err := svc.ParType(context.Background(), "STATUT")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMutations_InvalidentLeCache(t *testing.T) {
	svc, _, c := newService()

	n, err := svc.Create(context.Background(), dto.NomenclatureRequest{Type: "STATUT", Code: "A", Libelle: "A"})
	require.NoError(t, err)
	_, err = svc.ParType(context.Background(), "STATUT")
	require.NoError(t, err)
	require.Contains(t, c.parType, "STATUT")

	_, err = svc.Update(context.Background(), n.ID.Hex(), dto.NomenclatureRequest{Type: "PRIORITE", Code: "A", Libelle: "A"})
	require.NoError(t, err)
	assert.NotContains(t, c.parType, "STATUT")
	assert.Equal(t, []string{"STATUT", "STATUT", "PRIORITE"}, c.invalides)

	require.NoError(t, svc.Delete(context.Background(), n.ID.Hex()))
	assert.Equal(t, "PRIORITE", c.invalides[len(c.invalides)-1])
}

func TestUpdate_DoublonSurUnAutre(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Create(context.Background(), dto.NomenclatureRequest{Type: "STATUT", Code: "A", Libelle: "A"})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), dto.NomenclatureRequest{Type: "STATUT", Code: "B", Libelle: "B"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), b.ID.Hex(), dto.NomenclatureRequest{Type: "STATUT", Code: "B", Libelle: "Bis"})
	require.NoError(t, err, "conserver son propre code n'est pas un doublon")

	_, err = svc.Update(context.Background(), b.ID.Hex(), dto.NomenclatureRequest{Type: "STATUT", Code: "a", Libelle: "B"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestDelete_Inconnue(t *testing.T) {
	svc, _, _ := newService()
	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDefaults(t *testing.T) {
	defaults, err := Defaults()
	require.NoError(t, err)

	parType := map[string]int{}
	for _, n := range defaults {
		parType[n.Type]++
		assert.True(t, n.Actif)
		assert.NotEmpty(t, n.Libelle)
	}
	assert.Equal(t, map[string]int{"STATUT": 6, "TYPE_FICHE": 8, "CATEGORIE_PROJET": 5, "PRIORITE": 3}, parType)
	assert.Equal(t, 1, defaults[0].Ordre)
}

func TestSeedDefaults_UniquementSiVide(t *testing.T) {
	svc, repo, c := newService()
	c.parType["STATUT"] = []models.Nomenclature{{Type: "STATUT", Code: "OBSOLETE"}}
	c.types = []string{"STATUT"}

	inserees, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 22, inserees)
	assert.Len(t, repo.items, 22)
	assert.Equal(t, 1, c.vidages)
	assert.Empty(t, c.parType, "listes d'une base précédente supprimées")
	assert.Nil(t, c.types)

	inserees, err = svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Zero(t, inserees)
	assert.Len(t, repo.items, 22)
	assert.Equal(t, 1, c.vidages)
}

func TestSeedDefaults_RedisIndisponible(t *testing.T) {
	svc, repo, c := newService()
	c.panne = true

	inserees, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 22, inserees)
	assert.Len(t, repo.items, 22)
}
