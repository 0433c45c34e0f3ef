package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"qualite-pro-core/internal/shared/models"
)

type source[T any] struct {
	items []T
	err   error
}

func (s source[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.items, s.err
}

// fiches n fiches par statut
func fiches(parStatut map[string]int) []models.FicheQualite {
	var out []models.FicheQualite
	for statut, n := range parStatut {
		for i := 0; i < n; i++ {
			out = append(out, models.FicheQualite{Statut: statut})
		}
	}
	return out
}

func instantane(parStatut map[string]int, suivis int) *Instantane {
	return NouvelInstantane(fiches(parStatut), suivis, 0)
}

func TestTauxConformite_TermineEtTerminee(t *testing.T) {
	inst := instantane(map[string]int{"TERMINE": 1, "TERMINEE": 2, "EN_COURS": 1}, 0)
	assert.Equal(t, 75.0, inst.TauxConformite())
	assert.Zero(t, instantane(nil, 0).TauxConformite())
}

func TestAnalyserRisques(t *testing.T) {
	cas := []struct {
		nom     string
		statuts map[string]int
		attendu []string
	}{
		{"critique sous 70%", map[string]int{"TERMINEE": 6, "VALIDEE": 4}, []string{"CRITIQUE"}},
		{"élevé entre 70 et 85%", map[string]int{"TERMINEE": 8, "VALIDEE": 2}, []string{"ÉLEVÉ"}},
		{"aucun au-delà de 85%", map[string]int{"TERMINEE": 9, "VALIDEE": 1}, nil},
		{"trop en cours", map[string]int{"TERMINEE": 6, "EN_COURS": 4}, []string{"CRITIQUE", "ÉLEVÉ"}},
	}
	for _, c := range cas {
		t.Run(c.nom, func(t *testing.T) {
			r := analyserRisques(instantane(c.statuts, 1))
			var obtenus []string
			for _, p := range r.Predictions {
				obtenus = append(obtenus, p.Niveau)
			}
			assert.Equal(t, c.attendu, obtenus)
		})
	}

	r := analyserRisques(instantane(map[string]int{"TERMINEE": 6, "EN_COURS": 4}, 1))
	require.Len(t, r.Predictions, 2)
	assert.Equal(t, 0.85, r.Predictions[0].Probabilite)
	assert.Equal(t, 0.75, r.Predictions[1].Probabilite)
	assert.Equal(t, 4, r.FichesEnRetard)
}

func TestGenererRecommandations(t *testing.T) {
	r := genererRecommandations(instantane(map[string]int{"EN_COURS": 11}, 0))
	var types []string
	for _, rec := range r.Recommandations {
		types = append(types, rec.Type)
	}
	assert.Equal(t, []string{"URGENT", "IMPORTANT", "SUGGESTION"}, types)

	r = genererRecommandations(instantane(map[string]int{"TERMINEE": 5}, 2))
	assert.Empty(t, r.Recommandations)
	assert.Equal(t, 5, r.TotalFiches)
}

func TestAnalyserTendances(t *testing.T) {
	hausse := analyserTendances(instantane(map[string]int{"TERMINEE": 9, "VALIDEE": 1}, 0))
	assert.Equal(t, "HAUSSE", hausse.Tendances[0].Tendance)
	assert.Equal(t, 5.2, hausse.Tendances[0].Variation)

	baisse := analyserTendances(instantane(map[string]int{"VALIDEE": 1}, 0))
	assert.Equal(t, "BAISSE", baisse.Tendances[0].Tendance)
	assert.Equal(t, -8.5, baisse.Tendances[0].Variation)

	stable := analyserTendances(instantane(map[string]int{"TERMINEE": 8, "VALIDEE": 2}, 0))
	assert.Equal(t, "STABLE", stable.Tendances[0].Tendance)
	assert.Len(t, stable.Tendances, 1)

	volume := analyserTendances(instantane(map[string]int{"TERMINEE": 21}, 0))
	require.Len(t, volume.Tendances, 2)
	assert.Equal(t, 21.0, volume.Tendances[1].Valeur)
}

func TestOptimiserProcessus(t *testing.T) {
	sansSuivi := optimiserProcessus(instantane(map[string]int{"TERMINEE": 1, "EN_COURS": 1}, 0))
	require.Len(t, sansSuivi.Optimisations, 1)
	assert.Equal(t, 50.0, sansSuivi.EfficaciteActuelle)

	avecSuivi := optimiserProcessus(instantane(nil, 3))
	assert.Len(t, avecSuivi.Optimisations, 2)
}

func TestRapport(t *testing.T) {
	svc := NewAnalyticsService(NewSources(
		source[models.FicheQualite]{items: fiches(map[string]int{"EN_COURS": 6})},
		source[models.FicheSuivi]{},
		source[models.FicheProjet]{items: []models.FicheProjet{{Nom: "P"}}},
	), zap.NewNop())

	r, err := svc.Rapport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, r.Resume.TotalFiches)
	assert.Equal(t, 1, r.Resume.TotalProjets)
	require.Len(t, r.Alertes, 2)
	assert.Equal(t, "Le taux de conformité est de 0.0%, en dessous du seuil de 70%", r.Alertes[0].Description)
	assert.Equal(t, "6 fiches en cours de traitement", r.Alertes[1].Description)
	assert.Len(t, r.Predictions, 1)
	require.Len(t, r.Recommandations, 2)
	assert.Equal(t, "HAUTE", r.Recommandations[0].Priorite)
	assert.Equal(t, "MOYENNE", r.Recommandations[1].Priorite)
}

func TestDashboard_ErreurDeLecture(t *testing.T) {
	svc := NewAnalyticsService(NewSources(
		source[models.FicheQualite]{err: errors.New("mongo indisponible")},
		source[models.FicheSuivi]{},
		source[models.FicheProjet]{},
	), zap.NewNop())

	_, err := svc.Dashboard(context.Background())
	assert.Error(t, err)
}
