package services

import (
	"qualite-pro-core/internal/infrastructure/export"
	"qualite-pro-core/internal/modules/rapports/dto"
)

const (
	FeuilleGenerales      = "Statistiques Générales"
	FeuilleStatuts        = "Statistiques par Statut"
	FeuilleEvolution      = "Évolution Temporelle"
	FeuilleMetriques      = "Métriques Performance"
	FeuilleRapportPeriode = "Rapport Période"
)

// FeuillesRapport les quatre feuilles du classeur KPI, dans l'ordre d'affichage
func FeuillesRapport(r *dto.RapportComplet) []export.Sheet {
	g := r.StatistiquesGenerales
	generales := export.Sheet{
		Name:    FeuilleGenerales,
		Headers: []string{"Métrique", "Valeur"},
		Widths:  []float64{36, 14},
		Rows: [][]interface{}{
			{export.FormatKey("totalFichesQualite"), g.TotalFichesQualite},
			{export.FormatKey("totalFichesSuivi"), g.TotalFichesSuivi},
			{export.FormatKey("totalProjets"), g.TotalProjets},
			{export.FormatKey("totalFormulairesObligatoires"), g.TotalFormulairesObligatoires},
			{export.FormatKey("totalElements"), g.TotalElements},
		},
	}

	statuts := export.Sheet{
		Name:    FeuilleStatuts,
		Headers: []string{"Catégorie", "Statut", "Nombre"},
		Widths:  []float64{18, 24, 12},
	}
	for _, k := range clesTriees(r.StatistiquesParStatut.StatutsQualite) {
		statuts.Rows = append(statuts.Rows, []interface{}{"Fiche qualité", k, r.StatistiquesParStatut.StatutsQualite[k]})
	}
	for _, k := range clesTriees(r.StatistiquesParStatut.StatutsSuivi) {
		statuts.Rows = append(statuts.Rows, []interface{}{"Fiche de suivi", k, r.StatistiquesParStatut.StatutsSuivi[k]})
	}

	evolution := export.Sheet{
		Name:    FeuilleEvolution,
		Headers: []string{"Période", "Nombre de Fiches"},
		Widths:  []float64{14, 20},
	}
	for _, label := range r.EvolutionTemporelle.Labels {
		evolution.Rows = append(evolution.Rows, []interface{}{label, r.EvolutionTemporelle.FichesParMois[label]})
	}

	m := r.MetriquesPerformance
	metriques := export.Sheet{
		Name:    FeuilleMetriques,
		Headers: []string{"Métrique", "Valeur"},
		Widths:  []float64{30, 14},
		Rows: [][]interface{}{
			{export.FormatKey("tauxConformite"), m.TauxConformite},
			{export.FormatKey("evaluationsConformite"), m.EvaluationsConformite},
			{export.FormatKey("nbConformes"), m.NbConformes},
			{export.FormatKey("tauxSoumission"), m.TauxSoumission},
			{export.FormatKey("tauxRetard"), m.TauxRetard},
			{export.FormatKey("formulairesSoumis"), m.FormulairesSoumis},
			{export.FormatKey("formulairesEnRetard"), m.FormulairesEnRetard},
		},
	}

	return []export.Sheet{generales, statuts, evolution, metriques}
}

func FeuillePeriode(r *dto.RapportPeriode) export.Sheet {
	return export.Sheet{
		Name:    FeuilleRapportPeriode,
		Headers: []string{"Métrique", "Valeur"},
		Widths:  []float64{30, 14},
		Rows: [][]interface{}{
			{"Début", r.Periode.Debut.Format("02/01/2006")},
			{"Fin", r.Periode.Fin.Format("02/01/2006")},
			{export.FormatKey("fichesQualite"), r.FichesQualite},
			{export.FormatKey("fichesSuivi"), r.FichesSuivi},
			{export.FormatKey("formulairesObligatoires"), r.FormulairesObligatoires},
		},
	}
}
