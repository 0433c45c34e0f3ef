package dto

import "time"

type Periode struct {
	Debut time.Time `json:"debut"`
	Fin   time.Time `json:"fin"`
}

type StatistiquesGenerales struct {
	TotalFichesQualite           int64 `json:"totalFichesQualite"`
	TotalFichesSuivi             int64 `json:"totalFichesSuivi"`
	TotalProjets                 int64 `json:"totalProjets"`
	TotalFormulairesObligatoires int64 `json:"totalFormulairesObligatoires"`
	TotalElements                int64 `json:"totalElements"`
}

type StatistiquesParStatut struct {
	StatutsQualite map[string]int64 `json:"statutsQualite"`
	StatutsSuivi   map[string]int64 `json:"statutsSuivi"`
}

type StatistiquesParType struct {
	TypesFiche map[string]int64 `json:"typesFiche"`
}

// EvolutionTemporelle compte les suivis par mois ; Labels donne l'ordre chronologique
type EvolutionTemporelle struct {
	FichesParMois map[string]int64 `json:"fichesParMois"`
	FichesParJour map[string]int64 `json:"fichesParJour"`
	Labels        []string         `json:"labels"`
	Periode       Periode          `json:"periode"`
}

type StatistiquesFormulaires struct {
	ParStatut   map[string]int64 `json:"parStatut"`
	ParPriorite map[string]int64 `json:"parPriorite"`
	Total       int              `json:"total"`
}

type ProjetResume struct {
	ID       string     `json:"id"`
	Nom      string     `json:"nom"`
	Echeance *time.Time `json:"echeance"`
	Statut   string     `json:"statut"`
}

type TopProjets struct {
	Projets []ProjetResume `json:"projets"`
}

type MetriquesPerformance struct {
	TauxConformite        float64 `json:"tauxConformite"`
	EvaluationsConformite int64   `json:"evaluationsConformite"`
	NbConformes           int64   `json:"nbConformes"`
	TauxSoumission        float64 `json:"tauxSoumission"`
	TauxRetard            float64 `json:"tauxRetard"`
	FormulairesSoumis     int64   `json:"formulairesSoumis"`
	FormulairesEnRetard   int64   `json:"formulairesEnRetard"`
}

type RapportComplet struct {
	StatistiquesGenerales   StatistiquesGenerales   `json:"statistiquesGenerales"`
	StatistiquesParStatut   StatistiquesParStatut   `json:"statistiquesParStatut"`
	StatistiquesParType     StatistiquesParType     `json:"statistiquesParType"`
	EvolutionTemporelle     EvolutionTemporelle     `json:"evolutionTemporelle"`
	FormulairesObligatoires StatistiquesFormulaires `json:"formulairesObligatoires"`
	TopProjets              TopProjets              `json:"topProjets"`
	MetriquesPerformance    MetriquesPerformance    `json:"metriquesPerformance"`
	DateGeneration          time.Time               `json:"dateGeneration"`
}

type RapportPeriode struct {
	Periode                 Periode `json:"periode"`
	FichesQualite           int     `json:"fichesQualite"`
	FichesSuivi             int     `json:"fichesSuivi"`
	FormulairesObligatoires int     `json:"formulairesObligatoires"`
}

// PeriodeQuery paramètres de GET /periode, au format yyyy-MM-dd ou ISO
type PeriodeQuery struct {
	DateDebut string `form:"dateDebut" validate:"required"`
	DateFin   string `form:"dateFin" validate:"required"`
}
