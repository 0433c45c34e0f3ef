package services

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"qualite-pro-core/internal/modules/rapports/dto"
	"qualite-pro-core/internal/shared/models"
)

const (
	nonDefini       = "NON_DEFINI"
	seuilConformite = 80.0
	moisEvolution   = 6
	tailleTop       = 10
)

var moisCourts = [...]string{"Jan", "Fév", "Mar", "Avr", "Mai", "Juin", "Juil", "Août", "Sep", "Oct", "Nov", "Déc"}

// Formes reconnues dans indicateursKpi, essayées dans l'ordre :
// "tauxConformite": 85, "taux de conformité ... 85%" puis "taux de conformité ... 0.85"
var (
	tauxCle      = regexp.MustCompile(`taux\s*[_-]?\s*conform(?:ite|ité)\s*"?\s*:\s*(\d{1,3})\s*%?`)
	tauxPourcent = regexp.MustCompile(`taux\s*(?:de)?\s*conform(?:ite|ité)[^\d%]{0,30}(\d{1,3})\s*%`)
	tauxDecimal  = regexp.MustCompile(`taux\s*(?:de)?\s*conform(?:ite|ité)[^\d.]{0,30}(0?\.\d+|1(?:\.0+)?)\b`)
)

// donnees jeu complet chargé pour un rapport
type donnees struct {
	fiches      []models.FicheQualite
	suivis      []models.FicheSuivi
	projets     []models.FicheProjet
	formulaires []models.FormulaireObligatoire
}

func construireRapport(d *donnees, now time.Time) *dto.RapportComplet {
	return &dto.RapportComplet{
		StatistiquesGenerales:   statistiquesGenerales(d),
		StatistiquesParStatut:   statistiquesParStatut(d),
		StatistiquesParType:     statistiquesParType(d.fiches),
		EvolutionTemporelle:     evolutionTemporelle(d.suivis, now),
		FormulairesObligatoires: statistiquesFormulaires(d.formulaires),
		TopProjets:              topProjets(d.projets),
		MetriquesPerformance:    metriquesPerformance(d.suivis, d.formulaires),
		DateGeneration:          now,
	}
}

func statistiquesGenerales(d *donnees) dto.StatistiquesGenerales {
	s := dto.StatistiquesGenerales{
		TotalFichesQualite:           int64(len(d.fiches)),
		TotalFichesSuivi:             int64(len(d.suivis)),
		TotalProjets:                 int64(len(d.projets)),
		TotalFormulairesObligatoires: int64(len(d.formulaires)),
	}
	s.TotalElements = s.TotalFichesQualite + s.TotalFichesSuivi + s.TotalProjets
	return s
}

func orNonDefini(v string) string {
	if v == "" {
		return nonDefini
	}
	return v
}

func statistiquesParStatut(d *donnees) dto.StatistiquesParStatut {
	s := dto.StatistiquesParStatut{
		StatutsQualite: map[string]int64{},
		StatutsSuivi:   map[string]int64{},
	}
	for _, f := range d.fiches {
		s.StatutsQualite[orNonDefini(f.Statut)]++
	}
	for _, su := range d.suivis {
		s.StatutsSuivi[orNonDefini(su.EtatAvancement)]++
	}
	return s
}

func statistiquesParType(fiches []models.FicheQualite) dto.StatistiquesParType {
	types := map[string]int64{}
	for _, f := range fiches {
		types[orNonDefini(f.TypeFiche)]++
	}
	return dto.StatistiquesParType{TypesFiche: types}
}

func libelleMois(t time.Time) string {
	return moisCourts[t.Month()-1]
}

// evolutionTemporelle compte les suivis par mois sur les six derniers mois, mois courant inclus
func evolutionTemporelle(suivis []models.FicheSuivi, now time.Time) dto.EvolutionTemporelle {
	courant := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	debut := courant.AddDate(0, -(moisEvolution - 1), 0)

	parMois := make(map[string]int64, moisEvolution)
	labels := make([]string, 0, moisEvolution)
	for i := 0; i < moisEvolution; i++ {
		label := libelleMois(debut.AddDate(0, i, 0))
		labels = append(labels, label)
		parMois[label] = 0
	}

	for _, su := range suivis {
		if su.DateSuivi.IsZero() {
			continue
		}
		d := su.DateSuivi.In(now.Location())
		if d.Before(debut) || d.After(now) {
			continue
		}
		parMois[libelleMois(d)]++
	}

	return dto.EvolutionTemporelle{
		FichesParMois: parMois,
		FichesParJour: parMois,
		Labels:        labels,
		Periode:       dto.Periode{Debut: debut, Fin: now},
	}
}

func statistiquesFormulaires(formulaires []models.FormulaireObligatoire) dto.StatistiquesFormulaires {
	parStatut := map[string]int64{
		models.FormulaireEnAttente: 0,
		models.FormulaireSoumis:    0,
		models.FormulaireEnRetard:  0,
		models.FormulaireAnnule:    0,
	}
	parPriorite := map[string]int64{
		models.PrioriteHaute:   0,
		models.PrioriteMoyenne: 0,
		models.PrioriteBasse:   0,
	}
	for _, f := range formulaires {
		if _, ok := parStatut[f.Statut]; ok {
			parStatut[f.Statut]++
		}
		if _, ok := parPriorite[f.Priorite]; ok {
			parPriorite[f.Priorite]++
		}
	}
	return dto.StatistiquesFormulaires{ParStatut: parStatut, ParPriorite: parPriorite, Total: len(formulaires)}
}

// topProjets les projets à l'échéance la plus proche, ceux sans échéance en dernier
func topProjets(projets []models.FicheProjet) dto.TopProjets {
	tries := slices.Clone(projets)
	slices.SortStableFunc(tries, func(a, b models.FicheProjet) int {
		switch {
		case a.Echeance == nil && b.Echeance == nil:
			return 0
		case a.Echeance == nil:
			return 1
		case b.Echeance == nil:
			return -1
		}
		return a.Echeance.Compare(*b.Echeance)
	})
	if len(tries) > tailleTop {
		tries = tries[:tailleTop]
	}

	out := make([]dto.ProjetResume, 0, len(tries))
	for _, p := range tries {
		out = append(out, dto.ProjetResume{ID: p.ID.Hex(), Nom: p.Nom, Echeance: p.Echeance, Statut: p.Statut})
	}
	return dto.TopProjets{Projets: out}
}

func metriquesPerformance(suivis []models.FicheSuivi, formulaires []models.FormulaireObligatoire) dto.MetriquesPerformance {
	var m dto.MetriquesPerformance
	for _, su := range suivis {
		taux, ok := tauxSuivi(su)
		if !ok {
			continue
		}
		m.EvaluationsConformite++
		if taux >= seuilConformite {
			m.NbConformes++
		}
	}
	for _, f := range formulaires {
		switch f.Statut {
		case models.FormulaireSoumis:
			m.FormulairesSoumis++
		case models.FormulaireEnRetard:
			m.FormulairesEnRetard++
		}
	}

	m.TauxConformite = pourcentage(m.NbConformes, m.EvaluationsConformite)
	m.TauxSoumission = pourcentage(m.FormulairesSoumis, int64(len(formulaires)))
	m.TauxRetard = pourcentage(m.FormulairesEnRetard, int64(len(formulaires)))
	return m
}

// pourcentage arrondi à deux décimales, 0 sans dénominateur
func pourcentage(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return arrondi(float64(n) / float64(total) * 100)
}

func arrondi(v float64) float64 {
	return math.Round(v*100) / 100
}

// tauxSuivi le champ tauxConformite prime sur le texte des indicateurs
func tauxSuivi(su models.FicheSuivi) (float64, bool) {
	if su.TauxConformite != nil {
		return *su.TauxConformite, true
	}
	return ExtraireTauxConformite(su.IndicateursKpi)
}

// ExtraireTauxConformite lit un taux en pourcentage, borné à [0, 100], dans un texte libre
func ExtraireTauxConformite(texte string) (float64, bool) {
	t := strings.ToLower(strings.TrimSpace(texte))
	if t == "" {
		return 0, false
	}
	for _, re := range []*regexp.Regexp{tauxCle, tauxPourcent} {
		if m := re.FindStringSubmatch(t); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return borner(float64(v)), true
			}
		}
	}
	if m := tauxDecimal.FindStringSubmatch(t); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return borner(v * 100), true
		}
	}
	return 0, false
}

func borner(v float64) float64 {
	return max(0, min(100, v))
}

// clesTriees ordre stable pour les feuilles Excel
func clesTriees[V any](m map[string]V) []string {
	var cles []string
	for k := range m {
		cles = append(cles, k)
	}
	slices.Sort(cles)
	return cles
}
