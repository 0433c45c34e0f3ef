package services

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"qualite-pro-core/internal/modules/analytics/dto"
	"qualite-pro-core/internal/shared/apperrors"
	"qualite-pro-core/internal/shared/models"
)

const (
	PeriodeParDefaut = 8
	PeriodeMax       = 12
	objectifQualite  = 90.0
	seuilTypeRisque  = 2
	typeNonDefini    = "Non défini"
)

var moisCourts = [...]string{"Jan", "Fév", "Mar", "Avr", "Mai", "Juin", "Juil", "Août", "Sep", "Oct", "Nov", "Déc"}

var (
	couleursFond = []string{
		"rgba(255, 99, 132, 0.8)",
		"rgba(255, 159, 64, 0.8)",
		"rgba(255, 205, 86, 0.8)",
		"rgba(75, 192, 192, 0.8)",
		"rgba(54, 162, 235, 0.8)",
		"rgba(153, 102, 255, 0.8)",
	}
	couleursBord = []string{
		"rgba(255, 99, 132, 1)",
		"rgba(255, 159, 64, 1)",
		"rgba(255, 205, 86, 1)",
		"rgba(75, 192, 192, 1)",
		"rgba(54, 162, 235, 1)",
		"rgba(153, 102, 255, 1)",
	}
)

// Valeurs de référence affichées tant qu'aucune fiche n'existe
var (
	referencePredictions = []float64{85, 65, 45, 30, 20}
	libellesPredictions  = []string{"Contrôle", "Audit", "Amélioration", "Formation", "Maintenance"}
	libellesKpi          = []string{"Conformité", "Efficacité", "Satisfaction", "Innovation"}
	referenceKpi         = []float64{65, 78, 85, 72}
)

// ChartsService jeux de données pour les graphiques du tableau de bord
type ChartsService struct {
	sources *Sources
	log     *zap.Logger
	now     func() time.Time
}

func NewChartsService(sources *Sources, log *zap.Logger) *ChartsService {
	return &ChartsService{
		sources: sources,
		log:     log.Named("charts"),
		now:     time.Now,
	}
}

func ValiderPeriode(period int) error {
	if period < 1 || period > PeriodeMax {
		return apperrors.InvalidArgument("Le paramètre period doit être compris entre 1 et 12")
	}
	return nil
}

// Trends courbe de référence : 85% décroissant de 2,5 points par mois, bornée à [60, 95]
func (s *ChartsService) Trends(period int) (*dto.Chart, error) {
	if err := ValiderPeriode(period); err != nil {
		return nil, err
	}
	data := make([]float64, period)
	for i := range data {
		data[i] = max(60, min(95, 85-float64(i)*2.5))
	}
	c := courbeConformite(libellesMois(s.now(), period), data)
	return &c, nil
}

func (s *ChartsService) Predictions() *dto.Chart {
	c := graphiqueRisques(libellesPredictions, referencePredictions)
	return &c
}

func (s *ChartsService) Kpi(ctx context.Context) (*dto.Chart, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	c := graphiqueKpi(inst)
	return &c, nil
}

func (s *ChartsService) DashboardData(ctx context.Context) (*dto.ChartsDashboard, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	trends, err := s.Trends(PeriodeParDefaut)
	if err != nil {
		return nil, err
	}
	return &dto.ChartsDashboard{
		Trends:      *trends,
		Predictions: *s.Predictions(),
		Kpi:         graphiqueKpi(inst),
		Metrics:     metriquesDashboard(inst),
	}, nil
}

// RealTrends taux de conformité cumulé à la fin de chaque mois, sur les fiches existantes
func (s *ChartsService) RealTrends(ctx context.Context) (*dto.Chart, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	if inst.TotalFiches == 0 {
		return s.Trends(PeriodeParDefaut)
	}

	now := s.now()
	courant := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	data := make([]float64, PeriodeParDefaut)
	for i := range data {
		finMois := courant.AddDate(0, i-PeriodeParDefaut+2, 0)
		data[i], _ = inst.tauxCumule(finMois)
	}
	// Le dernier point reflète toutes les fiches, même sans date de création
	data[len(data)-1] = inst.TauxConformite()

	c := courbeConformite(libellesMois(now, PeriodeParDefaut), data)
	return &c, nil
}

// RealPredictions risque par type (plus de deux fiches : 15 points par fiche)
// puis par statut EN_COURS ou bloqué (20 points par fiche), plafonné à 100
func (s *ChartsService) RealPredictions(ctx context.Context) (*dto.Chart, error) {
	inst, err := s.sources.Charger(ctx)
	if err != nil {
		return nil, err
	}
	if inst.TotalFiches == 0 {
		return s.Predictions(), nil
	}
	labels, data := risquesReels(inst)
	c := graphiqueRisques(labels, data)
	return &c, nil
}

func risquesReels(inst *Instantane) ([]string, []float64) {
	parType := map[string]int{}
	parStatut := map[string]int{}
	for _, f := range inst.Fiches {
		t := f.TypeFiche
		if t == "" {
			t = typeNonDefini
		}
		parType[t]++
		if f.Statut == models.StatutFicheEnCours || estBloquee(f.Statut) {
			parStatut[f.Statut]++
		}
	}

	var labels []string
	var data []float64
	for _, t := range clesTriees(parType) {
		if n := parType[t]; n > seuilTypeRisque {
			labels = append(labels, t)
			data = append(data, min(100, float64(n)*15))
		}
	}
	for _, st := range clesTriees(parStatut) {
		risque := min(100, float64(parStatut[st])*20)
		if i := slices.Index(labels, st); i >= 0 {
			data[i] = risque
			continue
		}
		labels = append(labels, st)
		data = append(data, risque)
	}
	return labels, data
}

func graphiqueKpi(inst *Instantane) dto.Chart {
	data := slices.Clone(referenceKpi)
	if inst.TotalFiches > 0 {
		data[0] = inst.TauxConformite()
		data[1] = arrondi(100 - taux(inst.EnCours+inst.Bloquees, inst.TotalFiches))
	}
	return dto.Chart{
		Labels: libellesKpi,
		Datasets: []dto.Dataset{{
			Label:           "KPI Qualité",
			Data:            data,
			BackgroundColor: []string{"#ff6384", "#36a2eb", "#ffce56", "#4bc0c0"},
			BorderColor:     "#fff",
			BorderWidth:     2,
		}},
	}
}

func metriquesDashboard(inst *Instantane) dto.DashboardMetrics {
	m := dto.DashboardMetrics{
		Confiance: min(100, float64(inst.TotalFiches*10+inst.TotalSuivis*15+inst.TotalProjets*10)),
	}
	if inst.TotalFiches == 0 {
		m.ScoreIA, m.Alertes, m.Optimisations = 75, 1, 2
		return m
	}

	tauxConformite := inst.TauxConformite()
	m.ScoreIA = max(0, min(100, tauxConformite+float64(inst.TotalSuivis*2)))
	m.Alertes = inst.EnCours + inst.Bloquees
	switch {
	case tauxConformite < SeuilCritique:
		m.Optimisations = 3
	case tauxConformite < SeuilObjectif:
		m.Optimisations = 2
	default:
		m.Optimisations = 1
	}
	return m
}

func courbeConformite(labels []string, data []float64) dto.Chart {
	objectif := make([]float64, len(data))
	for i := range objectif {
		objectif[i] = objectifQualite
	}
	return dto.Chart{
		Labels: labels,
		Datasets: []dto.Dataset{
			{
				Label:           "Taux de Conformité (%)",
				Data:            data,
				BorderColor:     "#ff6384",
				BackgroundColor: "rgba(255, 99, 132, 0.1)",
				Tension:         0.4,
				Fill:            true,
			},
			{
				Label:           "Objectif (%)",
				Data:            objectif,
				BorderColor:     "#36a2eb",
				BackgroundColor: "rgba(54, 162, 235, 0.1)",
				BorderDash:      []int{5, 5},
				Tension:         0.4,
			},
		},
	}
}

func graphiqueRisques(labels []string, data []float64) dto.Chart {
	fond := make([]string, len(labels))
	bord := make([]string, len(labels))
	for i := range labels {
		fond[i] = couleursFond[i%len(couleursFond)]
		bord[i] = couleursBord[i%len(couleursBord)]
	}
	return dto.Chart{
		Labels: labels,
		Datasets: []dto.Dataset{{
			Label:           "Risque Prédit (%)",
			Data:            data,
			BackgroundColor: fond,
			BorderColor:     bord,
			BorderWidth:     2,
		}},
	}
}

// libellesMois les n derniers mois, mois courant inclus, dans l'ordre chronologique
func libellesMois(now time.Time, n int) []string {
	courant := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	labels := make([]string, n)
	for i := range labels {
		labels[i] = moisCourts[courant.AddDate(0, i-n+1, 0).Month()-1]
	}
	return labels
}

func clesTriees(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
