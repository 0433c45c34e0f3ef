package dto

import "time"

type Risque struct {
	Niveau          string   `json:"niveau"`
	Probabilite     float64  `json:"probabilite"`
	Description     string   `json:"description"`
	Recommandations []string `json:"recommandations"`
	Impact          string   `json:"impact"`
}

type AnalyseRisques struct {
	Predictions    []Risque `json:"predictions"`
	TauxConformite float64  `json:"tauxConformite"`
	FichesEnRetard int      `json:"fichesEnRetard"`
}

type Recommandation struct {
	Type          string   `json:"type"`
	Titre         string   `json:"titre"`
	Description   string   `json:"description"`
	Priorite      int      `json:"priorite"`
	Actions       []string `json:"actions"`
	ImpactAttendu string   `json:"impactAttendu"`
	DelaiEstime   string   `json:"delaiEstime"`
}

type AnalyseRecommandations struct {
	Recommandations []Recommandation `json:"recommandations"`
	TotalFiches     int              `json:"totalFiches"`
	TauxConformite  float64          `json:"tauxConformite"`
}

type Tendance struct {
	Periode     string  `json:"periode"`
	Tendance    string  `json:"tendance"`
	Valeur      float64 `json:"valeur"`
	Variation   float64 `json:"variation"`
	Explication string  `json:"explication"`
}

type AnalyseTendances struct {
	Tendances      []Tendance `json:"tendances"`
	TotalFiches    int        `json:"totalFiches"`
	TauxConformite float64    `json:"tauxConformite"`
}

type Optimisation struct {
	Processus           string   `json:"processus"`
	EfficaciteActuelle  float64  `json:"efficaciteActuelle"`
	EfficaciteOptimale  float64  `json:"efficaciteOptimale"`
	GainsPotentiels     []string `json:"gainsPotentiels"`
	ActionsOptimisation []string `json:"actionsOptimisation"`
	DelaiImplementation string   `json:"delaiImplementation"`
}

type AnalyseOptimisations struct {
	Optimisations      []Optimisation `json:"optimisations"`
	EfficaciteActuelle float64        `json:"efficaciteActuelle"`
}

type Resume struct {
	TotalFiches    int     `json:"totalFiches"`
	TotalSuivis    int     `json:"totalSuivis"`
	TotalProjets   int     `json:"totalProjets"`
	TauxConformite float64 `json:"tauxConformite"`
}

type Alerte struct {
	Niveau      string `json:"niveau"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

type Prediction struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Probabilite float64  `json:"probabilite"`
	Actions     []string `json:"actions"`
}

type RecommandationRapide struct {
	Priorite string `json:"priorite"`
	Action   string `json:"action"`
	Raison   string `json:"raison"`
}

type RapportIA struct {
	DateGeneration  time.Time              `json:"dateGeneration"`
	Resume          Resume                 `json:"resume"`
	Alertes         []Alerte               `json:"alertes"`
	Predictions     []Prediction           `json:"predictions"`
	Recommandations []RecommandationRapide `json:"recommandations"`
}

type Dashboard struct {
	Risques         AnalyseRisques         `json:"risques"`
	Recommandations AnalyseRecommandations `json:"recommandations"`
	Tendances       AnalyseTendances       `json:"tendances"`
	Optimisations   AnalyseOptimisations   `json:"optimisations"`
}
