package dto

// Dataset au format attendu par Chart.js ; les couleurs sont une valeur ou une liste
type Dataset struct {
	Label           string      `json:"label"`
	Data            []float64   `json:"data"`
	BorderColor     interface{} `json:"borderColor,omitempty"`
	BackgroundColor interface{} `json:"backgroundColor,omitempty"`
	BorderDash      []int       `json:"borderDash,omitempty"`
	BorderWidth     int         `json:"borderWidth,omitempty"`
	Tension         float64     `json:"tension,omitempty"`
	Fill            bool        `json:"fill,omitempty"`
}

type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type DashboardMetrics struct {
	ScoreIA       float64 `json:"scoreIA"`
	Confiance     float64 `json:"confiance"`
	Alertes       int     `json:"alertes"`
	Optimisations int     `json:"optimisations"`
}

type ChartsDashboard struct {
	Trends      Chart            `json:"trends"`
	Predictions Chart            `json:"predictions"`
	Kpi         Chart            `json:"kpi"`
	Metrics     DashboardMetrics `json:"metrics"`
}
