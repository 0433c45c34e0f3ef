package dto

import "time"

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusDown     = "down"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckResult résultat d'une sonde de dépendance
type CheckResult struct {
	Status    string `json:"status"`
	LatenceMs int64  `json:"latenceMs"`
	Erreur    string `json:"erreur,omitempty"`
}

type ReadinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

type ApplicationInfo struct {
	Nom             string    `json:"nom"`
	Version         string    `json:"version"`
	Environnement   string    `json:"environnement"`
	DemarreeLe      time.Time `json:"demarreeLe"`
	UptimeSecondes  int64     `json:"uptimeSecondes"`
	FournisseurMail string    `json:"fournisseurMail"`
	Planificateur   bool      `json:"planificateur"`
}

type DatabaseInfo struct {
	Nom          string   `json:"nom"`
	Collections  []string `json:"collections"`
	Documents    int64    `json:"documents"`
	TailleOctets int64    `json:"tailleOctets"`
}

type CacheInfo struct {
	Disponible       bool   `json:"disponible"`
	Connexions       uint32 `json:"connexions"`
	ConnexionsLibres uint32 `json:"connexionsLibres"`
}

// Alerte point d'attention remonté à l'administrateur
type Alerte struct {
	Niveau  string `json:"niveau"` // INFO, WARNING, CRITICAL
	Message string `json:"message"`
}

// SystemInfoResponse réponse de GET /api/system/info
type SystemInfoResponse struct {
	Application ApplicationInfo `json:"application"`
	Database    DatabaseInfo    `json:"database"`
	Cache       CacheInfo       `json:"cache"`
	Alertes     []Alerte        `json:"alertes"`
}
