package dto

// Périodes prédéfinies des filtres
const (
	PeriodeAujourdhui = "aujourd-hui"
	PeriodeSemaine    = "semaine"
	PeriodeMois       = "mois"
)

// FiltresRequest corps de POST /filtres et /export. Dates au format AAAA-MM-JJ, fin incluse.
// Une période prédéfinie remplace dateDebut/dateFin.
type FiltresRequest struct {
	TypeAction    string `json:"typeAction"`
	Module        string `json:"module"`
	UtilisateurID string `json:"utilisateurId"`
	DateDebut     string `json:"dateDebut"`
	DateFin       string `json:"dateFin"`
	Periode       string `json:"periode" validate:"omitempty,oneof=aujourd-hui semaine mois"`
}

type HistoriqueStats struct {
	Total      int64 `json:"total"`
	Aujourdhui int64 `json:"aujourdHui"`
	Semaine    int64 `json:"semaine"`
	Mois       int64 `json:"mois"`
}
