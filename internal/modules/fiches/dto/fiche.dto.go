package dto

// FicheRequest typeFiche et statut sont acceptés sans distinction de casse
type FicheRequest struct {
	Titre        string `json:"titre" validate:"notblank,min=3,max=200"`
	Description  string `json:"description" validate:"notblank,min=10"`
	TypeFiche    string `json:"typeFiche" validate:"notblank,oneof=CONTROLE AUDIT AMELIORATION FORMATION MAINTENANCE AUTRE"`
	Statut       string `json:"statut" validate:"notblank,oneof=EN_COURS TERMINEE VALIDEE REJETEE EN_ATTENTE BLOQUEE"`
	Responsable  string `json:"responsable" validate:"notblank"`
	DateEcheance string `json:"dateEcheance" validate:"notblank"`
	Commentaire  string `json:"commentaire"`
	Categorie    string `json:"categorie" validate:"max=100"`
	Priorite     string `json:"priorite" validate:"omitempty,oneof=HAUTE MOYENNE BASSE URGENTE"`
	Observations string `json:"observations"`
}

type FicheStats struct {
	Total     int            `json:"total"`
	ParStatut map[string]int `json:"parStatut"`
	ParType   map[string]int `json:"parType"`
}
