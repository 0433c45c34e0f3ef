package dto

type TacheRequest struct {
	Titre        string `json:"titre" validate:"notblank,max=200"`
	Description  string `json:"description"`
	ProjetID     string `json:"projetId"`
	DateEcheance string `json:"dateEcheance"`
	Priorite     string `json:"priorite" validate:"omitempty,oneof=BASSE MOYENNE HAUTE URGENTE"`
	Statut       string `json:"statut" validate:"omitempty,oneof=A_FAIRE EN_COURS TERMINEE EN_RETARD"`
	CreePar      string `json:"creePar"`
}

type TacheStats struct {
	Total            int `json:"total"`
	AFaire           int `json:"aFaire"`
	EnCours          int `json:"enCours"`
	Terminees        int `json:"terminees"`
	EnRetard         int `json:"enRetard"`
	Prochaines7Jours int `json:"prochaines7Jours"`
}
