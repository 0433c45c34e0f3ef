package dto

import (
	"strings"

	"qualite-pro-core/internal/shared/models"
)

type SuiviRequest struct {
	FicheID              string   `json:"ficheId" validate:"notblank"`
	DateSuivi            string   `json:"dateSuivi"`
	EtatAvancement       string   `json:"etatAvancement" validate:"omitempty,oneof=EN_COURS TERMINE BLOQUE EN_ATTENTE VALIDE"`
	Problemes            string   `json:"problemes"`
	Decisions            string   `json:"decisions"`
	IndicateursKpi       string   `json:"indicateursKpi"`
	TauxConformite       *float64 `json:"tauxConformite" validate:"omitempty,gte=0,lte=100"`
	DelaiTraitementJours *float64 `json:"delaiTraitementJours" validate:"omitempty,gte=0"`
	AjoutePar            string   `json:"ajoutePar"`
}

type SuiviStats struct {
	Total               int            `json:"total"`
	TauxConformiteMoyen float64        `json:"tauxConformiteMoyen"`
	ParEtat             map[string]int `json:"parEtat"`
}

var libellesEtat = map[string]string{
	"en cours":   models.EtatEnCours,
	"terminé":    models.EtatTermine,
	"termine":    models.EtatTermine,
	"bloqué":     models.EtatBloque,
	"bloque":     models.EtatBloque,
	"en attente": models.EtatEnAttente,
	"validé":     models.EtatValide,
	"valide":     models.EtatValide,
}

// NormaliserEtat convertit les libellés français ("En cours", "Terminé"...) en codes
func NormaliserEtat(etat string) string {
	etat = strings.TrimSpace(etat)
	if code, ok := libellesEtat[strings.ToLower(etat)]; ok {
		return code
	}
	return strings.ToUpper(etat)
}
