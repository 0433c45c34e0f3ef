package dto

// FormulaireRequest corps de création et de mise à jour. dateEcheance en RFC3339 ou AAAA-MM-JJ[THH:MM[:SS]].
type FormulaireRequest struct {
	Nom            string `json:"nom" validate:"notblank,max=200"`
	Description    string `json:"description" validate:"max=2000"`
	TypeFormulaire string `json:"typeFormulaire" validate:"max=50"`
	ProjetID       string `json:"projetId"`
	ResponsableID  string `json:"responsableId" validate:"notblank"`
	ResponsableNom string `json:"responsableNom"`
	DateEcheance   string `json:"dateEcheance" validate:"notblank"`
	Statut         string `json:"statut" validate:"omitempty,oneof=EN_ATTENTE SOUMIS EN_RETARD ANNULE"`
	Priorite       string `json:"priorite" validate:"omitempty,oneof=HAUTE MOYENNE BASSE"`
	Commentaire    string `json:"commentaire" validate:"max=2000"`
}

// VerificationResult bilan d'une vérification des retards ou des échéances
type VerificationResult struct {
	Examines int `json:"examines"`
	Notifies int `json:"notifies"`
}
