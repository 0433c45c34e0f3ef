package dto

type NomenclatureRequest struct {
	Type        string `json:"type" validate:"notblank,max=50"`
	Code        string `json:"code" validate:"notblank,max=50"`
	Libelle     string `json:"libelle" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	Ordre       int    `json:"ordre" validate:"gte=0"`
	// Actif absent = true
	Actif *bool `json:"actif"`
}
