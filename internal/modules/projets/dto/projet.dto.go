package dto

// ProjetRequest echeance au format ISO (AAAA-MM-JJ ou AAAA-MM-JJTHH:MM:SSZ)
type ProjetRequest struct {
	Nom         string `json:"nom" validate:"notblank,max=200"`
	Description string `json:"description"`
	Objectifs   string `json:"objectifs"`
	Responsable string `json:"responsable" validate:"max=100"`
	Echeance    string `json:"echeance"`
	Statut      string `json:"statut" validate:"max=50"`
}
