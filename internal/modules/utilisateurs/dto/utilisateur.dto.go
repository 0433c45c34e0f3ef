package dto

// CreateUtilisateurRequest mot de passe optionnel : un mot de passe temporaire est généré sinon
type CreateUtilisateurRequest struct {
	Nom       string `json:"nom" validate:"notblank,max=100"`
	Prenom    string `json:"prenom" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	Role      string `json:"role" validate:"required,oneof=ADMIN CHEF_PROJET PILOTE_QUALITE"`
	Telephone string `json:"telephone" validate:"max=30"`
}

// UpdateUtilisateurRequest ne modifie jamais le mot de passe
type UpdateUtilisateurRequest struct {
	Nom       string `json:"nom" validate:"notblank,max=100"`
	Prenom    string `json:"prenom" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=ADMIN CHEF_PROJET PILOTE_QUALITE"`
	Telephone string `json:"telephone" validate:"max=30"`
	Actif     *bool  `json:"actif"`
}

type ResetPasswordResponse struct {
	Message              string `json:"message"`
	MotDePasseTemporaire string `json:"motDePasseTemporaire"`
}

type UtilisateurStats struct {
	Total   int            `json:"total"`
	Actifs  int            `json:"actifs"`
	ParRole map[string]int `json:"parRole"`
}
