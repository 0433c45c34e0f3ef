package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Utilisateur compte applicatif. Le mot de passe haché n'est jamais sérialisé en JSON.
type Utilisateur struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nom              string             `bson:"nom" json:"nom"`
	Prenom           string             `bson:"prenom,omitempty" json:"prenom,omitempty"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	Role             string             `bson:"role" json:"role"`
	Telephone        string             `bson:"telephone,omitempty" json:"telephone,omitempty"`
	Actif            bool               `bson:"actif" json:"actif"`
	DateCreation     time.Time          `bson:"dateCreation" json:"dateCreation"`
	DateModification *time.Time         `bson:"dateModification,omitempty" json:"dateModification,omitempty"`
	CreePar          string             `bson:"creePar,omitempty" json:"creePar,omitempty"`
}

// NomComplet prénom et nom quand le prénom est connu
func (u *Utilisateur) NomComplet() string {
	if u.Prenom == "" {
		return u.Nom
	}
	return u.Prenom + " " + u.Nom
}
