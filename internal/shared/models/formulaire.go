package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormulaireObligatoire formulaire à soumettre avant une échéance
type FormulaireObligatoire struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nom                 string             `bson:"nom" json:"nom"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	TypeFormulaire      string             `bson:"typeFormulaire,omitempty" json:"typeFormulaire,omitempty"`
	ProjetID            string             `bson:"projetId,omitempty" json:"projetId,omitempty"`
	ResponsableID       string             `bson:"responsableId" json:"responsableId"`
	ResponsableNom      string             `bson:"responsableNom,omitempty" json:"responsableNom,omitempty"`
	DateEcheance        time.Time          `bson:"dateEcheance" json:"dateEcheance"`
	DateCreation        time.Time          `bson:"dateCreation" json:"dateCreation"`
	Statut              string             `bson:"statut" json:"statut"`
	Priorite            string             `bson:"priorite,omitempty" json:"priorite,omitempty"`
	Commentaire         string             `bson:"commentaire,omitempty" json:"commentaire,omitempty"`
	Notifie             bool               `bson:"notifie" json:"notifie"`
	DateNotification    *time.Time         `bson:"dateNotification,omitempty" json:"dateNotification,omitempty"`
	NombreNotifications int                `bson:"nombreNotifications" json:"nombreNotifications"`
}

// EstEnRetard échéance strictement dépassée et formulaire non soumis
func (f *FormulaireObligatoire) EstEnRetard(now time.Time) bool {
	return f.DateEcheance.Before(now) && f.Statut != FormulaireSoumis
}
