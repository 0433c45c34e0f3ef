package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Nomenclature valeur de référence (statuts, types, catégories, priorités)
type Nomenclature struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type         string             `bson:"type" json:"type"`
	Code         string             `bson:"code" json:"code"`
	Libelle      string             `bson:"libelle" json:"libelle"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Ordre        int                `bson:"ordre" json:"ordre"`
	Actif        bool               `bson:"actif" json:"actif"`
	DateCreation time.Time          `bson:"dateCreation" json:"dateCreation"`
}
