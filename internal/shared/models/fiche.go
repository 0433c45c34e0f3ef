package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FicheQualite fiche de contrôle, d'audit ou d'amélioration
type FicheQualite struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Titre            string             `bson:"titre" json:"titre"`
	Description      string             `bson:"description" json:"description"`
	TypeFiche        string             `bson:"typeFiche" json:"typeFiche"`
	Statut           string             `bson:"statut" json:"statut"`
	Responsable      string             `bson:"responsable" json:"responsable"`
	Commentaire      string             `bson:"commentaire,omitempty" json:"commentaire,omitempty"`
	Categorie        string             `bson:"categorie,omitempty" json:"categorie,omitempty"`
	Priorite         string             `bson:"priorite,omitempty" json:"priorite,omitempty"`
	DateEcheance     *time.Time         `bson:"dateEcheance,omitempty" json:"dateEcheance,omitempty"`
	Observations     string             `bson:"observations,omitempty" json:"observations,omitempty"`
	DateCreation     time.Time          `bson:"dateCreation" json:"dateCreation"`
	CreePar          string             `bson:"creePar,omitempty" json:"creePar,omitempty"`
	DateModification *time.Time         `bson:"dateModification,omitempty" json:"dateModification,omitempty"`
	ModifiePar       string             `bson:"modifiePar,omitempty" json:"modifiePar,omitempty"`
}

// FicheSuivi point d'avancement rattaché à une fiche qualité
type FicheSuivi struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FicheID              string             `bson:"ficheId" json:"ficheId"`
	DateSuivi            time.Time          `bson:"dateSuivi" json:"dateSuivi"`
	EtatAvancement       string             `bson:"etatAvancement,omitempty" json:"etatAvancement,omitempty"`
	Problemes            string             `bson:"problemes,omitempty" json:"problemes,omitempty"`
	Decisions            string             `bson:"decisions,omitempty" json:"decisions,omitempty"`
	IndicateursKpi       string             `bson:"indicateursKpi,omitempty" json:"indicateursKpi,omitempty"`
	TauxConformite       *float64           `bson:"tauxConformite,omitempty" json:"tauxConformite,omitempty"`
	DelaiTraitementJours *float64           `bson:"delaiTraitementJours,omitempty" json:"delaiTraitementJours,omitempty"`
	AjoutePar            string             `bson:"ajoutePar,omitempty" json:"ajoutePar,omitempty"`
}

// FicheProjet projet qualité
type FicheProjet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nom         string             `bson:"nom" json:"nom"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Objectifs   string             `bson:"objectifs,omitempty" json:"objectifs,omitempty"`
	Responsable string             `bson:"responsable,omitempty" json:"responsable,omitempty"`
	Echeance    *time.Time         `bson:"echeance,omitempty" json:"echeance,omitempty"`
	Statut      string             `bson:"statut,omitempty" json:"statut,omitempty"`
}
