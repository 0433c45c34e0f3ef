package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoriqueAction entrée du journal d'audit
type HistoriqueAction struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action           string             `bson:"action" json:"action"`
	Entite           string             `bson:"entite" json:"entite"`
	EntiteID         string             `bson:"entiteId,omitempty" json:"entiteId,omitempty"`
	UtilisateurID    string             `bson:"utilisateurId,omitempty" json:"utilisateurId,omitempty"`
	UtilisateurNom   string             `bson:"utilisateurNom" json:"utilisateurNom"`
	Details          string             `bson:"details,omitempty" json:"details,omitempty"`
	DateAction       time.Time          `bson:"dateAction" json:"dateAction"`
	AnciennesValeurs string             `bson:"anciennesValeurs,omitempty" json:"anciennesValeurs,omitempty"`
	NouvellesValeurs string             `bson:"nouvellesValeurs,omitempty" json:"nouvellesValeurs,omitempty"`
	IPAdresse        string             `bson:"ipAdresse,omitempty" json:"ipAdresse,omitempty"`
	UserAgent        string             `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}

// Notification message destiné à un utilisateur
type Notification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message       string             `bson:"message" json:"message"`
	UtilisateurID string             `bson:"utilisateurId" json:"utilisateurId"`
	DateCreation  time.Time          `bson:"dateCreation" json:"dateCreation"`
	Lu            bool               `bson:"lu" json:"lu"`
	Type          string             `bson:"type,omitempty" json:"type,omitempty"`
	ObjetID       string             `bson:"objetId,omitempty" json:"objetId,omitempty"`
}

// Tache tâche personnelle, éventuellement rattachée à un projet
type Tache struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Titre            string             `bson:"titre" json:"titre"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	ProjetID         string             `bson:"projetId,omitempty" json:"projetId,omitempty"`
	ProjetNom        string             `bson:"projetNom,omitempty" json:"projetNom,omitempty"`
	DateEcheance     *time.Time         `bson:"dateEcheance,omitempty" json:"dateEcheance,omitempty"`
	Priorite         string             `bson:"priorite,omitempty" json:"priorite,omitempty"`
	Statut           string             `bson:"statut" json:"statut"`
	CreePar          string             `bson:"creePar" json:"creePar"`
	DateCreation     time.Time          `bson:"dateCreation" json:"dateCreation"`
	DateModification *time.Time         `bson:"dateModification,omitempty" json:"dateModification,omitempty"`
}

// Attachment pièce jointe stockée sur disque
type Attachment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OriginalFileName string             `bson:"originalFileName" json:"originalFileName"`
	StoredFileName   string             `bson:"storedFileName" json:"storedFileName"`
	ContentType      string             `bson:"contentType" json:"contentType"`
	FileSize         int64              `bson:"fileSize" json:"fileSize"`
	EntityType       string             `bson:"entityType" json:"entityType"`
	EntityID         string             `bson:"entityId" json:"entityId"`
	UploadedBy       string             `bson:"uploadedBy" json:"uploadedBy"`
	UploadedAt       time.Time          `bson:"uploadedAt" json:"uploadedAt"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
}
