package ports

import (
	"context"

	"qualite-pro-core/internal/shared/models"
)

// Notifier création de notifications, sans échec pour l'appelant
type Notifier interface {
	CreerNotification(ctx context.Context, utilisateurID, message, typeNotification, objetID string)
}

// ActionEntry action à tracer ; les valeurs sont sérialisées en JSON
type ActionEntry struct {
	Action           string
	Entite           string
	EntiteID         string
	Details          string
	AnciennesValeurs interface{}
	NouvellesValeurs interface{}
}

// ActionRecorder journal d'audit, sans échec pour l'appelant
type ActionRecorder interface {
	EnregistrerAction(ctx context.Context, entry ActionEntry)
}

// UserDirectory lecture des comptes utilisateurs
type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Utilisateur, error)
}
