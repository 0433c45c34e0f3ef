// Package portstest implémentations en mémoire des ports partagés, pour les tests
package portstest

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"qualite-pro-core/internal/infrastructure/database/mongodb"
	"qualite-pro-core/internal/shared/models"
	"qualite-pro-core/internal/shared/ports"
)

type NotificationCall struct {
	UtilisateurID string
	Message       string
	Type          string
	ObjetID       string
}

// Notifier enregistre les notifications demandées
type Notifier struct {
	mu    sync.Mutex
	Calls []NotificationCall
}

func (n *Notifier) CreerNotification(ctx context.Context, utilisateurID, message, typeNotification, objetID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Calls = append(n.Calls, NotificationCall{utilisateurID, message, typeNotification, objetID})
}

// Recorder enregistre les entrées d'historique
type Recorder struct {
	mu      sync.Mutex
	Entries []ports.ActionEntry
}

func (r *Recorder) EnregistrerAction(ctx context.Context, entry ports.ActionEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, entry)
}

// Actions liste des actions enregistrées, dans l'ordre
func (r *Recorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.Action)
	}
	return out
}

// Users annuaire en mémoire
type Users struct {
	ByID map[string]*models.Utilisateur
}

// NewUsers attribue un identifiant aux utilisateurs qui n'en ont pas
func NewUsers(users ...*models.Utilisateur) *Users {
	d := &Users{ByID: map[string]*models.Utilisateur{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		d.ByID[u.ID.Hex()] = u
	}
	return d
}

func (d *Users) FindByID(ctx context.Context, id string) (*models.Utilisateur, error) {
	u, ok := d.ByID[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return u, nil
}
