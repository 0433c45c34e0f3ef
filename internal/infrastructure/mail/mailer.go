package mail

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"qualite-pro-core/internal/infrastructure/metrics"
)

// Types d'email, utilisés comme label de métrique
const (
	KindBienvenue     = "bienvenue"
	KindResetPassword = "reset_password"
	KindRetard        = "retard"
	KindEcheance      = "echeance"
	KindDigest        = "digest"
	KindRelance       = "relance"
)

// Mailer envoi journalisé et mesuré. Une adresse vide n'est pas une erreur : rien n'est envoyé.
type Mailer struct {
	sender  Sender
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewMailer(sender Sender, m *metrics.Metrics, log *zap.Logger) *Mailer {
	return &Mailer{sender: sender, metrics: m, log: log.Named("mail")}
}

// Deliver retourne l'erreur du fournisseur ; les appelants métier se contentent de la journaliser
func (m *Mailer) Deliver(ctx context.Context, kind, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		m.log.Debug("email ignoré, destinataire sans adresse", zap.String("kind", kind))
		return nil
	}

	err := m.sender.Send(ctx, to, subject, body)
	m.metrics.RecordEmail(kind, err)
	if err != nil {
		m.log.Error("envoi email échoué",
			zap.String("kind", kind),
			zap.String("to", to),
			zap.Error(err),
		)
		return err
	}

	m.log.Info("email envoyé", zap.String("kind", kind), zap.String("to", to))
	return nil
}
