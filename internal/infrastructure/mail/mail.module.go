package mail

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewSender sélectionne le fournisseur configuré
func NewSender(cfg *Config, log *zap.Logger) (Sender, error) {
	switch cfg.Provider {
	case "smtp":
		return NewSMTPSender(cfg)
	case "sendgrid":
		return NewSendgridSender(cfg)
	case "console", "":
		return NewConsoleSender(log), nil
	default:
		return nil, fmt.Errorf("fournisseur email inconnu: %s", cfg.Provider)
	}
}

var Module = fx.Options(
	fx.Provide(NewSender),
	fx.Provide(NewMailer),
)
