package mail

import (
	"context"
	"fmt"
)

// Config paramètres d'envoi des emails
type Config struct {
	Provider       string
	From           string
	FromName       string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SendgridAPIKey string
}

// Sender contrat commun aux fournisseurs d'email
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

func validateSMTPConfig(cfg *Config) error {
	if cfg.SMTPHost == "" {
		return fmt.Errorf("hôte SMTP requis")
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return fmt.Errorf("port SMTP invalide: %d", cfg.SMTPPort)
	}
	if cfg.From == "" {
		return fmt.Errorf("adresse d'expédition requise")
	}
	return nil
}
