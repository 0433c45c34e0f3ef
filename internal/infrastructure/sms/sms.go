package sms

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Config struct {
	Enabled bool
	Sender  string
}

// Service canal SMS. Aucun opérateur n'est branché : les messages sont journalisés.
type Service struct {
	cfg *Config
	log *zap.Logger
}

func NewService(cfg *Config, log *zap.Logger) *Service {
	return &Service{cfg: cfg, log: log.Named("sms")}
}

func (s *Service) Enabled() bool {
	return s.cfg.Enabled
}

// Send retourne false quand le canal est désactivé ou le numéro vide
func (s *Service) Send(ctx context.Context, telephone, message string) bool {
	if !s.cfg.Enabled || strings.TrimSpace(telephone) == "" {
		return false
	}
	s.log.Info("SMS envoyé",
		zap.String("sender", s.cfg.Sender),
		zap.String("to", telephone),
		zap.String("message", message),
	)
	return true
}

var Module = fx.Options(
	fx.Provide(NewService),
)
