package mail

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Message email conservé par ConsoleSender
type Message struct {
	To      string
	Subject string
	Body    string
}

// ConsoleSender journalise les emails au lieu de les envoyer (développement, tests)
type ConsoleSender struct {
	log *zap.Logger

	mu           sync.Mutex
	SentMessages []Message
}

func NewConsoleSender(log *zap.Logger) *ConsoleSender {
	return &ConsoleSender{log: log}
}

func (s *ConsoleSender) Send(ctx context.Context, to, subject, body string) error {
	s.mu.Lock()
	s.SentMessages = append(s.SentMessages, Message{To: to, Subject: subject, Body: body})
	s.mu.Unlock()

	s.log.Info("email (console)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}

// Sent copie des messages envoyés
func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.SentMessages))
	copy(out, s.SentMessages)
	return out
}
