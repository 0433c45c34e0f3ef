package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridSender envoi via l'API v3 de SendGrid
type SendgridSender struct {
	key  string
	from *sgmail.Email
}

func NewSendgridSender(cfg *Config) (*SendgridSender, error) {
	if cfg.SendgridAPIKey == "" {
		return nil, fmt.Errorf("clé API SendGrid requise")
	}
	return &SendgridSender{
		key:  cfg.SendgridAPIKey,
		from: sgmail.NewEmail(cfg.FromName, cfg.From),
	}, nil
}

func (s *SendgridSender) prepare(to, subject, body string) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail("", to))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", body))
	return m
}

func (s *SendgridSender) Send(ctx context.Context, to, subject, body string) error {
	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(to, subject, body))

	// sendgrid-go ne prend pas de contexte : on abandonne l'attente à l'annulation
	type result struct {
		status int
		body   string
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		res, err := sendgrid.API(req)
		if err != nil {
			ch <- result{err: err}
			return
		}
		ch <- result{status: res.StatusCode, body: res.Body}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("appel SendGrid échoué: %w", r.err)
		}
		if r.status >= http.StatusBadRequest {
			return fmt.Errorf("SendGrid a répondu %d: %s", r.status, r.body)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
