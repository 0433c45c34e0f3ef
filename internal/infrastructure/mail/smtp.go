package mail

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPSender envoi via un serveur SMTP en TLS implicite.
// localhost:1025 (MailHog, Mailpit) est utilisé en clair et sans authentification.
type SMTPSender struct {
	cfg *Config
}

func NewSMTPSender(cfg *Config) (*SMTPSender, error) {
	if err := validateSMTPConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration SMTP invalide: %w", err)
	}
	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) isLocalRelay() bool {
	return s.cfg.SMTPHost == "localhost" && s.cfg.SMTPPort == 1025
}

// buildMessage construit les en-têtes MIME ; le sujet est encodé en base64 UTF-8
func (s *SMTPSender) buildMessage(to, subject, body string) []byte {
	from := s.cfg.From
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("=?UTF-8?B?%s?= <%s>", base64.StdEncoding.EncodeToString([]byte(s.cfg.FromName)), s.cfg.From)
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: =?UTF-8?B?" + base64.StdEncoding.EncodeToString([]byte(subject)) + "?=\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	msg := s.buildMessage(to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	if s.isLocalRelay() {
		ch := make(chan error, 1)
		go func() {
			ch <- smtp.SendMail(addr, nil, s.cfg.From, []string{to}, msg)
		}()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}

	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connexion SMTP impossible: %w", err)
	}
	conn := tls.Client(rawConn, tlsConfig)
	defer conn.Close()

	if err := conn.HandshakeContext(ctx); err != nil {
		return fmt.Errorf("handshake TLS échoué: %w", err)
	}

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	if s.cfg.SMTPUsername != "" {
		auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("authentification SMTP échouée: %w", err)
		}
	}
	if err = client.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
