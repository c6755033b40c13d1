// Package email is the fallback notification channel for recipients
// without a registered push token. Same contract as push: best effort,
// failures are logged by the caller and never propagate.
package email

import (
	"gopkg.in/gomail.v2"

	"github.com/mesametamaarkhan/theekkardo/internal/config"
)

type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg *config.Config
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (e *SMTPSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", e.cfg.Email.FromEmail, e.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		e.cfg.Email.SMTPHost,
		e.cfg.Email.SMTPPort,
		e.cfg.Email.SMTPUser,
		e.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

// NopSender is used when email delivery is disabled in config.
type NopSender struct{}

func (NopSender) Send(to, subject, body string) error {
	return nil
}
