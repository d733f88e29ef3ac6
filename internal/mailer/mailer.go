// Package mailer sends plain-text operational mail over SMTP. Sends run
// behind a circuit breaker so a dead relay cannot pile up connection
// attempts from the background worker.
package mailer

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Kruzk02/grocery-store-api/internal/config"
	"github.com/Kruzk02/grocery-store-api/internal/pkg/breaker"
)

type Mailer struct {
	client  *gomail.Client
	from    string
	breaker *breaker.Breaker
	logger  *zap.Logger
}

func New(cfg config.SMTP, br *breaker.Breaker, logger *zap.Logger) (*Mailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From, breaker: br, logger: logger}, nil
}

func (m *Mailer) Send(to, subject, body string) error {
	if err := m.breaker.Allow(); err != nil {
		return err
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSend(msg); err != nil {
		m.breaker.Failure()
		m.logger.Warn("mail send failed", zap.String("to", to), zap.Error(err))
		return err
	}
	m.breaker.Success()
	return nil
}
