// internal/notify/mailer.go

// Package notify delivers operator alerts. Delivery is fire-and-forget:
// failures are logged, never propagated to the monitoring loop.
package notify

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/wneessen/go-mail"

	"github.com/zacharyrs/ups/internal/config"
)

// Mailer sends alerts over SMTP.
type Mailer struct {
	client    *mail.Client
	from      string
	to        []string
	machineID string
	log       *slog.Logger
}

// NewMailer builds an SMTP notifier from the mail configuration.
// An empty machine id falls back to the hostname.
func NewMailer(cfg config.MailConfig, logger *slog.Logger) (*Mailer, error) {
	machineID := cfg.MachineID
	if machineID == "" {
		hn, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("notify: resolve hostname: %w", err)
		}
		machineID = hn
	}

	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}

	return &Mailer{
		client:    client,
		from:      cfg.From,
		to:        cfg.To,
		machineID: machineID,
		log:       logger,
	}, nil
}

// Send delivers one alert to every configured recipient.
func (m *Mailer) Send(subject, body string) {
	m.log.Info("alert", "subject", subject)

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		m.log.Error("invalid alert sender", "from", m.from, "err", err)
		return
	}
	if err := msg.To(m.to...); err != nil {
		m.log.Error("invalid alert recipient", "to", m.to, "err", err)
		return
	}
	msg.Subject(subjectLine(m.machineID, subject))
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSend(msg); err != nil {
		m.log.Error("failed to send alert mail", "subject", subject, "err", err)
	}
}

// subjectLine prefixes the alert subject with the machine id, so alerts
// from different hosts are distinguishable in one inbox.
func subjectLine(machineID, subject string) string {
	return fmt.Sprintf("%s: %s", machineID, subject)
}
