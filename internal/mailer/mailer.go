package mailer

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer delivers transactional email. Delivery is best effort; callers treat
// failures as non-fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// NewMailer builds an SMTP mailer, or a noop mailer when no server is
// configured.
func NewMailer(smtpAddr, from string) Mailer {
	if smtpAddr == "" {
		log.Printf("mailer disabled, using noop: empty smtp address")
		return noopMailer{}
	}
	return &smtpMailer{addr: smtpAddr, from: from}
}

type smtpMailer struct {
	addr string
	from string
}

func (m *smtpMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("mailer noop send to=%s subject=%q", to, subject)
	return nil
}
