package mail

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/summitview/outreach/internal/infra/config"
)

// EmailSender submits one message per call over the provider's SMTP relay.
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(cfg config.SMTPConfig) *EmailSender {
	return &EmailSender{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		From:     cfg.From,
	}
}

func (s *EmailSender) Send(to, subject, html string) (string, string, error) {
	// SMTP assigns no id on submit, so a Message-ID set here stands in as
	// the provider identifier recorded for the send.
	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), senderDomain(s.From))

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return "", "", fmt.Errorf("smtp send failed: %w", err)
	}

	return messageID, "accepted", nil
}

func senderDomain(from string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i+1 < len(from) {
		return from[i+1:]
	}
	return "localhost"
}
