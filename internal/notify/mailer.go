package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"crg-site/internal/config"
	"crg-site/internal/models"
)

// Mailer delivers a talk announcement to a list of recipients.
type Mailer interface {
	SendTalkAnnouncement(recipients []string, event models.TalkNotificationEvent) error
}

// SMTPMailer sends announcements through a plain SMTP relay.
type SMTPMailer struct {
	Config config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{Config: cfg}
}

func (m *SMTPMailer) SendTalkAnnouncement(recipients []string, event models.TalkNotificationEvent) error {
	if m.Config.SMTPHost == "" {
		return fmt.Errorf("SMTP host not configured")
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Upcoming Talk: %s", event.Title)

	var body strings.Builder
	body.WriteString(fmt.Sprintf("Upcoming talk: %s\r\n\r\n", event.Title))
	body.WriteString(fmt.Sprintf("Speaker: %s\r\n", event.Speaker))
	body.WriteString(fmt.Sprintf("Date: %s\r\n", event.Date))
	body.WriteString(fmt.Sprintf("Time: %s\r\n", event.Time))
	body.WriteString(fmt.Sprintf("Location: %s\r\n", event.Location))
	if event.ZoomLink != "" {
		body.WriteString(fmt.Sprintf("Zoom: %s\r\n", event.ZoomLink))
	}
	body.WriteString("\r\nWe look forward to seeing you there!\r\n")

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.Config.From, strings.Join(recipients, ", "), subject, body.String())

	addr := m.Config.SMTPHost + ":" + m.Config.SMTPPort
	var auth smtp.Auth
	if m.Config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", m.Config.SMTPUsername, m.Config.SMTPPassword, m.Config.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, m.Config.From, recipients, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send announcement: %w", err)
	}
	return nil
}
