package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	NotifyTo string
}

func NewEmailSender(host string, port int, user, password, notifyTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		NotifyTo: notifyTo,
	}
}

// SendLeadNotification mails the sales inbox about a freshly captured lead.
// Best-effort: callers log and move on if SMTP is down.
func (s *EmailSender) SendLeadNotification(name, phone, source string) error {
	if source == "" {
		source = "unknown"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", s.NotifyTo)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s", name))
	m.SetBody("text/plain", fmt.Sprintf("Name: %s\nPhone: %s\nSource: %s\n", name, phone, source))

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	return nil
}
