// Package notify delivers best-effort email notifications. Callers treat a
// failed send as a warning, never as a failure of the triggering operation.
package notify

import (
	"fmt"
	"net/smtp"

	log "github.com/sirupsen/logrus"
)

// Notifier sends a message to a single recipient.
type Notifier interface {
	Send(to, subject, body string) error
}

// SMTPNotifier delivers mail through a plain SMTP relay.
type SMTPNotifier struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// NewSMTPNotifier creates an SMTPNotifier from the given relay settings
func NewSMTPNotifier(host string, port int, user, pass, from string) *SMTPNotifier {
	return &SMTPNotifier{Host: host, Port: port, User: user, Pass: pass, From: from}
}

// Send delivers one message; auth is skipped when no user is configured
func (n *SMTPNotifier) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	msg := []byte("From: " + n.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	var auth smtp.Auth
	if n.User != "" {
		auth = smtp.PlainAuth("", n.User, n.Pass, n.Host)
	}
	return smtp.SendMail(addr, auth, n.From, []string{to}, msg)
}

// LogNotifier writes messages to the log instead of sending them. Used in
// development and whenever no SMTP relay is configured.
type LogNotifier struct{}

// Send logs the message and always succeeds
func (n *LogNotifier) Send(to, subject, body string) error {
	log.WithFields(log.Fields{
		"to":      to,
		"subject": subject,
	}).Info("[notify] email suppressed, no relay configured")
	return nil
}
