package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tanimomor/portfolio/internal/store"
)

// Relay is where a delivered message goes.
type Relay interface {
	Name() string
	Deliver(ctx context.Context, m Message) error
}

// Inbox keeps messages in the local database for the admin area.
type Inbox struct {
	Store *store.Store
}

func (Inbox) Name() string { return "inbox" }

func (i Inbox) Deliver(ctx context.Context, m Message) error {
	return i.Store.SaveMessage(ctx, store.Message{
		ID:        m.ID,
		Name:      m.Submission.Name,
		Email:     m.Submission.Email,
		Subject:   m.Submission.Subject,
		Body:      m.Submission.Message,
		CreatedAt: m.ReceivedAt,
	})
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer forwards messages over SMTP.
type Mailer struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// Send defaults to smtp.SendMail.
	Send SendFunc
}

func (*Mailer) Name() string { return "smtp" }

func (m *Mailer) Deliver(_ context.Context, msg Message) error {
	if m.User == "" || m.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	send := m.Send
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return send(m.Host+":"+m.Port, auth, m.User, []string{m.To}, m.compose(msg))
}

func (m *Mailer) compose(msg Message) []byte {
	sub := msg.Submission
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, sub.Name, sub.Email, sub.Subject, sub.Message)

	return []byte("To: " + headerValue(m.To) + "\r\n" +
		"Subject: Portfolio Contact: " + headerValue(sub.Subject) + "\r\n" +
		"From: " + headerValue(m.User) + "\r\n" +
		"Reply-To: " + headerValue(sub.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

var headerBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// headerValue keeps v on a single header line.
func headerValue(v string) string {
	return headerBreaks.Replace(v)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Name() string { return "discard" }

func (Discard) Deliver(context.Context, Message) error { return nil }
