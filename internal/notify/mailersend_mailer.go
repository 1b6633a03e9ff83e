package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendCheckInConfirmation(toEmail, toName, personToMeet string, checkInTime time.Time) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "You're checked in"
	html := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>You were checked in at <strong>%s</strong> to meet <strong>%s</strong>.</p>
		<p>Please wear your visitor badge while on site.</p>
	`, toName, checkInTime.Format("15:04"), personToMeet)

	text := fmt.Sprintf("Hi %s, you were checked in at %s to meet %s.", toName, checkInTime.Format("15:04"), personToMeet)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendCheckOutReceipt(toEmail, toName string, checkOutTime time.Time, durationMinutes int) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "You're checked out"
	html := fmt.Sprintf(`
		<h2>Goodbye, %s!</h2>
		<p>You were checked out at <strong>%s</strong>. Your visit lasted <strong>%dm</strong>.</p>
		<p>Thanks for visiting.</p>
	`, toName, checkOutTime.Format("15:04"), durationMinutes)

	text := fmt.Sprintf("Hi %s, you were checked out at %s. Your visit lasted %dm.", toName, checkOutTime.Format("15:04"), durationMinutes)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
