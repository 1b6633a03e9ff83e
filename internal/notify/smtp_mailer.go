package notify

import (
	"bytes"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

type SMTPMailer struct {
	Host string
	Port int
	From string
	User string
	Pass string
}

func NewSMTPMailer(host string, port int, from, user, pass string) *SMTPMailer {
	return &SMTPMailer{
		Host: strings.TrimSpace(host),
		Port: port,
		From: strings.TrimSpace(from),
		User: strings.TrimSpace(user),
		Pass: strings.TrimSpace(pass),
	}
}

func (s *SMTPMailer) SendCheckInConfirmation(toEmail, toName, personToMeet string, checkInTime time.Time) error {
	subject := "You're checked in"
	text := fmt.Sprintf("Hi %s,\n\nYou were checked in at %s to meet %s.\nPlease wear your visitor badge while on site.",
		toName, checkInTime.Format("15:04"), personToMeet)
	html := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>You were checked in at <strong>%s</strong> to meet <strong>%s</strong>.</p>
		<p>Please wear your visitor badge while on site.</p>
	`, toName, checkInTime.Format("15:04"), personToMeet)

	return s.sendEmail(toEmail, subject, text, html)
}

func (s *SMTPMailer) SendCheckOutReceipt(toEmail, toName string, checkOutTime time.Time, durationMinutes int) error {
	subject := "You're checked out"
	text := fmt.Sprintf("Hi %s,\n\nYou were checked out at %s. Your visit lasted %dm.\nThanks for visiting.",
		toName, checkOutTime.Format("15:04"), durationMinutes)
	html := fmt.Sprintf(`
		<h2>Goodbye, %s!</h2>
		<p>You were checked out at <strong>%s</strong>. Your visit lasted <strong>%dm</strong>.</p>
		<p>Thanks for visiting.</p>
	`, toName, checkOutTime.Format("15:04"), durationMinutes)

	return s.sendEmail(toEmail, subject, text, html)
}

func (s *SMTPMailer) sendEmail(toEmail, subject, text, html string) error {
	toEmail = strings.TrimSpace(toEmail)
	if toEmail == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	boundary := "mixed-boundary"

	fmt.Fprintf(&buf, "From: %s\r\n", s.From)
	fmt.Fprintf(&buf, "To: %s\r\n", toEmail)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", text)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n\r\n", html)

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)

	// Mailpit or development SMTP (no auth)
	if s.User == "" {
		return smtp.SendMail(addr, nil, s.From, []string{toEmail}, buf.Bytes())
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	return smtp.SendMail(addr, auth, s.From, []string{toEmail}, buf.Bytes())
}
