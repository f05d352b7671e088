package mailer

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. Controllers depend on the interface so
// tests can capture outgoing messages instead of hitting SMTP.
type Mailer interface {
	SendOtpEmail(to, code string, expiryMinutes int) error
	SendPasswordResetEmail(to, code string, expiryMinutes int) error
}

// Settings holds the SMTP connection details, copied from the app config.
type Settings struct {
	Host     string
	Port     int
	From     string
	FromName string
	Password string
}

type smtpMailer struct {
	cfg Settings
}

func NewSMTPMailer(cfg Settings) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.From, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("failed to send email to %s: %v", to, err)
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (m *smtpMailer) SendOtpEmail(to, code string, expiryMinutes int) error {
	body := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:480px;margin:auto">
			<h2>Verify your email</h2>
			<p>Use the code below to complete your registration:</p>
			<p style="font-size:28px;font-weight:bold;letter-spacing:6px">%s</p>
			<p>The code expires in %d minutes. If you did not request this, ignore this email.</p>
		</div>`, code, expiryMinutes)
	return m.send(to, "Your verification code", body)
}

func (m *smtpMailer) SendPasswordResetEmail(to, code string, expiryMinutes int) error {
	body := fmt.Sprintf(`
		<div style="font-family:Arial,sans-serif;max-width:480px;margin:auto">
			<h2>Password reset requested</h2>
			<p>Use the code below to reset your password:</p>
			<p style="font-size:28px;font-weight:bold;letter-spacing:6px">%s</p>
			<p>The code expires in %d minutes. If you did not request a reset, your account is safe and you can ignore this email.</p>
		</div>`, code, expiryMinutes)
	return m.send(to, "Reset your password", body)
}
