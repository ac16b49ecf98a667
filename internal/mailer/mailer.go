// Package mailer dispatches transactional email. The interface stays
// narrow so usecases never see SMTP details and tests can record sends.
package mailer

import (
	"fmt"
	"net/smtp"
)

type Mailer interface {
	SendWelcome(name, email, verificationToken string) error
	SendForgetPasswordLink(name, email, resetLink string) error
	SendPasswordResetSuccess(name, email string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s failed: %w", to, err)
	}
	return nil
}

func (m *smtpMailer) SendWelcome(name, email, verificationToken string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome! Use this code to verify your email: %s\n", name, verificationToken)
	return m.send(email, "Verify your email", body)
}

func (m *smtpMailer) SendForgetPasswordLink(name, email, resetLink string) error {
	body := fmt.Sprintf("Hi %s,\n\nUse this link to reset your password: %s\n\nIf you did not ask for this, ignore this email.\n", name, resetLink)
	return m.send(email, "Reset your password", body)
}

func (m *smtpMailer) SendPasswordResetSuccess(name, email string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour password was just changed. You can sign in with the new password now.\n", name)
	return m.send(email, "Password updated", body)
}
