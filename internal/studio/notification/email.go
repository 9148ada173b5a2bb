package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP delivery settings.
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string

	// BaseURL is the externally visible root of the web app, used to build
	// login and invite links.
	BaseURL string
}

// EmailNotifier delivers login links and invitations over SMTP. It
// implements service.Notifier.
type EmailNotifier struct {
	config EmailConfig
}

func NewEmailNotifier(config EmailConfig) *EmailNotifier {
	return &EmailNotifier{config: config}
}

func (s *EmailNotifier) SendLoginLink(_ context.Context, email, token string) error {
	link := fmt.Sprintf("%s/login/redeem?token=%s", s.config.BaseURL, url.QueryEscape(token))
	subject := "Sign in to Trackroom"
	body := fmt.Sprintf(`<html><body>
		<h2>Sign in to Trackroom</h2>
		<p><a href="%s">Click here to sign in</a></p>
		<p>Or copy this link to your browser: %s</p>
		<p>This link is single use and expires shortly. If you did not request it, ignore this email.</p>
	</body></html>`, link, link)
	return s.send(email, subject, body)
}

func (s *EmailNotifier) SendInvitation(_ context.Context, email, studioName, token string) error {
	link := fmt.Sprintf("%s/invites/accept?token=%s", s.config.BaseURL, url.QueryEscape(token))
	subject := fmt.Sprintf("You have been invited to %s", studioName)
	body := fmt.Sprintf(`<html><body>
		<h2>You have been invited to join %s on Trackroom</h2>
		<p><a href="%s">Click here to accept the invitation</a></p>
		<p>Or copy this link to your browser: %s</p>
		<p>The invitation expires; if it does, ask the sender to invite you again.</p>
	</body></html>`, studioName, link, link)
	return s.send(email, subject, body)
}

func (s *EmailNotifier) send(to, subject, body string) error {
	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, body)

	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	return smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg))
}
