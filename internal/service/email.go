package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

var ErrEmailDelivery = errors.New("failed to deliver email")

// EmailSender is the slice of the email service its consumers depend on.
type EmailSender interface {
	SendAccountActivationEmail(email, token, name string) error
	SendPasswordResetEmail(email, token, name string) error
}

type EmailService struct {
	client       *resend.Client
	fromEmail    string
	supportEmail string
	appURL       string
	appName      string
	isDev        bool
}

func NewEmailService(apiKey, fromEmail, supportEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:       client,
		fromEmail:    fromEmail,
		supportEmail: supportEmail,
		appURL:       appURL,
		appName:      appName,
		isDev:        isDev,
	}
}

func (s *EmailService) SendAccountActivationEmail(email, token, name string) error {
	activationURL := fmt.Sprintf("%s/#/login?token=%s", s.appURL, token)
	subject, body := accountActivationEmailTemplate(activationURL, token, name, s.appName, s.supportEmail)

	return s.send("account_activation", email, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(email, token, name string) error {
	resetURL := fmt.Sprintf("%s/#/password-reset?reset=%s", s.appURL, token)
	subject, body := passwordResetEmailTemplate(resetURL, name, s.appName, s.supportEmail)

	return s.send("password_reset", email, subject, body)
}

func (s *EmailService) send(emailType, to, subject, body string) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", "type", emailType, "to", to, "subject", subject)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", emailType, "to", to)
	}
	return err
}
