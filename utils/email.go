// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailSender is the transactional-email surface the controllers depend on.
// Checkout treats send failures as non-fatal, so tests substitute a failing
// fake here to prove the response is unaffected.
type EmailSender interface {
	SendEmail(toEmail, subject, textContent, htmlContent string) error
}

// EmailService sends transactional email through SendGrid.
type EmailService struct {
	client  *sendgrid.Client
	from    string
	replyTo string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		panic("SENDGRID_API_KEY is not set in environment variables")
	}
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "no-responder@clicafe.com"
	}
	return &EmailService{
		client:  sendgrid.NewSendClient(apiKey),
		from:    from,
		replyTo: os.Getenv("EMAIL_REPLY_TO"),
	}
}

// SendEmail sends a plaintext + HTML email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, textContent, htmlContent string) error {
	from := mail.NewEmail("CliCafé", es.from)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	if es.replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", es.replyTo))
	}

	response, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d, body %s", response.StatusCode, response.Body)
	}

	log.Printf("Email %q sent to %s", subject, toEmail)
	return nil
}

// SendVerificationEmail sends an email verification link to the user
func (es *EmailService) SendVerificationEmail(toEmail, token string) error {
	baseURL := os.Getenv("APP_URL")
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%s", os.Getenv("PORT"))
	}
	verificationLink := fmt.Sprintf("%s/verify?token=%s", baseURL, token)

	subject := "Verifica tu correo"
	text := fmt.Sprintf("Por favor verifica tu correo visitando el siguiente enlace: %s", verificationLink)
	html := fmt.Sprintf(
		"<strong>Por favor verifica tu correo haciendo clic en el siguiente enlace:</strong> <a href=\"%s\">Verificar correo</a>",
		verificationLink,
	)

	return es.SendEmail(toEmail, subject, text, html)
}
