package services

import (
	"fmt"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/delgado-brothers/delgado-foods-api/config"
)

// MailerService sends transactional email over SMTP. When SMTP credentials
// are not configured it runs in disabled mode and only logs, so local
// development works without a mail account.
type MailerService struct {
	dialer *gomail.Dialer
	from   string
}

var mailerInstance *MailerService

// InitMailerService initializes the mailer from the application configuration
func InitMailerService(cfg *config.Config) *MailerService {
	if cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		log.Println("SMTP credentials not configured, email sending disabled")
		mailerInstance = &MailerService{
			dialer: nil,
			from:   "noreply@delgadofoods.com",
		}
		return mailerInstance
	}

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		log.Printf("Invalid SMTP_PORT %q, falling back to 587", cfg.SMTPPort)
		port = 587
	}

	mailerInstance = &MailerService{
		dialer: gomail.NewDialer(cfg.SMTPHost, port, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPUser,
	}
	return mailerInstance
}

// GetMailerService returns the initialized mailer instance
func GetMailerService() *MailerService {
	return mailerInstance
}

// SetMailerService sets the mailer instance (primarily for testing)
func SetMailerService(m *MailerService) {
	mailerInstance = m
}

// SendPasswordResetEmail sends a password reset link carrying the token
func (m *MailerService) SendPasswordResetEmail(to, token string) error {
	if m.dialer == nil {
		log.Printf("Email disabled, password reset token for %s: %s", to, token)
		return nil
	}

	body := fmt.Sprintf(`
		<h2>Password Reset Request</h2>
		<p>Hello,</p>
		<p>Click the link below to reset your Delgado Foods password:</p>
		<p><a href="https://delgadofoods.com/reset-password?token=%s">Reset my password</a></p>
		<p>This link is valid for 1 hour.</p>
		<p>If you did not request a reset, you can ignore this email.</p>
	`, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset - Delgado Foods")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}

// SendWelcomeEmail greets a newly registered customer
func (m *MailerService) SendWelcomeEmail(to, name string) error {
	if m.dialer == nil {
		log.Printf("Email disabled, skipping welcome email for %s", name)
		return nil
	}

	body := fmt.Sprintf(`
		<h2>Welcome!</h2>
		<p>Hello %s,</p>
		<p>Thank you for creating an account with Delgado Foods.</p>
		<p>You can now browse the catalog and place wholesale or retail orders.</p>
	`, name)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Welcome to Delgado Foods")
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
