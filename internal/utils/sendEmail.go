package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"net/smtp"

	"eklerchik/internal/config"
)

const WelcomeSubject = "Добро пожаловать в клуб Miss Eklerchik!"

const welcomeBody = `Привет!

Спасибо, что подписались на блог Miss Eklerchik.
Новые истории о материнстве, рецепты на скорую руку и немного валерьянки для души теперь будут приходить прямо к вам.

Обнимаем,
Miss Eklerchik
%s`

// Mailer sends plain-text mail.
type Mailer interface {
	SendEmail(recipient, subject, message string) error
}

type SMTPMailer struct {
	config config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{config: cfg}
}

func WelcomeMessage(siteURL string) string {
	return fmt.Sprintf(welcomeBody, siteURL)
}

func buildMessage(sender, recipient, subject, message string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		sender, recipient, mime.QEncoding.Encode("utf-8", subject), message)
}

func (m *SMTPMailer) SendEmail(recipient, subject, message string) error {
	cfg := m.config
	smtpAddr := cfg.SMTPHost + ":" + cfg.SMTPPort

	client, err := smtp.Dial(smtpAddr)
	if err != nil {
		log.Printf("Failed to connect to SMTP server: %v\n", err)
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	// Upgrade to TLS using STARTTLS
	tlsConfig := &tls.Config{
		ServerName: cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		log.Printf("Failed to start TLS: %v\n", err)
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if cfg.Username != "" {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
		if err = client.Auth(auth); err != nil {
			log.Printf("Failed to authenticate: %v\n", err)
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(cfg.Sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create mail writer: %w", err)
	}
	if _, err = writer.Write([]byte(buildMessage(cfg.Sender, recipient, subject, message))); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close mail writer: %w", err)
	}

	if err = client.Quit(); err != nil {
		log.Printf("Failed to close connection properly: %v\n", err)
	}

	log.Printf("Email sent to %s", recipient)
	return nil
}
