package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/mbokatech/hall-management-backend/config"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      string
	smtpPort      string
	smtpUsername  string
	smtpPassword  string
	smtpFromName  string
	smtpFromEmail string
)

// InitMailer wires the SMTP sender to the loaded configuration
func InitMailer(cfg *config.Config) {
	smtpHost = cfg.SMTPHost
	smtpPort = cfg.SMTPPort
	smtpUsername = cfg.SMTPUsername
	smtpPassword = cfg.SMTPPassword
	smtpFromName = cfg.SMTPFromName
	smtpFromEmail = cfg.SMTPFromEmail
}

// ======================
// Low-level sendEmail with STARTTLS
// ======================
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := smtpFromName
	if from == "" {
		from = smtpFromEmail
	} else {
		from = fmt.Sprintf("%s <%s>", smtpFromName, smtpFromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		fmt.Printf("⚠️ QUIT command error (non-critical): %v\n", err)
	}

	fmt.Printf("✅ Email sent to %s\n", to)
	return nil
}

// ======================
// Host Application Emails
// ======================
func SendApplicationReceivedEmail(toEmail, contactName, hallName string) error {
	subject := "We received your hall application"
	body := fmt.Sprintf("Hello %s, we received your application for \"%s\". Our team will review it and get back to you shortly.", contactName, hallName)
	return sendEmail(toEmail, subject, body)
}

func SendApplicationUnderReviewEmail(toEmail, contactName, hallName string) error {
	subject := "Your hall application is under review"
	body := fmt.Sprintf("Hello %s, your application for \"%s\" is now being reviewed. We may contact you for additional details.", contactName, hallName)
	return sendEmail(toEmail, subject, body)
}

func SendApplicationApprovedEmail(toEmail, contactName, hallName string) error {
	subject := fmt.Sprintf("Your hall \"%s\" has been approved", hallName)
	body := fmt.Sprintf("Hello %s, congratulations! Your application for \"%s\" was approved. A draft listing has been created for you — log in to complete it and publish.", contactName, hallName)
	return sendEmail(toEmail, subject, body)
}

func SendApplicationRejectedEmail(toEmail, contactName, hallName, reason string) error {
	subject := fmt.Sprintf("Your hall application for \"%s\" was rejected", hallName)
	body := fmt.Sprintf("Hello %s, unfortunately your application for \"%s\" was not accepted.\nReason: %s", contactName, hallName, reason)
	return sendEmail(toEmail, subject, body)
}
