package mail

import (
	"fmt"
	"log"
	"net"
	"net/smtp"

	"github.com/propnest/PropNest/internal/pkg/env"
)

type smtpConfig struct {
	host     string
	port     string
	username string
	password string
	sender   string
}

func smtpConfigFromEnv() smtpConfig {
	cfg := smtpConfig{
		host:     env.GetEnv("SMTP_HOST", ""),
		port:     env.GetEnv("SMTP_PORT", "587"),
		username: env.GetEnv("SMTP_USERNAME", ""),
		password: env.GetEnv("SMTP_PASSWORD", ""),
		sender:   env.GetEnv("SMTP_SENDER", ""),
	}
	if cfg.sender == "" {
		cfg.sender = "no-reply@localhost"
		log.Printf("SMTP_SENDER not set, using default sender: %s", cfg.sender)
	}
	return cfg
}

func (c smtpConfig) auth() smtp.Auth {
	if c.username == "" || c.password == "" {
		return nil
	}
	return smtp.PlainAuth("", c.username, c.password, c.host)
}

// SendMail delivers one HTML mail through the relay configured by the SMTP_*
// environment variables. Errors are returned; callers decide whether delivery
// is best effort.
func SendMail(to string, subject string, body string) error {
	cfg := smtpConfigFromEnv()
	if cfg.host == "" {
		return fmt.Errorf("smtp relay not configured, set SMTP_HOST")
	}

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", cfg.sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	addr := net.JoinHostPort(cfg.host, cfg.port)
	if err := smtp.SendMail(addr, cfg.auth(), cfg.sender, []string{to}, msg); err != nil {
		log.Printf("SMTP send error: %v", err)
		return err
	}

	log.Printf("Email sent to %s via %s", to, addr)
	return nil
}
