package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/incampus/backend/internal/pkg/logger"
)

// Sender delivers account emails
type Sender interface {
	SendOTP(toEmail, toName, code string) error
}

// SMTPConfig holds SMTP server settings
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPSender sends mail over plain SMTP. When no credentials are configured
// it logs the code instead of sending, which keeps local development working
// without a mail server.
type SMTPSender struct {
	config SMTPConfig
}

// NewSMTPSender creates a Sender backed by an SMTP server
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

// SendOTP delivers the signup verification code
func (s *SMTPSender) SendOTP(toEmail, toName, code string) error {
	if s.config.Username == "" || s.config.Password == "" {
		logger.Warn().
			Str("toEmail", toEmail).
			Str("code", code).
			Msg("SMTP credentials not configured, verification code logged instead of sent")
		return nil
	}

	subject := "Your InCampus verification code"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2>Welcome to InCampus!</h2>
				<p>Hello %s,</p>
				<p>Use this code to verify your account:</p>
				<p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</p>
				<p>The code expires in 10 minutes. If you did not sign up, ignore this email.</p>
			</div>
		</body>
		</html>
	`, toName, code)

	return s.send(toEmail, subject, body)
}

func (s *SMTPSender) send(toEmail, subject, htmlBody string) error {
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + toEmail + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Debug().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
