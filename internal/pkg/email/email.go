package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for outbound mail
type EmailService interface {
	SendApprovalCode(toEmail, toName, assignmentTitle, code string, ttl time.Duration) error
	SendSubmissionNotice(toEmail, toName, assignmentTitle, studentName string) error
	SendRejectionNotice(toEmail, toName, assignmentTitle, remark string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// EmailServiceImpl implements EmailService over net/smtp
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendApprovalCode emails the one-time approval code to the reviewer.
// The code is only ever delivered out-of-band; it never appears in an API response.
func (s *EmailServiceImpl) SendApprovalCode(toEmail, toName, assignmentTitle, code string, ttl time.Duration) error {
	// Without SMTP credentials, log the code instead of sending (development only)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("code", code).
			Msg("SMTP credentials not configured - approval code not sent. Use the code above for testing.")
		return nil
	}

	subject := "Your Approval Code - AssignFlow"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Approval Confirmation</h2>
				<p>Hello %s,</p>
				<p>You requested to approve the assignment <strong>%s</strong>. Enter the code below to confirm your e-signature:</p>

				<div style="text-align: center; margin: 30px 0;">
					<span style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</span>
				</div>

				<p>This code expires in %d minutes and can be used once.</p>

				<p>If you did not request this approval, please ignore this email.</p>

				<p>Best regards,<br>The AssignFlow Team</p>
			</div>
		</body>
		</html>
	`, toName, assignmentTitle, code, int(ttl.Minutes()))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendSubmissionNotice notifies a reviewer that an assignment awaits their review
func (s *EmailServiceImpl) SendSubmissionNotice(toEmail, toName, assignmentTitle, studentName string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("assignment", assignmentTitle).
			Msg("SMTP credentials not configured - submission notice not sent.")
		return nil
	}

	subject := "New Assignment Awaiting Review - AssignFlow"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Assignment Submitted</h2>
				<p>Hello %s,</p>
				<p>%s has submitted the assignment <strong>%s</strong> for your review.</p>

				<p>Please log in to review it.</p>

				<p>Best regards,<br>The AssignFlow Team</p>
			</div>
		</body>
		</html>
	`, toName, studentName, assignmentTitle)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRejectionNotice notifies a student that their assignment was rejected
func (s *EmailServiceImpl) SendRejectionNotice(toEmail, toName, assignmentTitle, remark string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("assignment", assignmentTitle).
			Msg("SMTP credentials not configured - rejection notice not sent.")
		return nil
	}

	subject := "Assignment Rejected - AssignFlow"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Assignment Rejected</h2>
				<p>Hello %s,</p>
				<p>Your assignment <strong>%s</strong> was rejected with the following feedback:</p>

				<blockquote style="border-left: 4px solid #ccc; padding-left: 12px; color: #555;">%s</blockquote>

				<p>You can address the feedback and resubmit.</p>

				<p>Best regards,<br>The AssignFlow Team</p>
			</div>
		</body>
		</html>
	`, toName, assignmentTitle, remark)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
