package email

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

const (
	TemplateLeaveSubmitted = "leave_submitted.html"
	TemplateLeaveDecided   = "leave_decided.html"
	TemplatePayslipReady   = "payslip_ready.html"
)

var ErrUnknownTemplate = errors.New("unknown email template")

// Message is a templated email; Data is passed to the template as is.
type Message struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// EmailService defines the interface for sending emails
type EmailService interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

// Render executes the named template.
func (s *emailServiceImpl) Render(name string, data map[string]any) (string, error) {
	if s.templates.Lookup(name) == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

func (s *emailServiceImpl) Send(ctx context.Context, msg Message) error {
	body, err := s.Render(msg.Template, msg.Data)
	if err != nil {
		return err
	}
	return s.sendHTML(ctx, msg.To, msg.Subject, body)
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.backoff << (attempt - 1)):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
