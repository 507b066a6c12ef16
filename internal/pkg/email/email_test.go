package email

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, cfg config.SMTPConfig, send sendFunc) *emailServiceImpl {
	t.Helper()
	svc, err := NewEmailService(cfg)
	require.NoError(t, err)
	impl := svc.(*emailServiceImpl)
	impl.send = send
	impl.backoff = 0
	return impl
}

func TestRender_LeaveSubmitted(t *testing.T) {
	svc := newTestService(t, config.SMTPConfig{}, nil)

	body, err := svc.Render(TemplateLeaveSubmitted, map[string]any{
		"EmployeeName": "Ana",
		"LeaveType":    "Annual",
		"StartDate":    "2025-03-03",
		"EndDate":      "2025-03-05",
		"TotalDays":    3,
		"ApproverRole": "HR",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Ana requested")
	assert.Contains(t, body, "3 working days")
}

func TestRender_UnknownTemplate(t *testing.T) {
	svc := newTestService(t, config.SMTPConfig{}, nil)

	_, err := svc.Render("missing.html", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestSend_SkipsWithoutHost(t *testing.T) {
	called := false
	svc := newTestService(t, config.SMTPConfig{}, func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	})

	err := svc.Send(context.Background(), Message{To: "a@b.co", Subject: "s", Template: TemplatePayslipReady})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestSend_RetriesThenFails(t *testing.T) {
	attempts := 0
	svc := newTestService(t, config.SMTPConfig{Host: "smtp.local", Port: 25, From: "hr@x.co"}, func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		attempts++
		assert.Equal(t, "smtp.local:25", addr)
		assert.Equal(t, []string{"a@b.co"}, to)
		return errors.New("connection refused")
	})

	err := svc.Send(context.Background(), Message{To: "a@b.co", Subject: "s", Template: TemplatePayslipReady, Data: map[string]any{"Period": "2025-01", "NetPay": "100"}})
	assert.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
}

func TestSend_SucceedsOnSecondAttempt(t *testing.T) {
	attempts := 0
	svc := newTestService(t, config.SMTPConfig{Host: "smtp.local", Port: 25}, func(string, smtp.Auth, string, []string, []byte) error {
		attempts++
		if attempts == 1 {
			return errors.New("temporary")
		}
		return nil
	})

	err := svc.Send(context.Background(), Message{To: "a@b.co", Subject: "s", Template: TemplateLeaveDecided, Data: map[string]any{"Status": "APPROVED"}})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}
