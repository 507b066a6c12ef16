package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/email"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// QueueCritical carries notification mail.
	QueueCritical = "critical"

	TaskTypeSendEmail     = "notification:email"
	TaskTypeLeaveRollover = "leave:rollover"

	// RolloverCron runs at 01:00 UTC on January 1st.
	RolloverCron = "0 1 1 1 *"
)

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(msg email.Message) (*asynq.Task, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data, asynq.MaxRetry(5), asynq.Timeout(time.Minute)), nil
}

// RolloverPayload selects the balance year to build; zero means the year the task runs in.
type RolloverPayload struct {
	Year int `json:"year,omitempty"`
}

func NewLeaveRolloverTask(year int) (*asynq.Task, error) {
	data, err := json.Marshal(RolloverPayload{Year: year})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLeaveRollover, data, asynq.MaxRetry(3), asynq.Timeout(30*time.Minute)), nil
}

// SendEmailHandler processes TaskTypeSendEmail tasks.
func SendEmailHandler(sender email.EmailService) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var msg email.Message
		if err := json.Unmarshal(t.Payload(), &msg); err != nil {
			return fmt.Errorf("decode email payload: %v: %w", err, asynq.SkipRetry)
		}
		if msg.To == "" || msg.Template == "" {
			return fmt.Errorf("email payload missing recipient or template: %w", asynq.SkipRetry)
		}
		return sender.Send(ctx, msg)
	}
}

// TenantLister yields every tenant that still has active employees.
type TenantLister interface {
	ListActiveTenants(ctx context.Context) ([]string, error)
}

// BalanceRefresher recomputes balances of one tenant for a year.
type BalanceRefresher interface {
	RefreshTenantBalances(ctx context.Context, tenantID string, year int) (int, error)
}

// LeaveRolloverHandler recomputes next-year balances for every tenant so carry-forward is persisted.
// A failing tenant is logged and the task is retried once the rest are done.
func LeaveRolloverHandler(tenants TenantLister, balances BalanceRefresher, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload RolloverPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return fmt.Errorf("decode rollover payload: %v: %w", err, asynq.SkipRetry)
			}
		}
		year := payload.Year
		if year == 0 {
			year = now().UTC().Year()
		}

		ids, err := tenants.ListActiveTenants(ctx)
		if err != nil {
			return fmt.Errorf("list tenants: %w", err)
		}

		var failed int
		total := 0
		for _, tenantID := range ids {
			n, err := balances.RefreshTenantBalances(ctx, tenantID, year)
			if err != nil {
				failed++
				slog.Error("leave rollover failed for tenant", "tenant_id", tenantID, "year", year, "error", err)
				continue
			}
			total += n
		}

		slog.Info("leave rollover finished", "year", year, "tenants", len(ids), "balances", total, "failed_tenants", failed)
		if failed > 0 {
			return fmt.Errorf("leave rollover failed for %d tenants", failed)
		}
		return nil
	}
}
