package leave

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
)

// DecisionProcessor applies APPROVED or REJECTED to a PENDING request and refreshes the balance.
type DecisionProcessor struct {
	requests   leave.LeaveRequestRepository
	calculator *BalanceCalculator
	tx         database.Transactor
	now        func() time.Time
}

func NewDecisionProcessor(requests leave.LeaveRequestRepository, calculator *BalanceCalculator, tx database.Transactor, now func() time.Time) *DecisionProcessor {
	if now == nil {
		now = time.Now
	}
	return &DecisionProcessor{requests: requests, calculator: calculator, tx: tx, now: now}
}

func (d *DecisionProcessor) Decide(ctx context.Context, tenantID, requestID string, decision leave.Decision, deciderID, reason string) (leave.LeaveRequest, leave.LeaveBalance, error) {
	var (
		decided leave.LeaveRequest
		balance leave.LeaveBalance
	)

	err := d.tx.WithinTx(ctx, func(ctx context.Context) error {
		request, err := d.requests.GetByID(ctx, tenantID, requestID)
		if err != nil {
			return err
		}
		if request.Status != leave.LeaveRequestStatusPending {
			return leave.ErrInvalidStateTransition
		}

		now := d.now()
		switch decision {
		case leave.DecisionApproved:
			request.Status = leave.LeaveRequestStatusApproved
			request.ApprovedBy = &deciderID
			request.ApprovedAt = &now
		case leave.DecisionRejected:
			request.Status = leave.LeaveRequestStatusRejected
			request.RejectedBy = &deciderID
			request.RejectedAt = &now
			if r := strings.TrimSpace(reason); r != "" {
				request.RejectionReason = &r
			}
		default:
			return leave.ErrInvalidStateTransition
		}

		if err := d.requests.UpdateDecision(ctx, request); err != nil {
			return err
		}

		// A policy deactivated after submission must not pin the request in PENDING.
		balance, err = d.calculator.Recalculate(ctx, tenantID, request.EmployeeID, request.LeaveTypeID, request.Year())
		switch {
		case errors.Is(err, leave.ErrPolicyNotFound):
			slog.Warn("Leave decision recorded without balance refresh",
				"tenant_id", tenantID,
				"request_id", request.ID,
				"leave_type_id", request.LeaveTypeID,
				"error", err,
			)
			balance = leave.LeaveBalance{}
		case err != nil:
			return err
		}
		request.UpdatedAt = now
		decided = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, leave.LeaveBalance{}, err
	}
	return decided, balance, nil
}
