package leave

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/email"
)

// store is an in-memory backing for every repository the leave package reads.
type store struct {
	mu        sync.Mutex
	seq       int
	types     map[string]leave.LeaveType
	policies  map[string]leave.LeavePolicy
	balances  map[string]leave.LeaveBalance
	requests  map[string]leave.LeaveRequest
	holidays  map[string]leave.Holiday
	employees map[string]employee.Employee
	branches  map[string]branch.Branch
	users     map[string]user.User
	locks     int
	empLocks  []string
}

func newStore() *store {
	return &store{
		types:     map[string]leave.LeaveType{},
		policies:  map[string]leave.LeavePolicy{},
		balances:  map[string]leave.LeaveBalance{},
		requests:  map[string]leave.LeaveRequest{},
		holidays:  map[string]leave.Holiday{},
		employees: map[string]employee.Employee{},
		branches:  map[string]branch.Branch{},
		users:     map[string]user.User{},
	}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s/%s/%d", employeeID, leaveTypeID, year)
}

func (s *store) repositories() Repositories {
	return Repositories{
		Types:     typeRepo{s},
		Policies:  policyRepo{s},
		Balances:  balanceRepo{s},
		Requests:  requestRepo{s},
		Holidays:  holidayRepo{s},
		Employees: employeeRepo{s: s},
		Branches:  branchRepo{s: s},
		Users:     userRepo{s: s},
	}
}

type typeRepo struct{ s *store }

func (r typeRepo) Create(_ context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.nextID("type")
	r.s.types[t.ID] = t
	return t, nil
}

func (r typeRepo) GetByID(_ context.Context, tenantID, id string) (leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.types[id]
	if !ok || t.TenantID != tenantID {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return t, nil
}

func (r typeRepo) List(_ context.Context, tenantID string, activeOnly bool) ([]leave.LeaveType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.LeaveType
	for _, t := range r.s.types {
		if t.TenantID == tenantID && (!activeOnly || t.IsActive) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r typeRepo) ExistsByCode(_ context.Context, tenantID, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.types {
		if t.TenantID == tenantID && t.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r typeRepo) Update(_ context.Context, tenantID string, req leave.UpdateLeaveTypeRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.types[req.ID]
	if !ok || t.TenantID != tenantID {
		return leave.ErrLeaveTypeNotFound
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Color != nil {
		t.Color = req.Color
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	r.s.types[t.ID] = t
	return nil
}

func (r typeRepo) Deactivate(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.types[id]
	if !ok || t.TenantID != tenantID {
		return leave.ErrLeaveTypeNotFound
	}
	t.IsActive = false
	r.s.types[id] = t
	return nil
}

type policyRepo struct{ s *store }

func (r policyRepo) Create(_ context.Context, p leave.LeavePolicy) (leave.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID("policy")
	r.s.policies[p.ID] = p
	return p, nil
}

func (r policyRepo) GetByID(_ context.Context, tenantID, id string) (leave.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.policies[id]
	if !ok || p.TenantID != tenantID {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	return p, nil
}

func (r policyRepo) List(_ context.Context, tenantID string, leaveTypeID *string) ([]leave.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.LeavePolicy
	for _, p := range r.s.policies {
		if p.TenantID == tenantID && (leaveTypeID == nil || p.LeaveTypeID == *leaveTypeID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r policyRepo) Update(_ context.Context, p leave.LeavePolicy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.policies[p.ID]; !ok {
		return leave.ErrPolicyNotFound
	}
	r.s.policies[p.ID] = p
	return nil
}

func (r policyRepo) FindEffective(_ context.Context, tenantID, leaveTypeID string, at time.Time) (leave.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var (
		best  leave.LeavePolicy
		found bool
	)
	for _, p := range r.s.policies {
		if p.TenantID != tenantID || p.LeaveTypeID != leaveTypeID || !p.EffectiveAt(at) {
			continue
		}
		if !found || p.EffectiveDate.After(best.EffectiveDate) {
			best, found = p, true
		}
	}
	if !found {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	return best, nil
}

type balanceRepo struct{ s *store }

func (r balanceRepo) Get(_ context.Context, tenantID, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.balances[balanceKey(employeeID, leaveTypeID, year)]
	if !ok || b.TenantID != tenantID {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (r balanceRepo) ListByEmployee(_ context.Context, tenantID, employeeID string, year int) ([]leave.LeaveBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.LeaveBalance
	for _, b := range r.s.balances {
		if b.TenantID == tenantID && b.EmployeeID == employeeID && b.Year == year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r balanceRepo) Upsert(_ context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := balanceKey(b.EmployeeID, b.LeaveTypeID, b.Year)
	if existing, ok := r.s.balances[key]; ok {
		b.ID = existing.ID
	} else {
		b.ID = r.s.nextID("balance")
	}
	r.s.balances[key] = b
	return b, nil
}

func (r balanceRepo) Lock(context.Context, string, string, int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locks++
	return nil
}

type requestRepo struct{ s *store }

func (r requestRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req.ID = r.s.nextID("request")
	r.s.requests[req.ID] = req
	return req, nil
}

func (r requestRepo) GetByID(_ context.Context, tenantID, id string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok || req.TenantID != tenantID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r requestRepo) List(_ context.Context, tenantID string, f leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.LeaveRequest
	for _, req := range r.s.requests {
		if req.TenantID != tenantID {
			continue
		}
		if f.EmployeeID != nil && req.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.ApproverID != nil && (req.ApproverID == nil || *req.ApproverID != *f.ApproverID) {
			continue
		}
		if f.Status != nil && string(req.Status) != *f.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r requestRepo) ExistsOverlapping(_ context.Context, tenantID, employeeID string, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range r.s.requests {
		if req.TenantID != tenantID || req.EmployeeID != employeeID || req.Status == leave.LeaveRequestStatusRejected {
			continue
		}
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r requestRepo) LockEmployee(_ context.Context, employeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.empLocks = append(r.s.empLocks, employeeID)
	return nil
}

func (r requestRepo) SumDays(_ context.Context, tenantID, employeeID, leaveTypeID string, year int, status leave.LeaveRequestStatus) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, req := range r.s.requests {
		if req.TenantID == tenantID && req.EmployeeID == employeeID && req.LeaveTypeID == leaveTypeID &&
			req.Year() == year && req.Status == status {
			total += req.TotalDays
		}
	}
	return total, nil
}

func (r requestRepo) UpdateDecision(_ context.Context, req leave.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.requests[req.ID]
	if !ok || current.Status != leave.LeaveRequestStatusPending {
		return leave.ErrInvalidStateTransition
	}
	r.s.requests[req.ID] = req
	return nil
}

type holidayRepo struct{ s *store }

func (r holidayRepo) Create(_ context.Context, h leave.Holiday) (leave.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.ID = r.s.nextID("holiday")
	r.s.holidays[h.ID] = h
	return h, nil
}

func (r holidayRepo) ListActiveBetween(_ context.Context, tenantID string, start, end time.Time) ([]leave.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.Holiday
	for _, h := range r.s.holidays {
		if h.TenantID == tenantID && h.IsActive && !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r holidayRepo) ListByYear(_ context.Context, tenantID string, year int) ([]leave.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []leave.Holiday
	for _, h := range r.s.holidays {
		if h.TenantID == tenantID && h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r holidayRepo) ExistsOnDate(_ context.Context, tenantID string, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, h := range r.s.holidays {
		if h.TenantID == tenantID && h.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r holidayRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.holidays[id]
	if !ok || h.TenantID != tenantID {
		return leave.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}

type employeeRepo struct {
	employee.EmployeeRepository
	s *store
}

func (r employeeRepo) GetByID(_ context.Context, tenantID, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok || e.TenantID != tenantID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r employeeRepo) ListActive(_ context.Context, tenantID string) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []employee.Employee
	for _, e := range r.s.employees {
		if e.TenantID == tenantID && e.EmploymentStatus != employee.EmploymentStatusTerminated {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type branchRepo struct {
	branch.BranchRepository
	s *store
}

func (r branchRepo) GetByID(_ context.Context, tenantID, id string) (branch.Branch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.branches[id]
	if !ok || b.TenantID != tenantID {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

type userRepo struct {
	user.UserRepository
	s *store
}

func (r userRepo) GetByID(_ context.Context, tenantID, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.TenantID != tenantID {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r userRepo) FindFirstByRole(_ context.Context, tenantID string, role user.Role) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.TenantID == tenantID && u.Role == role && u.IsActive {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// inlineTx runs fn directly; the in-memory store has no rollback.
type inlineTx struct{ calls int }

func (t *inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type recordingEnqueuer struct {
	mu       sync.Mutex
	messages []email.Message
}

func (e *recordingEnqueuer) EnqueueEmail(_ context.Context, msg email.Message) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, msg)
	return nil
}

func (e *recordingEnqueuer) sent() []email.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]email.Message(nil), e.messages...)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
