package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/branch"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// OnboardingRepositories are written while a tenant is created.
type OnboardingRepositories struct {
	Tenants     tenant.TenantWriter
	Users       user.UserRepository
	Branches    branch.BranchRepository
	Departments department.DepartmentRepository
	LeaveTypes  leave.LeaveTypeRepository
	Policies    leave.LeavePolicyRepository
}

// Onboarder creates a tenant, its first admin and the default master data in one transaction.
type Onboarder struct {
	repos OnboardingRepositories
	tx    database.Transactor
	cost  int
	now   func() time.Time
}

func NewOnboarder(repos OnboardingRepositories, tx database.Transactor) *Onboarder {
	return &Onboarder{repos: repos, tx: tx, cost: bcrypt.DefaultCost, now: time.Now}
}

func (o *Onboarder) Onboard(ctx context.Context, req tenant.OnboardRequest) (tenant.OnboardResult, error) {
	if err := req.Validate(); err != nil {
		return tenant.OnboardResult{}, err
	}
	if err := settings.Defaults("").CheckPassword(req.AdminPassword); err != nil {
		return tenant.OnboardResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), o.cost)
	if err != nil {
		return tenant.OnboardResult{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	var result tenant.OnboardResult
	err = o.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := o.repos.Tenants.Create(ctx, tenant.Tenant{Name: strings.TrimSpace(req.Name), Slug: req.Slug})
		if err != nil {
			return err
		}
		result.Tenant = t

		admin, err := o.repos.Users.Create(ctx, user.User{
			TenantID:     t.ID,
			Email:        strings.ToLower(strings.TrimSpace(req.AdminEmail)),
			PasswordHash: &hashed,
			Role:         user.RoleAdmin,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		result.AdminUserID = admin.ID

		seeded, err := o.seedDefaultData(ctx, t)
		if err != nil {
			return err
		}
		result.BranchID = seeded.BranchID
		result.LeaveTypes = len(seeded.LeaveTypeIDs)
		return nil
	})
	if err != nil {
		return tenant.OnboardResult{}, err
	}

	slog.Info("Tenant onboarded", "tenant_id", result.Tenant.ID, "slug", result.Tenant.Slug, "admin_user_id", result.AdminUserID)
	return result, nil
}

// seedDefaultData creates the headquarters branch, departments, leave types and their policies.
// Any failure rolls back the whole onboarding.
func (o *Onboarder) seedDefaultData(ctx context.Context, t tenant.Tenant) (*fixtures.SeededDataIDs, error) {
	seeded := fixtures.NewSeededDataIDs()

	// 1. Headquarters branch
	hq, err := o.repos.Branches.Create(ctx, fixtures.GetDefaultBranch(t.ID, t.Name))
	if err != nil {
		return nil, fmt.Errorf("seed branch: %w", err)
	}
	seeded.BranchID = hq.ID

	// 2. Departments
	for _, d := range fixtures.GetDefaultDepartments(t.ID) {
		created, err := o.repos.Departments.Create(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("seed department %s: %w", d.Name, err)
		}
		seeded.DepartmentIDs[created.Name] = created.ID
	}

	// 3. Leave types with their policy
	for _, def := range fixtures.GetDefaultLeaveTypes(t.ID, o.now().Year()) {
		lt, err := o.repos.LeaveTypes.Create(ctx, def.Type)
		if err != nil {
			return nil, fmt.Errorf("seed leave type %s: %w", def.Type.Code, err)
		}
		seeded.LeaveTypeIDs[lt.Code] = lt.ID

		def.Policy.LeaveTypeID = lt.ID
		p, err := o.repos.Policies.Create(ctx, def.Policy)
		if err != nil {
			return nil, fmt.Errorf("seed leave policy %s: %w", def.Type.Code, err)
		}
		seeded.PolicyIDs[lt.Code] = p.ID
	}

	slog.Info("Seeded default data",
		"tenant_id", t.ID,
		"departments", len(seeded.DepartmentIDs),
		"leave_types", len(seeded.LeaveTypeIDs),
	)
	return seeded, nil
}
