package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	policies settings.PolicyReader
	cost     int
}

func NewUserService(userRepository user.UserRepository, policies settings.PolicyReader) *UserServiceImpl {
	return &UserServiceImpl{UserRepository: userRepository, policies: policies, cost: bcrypt.DefaultCost}
}

func (s *UserServiceImpl) List(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, int64, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return nil, 0, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	users, total, err := s.UserRepository.List(ctx, id.TenantID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.ToResponse(u))
	}
	return resp, total, nil
}

func (s *UserServiceImpl) Get(ctx context.Context, userID string) (user.UserResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.UserRepository.GetByID(ctx, id.TenantID, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}
	if err := canGrant(id, user.Role(req.Role)); err != nil {
		return user.UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.UserRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.UserResponse{}, user.ErrUserEmailExists
	}

	policy, err := s.policies.ForTenant(ctx, id.TenantID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to load security settings: %w", err)
	}
	if err := policy.CheckPassword(req.Password); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	created, err := s.UserRepository.Create(ctx, user.User{
		TenantID:     id.TenantID,
		Email:        email,
		PasswordHash: &hashed,
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("User created", "tenant_id", id.TenantID, "user_id", created.ID, "role", created.Role, "by", id.UserID)
	return user.ToResponse(created), nil
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateUserRoleRequest) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if req.ID == id.UserID {
		return user.ErrCannotModifySelf
	}

	target, err := s.UserRepository.GetByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return err
	}
	// Only admins may promote to or demote from ADMIN.
	if err := canGrant(id, target.Role); err != nil {
		return err
	}
	if err := canGrant(id, user.Role(req.Role)); err != nil {
		return err
	}

	if err := s.UserRepository.UpdateRole(ctx, id.TenantID, req.ID, user.Role(req.Role)); err != nil {
		return err
	}
	slog.Info("User role changed", "tenant_id", id.TenantID, "user_id", req.ID, "from", target.Role, "to", req.Role)
	return nil
}

func (s *UserServiceImpl) UpdateStatus(ctx context.Context, req user.UpdateUserStatusRequest) error {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if req.ID == id.UserID {
		return user.ErrCannotModifySelf
	}

	target, err := s.UserRepository.GetByID(ctx, id.TenantID, req.ID)
	if err != nil {
		return err
	}
	if err := canGrant(id, target.Role); err != nil {
		return err
	}

	return s.UserRepository.UpdateStatus(ctx, id.TenantID, req.ID, *req.IsActive)
}

func canGrant(id auth.Identity, role user.Role) error {
	if role == user.RoleAdmin && id.Role != user.RoleAdmin {
		return user.ErrInsufficientPermissions
	}
	return nil
}
