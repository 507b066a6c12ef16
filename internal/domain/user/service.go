package user

import "context"

// UserService is the read/write surface used by the users handler.
// It has a live and a demo fixture implementation.
type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]UserResponse, int64, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	UpdateRole(ctx context.Context, req UpdateUserRoleRequest) error
	UpdateStatus(ctx context.Context, req UpdateUserStatusRequest) error
}
