package tenant

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/tenant"
)

type TenantServiceImpl struct {
	repo tenant.TenantRepository
}

func NewTenantService(repo tenant.TenantRepository) *TenantServiceImpl {
	return &TenantServiceImpl{repo: repo}
}

func (s *TenantServiceImpl) GetMine(ctx context.Context) (tenant.TenantResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return tenant.TenantResponse{}, err
	}

	t, err := s.repo.GetByID(ctx, id.TenantID)
	if err != nil {
		return tenant.TenantResponse{}, err
	}
	return tenant.ToResponse(t), nil
}

func (s *TenantServiceImpl) UpdateMine(ctx context.Context, req tenant.UpdateTenantRequest) (tenant.TenantResponse, error) {
	id, err := auth.RequireIdentity(ctx)
	if err != nil {
		return tenant.TenantResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return tenant.TenantResponse{}, err
	}

	if err := s.repo.UpdateName(ctx, id.TenantID, strings.TrimSpace(req.Name)); err != nil {
		return tenant.TenantResponse{}, err
	}
	return s.GetMine(ctx)
}
