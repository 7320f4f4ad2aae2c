package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/support-kit/helpdesk-service/internal/domain"
	"github.com/support-kit/helpdesk-service/internal/repository"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// RoleService owns Role rows. Roles are created at bootstrap or by admins;
// update and delete are deliberately not offered.
type RoleService struct {
	roles repository.RoleRepository
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

// Create persists a role after a name-uniqueness pre-check; the unique
// constraint backstops concurrent creations.
func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	if name == "" {
		return nil, apperrors.NewBadRequest("a role name is required", nil)
	}

	if _, err := s.roles.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("role name already exists", map[string]any{"name": name})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	role := &domain.Role{Name: name}
	if err := s.roles.Create(ctx, role); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("role name already exists", map[string]any{"name": name})
		}
		return nil, apperrors.MapError(err)
	}
	return role, nil
}

// GetByID returns the role or a not-found error.
func (s *RoleService) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequest("a valid id is required", nil)
	}
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("role", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return role, nil
}

// List returns all roles.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(roles) == 0 {
		return nil, apperrors.NewNotFound("roles", nil)
	}
	return roles, nil
}
