package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/support-kit/helpdesk-service/internal/auth"
	"github.com/support-kit/helpdesk-service/internal/domain"
	"github.com/support-kit/helpdesk-service/internal/repository"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// CreateUserInput carries a validated registration payload.
type CreateUserInput struct {
	Fullname string
	Email    string
	Password string
	RoleID   int64
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Fullname *string
	Email    *string
	Password *string
	RoleID   *int64
}

// IsEmpty reports whether no field is set.
func (in UpdateUserInput) IsEmpty() bool {
	return in.Fullname == nil && in.Email == nil && in.Password == nil && in.RoleID == nil
}

// UserService owns User rows: email uniqueness, role existence, password
// hashing and the deletion policies tied to tickets.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Create hashes the password and persists the user. The email pre-check is
// a fast path only; the storage uniqueness constraint is the backstop
// against concurrent registrations, so both paths normalize to a conflict.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if in.RoleID <= 0 {
		return nil, apperrors.NewBadRequest("a valid role id is required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": in.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Fullname:     in.Fullname,
		Email:        in.Email,
		PasswordHash: hash,
		RoleID:       in.RoleID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": in.Email})
		}
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewBadRequest("referenced role does not exist", map[string]any{"role_id": in.RoleID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetByID returns the user or a not-found error; absence is never an empty
// success value.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequest("a valid id is required", nil)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// GetByEmail returns the user or a not-found error.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.NewBadRequest("a valid email is required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// getByEmailForLogin returns the raw repository error so the credential
// service can collapse absence and mismatch into one uniform failure.
func (s *UserService) getByEmailForLogin(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(users) == 0 {
		return nil, apperrors.NewNotFound("users", nil)
	}
	return users, nil
}

// Update applies a partial update. Empty payloads are rejected before any
// storage call; a present password is re-hashed and never persisted or
// logged in plaintext.
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequest("a valid id is required", nil)
	}
	if in.IsEmpty() {
		return nil, apperrors.NewBadRequest("no fields provided to update", nil)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if in.Fullname != nil {
		user.Fullname = *in.Fullname
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.RoleID != nil {
		if *in.RoleID <= 0 {
			return nil, apperrors.NewBadRequest("a valid role id is required", nil)
		}
		user.RoleID = *in.RoleID
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already in use by another user", map[string]any{"email": user.Email})
		}
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewBadRequest("referenced role does not exist", map[string]any{"role_id": user.RoleID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes the user. The schema rejects the delete while the user is
// still the customer on any ticket; technician references are cleared by
// the store instead.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequest("a valid id is required", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		if apperrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflict("user is still referenced as customer on existing tickets", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
