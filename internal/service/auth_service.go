package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/support-kit/helpdesk-service/internal/auth"
	"github.com/support-kit/helpdesk-service/internal/config"
	"github.com/support-kit/helpdesk-service/internal/domain"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// invalidCredentials is the single message for every login failure. Unknown
// email and wrong password are indistinguishable to the caller.
const invalidCredentials = "invalid credentials"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users    *UserService
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service. The token manager holds the immutable
// signing secret and validity window from process configuration.
func NewAuthService(cfg config.AuthConfig, users *UserService) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Register creates a new account through the identity store. A duplicate
// email surfaces as a conflict; any other storage failure is internal.
func (s *AuthService) Register(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	user, err := s.users.Create(ctx, in)
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Login verifies credentials and issues a signed, time-bounded token whose
// claims carry the user's email, id and resolved role name.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.getByEmailForLogin(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewUnauthorized(invalidCredentials)
		}
		return "", apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", apperrors.NewUnauthorized(invalidCredentials)
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.RoleName)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
