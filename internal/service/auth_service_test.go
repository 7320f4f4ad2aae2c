package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/support-kit/helpdesk-service/internal/config"
	"github.com/support-kit/helpdesk-service/internal/domain"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

func newTestAuthService(users *MockUserRepository) *AuthService {
	userService := NewUserService(users, bcrypt.MinCost)
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}, userService)
}

func hashFor(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestLoginIssuesTokenWithUserIdentity(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestAuthService(users)

	user := &domain.User{
		ID:           42,
		Fullname:     "Ada Admin",
		Email:        "ada@example.com",
		PasswordHash: hashFor(t, "correct-horse"),
		RoleID:       1,
		RoleName:     domain.RoleAdmin,
	}
	users.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	token, err := svc.Login(context.Background(), "ada@example.com", "correct-horse")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.TokenManager().ParseToken(token)
	assert.NoError(t, err)

	id, err := claims.UserID()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestAuthService(users)

	users.On("GetByEmail", mock.Anything, "known@example.com").Return(&domain.User{
		ID:           7,
		Email:        "known@example.com",
		PasswordHash: hashFor(t, "right-password"),
		RoleName:     domain.RoleCustomer,
	}, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, pgx.ErrNoRows)

	_, wrongPassErr := svc.Login(context.Background(), "known@example.com", "wrong-password")
	_, noUserErr := svc.Login(context.Background(), "ghost@example.com", "whatever")

	wrongPass := apperrors.ToDomainError(wrongPassErr)
	noUser := apperrors.ToDomainError(noUserErr)

	assert.Equal(t, "UNAUTHORIZED", wrongPass.Code)
	assert.Equal(t, "UNAUTHORIZED", noUser.Code)
	assert.Equal(t, wrongPass.Message, noUser.Message)
}

func TestRegisterHashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestAuthService(users)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 11
	}).Return(nil)

	user, err := svc.Register(context.Background(), CreateUserInput{
		Fullname: "New User",
		Email:    "new@example.com",
		Password: "plaintext-pass",
		RoleID:   3,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(11), user.ID)
	assert.NotEqual(t, "plaintext-pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("plaintext-pass")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestAuthService(users)

	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&domain.User{ID: 1, Email: "taken@example.com"}, nil)

	_, err := svc.Register(context.Background(), CreateUserInput{
		Fullname: "Second",
		Email:    "taken@example.com",
		Password: "password",
		RoleID:   3,
	})
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterConstraintBackstopUnderRace(t *testing.T) {
	users := new(MockUserRepository)
	svc := newTestAuthService(users)

	// Pre-check sees nothing, but a concurrent writer wins the insert and
	// the unique constraint fires.
	users.On("GetByEmail", mock.Anything, "raced@example.com").Return(nil, pgx.ErrNoRows)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := svc.Register(context.Background(), CreateUserInput{
		Fullname: "Racer",
		Email:    "raced@example.com",
		Password: "password",
		RoleID:   3,
	})
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}
