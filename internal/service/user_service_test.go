package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/support-kit/helpdesk-service/internal/domain"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

func TestUpdateUserEmptyPayloadSkipsStorage(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, bcrypt.MinCost)

	_, err := svc.Update(context.Background(), 1, UpdateUserInput{})

	assert.Equal(t, "BAD_REQUEST", apperrors.ToDomainError(err).Code)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, bcrypt.MinCost)

	existing := &domain.User{ID: 5, Fullname: "Tess", Email: "tess@example.com", PasswordHash: "old-hash", RoleID: 2}
	users.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	newPassword := "rotated-secret"
	updated, err := svc.Update(context.Background(), 5, UpdateUserInput{Password: &newPassword})
	assert.NoError(t, err)
	assert.NotEqual(t, "old-hash", updated.PasswordHash)
	assert.NotEqual(t, newPassword, updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPassword)))
}

func TestUpdateUserDuplicateEmailConflicts(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, bcrypt.MinCost)

	users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5, Email: "a@example.com", RoleID: 2}, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	email := "b@example.com"
	_, err := svc.Update(context.Background(), 5, UpdateUserInput{Email: &email})
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestDeleteUserRestrictedWhileCustomerOnTickets(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, bcrypt.MinCost)

	users.On("Delete", mock.Anything, int64(9)).
		Return(&pgconn.PgError{Code: "23503", ConstraintName: "tickets_customer_id_fkey"})

	err := svc.Delete(context.Background(), 9)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestDeleteUserNotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, bcrypt.MinCost)

	users.On("Delete", mock.Anything, int64(404)).Return(pgx.ErrNoRows)

	err := svc.Delete(context.Background(), 404)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestGetUserRejectsNonPositiveIDs(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, bcrypt.MinCost)

	for _, id := range []int64{0, -1} {
		_, err := svc.GetByID(context.Background(), id)
		assert.Equal(t, "BAD_REQUEST", apperrors.ToDomainError(err).Code)
	}
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetUserByIDNotFoundIsExplicit(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users, bcrypt.MinCost)

	users.On("GetByID", mock.Anything, int64(123)).Return(nil, pgx.ErrNoRows)

	user, err := svc.GetByID(context.Background(), 123)
	assert.Nil(t, user)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
