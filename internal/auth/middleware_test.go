package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/support-kit/helpdesk-service/internal/domain"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// stubUserRepo serves a fixed set of accounts.
type stubUserRepo struct {
	byID map[int64]*domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }
func (s *stubUserRepo) List(ctx context.Context) ([]domain.User, error)     { return nil, nil }
func (s *stubUserRepo) Delete(ctx context.Context, id int64) error          { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newGuardedApp(mw *Middleware, allowed ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
		},
	})
	app.Get("/protected", mw.Handle, RequireRoles(allowed...), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func bearerRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestMiddlewareRejectsMissingAndMalformedTokens(t *testing.T) {
	tokens := NewTokenManager("guard-secret", 5)
	mw := NewMiddleware(tokens, &stubUserRepo{byID: map[int64]*domain.User{}})
	app := newGuardedApp(mw)

	resp, err := app.Test(bearerRequest(""))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(bearerRequest("garbage"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsDeletedAccount(t *testing.T) {
	tokens := NewTokenManager("guard-secret", 5)
	mw := NewMiddleware(tokens, &stubUserRepo{byID: map[int64]*domain.User{}})
	app := newGuardedApp(mw)

	// Validly signed token, but the account no longer exists.
	token, _, err := tokens.GenerateToken(42, "gone@example.com", domain.RoleAdmin)
	assert.NoError(t, err)

	resp, err := app.Test(bearerRequest(token))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGuardMatrix(t *testing.T) {
	tokens := NewTokenManager("guard-secret", 5)
	repo := &stubUserRepo{byID: map[int64]*domain.User{
		1: {ID: 1, Email: "admin@example.com", RoleID: 1, RoleName: domain.RoleAdmin},
		2: {ID: 2, Email: "cust@example.com", RoleID: 3, RoleName: domain.RoleCustomer},
	}}
	mw := NewMiddleware(tokens, repo)

	adminToken, _, err := tokens.GenerateToken(1, "admin@example.com", domain.RoleAdmin)
	assert.NoError(t, err)
	custToken, _, err := tokens.GenerateToken(2, "cust@example.com", domain.RoleCustomer)
	assert.NoError(t, err)

	adminOnly := newGuardedApp(mw, domain.RoleAdmin)

	resp, err := adminOnly.Test(bearerRequest(adminToken))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = adminOnly.Test(bearerRequest(custToken))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No declared role requirement: any authenticated principal passes.
	anyRole := newGuardedApp(mw)
	resp, err = anyRole.Test(bearerRequest(custToken))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoleGuardReflectsRoleChangeOnNextRequest(t *testing.T) {
	tokens := NewTokenManager("guard-secret", 5)
	user := &domain.User{ID: 3, Email: "promo@example.com", RoleID: 3, RoleName: domain.RoleCustomer}
	mw := NewMiddleware(tokens, &stubUserRepo{byID: map[int64]*domain.User{3: user}})
	app := newGuardedApp(mw, domain.RoleTechnician)

	// Token still claims Customer; the guard reads the live role.
	token, _, err := tokens.GenerateToken(3, "promo@example.com", domain.RoleCustomer)
	assert.NoError(t, err)

	resp, err := app.Test(bearerRequest(token))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	user.RoleName = domain.RoleTechnician

	resp, err = app.Test(bearerRequest(token))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
