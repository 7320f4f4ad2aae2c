package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/helpdesk-service/internal/api/dto"
	"github.com/support-kit/helpdesk-service/internal/service"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", nil)
	}
	if req.Fullname == "" {
		return apperrors.NewBadRequest("the fullname must be provided", nil)
	}
	if len(req.Email) < 8 {
		return apperrors.NewBadRequest("the email must be at least 8 characters long", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewBadRequest("the password must be at least 6 characters long", nil)
	}
	if req.RoleID <= 0 {
		return apperrors.NewBadRequest("a valid role id is required", nil)
	}

	user, err := h.auth.Register(c.UserContext(), service.CreateUserInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewBadRequest("email and password are required", nil)
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{AccessToken: token})
}
