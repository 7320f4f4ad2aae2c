package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/helpdesk-service/internal/api/dto"
	"github.com/support-kit/helpdesk-service/internal/service"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// RolesHandler exposes role endpoints.
type RolesHandler struct {
	roles *service.RoleService
}

// NewRolesHandler constructs the handler.
func NewRolesHandler(roleService *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roleService}
}

// Create handles POST /api/roles.
func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", nil)
	}
	if req.Name == "" {
		return apperrors.NewBadRequest("a role name is required", nil)
	}

	role, err := h.roles.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.RoleResponse{ID: role.ID, Name: role.Name}})
}

// List handles GET /api/roles.
func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.List(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, dto.RoleResponse{ID: role.ID, Name: role.Name})
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetByID handles GET /api/roles/:id.
func (h *RolesHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	role, err := h.roles.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RoleResponse{ID: role.ID, Name: role.Name}})
}
