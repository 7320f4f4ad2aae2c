package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/helpdesk-service/internal/api/dto"
	"github.com/support-kit/helpdesk-service/internal/domain"
	"github.com/support-kit/helpdesk-service/internal/service"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

const maxTitleLength = 150

// TicketsHandler exposes ticket endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewBadRequest("title must be provided", nil)
	}
	if len(req.Title) > maxTitleLength {
		return apperrors.NewBadRequest("title exceeds 150 characters", nil)
	}
	if req.Priority != "" && !domain.TicketPriority(req.Priority).Valid() {
		return apperrors.NewBadRequest("invalid priority", map[string]any{"priority": req.Priority})
	}
	if req.CustomerID <= 0 {
		return apperrors.NewBadRequest("a valid customer id is required", nil)
	}

	ticket, err := h.tickets.Create(c.UserContext(), service.CreateTicketInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     domain.TicketPriority(req.Priority),
		CustomerID:   req.CustomerID,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List handles GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.tickets.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponses(tickets)})
}

// GetByID handles GET /api/tickets/:id.
func (h *TicketsHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ticket, err := h.tickets.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Update handles PATCH /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload", nil)
	}
	if req.Title != nil && len(*req.Title) > maxTitleLength {
		return apperrors.NewBadRequest("title exceeds 150 characters", nil)
	}
	if req.Status != nil && !domain.TicketStatus(*req.Status).Valid() {
		return apperrors.NewBadRequest("invalid status", map[string]any{"status": *req.Status})
	}
	if req.Priority != nil && !domain.TicketPriority(*req.Priority).Valid() {
		return apperrors.NewBadRequest("invalid priority", map[string]any{"priority": *req.Priority})
	}

	in := service.UpdateTicketInput{
		Title:        req.Title,
		Description:  req.Description,
		CustomerID:   req.CustomerID,
		TechnicianID: req.TechnicianID,
	}
	if req.Status != nil {
		status := domain.TicketStatus(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TicketPriority(*req.Priority)
		in.Priority = &priority
	}

	ticket, err := h.tickets.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Delete handles DELETE /api/tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.tickets.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
