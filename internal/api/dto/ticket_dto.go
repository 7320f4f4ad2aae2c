package dto

import (
	"time"

	"github.com/support-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload for new tickets. The technician is optional.
type CreateTicketRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Priority     string  `json:"priority"`
	CustomerID   int64   `json:"customerId"`
	TechnicianID *int64  `json:"technicianId"`
}

// UpdateTicketRequest is a partial update; absent fields stay untouched.
type UpdateTicketRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	CustomerID   *int64  `json:"customerId"`
	TechnicianID *int64  `json:"technicianId"`
}

// TicketResponse is the external ticket representation with customer and
// technician details attached.
type TicketResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	Customer    *domain.UserSummary `json:"customer"`
	Technician  *domain.UserSummary `json:"technician"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewTicketResponse maps a domain ticket to its external shape.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      string(ticket.Status),
		Priority:    string(ticket.Priority),
		Customer:    ticket.Customer,
		Technician:  ticket.Technician,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

// NewTicketResponses maps a slice of tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
