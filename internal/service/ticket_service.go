package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/support-kit/helpdesk-service/internal/domain"
	"github.com/support-kit/helpdesk-service/internal/repository"
	apperrors "github.com/support-kit/helpdesk-service/pkg/util"
)

// CreateTicketInput carries a validated creation payload. The technician
// reference is optional.
type CreateTicketInput struct {
	Title        string
	Description  *string
	Priority     domain.TicketPriority
	CustomerID   int64
	TechnicianID *int64
}

// UpdateTicketInput is a partial update; nil fields are left untouched.
type UpdateTicketInput struct {
	Title        *string
	Description  *string
	Status       *domain.TicketStatus
	Priority     *domain.TicketPriority
	CustomerID   *int64
	TechnicianID *int64
}

// IsEmpty reports whether no field is set.
func (in UpdateTicketInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil &&
		in.Priority == nil && in.CustomerID == nil && in.TechnicianID == nil
}

// TicketService owns Ticket rows. Both user references are weak: this
// layer stores ids and translates the store's referential verdicts, it
// never cascades through them itself.
type TicketService struct {
	tickets repository.TicketRepository
}

// NewTicketService builds the service.
func NewTicketService(tickets repository.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

// Create persists a new ticket. A foreign-key violation means the customer
// or technician id does not resolve to an existing user and is reported as
// a bad request, never an opaque internal failure.
func (s *TicketService) Create(ctx context.Context, in CreateTicketInput) (*domain.Ticket, error) {
	if in.Title == "" {
		return nil, apperrors.NewBadRequest("a title is required", nil)
	}
	if in.CustomerID <= 0 {
		return nil, apperrors.NewBadRequest("a valid customer id is required", nil)
	}
	if in.TechnicianID != nil && *in.TechnicianID <= 0 {
		return nil, apperrors.NewBadRequest("a valid technician id is required", nil)
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewBadRequest("invalid priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		Title:        in.Title,
		Description:  in.Description,
		Status:       domain.TicketStatusOpen,
		Priority:     priority,
		CustomerID:   in.CustomerID,
		TechnicianID: in.TechnicianID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewBadRequest("referenced user does not exist", nil)
		}
		return nil, apperrors.MapError(err)
	}

	return s.GetByID(ctx, ticket.ID)
}

// GetByID returns the ticket with customer and technician details attached.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequest("a valid id is required", nil)
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// List returns all tickets with their user details.
func (s *TicketService) List(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(tickets) == 0 {
		return nil, apperrors.NewNotFound("tickets", nil)
	}
	return tickets, nil
}

// Update applies a partial update. Any value within the closed status and
// priority enumerations is accepted; no transition ordering is enforced.
func (s *TicketService) Update(ctx context.Context, id int64, in UpdateTicketInput) (*domain.Ticket, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequest("a valid id is required", nil)
	}
	if in.IsEmpty() {
		return nil, apperrors.NewBadRequest("no fields provided to update", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperrors.NewBadRequest("a title is required", nil)
		}
		ticket.Title = *in.Title
	}
	if in.Description != nil {
		ticket.Description = in.Description
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperrors.NewBadRequest("invalid status", map[string]any{"status": *in.Status})
		}
		ticket.Status = *in.Status
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return nil, apperrors.NewBadRequest("invalid priority", map[string]any{"priority": *in.Priority})
		}
		ticket.Priority = *in.Priority
	}
	if in.CustomerID != nil {
		if *in.CustomerID <= 0 {
			return nil, apperrors.NewBadRequest("a valid customer id is required", nil)
		}
		ticket.CustomerID = *in.CustomerID
	}
	if in.TechnicianID != nil {
		if *in.TechnicianID <= 0 {
			return nil, apperrors.NewBadRequest("a valid technician id is required", nil)
		}
		ticket.TechnicianID = in.TechnicianID
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		if apperrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewBadRequest("referenced user does not exist", nil)
		}
		return nil, apperrors.MapError(err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes the ticket unconditionally; nothing references a ticket.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequest("a valid id is required", nil)
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
