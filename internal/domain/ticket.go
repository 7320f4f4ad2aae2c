package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status belongs to the closed enumeration.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates severity levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Valid reports whether the priority belongs to the closed enumeration.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Ticket links a customer to an optionally assigned technician. Both
// references are weak: the ticket only stores user ids, the deletion
// policies (customer restrict, technician nullify) live in the schema.
type Ticket struct {
	ID           int64
	Title        string
	Description  *string
	Status       TicketStatus
	Priority     TicketPriority
	CustomerID   int64
	TechnicianID *int64
	Customer     *UserSummary
	Technician   *UserSummary
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
