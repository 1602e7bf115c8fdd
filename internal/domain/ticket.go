package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "OPEN"
	TicketStatusPending  TicketStatus = "PENDING"
	TicketStatusResolved TicketStatus = "RESOLVED"
	TicketStatusClosed   TicketStatus = "CLOSED"
	TicketStatusDropped  TicketStatus = "DROPPED"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusPending,
	TicketStatusResolved,
	TicketStatusClosed,
	TicketStatusDropped,
}

// Valid reports whether s is one of the known statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusResolved, TicketStatusClosed, TicketStatusDropped:
		return true
	}
	return false
}

// IsTerminal reports whether no further mutation is allowed in this status.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusClosed || s == TicketStatusDropped
}

// Ticket is a single complaint tracked from creation to closure.
type Ticket struct {
	ID           int64
	Title        string
	Description  string
	OwnerID      int64
	Status       TicketStatus
	SeverityID   int64
	DepartmentID *int64
	AdminID      *int64
	// Reason is non-empty only while Status is DROPPED.
	Reason    string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}

// IsTerminal reports whether the ticket reached CLOSED or DROPPED.
func (t *Ticket) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// TicketDetail is a ticket joined with display names of its references.
type TicketDetail struct {
	Ticket
	SeverityDescription string
	DepartmentName      *string
	AdminName           *string
	OwnerName           string
	OwnerEmail          string
}
