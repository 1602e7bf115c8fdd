package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketSeverityChanged EventType = "ticket_severity_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventResponseAdded         EventType = "response_added"
	EventFeedbackRequested     EventType = "feedback_requested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	TicketID  int64        `json:"ticket_id"`
	Actor     domain.Actor `json:"actor"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, ticketID int64, actor domain.Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	OwnerID    int64  `json:"owner_id"`
	SeverityID int64  `json:"severity_id"`
	Title      string `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OwnerID   int64               `json:"owner_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Reason    string              `json:"reason,omitempty"`
}

// TicketSeverityChangedPayload payload.
type TicketSeverityChangedPayload struct {
	OldSeverityID int64 `json:"old_severity_id"`
	NewSeverityID int64 `json:"new_severity_id"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AdminID      int64 `json:"admin_id"`
	DepartmentID int64 `json:"department_id"`
}

// ResponseAddedPayload payload.
type ResponseAddedPayload struct {
	ResponseID  int64             `json:"response_id"`
	OwnerID     int64             `json:"owner_id"`
	AuthorRole  domain.AuthorRole `json:"author_role"`
	AuthorID    int64             `json:"author_id"`
	BodyPreview string            `json:"body_preview"`
}

// FeedbackRequestedPayload payload.
type FeedbackRequestedPayload struct {
	OwnerID int64 `json:"owner_id"`
}
