package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SeverityID  *int64 `json:"severity_id"`
}

// StatusChangeRequest payload. Status may be a name or a numeric id.
type StatusChangeRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// DropTicketRequest payload.
type DropTicketRequest struct {
	Reason string `json:"reason"`
}

// SeverityRequest payload.
type SeverityRequest struct {
	SeverityID int64 `json:"severity_id"`
}

// AssignmentRequest payload.
type AssignmentRequest struct {
	DepartmentID int64 `json:"department_id"`
	AdminID      int64 `json:"admin_id"`
}

// FeedbackRequest payload.
type FeedbackRequest struct {
	Sentiment domain.Sentiment `json:"sentiment"`
	Comment   string           `json:"comment"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID           int64               `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	OwnerID      int64               `json:"owner_id"`
	Status       domain.TicketStatus `json:"status"`
	StatusID     int                 `json:"status_id"`
	SeverityID   int64               `json:"severity_id"`
	DepartmentID *int64              `json:"department_id"`
	AdminID      *int64              `json:"admin_id"`
	Reason       *string             `json:"reason,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	ClosedAt     *time.Time          `json:"closed_at"`
}

// TicketDetailResponse adds display names to a ticket.
type TicketDetailResponse struct {
	TicketResponse
	Severity       string  `json:"severity"`
	DepartmentName *string `json:"department_name"`
	AdminName      *string `json:"admin_name"`
	OwnerName      string  `json:"owner_name"`
	OwnerEmail     string  `json:"owner_email"`
}

// FeedbackResponse is the wire form of a feedback entry.
type FeedbackResponse struct {
	ID        int64            `json:"id"`
	TicketID  int64            `json:"ticket_id"`
	Sentiment domain.Sentiment `json:"sentiment"`
	Comment   string           `json:"comment"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewTicketResponse converts a ticket. Reason is only exposed on dropped tickets.
func NewTicketResponse(t domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		OwnerID:      t.OwnerID,
		Status:       t.Status,
		StatusID:     LegacyStatusID(t.Status),
		SeverityID:   t.SeverityID,
		DepartmentID: t.DepartmentID,
		AdminID:      t.AdminID,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		ClosedAt:     t.ClosedAt,
	}
	if t.Status == domain.TicketStatusDropped && t.Reason != "" {
		reason := t.Reason
		resp.Reason = &reason
	}
	return resp
}

// NewTicketResponses converts a slice of tickets.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketResponse(t))
	}
	return out
}

// NewTicketDetailResponse converts a joined ticket.
func NewTicketDetailResponse(d domain.TicketDetail) TicketDetailResponse {
	return TicketDetailResponse{
		TicketResponse: NewTicketResponse(d.Ticket),
		Severity:       d.SeverityDescription,
		DepartmentName: d.DepartmentName,
		AdminName:      d.AdminName,
		OwnerName:      d.OwnerName,
		OwnerEmail:     d.OwnerEmail,
	}
}

// NewFeedbackResponse converts feedback.
func NewFeedbackResponse(f domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		TicketID:  f.TicketID,
		Sentiment: f.Sentiment,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}
