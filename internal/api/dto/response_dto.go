package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// CreateResponseRequest payload.
type CreateResponseRequest struct {
	Body         string `json:"body"`
	DepartmentID *int64 `json:"department_id"`
}

// ResponseResponse is one entry of a ticket thread.
type ResponseResponse struct {
	ID           int64               `json:"id"`
	TicketID     int64               `json:"ticket_id"`
	AuthorRole   domain.AuthorRole   `json:"author_role"`
	AuthorID     int64               `json:"author_id"`
	Body         string              `json:"body"`
	DepartmentID *int64              `json:"department_id"`
	Status       domain.TicketStatus `json:"status"`
	StatusID     int                 `json:"status_id"`
	UserName     *string             `json:"user_name"`
	UserEmail    *string             `json:"user_email"`
	AdminName    *string             `json:"admin_name"`
	AdminEmail   *string             `json:"admin_email"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewResponseResponse converts a stored response without author fields.
func NewResponseResponse(r domain.Response) ResponseResponse {
	return ResponseResponse{
		ID:           r.ID,
		TicketID:     r.TicketID,
		AuthorRole:   r.AuthorRole,
		AuthorID:     r.AuthorID,
		Body:         r.Body,
		DepartmentID: r.DepartmentID,
		Status:       r.Status,
		StatusID:     LegacyStatusID(r.Status),
		CreatedAt:    r.CreatedAt,
	}
}

// NewResponseViews converts a joined thread.
func NewResponseViews(views []domain.ResponseView) []ResponseResponse {
	out := make([]ResponseResponse, 0, len(views))
	for _, v := range views {
		resp := NewResponseResponse(v.Response)
		resp.UserName = v.UserName
		resp.UserEmail = v.UserEmail
		resp.AdminName = v.AdminName
		resp.AdminEmail = v.AdminEmail
		out = append(out, resp)
	}
	return out
}
