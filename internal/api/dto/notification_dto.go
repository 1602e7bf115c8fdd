package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// NotifyAdminRequest payload.
type NotifyAdminRequest struct {
	AdminID int64  `json:"admin_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NotificationResponse is the wire form of a notification.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	TicketID  *int64    `json:"ticket_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationList carries a target's notifications with its unread count.
type NotificationList struct {
	Unread int64                  `json:"unread"`
	Items  []NotificationResponse `json:"items"`
}

// NewNotificationResponse converts a notification.
func NewNotificationResponse(n domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		TicketID:  n.TicketID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NewNotificationList converts notifications in the given order.
func NewNotificationList(items []domain.Notification, unread int64) NotificationList {
	out := NotificationList{Unread: unread, Items: make([]NotificationResponse, 0, len(items))}
	for _, n := range items {
		out.Items = append(out.Items, NewNotificationResponse(n))
	}
	return out
}
