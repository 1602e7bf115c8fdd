package domain

import "time"

// NotificationTarget identifies who a notification is addressed to.
type NotificationTarget struct {
	Type SubjectType
	ID   int64
}

// UserTarget addresses a user.
func UserTarget(id int64) NotificationTarget {
	return NotificationTarget{Type: SubjectTypeUser, ID: id}
}

// AdminTarget addresses an administrator.
func AdminTarget(id int64) NotificationTarget {
	return NotificationTarget{Type: SubjectTypeAdmin, ID: id}
}

// Notification is a read-tracked message surfaced to a user or administrator.
type Notification struct {
	ID        int64
	Target    NotificationTarget
	Title     string
	Message   string
	TicketID  *int64
	CreatedAt time.Time
	Read      bool
}
