package domain

import "time"

// AuthorRole indicates who wrote a response.
type AuthorRole string

const (
	AuthorRoleUser  AuthorRole = "user"
	AuthorRoleAdmin AuthorRole = "admin"
)

// Valid reports whether r is a known author role.
func (r AuthorRole) Valid() bool {
	return r == AuthorRoleUser || r == AuthorRoleAdmin
}

// Response is an immutable entry in a ticket thread.
type Response struct {
	ID           int64
	TicketID     int64
	AuthorRole   AuthorRole
	AuthorID     int64
	Body         string
	DepartmentID *int64
	Status       TicketStatus
	CreatedAt    time.Time
}

// ResponseView joins a response with its author's display fields.
// Only the pair matching AuthorRole is set.
type ResponseView struct {
	Response
	UserName   *string
	UserEmail  *string
	AdminName  *string
	AdminEmail *string
}
