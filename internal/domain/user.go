package domain

import "time"

// User is the domain model for people who submit complaints.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Address      string
	City         string
	Province     string
	NationalID   string
	Mobile       string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

// Deleted reports whether the user was soft-deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}
