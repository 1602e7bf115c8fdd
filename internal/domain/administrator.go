package domain

import "time"

// AdminRole enumerates administrator roles.
type AdminRole string

const (
	// AdminRoleSuper manages routing and is never assigned tickets.
	AdminRoleSuper  AdminRole = "Administrator"
	AdminRoleNormal AdminRole = "normal-admin"
)

// Administrator resolves tickets routed to their department.
type Administrator struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         AdminRole
	DepartmentID int64
	DeletedAt    *time.Time
}

// Assignable reports whether tickets may be assigned to the administrator.
func (a *Administrator) Assignable() bool {
	return a.Role != AdminRoleSuper && a.DeletedAt == nil
}

// Deleted reports whether the administrator was soft-deleted.
func (a *Administrator) Deleted() bool {
	return a.DeletedAt != nil
}

// AdminProgress is the derived performance signal of one administrator.
type AdminProgress struct {
	AdminID        int64
	Name           string
	Email          string
	DepartmentName string
	Role           AdminRole
	Score          float64
}
