package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	NationalID string `json:"national_id"`
	Mobile     string `json:"mobile"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token       string             `json:"token"`
	ExpiresAt   time.Time          `json:"expires_at"`
	SubjectType domain.SubjectType `json:"subject_type"`
	SubjectID   int64              `json:"subject_id"`
	Name        string             `json:"name"`
	Role        *domain.AdminRole  `json:"role,omitempty"`
}

// DepartmentResponse lookup entry.
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// SeverityResponse lookup entry.
type SeverityResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// AdminResponse is the public view of an administrator.
type AdminResponse struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         domain.AdminRole `json:"role"`
	DepartmentID int64            `json:"department_id"`
}

// NewAdminResponses converts administrators without their password hashes.
func NewAdminResponses(admins []domain.Administrator) []AdminResponse {
	out := make([]AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, AdminResponse{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role, DepartmentID: a.DepartmentID})
	}
	return out
}

// NewDepartmentResponses converts departments.
func NewDepartmentResponses(depts []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, DepartmentResponse{ID: d.ID, Description: d.Description})
	}
	return out
}

// NewSeverityResponses converts severity levels.
func NewSeverityResponses(levels []domain.SeverityLevel) []SeverityResponse {
	out := make([]SeverityResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, SeverityResponse{ID: l.ID, Description: l.Description})
	}
	return out
}
