package dto

import "github.com/spec-kit/complaint-service/internal/domain"

// StatusCountResponse is one row of a complaints summary.
type StatusCountResponse struct {
	Status     domain.TicketStatus `json:"status"`
	StatusID   int                 `json:"status_id"`
	Count      int64               `json:"count"`
	Percentage float64             `json:"percentage"`
}

// OwnerCountsResponse totals an owner's tickets.
type OwnerCountsResponse struct {
	Total    int64                         `json:"total"`
	ByStatus map[domain.TicketStatus]int64 `json:"by_status"`
}

// ProgressResponse is one administrator's progress score.
type ProgressResponse struct {
	AdminID    int64            `json:"admin_id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Department string           `json:"department"`
	Role       domain.AdminRole `json:"role"`
	Score      float64          `json:"score"`
}

// NewStatusCountResponses converts summary rows.
func NewStatusCountResponses(rows []domain.StatusCount) []StatusCountResponse {
	out := make([]StatusCountResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, StatusCountResponse{
			Status:     r.Status,
			StatusID:   LegacyStatusID(r.Status),
			Count:      r.Count,
			Percentage: r.Percentage,
		})
	}
	return out
}

// NewProgressResponses converts progress scores.
func NewProgressResponses(rows []domain.AdminProgress) []ProgressResponse {
	out := make([]ProgressResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewProgressResponse(r))
	}
	return out
}

// NewProgressResponse converts one progress score.
func NewProgressResponse(r domain.AdminProgress) ProgressResponse {
	return ProgressResponse{
		AdminID:    r.AdminID,
		Name:       r.Name,
		Email:      r.Email,
		Department: r.DepartmentName,
		Role:       r.Role,
		Score:      r.Score,
	}
}
