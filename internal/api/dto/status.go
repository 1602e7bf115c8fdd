package dto

import (
	"strconv"
	"strings"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// Numeric status ids used by existing clients.
var legacyStatusIDs = map[domain.TicketStatus]int{
	domain.TicketStatusClosed:   2,
	domain.TicketStatusPending:  3,
	domain.TicketStatusDropped:  4,
	domain.TicketStatusResolved: 5,
	domain.TicketStatusOpen:     6,
}

// LegacyStatusID returns the numeric id clients know the status by.
func LegacyStatusID(s domain.TicketStatus) int {
	return legacyStatusIDs[s]
}

// StatusFromLegacyID maps a numeric client status id back to a status.
func StatusFromLegacyID(id int) (domain.TicketStatus, bool) {
	for status, legacy := range legacyStatusIDs {
		if legacy == id {
			return status, true
		}
	}
	return "", false
}

// ParseStatus accepts either a status name (any case) or its numeric id.
func ParseStatus(raw string) (domain.TicketStatus, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.Atoi(raw); err == nil {
		return StatusFromLegacyID(id)
	}
	status := domain.TicketStatus(strings.ToUpper(raw))
	return status, status.Valid()
}

// StatusOption is one entry of a status picker.
type StatusOption struct {
	ID   int                 `json:"id"`
	Name domain.TicketStatus `json:"name"`
}

// StatusOptions lists statuses in display order.
func StatusOptions(statuses []domain.TicketStatus) []StatusOption {
	out := make([]StatusOption, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, StatusOption{ID: LegacyStatusID(s), Name: s})
	}
	return out
}
