package service

import (
	"context"
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

// ReportService aggregates ticket counts for dashboards.
type ReportService struct {
	tickets repository.TicketRepository
	timeout time.Duration
}

// NewReportService creates the service.
func NewReportService(tickets repository.TicketRepository, storeTimeout time.Duration) *ReportService {
	return &ReportService{tickets: tickets, timeout: storeTimeout}
}

// ComplaintsSummary counts tickets per status, optionally for one
// administrator. DROPPED is a share of all tickets; every other status is a
// share of the tickets that were not dropped.
func (s *ReportService) ComplaintsSummary(ctx context.Context, adminID *int64) ([]domain.StatusCount, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	counts, err := s.tickets.CountByStatus(cctx, repository.TicketFilter{AdminID: adminID})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return summarize(counts), nil
}

// OwnerCounts totals the owner's tickets per status.
func (s *ReportService) OwnerCounts(ctx context.Context, ownerID int64) (*domain.OwnerCounts, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	counts, err := s.tickets.CountByStatus(cctx, repository.TicketFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	result := &domain.OwnerCounts{ByStatus: make(map[domain.TicketStatus]int64, len(domain.TicketStatuses))}
	for _, status := range domain.TicketStatuses {
		result.ByStatus[status] = counts[status]
		result.Total += counts[status]
	}
	return result, nil
}

func summarize(counts map[domain.TicketStatus]int64) []domain.StatusCount {
	var total int64
	for _, status := range domain.TicketStatuses {
		total += counts[status]
	}
	dropped := counts[domain.TicketStatusDropped]

	rows := make([]domain.StatusCount, 0, len(domain.TicketStatuses))
	for _, status := range domain.TicketStatuses {
		denominator := total - dropped
		if status == domain.TicketStatusDropped {
			denominator = total
		}
		row := domain.StatusCount{Status: status, Count: counts[status]}
		if denominator > 0 {
			row.Percentage = float64(row.Count) / float64(denominator) * 100
		}
		rows = append(rows, row)
	}
	return rows
}
