package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ProgressService derives administrator progress scores. It only reads and
// takes no ticket locks.
type ProgressService struct {
	store   repository.Store
	logger  *zap.Logger
	timeout time.Duration
}

// ProgressDependencies bundles collaborators.
type ProgressDependencies struct {
	Store        repository.Store
	Logger       *zap.Logger
	StoreTimeout time.Duration
}

// NewProgressService creates the service.
func NewProgressService(deps ProgressDependencies) *ProgressService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{store: deps.Store, logger: logger, timeout: deps.StoreTimeout}
}

// ScoreAll scores every administrator other than the super role, including
// soft-deleted ones who may still hold assigned tickets.
// Failing to list administrators is the only error returned; a data gap for
// one administrator scores that administrator 0.
func (s *ProgressService) ScoreAll(ctx context.Context) ([]domain.AdminProgress, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	super := domain.AdminRoleSuper
	admins, err := s.store.Admins.List(cctx, repository.AdminFilter{ExcludeRole: &super, IncludeDeleted: true})
	cancel()
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	departments := map[int64]string{}
	result := make([]domain.AdminProgress, 0, len(admins))
	for i := range admins {
		admin := &admins[i]
		name, ok := departments[admin.DepartmentID]
		if !ok {
			name = s.departmentName(ctx, admin.DepartmentID)
			departments[admin.DepartmentID] = name
		}
		result = append(result, s.progress(ctx, admin, name))
	}
	return result, nil
}

// Score computes the progress of a single administrator.
func (s *ProgressService) Score(ctx context.Context, adminID int64) (*domain.AdminProgress, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	admin, err := s.store.Admins.GetByID(cctx, adminID)
	cancel()
	if err != nil {
		return nil, storeErr(err, func() error {
			return apperrors.NewNotFound("administrator", map[string]any{"admin_id": adminID})
		})
	}
	if admin.Role == domain.AdminRoleSuper {
		return nil, apperrors.NewValidationError("administrator role is not scored",
			map[string]any{"admin_id": adminID, "role": admin.Role})
	}
	progress := s.progress(ctx, admin, s.departmentName(ctx, admin.DepartmentID))
	return &progress, nil
}

func (s *ProgressService) progress(ctx context.Context, admin *domain.Administrator, department string) domain.AdminProgress {
	score, err := s.score(ctx, admin.ID)
	if err != nil {
		s.logger.Warn("progress score unavailable", zap.Int64("admin_id", admin.ID), zap.Error(err))
		score = 0
	}
	return domain.AdminProgress{
		AdminID:        admin.ID,
		Name:           admin.Name,
		Email:          admin.Email,
		DepartmentName: department,
		Role:           admin.Role,
		Score:          score,
	}
}

func (s *ProgressService) score(ctx context.Context, adminID int64) (float64, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	tickets, err := s.store.Tickets.List(cctx, repository.TicketFilter{AdminID: &adminID})
	if err != nil {
		return 0, err
	}
	closed := closedTicketIDs(tickets)
	if len(closed) == 0 {
		return progressScore(len(tickets), 0, nil), nil
	}
	feedback, err := s.store.Feedback.ListByTickets(cctx, closed)
	if err != nil {
		return 0, err
	}
	return progressScore(len(tickets), len(closed), feedback), nil
}

func (s *ProgressService) departmentName(ctx context.Context, departmentID int64) string {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	dept, err := s.store.Departments.GetByID(cctx, departmentID)
	if err != nil {
		return domain.UnknownDepartmentName
	}
	return dept.Description
}

func closedTicketIDs(tickets []domain.Ticket) []int64 {
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == domain.TicketStatusClosed {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// progressScore is 100*closed/total adjusted by each feedback delta in order,
// clamped to [0,100] after every step. Every feedback row counts, including
// several rows for the same ticket.
func progressScore(total, closed int, feedback []domain.Feedback) float64 {
	if total == 0 {
		return 0
	}
	score := 100 * float64(closed) / float64(total)
	for _, fb := range feedback {
		score = clamp(score+fb.Sentiment.Delta(), 0, 100)
	}
	return score
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
