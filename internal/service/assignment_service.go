package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/lock"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AssignmentService routes tickets to a department and administrator.
type AssignmentService struct {
	store      repository.Store
	locker     lock.TicketLocker
	dispatcher events.Dispatcher
	logger     *zap.Logger
	timeout    time.Duration
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	Store        repository.Store
	Locker       lock.TicketLocker
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	StoreTimeout time.Duration
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		store:      deps.Store,
		locker:     deps.Locker,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		timeout:    deps.StoreTimeout,
	}
}

// Assign routes the ticket to (departmentID, adminID), replacing any previous
// assignment. No assignment history is kept.
func (s *AssignmentService) Assign(ctx context.Context, actor domain.Actor, ticketID, departmentID, adminID int64) (*domain.Ticket, error) {
	unlock, err := lockTicket(ctx, s.locker, ticketID, s.timeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	ticket, err := s.store.Tickets.GetByID(cctx, ticketID)
	if err != nil {
		return nil, storeErr(err, ticketNotFound(ticketID))
	}
	if ticket.IsTerminal() {
		return nil, apperrors.NewTerminalState(ticket.ID, string(ticket.Status))
	}
	if _, err := s.store.Departments.GetByID(cctx, departmentID); err != nil {
		return nil, storeErr(err, dangling("department", "department_id", departmentID))
	}
	admin, err := s.store.Admins.GetByID(cctx, adminID)
	if err != nil {
		return nil, storeErr(err, dangling("administrator", "admin_id", adminID))
	}
	if admin.Deleted() {
		return nil, dangling("administrator", "admin_id", adminID)()
	}
	if !admin.Assignable() {
		return nil, apperrors.NewValidationError("administrator is not assignable",
			map[string]any{"admin_id": adminID, "role": admin.Role})
	}

	updated := *ticket
	updated.DepartmentID = &departmentID
	updated.AdminID = &adminID
	if err := s.store.Tickets.Update(cctx, &updated); err != nil {
		return nil, storeErr(err, ticketNotFound(ticketID))
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventTicketAssigned, updated.ID, actor,
		events.TicketAssignedPayload{AdminID: adminID, DepartmentID: departmentID}))
	return &updated, nil
}

// AssignableAdmins lists the administrators of a department that can take tickets.
func (s *AssignmentService) AssignableAdmins(ctx context.Context, departmentID int64) ([]domain.Administrator, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.store.Departments.GetByID(cctx, departmentID); err != nil {
		return nil, storeErr(err, func() error {
			return apperrors.NewNotFound("department", map[string]any{"department_id": departmentID})
		})
	}
	super := domain.AdminRoleSuper
	admins, err := s.store.Admins.List(cctx, repository.AdminFilter{DepartmentID: &departmentID, ExcludeRole: &super})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return admins, nil
}
