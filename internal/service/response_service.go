package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/lock"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// ResponseService keeps the append-only response thread of each ticket.
type ResponseService struct {
	store      repository.Store
	locker     lock.TicketLocker
	dispatcher events.Dispatcher
	logger     *zap.Logger
	timeout    time.Duration
}

// ResponseDependencies bundles collaborators.
type ResponseDependencies struct {
	Store        repository.Store
	Locker       lock.TicketLocker
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	StoreTimeout time.Duration
}

// AppendResponseInput describes a new thread entry. DepartmentID defaults to
// the ticket's current department.
type AppendResponseInput struct {
	AuthorRole   domain.AuthorRole
	AuthorID     int64
	Body         string
	DepartmentID *int64
}

// NewResponseService creates the service.
func NewResponseService(deps ResponseDependencies) *ResponseService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseService{
		store:      deps.Store,
		locker:     deps.Locker,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		timeout:    deps.StoreTimeout,
	}
}

// Append adds a response to a non-terminal ticket.
func (s *ResponseService) Append(ctx context.Context, ticketID int64, input AppendResponseInput) (*domain.Response, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, apperrors.NewValidationError("response body is required", map[string]any{"body": "required"})
	}
	if !input.AuthorRole.Valid() {
		return nil, apperrors.NewValidationError("unknown author role", map[string]any{"author_role": input.AuthorRole})
	}

	unlock, err := lockTicket(ctx, s.locker, ticketID, s.timeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	ticket, err := s.store.Tickets.GetByID(cctx, ticketID)
	if err != nil {
		return nil, storeErr(err, dangling("ticket", "ticket_id", ticketID))
	}
	if ticket.IsTerminal() {
		return nil, apperrors.NewTerminalState(ticket.ID, string(ticket.Status))
	}
	if !ticket.Status.Valid() {
		return nil, apperrors.NewDanglingReference("status", map[string]any{"status": ticket.Status})
	}
	if err := s.requireAuthor(cctx, input.AuthorRole, input.AuthorID); err != nil {
		return nil, err
	}

	departmentID := input.DepartmentID
	if departmentID == nil {
		departmentID = ticket.DepartmentID
	}
	if departmentID != nil {
		if _, err := s.store.Departments.GetByID(cctx, *departmentID); err != nil {
			return nil, storeErr(err, dangling("department", "department_id", *departmentID))
		}
	}

	resp := &domain.Response{
		TicketID:     ticket.ID,
		AuthorRole:   input.AuthorRole,
		AuthorID:     input.AuthorID,
		Body:         body,
		DepartmentID: departmentID,
		Status:       ticket.Status,
	}
	if err := s.store.Responses.Create(cctx, resp); err != nil {
		return nil, storeErr(err, nil)
	}

	if resp.AuthorRole == domain.AuthorRoleAdmin {
		publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventResponseAdded, ticket.ID,
			domain.Actor{Type: domain.SubjectTypeAdmin, ID: resp.AuthorID},
			events.ResponseAddedPayload{
				ResponseID:  resp.ID,
				OwnerID:     ticket.OwnerID,
				AuthorRole:  resp.AuthorRole,
				AuthorID:    resp.AuthorID,
				BodyPreview: stringPreview(resp.Body, 120),
			}))
	}
	return resp, nil
}

// List returns the ticket's responses in insertion order joined with author
// names. A ticket without responses yields an empty slice.
func (s *ResponseService) List(ctx context.Context, ticketID int64) ([]domain.ResponseView, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	if _, err := s.store.Tickets.GetByID(cctx, ticketID); err != nil {
		return nil, storeErr(err, ticketNotFound(ticketID))
	}
	responses, err := s.store.Responses.ListByTicket(cctx, ticketID)
	if err != nil {
		return nil, storeErr(err, nil)
	}

	users := map[int64]*domain.User{}
	admins := map[int64]*domain.Administrator{}
	views := make([]domain.ResponseView, 0, len(responses))
	for _, resp := range responses {
		view := domain.ResponseView{Response: resp}
		switch resp.AuthorRole {
		case domain.AuthorRoleUser:
			user, ok := users[resp.AuthorID]
			if !ok {
				user, err = s.store.Users.GetByID(cctx, resp.AuthorID)
				if err != nil && !isNotFound(err) {
					return nil, storeErr(err, nil)
				}
				users[resp.AuthorID] = user
			}
			if user != nil {
				view.UserName = &user.Name
				view.UserEmail = &user.Email
			}
		case domain.AuthorRoleAdmin:
			admin, ok := admins[resp.AuthorID]
			if !ok {
				admin, err = s.store.Admins.GetByID(cctx, resp.AuthorID)
				if err != nil && !isNotFound(err) {
					return nil, storeErr(err, nil)
				}
				admins[resp.AuthorID] = admin
			}
			if admin != nil {
				view.AdminName = &admin.Name
				view.AdminEmail = &admin.Email
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ResponseService) requireAuthor(ctx context.Context, role domain.AuthorRole, authorID int64) error {
	switch role {
	case domain.AuthorRoleUser:
		user, err := s.store.Users.GetByID(ctx, authorID)
		if err != nil {
			return storeErr(err, dangling("user", "user_id", authorID))
		}
		if user.Deleted() {
			return dangling("user", "user_id", authorID)()
		}
	case domain.AuthorRoleAdmin:
		admin, err := s.store.Admins.GetByID(ctx, authorID)
		if err != nil {
			return storeErr(err, dangling("administrator", "admin_id", authorID))
		}
		if admin.Deleted() {
			return dangling("administrator", "admin_id", authorID)()
		}
	}
	return nil
}
