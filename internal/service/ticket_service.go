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

// TicketService coordinates ticket intake, reads, and the status lifecycle.
type TicketService struct {
	store      repository.Store
	locker     lock.TicketLocker
	dispatcher events.Dispatcher
	logger     *zap.Logger
	timeout    time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store        repository.Store
	Locker       lock.TicketLocker
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	StoreTimeout time.Duration
}

// CreateTicketInput describes ticket creation payload.
type CreateTicketInput struct {
	Title       string
	Description string
	SeverityID  *int64
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{
		store:      deps.Store,
		locker:     deps.Locker,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		timeout:    deps.StoreTimeout,
	}
}

// Create opens a new ticket for ownerID.
func (s *TicketService) Create(ctx context.Context, ownerID int64, input CreateTicketInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := plainText(input.Description)
	details := map[string]any{}
	if title == "" {
		details["title"] = "required"
	}
	if description == "" {
		details["description"] = "required"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid ticket", details)
	}

	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	severityID := domain.DefaultSeverityID
	if input.SeverityID != nil {
		severityID = *input.SeverityID
	}
	if err := s.requireSeverity(ctx, severityID); err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Status:      domain.TicketStatusOpen,
		SeverityID:  severityID,
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.Tickets.Create(cctx, ticket); err != nil {
		return nil, storeErr(err, nil)
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventTicketCreated, ticket.ID,
		domain.Actor{Type: domain.SubjectTypeUser, ID: ownerID},
		events.TicketCreatedPayload{OwnerID: ownerID, SeverityID: severityID, Title: ticket.Title}))
	return ticket, nil
}

// Get loads a ticket by id.
func (s *TicketService) Get(ctx context.Context, ticketID int64) (*domain.Ticket, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	ticket, err := s.store.Tickets.GetByID(cctx, ticketID)
	if err != nil {
		return nil, storeErr(err, ticketNotFound(ticketID))
	}
	return ticket, nil
}

// GetDetail loads a ticket joined with the display names of its references.
// Missing references leave their names unset rather than failing.
func (s *TicketService) GetDetail(ctx context.Context, ticketID int64) (*domain.TicketDetail, error) {
	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	detail := &domain.TicketDetail{Ticket: *ticket}
	if level, err := s.store.Severities.GetByID(cctx, ticket.SeverityID); err == nil {
		detail.SeverityDescription = level.Description
	} else if !isNotFound(err) {
		return nil, storeErr(err, nil)
	}
	if ticket.DepartmentID != nil {
		if dept, err := s.store.Departments.GetByID(cctx, *ticket.DepartmentID); err == nil {
			detail.DepartmentName = &dept.Description
		} else if !isNotFound(err) {
			return nil, storeErr(err, nil)
		}
	}
	if ticket.AdminID != nil {
		if admin, err := s.store.Admins.GetByID(cctx, *ticket.AdminID); err == nil {
			detail.AdminName = &admin.Name
		} else if !isNotFound(err) {
			return nil, storeErr(err, nil)
		}
	}
	if owner, err := s.store.Users.GetByID(cctx, ticket.OwnerID); err == nil {
		detail.OwnerName = owner.Name
		detail.OwnerEmail = owner.Email
	} else if !isNotFound(err) {
		return nil, storeErr(err, nil)
	}
	return detail, nil
}

// ListForOwner returns the owner's tickets, newest first.
func (s *TicketService) ListForOwner(ctx context.Context, ownerID int64, status *domain.TicketStatus) ([]domain.Ticket, error) {
	return s.list(ctx, repository.TicketFilter{OwnerID: &ownerID, Status: status})
}

// ListForAdmin returns tickets currently assigned to adminID.
func (s *TicketService) ListForAdmin(ctx context.Context, adminID int64, status *domain.TicketStatus) ([]domain.Ticket, error) {
	return s.list(ctx, repository.TicketFilter{AdminID: &adminID, Status: status})
}

// ListByStatus returns every ticket, optionally narrowed to one status.
func (s *TicketService) ListByStatus(ctx context.Context, status *domain.TicketStatus) ([]domain.Ticket, error) {
	return s.list(ctx, repository.TicketFilter{Status: status})
}

func (s *TicketService) list(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *filter.Status})
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	tickets, err := s.store.Tickets.List(cctx, filter)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return tickets, nil
}

// Transition moves a ticket to newStatus. Terminal tickets reject every
// change, and DROPPED requires a non-blank reason.
func (s *TicketService) Transition(ctx context.Context, actor domain.Actor, ticketID int64, newStatus domain.TicketStatus, reason string) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}
	reason = strings.TrimSpace(reason)

	unlock, err := lockTicket(ctx, s.locker, ticketID, s.timeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsTerminal() {
		return nil, apperrors.NewTerminalState(ticket.ID, string(ticket.Status))
	}
	if ticket.Status == newStatus {
		return ticket, nil
	}
	if newStatus == domain.TicketStatusDropped && reason == "" {
		return nil, apperrors.NewMissingReason(ticket.ID)
	}

	updated := *ticket
	updated.Status = newStatus
	updated.Reason = ""
	if newStatus == domain.TicketStatusDropped {
		updated.Reason = reason
	}
	if newStatus.IsTerminal() {
		now := time.Now().UTC()
		updated.ClosedAt = &now
	}

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.Tickets.Update(cctx, &updated); err != nil {
		return nil, storeErr(err, ticketNotFound(ticketID))
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventTicketStatusChanged, updated.ID, actor,
		events.TicketStatusChangedPayload{
			OwnerID:   updated.OwnerID,
			OldStatus: ticket.Status,
			NewStatus: updated.Status,
			Reason:    updated.Reason,
		}))
	if updated.Status == domain.TicketStatusClosed {
		publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventFeedbackRequested, updated.ID, actor,
			events.FeedbackRequestedPayload{OwnerID: updated.OwnerID}))
	}
	return &updated, nil
}

// SetSeverity reclassifies a non-terminal ticket.
func (s *TicketService) SetSeverity(ctx context.Context, actor domain.Actor, ticketID, severityID int64) (*domain.Ticket, error) {
	unlock, err := lockTicket(ctx, s.locker, ticketID, s.timeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsTerminal() {
		return nil, apperrors.NewTerminalState(ticket.ID, string(ticket.Status))
	}
	if err := s.requireSeverity(ctx, severityID); err != nil {
		return nil, err
	}
	if ticket.SeverityID == severityID {
		return ticket, nil
	}

	updated := *ticket
	updated.SeverityID = severityID
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.Tickets.Update(cctx, &updated); err != nil {
		return nil, storeErr(err, ticketNotFound(ticketID))
	}

	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventTicketSeverityChanged, updated.ID, actor,
		events.TicketSeverityChangedPayload{OldSeverityID: ticket.SeverityID, NewSeverityID: severityID}))
	return &updated, nil
}

// AddFeedback records the owner's sentiment about a ticket. Only feedback on
// closed tickets counts toward progress scores.
func (s *TicketService) AddFeedback(ctx context.Context, ticketID int64, sentiment domain.Sentiment, comment string) (*domain.Feedback, error) {
	if !sentiment.Valid() {
		return nil, apperrors.NewValidationError("unknown sentiment", map[string]any{"sentiment": sentiment})
	}
	if _, err := s.Get(ctx, ticketID); err != nil {
		return nil, err
	}

	feedback := &domain.Feedback{
		TicketID:  ticketID,
		Sentiment: sentiment,
		Comment:   strings.TrimSpace(comment),
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if err := s.store.Feedback.Create(cctx, feedback); err != nil {
		return nil, storeErr(err, nil)
	}
	return feedback, nil
}

func (s *TicketService) requireUser(ctx context.Context, userID int64) error {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	user, err := s.store.Users.GetByID(cctx, userID)
	if err != nil {
		return storeErr(err, dangling("user", "user_id", userID))
	}
	if user.Deleted() {
		return dangling("user", "user_id", userID)()
	}
	return nil
}

func (s *TicketService) requireSeverity(ctx context.Context, severityID int64) error {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if _, err := s.store.Severities.GetByID(cctx, severityID); err != nil {
		return storeErr(err, func() error { return apperrors.NewUnknownSeverity(severityID) })
	}
	return nil
}
