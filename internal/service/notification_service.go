package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// Fixed notification templates.
const (
	TitleAdminResponse   = "New Admin Response"
	TitleTicketAssigned  = "New Ticket Assigned"
	TitleFeedbackRequest = "Share Your Feedback"
)

// NotificationService stores read-tracked notifications and turns domain
// events into them.
type NotificationService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        config.NotificationConfig
	timeout    time.Duration
}

// NotificationDependencies bundles collaborators.
type NotificationDependencies struct {
	Store        repository.Store
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Config       config.NotificationConfig
	StoreTimeout time.Duration
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
		cfg:        deps.Config,
		timeout:    deps.StoreTimeout,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventResponseAdded, n.handleResponseAdded)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	n.dispatcher.Subscribe(events.EventFeedbackRequested, n.handleFeedbackRequested)
}

// NotifyUser stores a notification for an existing user.
func (n *NotificationService) NotifyUser(ctx context.Context, userID int64, title, message string, ticketID *int64) (*domain.Notification, error) {
	if err := validateNotification(title, message); err != nil {
		return nil, err
	}
	cctx, cancel := storeCtx(ctx, n.timeout)
	defer cancel()

	user, err := n.store.Users.GetByID(cctx, userID)
	if err != nil {
		return nil, storeErr(err, unknownTarget(domain.SubjectTypeUser, userID))
	}
	if user.Deleted() {
		return nil, unknownTarget(domain.SubjectTypeUser, userID)()
	}
	return n.create(cctx, domain.UserTarget(userID), title, message, ticketID)
}

// NotifyAdministrator stores a notification for an existing administrator.
// Soft-deleted administrators still have an inbox.
func (n *NotificationService) NotifyAdministrator(ctx context.Context, adminID int64, title, message string) (*domain.Notification, error) {
	return n.notifyAdministrator(ctx, adminID, title, message, nil)
}

func (n *NotificationService) notifyAdministrator(ctx context.Context, adminID int64, title, message string, ticketID *int64) (*domain.Notification, error) {
	if err := validateNotification(title, message); err != nil {
		return nil, err
	}
	cctx, cancel := storeCtx(ctx, n.timeout)
	defer cancel()

	_, err := n.store.Admins.GetByID(cctx, adminID)
	if err != nil {
		return nil, storeErr(err, unknownTarget(domain.SubjectTypeAdmin, adminID))
	}
	return n.create(cctx, domain.AdminTarget(adminID), title, message, ticketID)
}

// MarkAllRead flips every unread notification of target. Calling it again
// changes nothing.
func (n *NotificationService) MarkAllRead(ctx context.Context, target domain.NotificationTarget) (int64, error) {
	if err := validateTarget(target); err != nil {
		return 0, err
	}
	cctx, cancel := storeCtx(ctx, n.timeout)
	defer cancel()
	changed, err := n.store.Notifications.MarkAllRead(cctx, target)
	if err != nil {
		return 0, storeErr(err, nil)
	}
	return changed, nil
}

// List returns every notification of target, newest first.
func (n *NotificationService) List(ctx context.Context, target domain.NotificationTarget) ([]domain.Notification, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}
	cctx, cancel := storeCtx(ctx, n.timeout)
	defer cancel()
	list, err := n.store.Notifications.ListByTarget(cctx, target)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	if list == nil {
		list = []domain.Notification{}
	}
	return list, nil
}

// UnreadCount counts target's unread notifications.
func (n *NotificationService) UnreadCount(ctx context.Context, target domain.NotificationTarget) (int64, error) {
	if err := validateTarget(target); err != nil {
		return 0, err
	}
	cctx, cancel := storeCtx(ctx, n.timeout)
	defer cancel()
	count, err := n.store.Notifications.CountUnread(cctx, target)
	if err != nil {
		return 0, storeErr(err, nil)
	}
	return count, nil
}

func (n *NotificationService) create(ctx context.Context, target domain.NotificationTarget, title, message string, ticketID *int64) (*domain.Notification, error) {
	notification := &domain.Notification{
		Target:   target,
		Title:    strings.TrimSpace(title),
		Message:  strings.TrimSpace(message),
		TicketID: ticketID,
	}
	if err := n.store.Notifications.Create(ctx, notification); err != nil {
		return nil, storeErr(err, nil)
	}
	n.metrics.RecordNotification(string(target.Type))
	return notification, nil
}

func (n *NotificationService) handleResponseAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ResponseAddedPayload)
	if !ok || payload.AuthorRole != domain.AuthorRoleAdmin {
		return nil
	}
	ticketID := event.TicketID
	_, err := n.NotifyUser(ctx, payload.OwnerID, TitleAdminResponse,
		fmt.Sprintf("Your ticket #%d has received a new response.", ticketID), &ticketID)
	return err
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	ticketID := event.TicketID
	_, err := n.notifyAdministrator(ctx, payload.AdminID, TitleTicketAssigned,
		fmt.Sprintf("Ticket #%d has been assigned to you.", ticketID), &ticketID)
	return err
}

func (n *NotificationService) handleFeedbackRequested(ctx context.Context, event events.Event) error {
	if !n.cfg.FeedbackPrompt {
		return nil
	}
	payload, ok := event.Payload.(events.FeedbackRequestedPayload)
	if !ok {
		return nil
	}
	ticketID := event.TicketID
	_, err := n.NotifyUser(ctx, payload.OwnerID, TitleFeedbackRequest,
		fmt.Sprintf("Your ticket #%d was closed. Tell us how it was handled.", ticketID), &ticketID)
	return err
}

func validateNotification(title, message string) error {
	details := map[string]any{}
	if strings.TrimSpace(title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(message) == "" {
		details["message"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid notification", details)
	}
	return nil
}

func validateTarget(target domain.NotificationTarget) error {
	if target.Type != domain.SubjectTypeUser && target.Type != domain.SubjectTypeAdmin {
		return apperrors.NewValidationError("unknown notification target type", map[string]any{"target_type": target.Type})
	}
	return nil
}

func unknownTarget(targetType domain.SubjectType, id int64) func() error {
	return func() error { return apperrors.NewUnknownTarget(string(targetType), id) }
}
