package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/lock"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const defaultStoreTimeout = 5 * time.Second

// storeCtx bounds a single record store call.
func storeCtx(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr maps repository failures onto the domain taxonomy. notFound builds
// the error reported for a missing record.
func storeErr(err error, notFound func() error) error {
	if err == nil {
		return nil
	}
	var de *apperrors.DomainError
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return notFound()
	case errors.Is(err, repository.ErrVersionConflict):
		return apperrors.NewConflict("ticket was modified concurrently", nil)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict("record already exists", nil)
	default:
		return apperrors.NewStoreUnavailable(err)
	}
}

func ticketNotFound(id int64) func() error {
	return func() error { return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id}) }
}

func dangling(resource, key string, id int64) func() error {
	return func() error { return apperrors.NewDanglingReference(resource, map[string]any{key: id}) }
}

// lockTicket takes the per-ticket lock, giving up after timeout.
func lockTicket(ctx context.Context, locker lock.TicketLocker, ticketID int64, timeout time.Duration) (func(), error) {
	if locker == nil {
		return func() {}, nil
	}
	lctx, cancel := storeCtx(ctx, timeout)
	defer cancel()
	unlock, err := locker.Lock(lctx, ticketID)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return unlock, nil
}

// publish hands the event to subscribers. The mutation that raised it is
// already durable, so subscriber failures are only logged.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil && logger != nil {
		logger.Warn("event subscriber failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func stringPreview(body string, max int) string {
	r := []rune(body)
	if len(r) <= max {
		return body
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}
