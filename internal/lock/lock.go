// Package lock serializes mutations of a single ticket.
package lock

import (
	"context"
	"errors"
)

// ErrTimeout is returned when a lock could not be taken before the context ended.
var ErrTimeout = errors.New("ticket lock not acquired")

// TicketLocker grants exclusive access to one ticket at a time. The returned
// unlock func must be called exactly once.
type TicketLocker interface {
	Lock(ctx context.Context, ticketID int64) (func(), error)
}
