package lock

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLocker is an in-process TicketLocker backed by one-slot channels.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[int64]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewMemoryLocker returns an empty locker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[int64]*slot)}
}

func (l *MemoryLocker) Lock(ctx context.Context, ticketID int64) (func(), error) {
	s := l.acquireSlot(ticketID)
	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(ticketID)
		return nil, fmt.Errorf("%w: ticket %d: %w", ErrTimeout, ticketID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-s.ch
			l.releaseSlot(ticketID)
		})
	}, nil
}

func (l *MemoryLocker) acquireSlot(ticketID int64) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[ticketID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[ticketID] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) releaseSlot(ticketID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[ticketID]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, ticketID)
	}
}
