package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notification is the payload handed to the platform notifier.
type Notification struct {
	ReminderID string
	Title      string
	Body       string
}

// Handle identifies one armed notification for later cancellation.
type Handle string

// NotificationSink abstracts the platform notification service: it accepts
// "fire in delay with payload" and can cancel a pending fire. Implementations
// are fire-and-forget from the scheduler's perspective.
type NotificationSink interface {
	Schedule(ctx context.Context, delay time.Duration, n Notification) (Handle, error)
	Cancel(ctx context.Context, h Handle) error
}

// TimerSink arms in-process one-shot timers and invokes deliver when they
// fire. Cancelling an unknown or already-fired handle is a no-op.
type TimerSink struct {
	deliver func(Notification)

	mu     sync.Mutex
	timers map[Handle]*time.Timer
}

// NewTimerSink wraps a delivery callback. deliver runs on the timer
// goroutine after the handle is released.
func NewTimerSink(deliver func(Notification)) *TimerSink {
	return &TimerSink{
		deliver: deliver,
		timers:  make(map[Handle]*time.Timer),
	}
}

func (s *TimerSink) Schedule(_ context.Context, delay time.Duration, n Notification) (Handle, error) {
	h := Handle(uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[h] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, h)
		s.mu.Unlock()
		if s.deliver != nil {
			s.deliver(n)
		}
	})
	return h, nil
}

func (s *TimerSink) Cancel(_ context.Context, h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[h]; ok {
		timer.Stop()
		delete(s.timers, h)
	}
	return nil
}

// Pending reports how many timers are currently armed.
func (s *TimerSink) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
