// Package reminder arms one-shot reminder notifications, deferring fires
// that would land inside the user's sleep window.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"caltrack/internal/model"
)

// Scheduler registers reminder notifications with a NotificationSink. Each
// fire is a one-shot; the surrounding application re-arms on its next
// foreground, edit, or enable event. The scheduler never keeps a loop of
// its own.
type Scheduler struct {
	sink NotificationSink
	gate PermissionGate
	log  zerolog.Logger
	now  func() time.Time

	mu    sync.Mutex
	armed map[string]Handle
}

func NewScheduler(sink NotificationSink, gate PermissionGate, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		sink:  sink,
		gate:  gate,
		log:   log,
		now:   time.Now,
		armed: make(map[string]Handle),
	}
}

// WithClock overrides the scheduler's clock.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// ScheduleRepeating validates the reminder, cancels any timer already armed
// for its id, and registers the next fire. It returns an empty handle and
// nil error when the reminder is disabled or notification permission is not
// granted: both are silent skips, not failures.
func (s *Scheduler) ScheduleRepeating(ctx context.Context, rem model.Reminder, respectSleep bool, win *model.SleepWindow) (Handle, error) {
	if strings.TrimSpace(rem.Label) == "" {
		return "", &model.ValidationError{Field: "label", Reason: "must not be empty"}
	}
	if rem.Frequency < 1 {
		return "", &model.ValidationError{Field: "frequency", Reason: "must be at least 1 minute"}
	}

	granted, err := s.gate.Request(ctx)
	if err != nil {
		return "", fmt.Errorf("check notification permission: %w", err)
	}
	if !granted {
		s.log.Debug().Str("reminder_id", rem.ID).Msg("notification permission not granted, skipping")
		return "", nil
	}

	// Cancel-then-schedule: editing a reminder must never leave two live
	// timers for one id.
	if err := s.Cancel(ctx, rem.ID); err != nil {
		return "", err
	}

	if !rem.Enabled {
		s.log.Debug().Str("reminder_id", rem.ID).Msg("reminder disabled, not scheduling")
		return "", nil
	}

	delay := CalculateNextTrigger(s.now(), rem.Frequency, respectSleep, win)
	handle, err := s.sink.Schedule(ctx, delay, Notification{
		ReminderID: rem.ID,
		Title:      "Reminder",
		Body:       fmt.Sprintf("It's time for: %s", rem.Label),
	})
	if err != nil {
		return "", fmt.Errorf("schedule reminder %s: %w", rem.ID, err)
	}

	s.mu.Lock()
	s.armed[rem.ID] = handle
	s.mu.Unlock()

	s.log.Info().
		Str("reminder_id", rem.ID).
		Str("label", rem.Label).
		Dur("delay", delay).
		Msg("reminder scheduled")
	return handle, nil
}

// Cancel drops the pending notification for a reminder id, if any.
func (s *Scheduler) Cancel(ctx context.Context, reminderID string) error {
	s.mu.Lock()
	handle, ok := s.armed[reminderID]
	if ok {
		delete(s.armed, reminderID)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}
	if err := s.sink.Cancel(ctx, handle); err != nil {
		return fmt.Errorf("cancel reminder %s: %w", reminderID, err)
	}
	return nil
}

// CancelAll drops every pending notification.
func (s *Scheduler) CancelAll(ctx context.Context) error {
	s.mu.Lock()
	handles := make(map[string]Handle, len(s.armed))
	for id, h := range s.armed {
		handles[id] = h
	}
	s.armed = make(map[string]Handle)
	s.mu.Unlock()

	var firstErr error
	for id, h := range handles {
		if err := s.sink.Cancel(ctx, h); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("cancel reminder %s: %w", id, err)
		}
	}
	return firstErr
}

// RescheduleAll re-arms every enabled reminder. A failure on one reminder is
// logged and does not block the rest; the count of armed reminders is
// returned.
func (s *Scheduler) RescheduleAll(ctx context.Context, reminders []model.Reminder, respectSleep bool, win *model.SleepWindow) int {
	scheduled := 0
	for _, rem := range reminders {
		if !rem.Enabled {
			continue
		}
		handle, err := s.ScheduleRepeating(ctx, rem, respectSleep, win)
		if err != nil {
			s.log.Warn().Err(err).Str("reminder_id", rem.ID).Msg("failed to reschedule reminder")
			continue
		}
		if handle != "" {
			scheduled++
		}
	}
	return scheduled
}

// Armed reports whether a reminder currently has a pending notification.
func (s *Scheduler) Armed(reminderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.armed[reminderID]
	return ok
}
