// Package reminder nudges the user when they have not logged a
// workout in a while.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/sweatlog/internal/dates"
	"github.com/claude/sweatlog/internal/kv"
	"github.com/claude/sweatlog/internal/store"
)

const lastReminderKey = "last_reminder_at"

const (
	// staleAfterDays: a reminder becomes due once the newest log is at
	// least this many calendar days old.
	staleAfterDays = 2
	// throttle: minimum gap between two fired reminders.
	throttle = 20 * time.Hour
	// checkInterval between scheduler ticks.
	checkInterval = time.Hour
)

const (
	notifyTitle = "Don't forget your workout!"
	notifyBody  = "It's been a little while. Let's get moving today!"
)

// Scheduler periodically inspects the log book and fires a
// notification when the user has gone quiet. It only reads the log
// collection and writes a single last-notified timestamp, so it never
// contends with session logic.
type Scheduler struct {
	logs     *store.LogBook
	state    kv.Store
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

// New creates a scheduler. A nil notifier disables notifications
// without disabling the bookkeeping.
func New(logs *store.LogBook, state kv.Store, notifier Notifier, log *slog.Logger) *Scheduler {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Scheduler{
		logs:     logs,
		state:    state,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Run checks immediately and then once per hour until ctx is
// cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.Check()

	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check()
		}
	}
}

// Check fires a reminder if one is due. It is also called directly
// after a log is appended so the "days since" bookkeeping stays fresh.
func (s *Scheduler) Check() {
	latest, ok := s.logs.Latest()
	if !ok {
		// Nothing logged yet: never nag a brand-new user.
		return
	}

	now := s.now()
	lastLogged, err := dates.ParseISO(latest.LoggedDate)
	if err != nil {
		s.log.Warn("reminder: unparseable log date", "date", latest.LoggedDate, "error", err)
		return
	}

	if dates.DaysBetween(now, lastLogged) < staleAfterDays {
		return
	}

	lastFired, err := s.lastFired()
	if err != nil {
		s.log.Warn("reminder: reading last-fired timestamp", "error", err)
		return
	}
	if !lastFired.IsZero() && now.Sub(lastFired) <= throttle {
		return
	}

	if err := s.notifier.Notify(notifyTitle, notifyBody); err != nil {
		s.log.Warn("reminder: notification failed", "error", err)
		return
	}
	if err := s.markFired(now); err != nil {
		s.log.Warn("reminder: saving last-fired timestamp", "error", err)
	}
	s.log.Info("reminder fired", "last_logged", latest.LoggedDate)
}

func (s *Scheduler) lastFired() (time.Time, error) {
	data, err := s.state.Get(lastReminderKey)
	if errors.Is(err, kv.ErrNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, string(data))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored timestamp: %w", err)
	}
	return t, nil
}

func (s *Scheduler) markFired(t time.Time) error {
	return s.state.Put(lastReminderKey, []byte(t.Format(time.RFC3339)))
}
