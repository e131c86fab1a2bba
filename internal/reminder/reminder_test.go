package reminder

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/sweatlog/internal/dates"
	"github.com/claude/sweatlog/internal/kv"
	"github.com/claude/sweatlog/internal/models"
	"github.com/claude/sweatlog/internal/store"
)

type countingNotifier struct {
	fired int
}

func (n *countingNotifier) Notify(title, body string) error {
	n.fired++
	return nil
}

func testScheduler(t *testing.T, lastLogDaysAgo int, now time.Time) (*Scheduler, *countingNotifier, kv.Store) {
	t.Helper()

	mem := kv.NewMemoryStore()
	logs, err := store.OpenLogBook(mem)
	if err != nil {
		t.Fatal(err)
	}
	if lastLogDaysAgo >= 0 {
		date := dates.FormatISO(now.AddDate(0, 0, -lastLogDaysAgo))
		l := models.NewExerciseLog("https://youtu.be/aaaaaaaaaaa", "aaaaaaaaaaa", "thumb", "", 30, date)
		if err := logs.Append(l); err != nil {
			t.Fatal(err)
		}
	}

	n := &countingNotifier{}
	s := New(logs, mem, n, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return now }
	return s, n, mem
}

// TestFiresAfterTwoQuietDays: a log dated 3 days ago and no prior
// reminder fires exactly once; a second tick inside the 20h throttle
// stays quiet.
func TestFiresAfterTwoQuietDays(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	s, n, _ := testScheduler(t, 3, now)

	s.Check()
	if n.fired != 1 {
		t.Fatalf("fired = %d, want 1", n.fired)
	}

	// Second tick a few hours later: throttled.
	s.now = func() time.Time { return now.Add(5 * time.Hour) }
	s.Check()
	if n.fired != 1 {
		t.Errorf("fired = %d after throttled tick, want 1", n.fired)
	}

	// Past the throttle window it fires again.
	s.now = func() time.Time { return now.Add(21 * time.Hour) }
	s.Check()
	if n.fired != 2 {
		t.Errorf("fired = %d after throttle expiry, want 2", n.fired)
	}
}

// TestFiresOnLocalZoneClock: the staleness rule counts calendar days
// in the server's zone. A log exactly two calendar days old must fire
// even though the stored date parses as UTC midnight.
func TestFiresOnLocalZoneClock(t *testing.T) {
	zones := []*time.Location{
		time.FixedZone("UTC+5", 5*3600),
		time.FixedZone("UTC-8", -8*3600),
	}
	for _, zone := range zones {
		now := time.Date(2026, 8, 28, 9, 0, 0, 0, zone)
		s, n, _ := testScheduler(t, 2, now)
		s.Check()
		if n.fired != 1 {
			t.Errorf("%s: fired = %d for a 2-day-old log, want 1", zone, n.fired)
		}
	}
}

func TestQuietWhenRecentlyLogged(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	for _, daysAgo := range []int{0, 1} {
		s, n, _ := testScheduler(t, daysAgo, now)
		s.Check()
		if n.fired != 0 {
			t.Errorf("log %d days old: fired = %d, want 0", daysAgo, n.fired)
		}
	}
}

// TestQuietWithEmptyLogBook: never nag before the first log exists.
func TestQuietWithEmptyLogBook(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	s, n, _ := testScheduler(t, -1, now)
	s.Check()
	if n.fired != 0 {
		t.Errorf("fired = %d with no logs, want 0", n.fired)
	}
}

// TestThrottlePersists: the last-fired timestamp is stored, so a
// fresh scheduler over the same store honors the throttle.
func TestThrottlePersists(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	s, n, mem := testScheduler(t, 3, now)
	s.Check()
	if n.fired != 1 {
		t.Fatalf("fired = %d, want 1", n.fired)
	}

	logs, _ := store.OpenLogBook(mem)
	n2 := &countingNotifier{}
	s2 := New(logs, mem, n2, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s2.now = func() time.Time { return now.Add(2 * time.Hour) }
	s2.Check()
	if n2.fired != 0 {
		t.Errorf("restarted scheduler fired = %d inside throttle window, want 0", n2.fired)
	}
}
