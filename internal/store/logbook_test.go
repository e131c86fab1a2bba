package store

import (
	"testing"
	"time"

	"github.com/claude/sweatlog/internal/kv"
	"github.com/claude/sweatlog/internal/models"
)

func testLog(videoID, date string, minutes int) models.ExerciseLog {
	return models.NewExerciseLog("https://youtu.be/"+videoID, videoID, "thumb", "", minutes, date)
}

func TestLogBookAppendAndList(t *testing.T) {
	mem := kv.NewMemoryStore()
	book, err := OpenLogBook(mem)
	if err != nil {
		t.Fatalf("OpenLogBook: %v", err)
	}

	// Insert out of date order; List must come back newest first.
	for _, l := range []models.ExerciseLog{
		testLog("aaaaaaaaaaa", "2026-08-10", 20),
		testLog("bbbbbbbbbbb", "2026-08-25", 45),
		testLog("ccccccccccc", "2026-08-01", 30),
	} {
		if err := book.Append(l); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	logs := book.List()
	if len(logs) != 3 {
		t.Fatalf("List returned %d logs, want 3", len(logs))
	}
	for i, want := range []string{"2026-08-25", "2026-08-10", "2026-08-01"} {
		if logs[i].LoggedDate != want {
			t.Errorf("logs[%d].LoggedDate = %s, want %s", i, logs[i].LoggedDate, want)
		}
	}

	latest, ok := book.Latest()
	if !ok || latest.LoggedDate != "2026-08-25" {
		t.Errorf("Latest = %+v ok=%v, want the 2026-08-25 log", latest, ok)
	}
}

func TestLogBookRejectsInvalid(t *testing.T) {
	book, _ := OpenLogBook(kv.NewMemoryStore())

	bad := testLog("aaaaaaaaaaa", "2026-08-10", 20)
	bad.DurationMinutes = 0
	if err := book.Append(bad); err == nil {
		t.Fatal("expected validation error")
	}
	if book.Len() != 0 {
		t.Errorf("collection mutated on rejected append, len = %d", book.Len())
	}
}

func TestLogBookRemove(t *testing.T) {
	book, _ := OpenLogBook(kv.NewMemoryStore())
	l := testLog("aaaaaaaaaaa", "2026-08-10", 20)
	if err := book.Append(l); err != nil {
		t.Fatal(err)
	}

	removed, err := book.Remove(l.ID)
	if err != nil || !removed {
		t.Fatalf("Remove = %v, %v; want true, nil", removed, err)
	}
	if book.Len() != 0 {
		t.Errorf("len = %d after remove", book.Len())
	}

	// Absent ID is a no-op.
	removed, err = book.Remove("no-such-id")
	if err != nil || removed {
		t.Errorf("Remove(absent) = %v, %v; want false, nil", removed, err)
	}
}

// TestLogBookPersistence verifies load-on-init: a second LogBook over
// the same store sees the first one's writes.
func TestLogBookPersistence(t *testing.T) {
	mem := kv.NewMemoryStore()
	book, _ := OpenLogBook(mem)
	if err := book.Append(testLog("aaaaaaaaaaa", "2026-08-10", 20)); err != nil {
		t.Fatal(err)
	}

	reloaded, err := OpenLogBook(mem)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Errorf("reloaded len = %d, want 1", reloaded.Len())
	}
}

func TestLogBookForDate(t *testing.T) {
	book, _ := OpenLogBook(kv.NewMemoryStore())
	book.Append(testLog("aaaaaaaaaaa", "2026-08-10", 20))
	book.Append(testLog("bbbbbbbbbbb", "2026-08-10", 15))
	book.Append(testLog("ccccccccccc", "2026-08-11", 30))

	if got := book.ForDate("2026-08-10"); len(got) != 2 {
		t.Errorf("ForDate(2026-08-10) returned %d logs, want 2", len(got))
	}
	if got := book.ForDate("2026-01-01"); len(got) != 0 {
		t.Errorf("ForDate(empty day) returned %d logs, want 0", len(got))
	}
}

func TestLogBookMonthGroups(t *testing.T) {
	book, _ := OpenLogBook(kv.NewMemoryStore())
	book.Append(testLog("aaaaaaaaaaa", "2026-07-20", 20))
	book.Append(testLog("bbbbbbbbbbb", "2026-08-05", 15))
	book.Append(testLog("ccccccccccc", "2026-08-12", 30))

	groups := book.MonthGroups()
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Month != time.August || len(groups[0].Logs) != 2 {
		t.Errorf("first group = %s with %d logs, want August with 2", groups[0].Month, len(groups[0].Logs))
	}
	if groups[0].Logs[0].LoggedDate != "2026-08-12" {
		t.Errorf("logs within month not newest first: %s", groups[0].Logs[0].LoggedDate)
	}
	if groups[1].Month != time.July {
		t.Errorf("second group = %s, want July", groups[1].Month)
	}
	if groups[0].Label != "August 2026" {
		t.Errorf("label = %q, want August 2026", groups[0].Label)
	}
}
