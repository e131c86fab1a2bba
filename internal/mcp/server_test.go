package mcp

import (
	"testing"

	"github.com/claude/sweatlog/internal/models"
)

// TestDateRange verifies validation of the optional ISO date bounds.
func TestDateRange(t *testing.T) {
	start, end, err := dateRange("", "")
	if err != nil || start != "" || end != "" {
		t.Errorf("empty bounds: start=%q end=%q err=%v", start, end, err)
	}

	start, end, err = dateRange("2026-08-01", "2026-08-31")
	if err != nil || start != "2026-08-01" || end != "2026-08-31" {
		t.Errorf("explicit bounds: start=%q end=%q err=%v", start, end, err)
	}

	if _, _, err := dateRange("yesterday", ""); err == nil {
		t.Error("expected error for invalid start date")
	}
	if _, _, err := dateRange("", "08/31/2026"); err == nil {
		t.Error("expected error for invalid end date")
	}
}

func TestFilterLogs(t *testing.T) {
	logs := []models.ExerciseLog{
		{ID: "a", LoggedDate: "2026-08-25"},
		{ID: "b", LoggedDate: "2026-08-20"},
		{ID: "c", LoggedDate: "2026-07-01"},
	}

	got := filterLogs(logs, "2026-08-01", "")
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("start-bounded filter = %+v", got)
	}

	got = filterLogs(logs, "", "2026-07-31")
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("end-bounded filter = %+v", got)
	}

	got = filterLogs(logs, "2026-08-20", "2026-08-20")
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("single-day filter = %+v", got)
	}

	if got = filterLogs(logs, "", ""); len(got) != 3 {
		t.Errorf("unbounded filter kept %d of 3", len(got))
	}
}
