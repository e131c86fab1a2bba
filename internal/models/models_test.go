package models

import (
	"testing"
	"time"
)

func TestExerciseLogValidate(t *testing.T) {
	valid := ExerciseLog{
		ID:              "x",
		VideoID:         "dQw4w9WgXcQ",
		DurationMinutes: 30,
		LoggedDate:      "2026-08-28",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid log rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*ExerciseLog)
	}{
		{"empty video id", func(l *ExerciseLog) { l.VideoID = "" }},
		{"zero duration", func(l *ExerciseLog) { l.DurationMinutes = 0 }},
		{"negative duration", func(l *ExerciseLog) { l.DurationMinutes = -5 }},
		{"bad date", func(l *ExerciseLog) { l.LoggedDate = "28/08/2026" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			if err := l.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewExerciseLogPlaceholderTitle(t *testing.T) {
	l := NewExerciseLog("https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", "thumb", "", 10, "2026-08-28")
	if l.Title != "Video from 2026-08-28" {
		t.Errorf("placeholder title = %q", l.Title)
	}
	if l.ID == "" {
		t.Error("ID not assigned")
	}

	titled := NewExerciseLog("u", "dQw4w9WgXcQ", "t", "Leg Day", 10, "2026-08-28")
	if titled.Title != "Leg Day" {
		t.Errorf("explicit title overwritten: %q", titled.Title)
	}
	if titled.ID == l.ID {
		t.Error("IDs should be unique per record")
	}
}

func TestNewPlaylistItem(t *testing.T) {
	added := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	p := NewPlaylistItem("https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", "Yoga Flow", "thumb", added)
	if err := p.Validate(); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
	if !p.AddedDate.Equal(added) {
		t.Errorf("addedDate = %v, want %v", p.AddedDate, added)
	}

	p.VideoID = ""
	if err := p.Validate(); err == nil {
		t.Error("expected validation error for empty video ID")
	}
}
