package models

import (
	"fmt"
	"time"

	"github.com/claude/sweatlog/internal/dates"
	"github.com/google/uuid"
)

// ExerciseLog is one completed workout session tied to a video and a
// calendar date. Records are immutable after creation.
type ExerciseLog struct {
	ID              string `json:"id"`
	VideoURL        string `json:"videoUrl"`
	VideoID         string `json:"videoId"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	DurationMinutes int    `json:"durationMinutes"`
	LoggedDate      string `json:"loggedDate"` // YYYY-MM-DD
	Title           string `json:"title,omitempty"`
}

// NewExerciseLog assembles a log record with a fresh ID. An empty
// title gets the "Video from <date>" placeholder.
func NewExerciseLog(videoURL, videoID, thumbnailURL, title string, durationMinutes int, loggedDate string) ExerciseLog {
	if title == "" {
		title = "Video from " + loggedDate
	}
	return ExerciseLog{
		ID:              uuid.NewString(),
		VideoURL:        videoURL,
		VideoID:         videoID,
		ThumbnailURL:    thumbnailURL,
		DurationMinutes: durationMinutes,
		LoggedDate:      loggedDate,
		Title:           title,
	}
}

// Validate checks the record invariants.
func (l ExerciseLog) Validate() error {
	if l.VideoID == "" {
		return fmt.Errorf("exercise log: video ID is required")
	}
	if l.DurationMinutes < 1 {
		return fmt.Errorf("exercise log: duration must be at least 1 minute, got %d", l.DurationMinutes)
	}
	if !dates.ValidISO(l.LoggedDate) {
		return fmt.Errorf("exercise log: invalid date %q", l.LoggedDate)
	}
	return nil
}

// LoggedTime parses the record's calendar date.
func (l ExerciseLog) LoggedTime() time.Time {
	t, _ := dates.ParseISO(l.LoggedDate)
	return t
}

// PlaylistItem is a saved reference to a favorite workout video,
// independent of any logged session.
type PlaylistItem struct {
	ID           string    `json:"id"`
	VideoURL     string    `json:"videoUrl"`
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	AddedDate    time.Time `json:"addedDate"`
}

// NewPlaylistItem assembles a playlist entry with a fresh ID.
func NewPlaylistItem(videoURL, videoID, title, thumbnailURL string, added time.Time) PlaylistItem {
	return PlaylistItem{
		ID:           uuid.NewString(),
		VideoURL:     videoURL,
		VideoID:      videoID,
		Title:        title,
		ThumbnailURL: thumbnailURL,
		AddedDate:    added,
	}
}

// Validate checks the record invariants.
func (p PlaylistItem) Validate() error {
	if p.VideoID == "" {
		return fmt.Errorf("playlist item: video ID is required")
	}
	return nil
}
