// Package store holds the two persisted collections: the exercise-log
// book and the playlist. Each loads from its fixed key-value key at
// construction and writes back synchronously on every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/claude/sweatlog/internal/kv"
	"github.com/claude/sweatlog/internal/models"
)

const logsKey = "exercise_logs"

// ErrNotFound is returned when a record ID does not exist.
var ErrNotFound = errors.New("store: not found")

// LogBook is the persisted collection of exercise logs.
type LogBook struct {
	mu    sync.RWMutex
	store kv.Store
	logs  []models.ExerciseLog
}

// OpenLogBook loads the collection from the store. An absent key means
// an empty collection.
func OpenLogBook(store kv.Store) (*LogBook, error) {
	b := &LogBook{store: store}

	data, err := store.Get(logsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading exercise logs: %w", err)
	}
	if err := json.Unmarshal(data, &b.logs); err != nil {
		return nil, fmt.Errorf("decoding exercise logs: %w", err)
	}
	return b, nil
}

// Append validates and stores a new log record. The write is durable
// before Append returns.
func (b *LogBook) Append(log models.ExerciseLog) error {
	if err := log.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := append(append([]models.ExerciseLog(nil), b.logs...), log)
	if err := b.save(next); err != nil {
		return err
	}
	b.logs = next
	return nil
}

// Remove deletes a log by ID. Removing an absent ID is a no-op and
// reports false.
func (b *LogBook) Remove(id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]models.ExerciseLog, 0, len(b.logs))
	removed := false
	for _, l := range b.logs {
		if l.ID == id {
			removed = true
			continue
		}
		next = append(next, l)
	}
	if !removed {
		return false, nil
	}
	if err := b.save(next); err != nil {
		return false, err
	}
	b.logs = next
	return true, nil
}

// List returns a snapshot sorted by logged date, newest first.
func (b *LogBook) List() []models.ExerciseLog {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := append([]models.ExerciseLog(nil), b.logs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LoggedDate > out[j].LoggedDate
	})
	return out
}

// ForDate returns the logs attributed to one calendar date.
func (b *LogBook) ForDate(date string) []models.ExerciseLog {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []models.ExerciseLog
	for _, l := range b.logs {
		if l.LoggedDate == date {
			out = append(out, l)
		}
	}
	return out
}

// Latest returns the most recently dated log, if any.
func (b *LogBook) Latest() (models.ExerciseLog, bool) {
	logs := b.List()
	if len(logs) == 0 {
		return models.ExerciseLog{}, false
	}
	return logs[0], true
}

// Len returns the number of stored logs.
func (b *LogBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.logs)
}

// MonthGroup is one month's worth of logs for the list view.
type MonthGroup struct {
	Year  int                  `json:"year"`
	Month time.Month           `json:"month"`
	Label string               `json:"label"`
	Logs  []models.ExerciseLog `json:"logs"`
}

// MonthGroups buckets the logs by calendar month, newest month first,
// logs within a month newest first.
func (b *LogBook) MonthGroups() []MonthGroup {
	var groups []MonthGroup
	for _, l := range b.List() {
		d := l.LoggedTime()
		if n := len(groups); n > 0 && groups[n-1].Year == d.Year() && groups[n-1].Month == d.Month() {
			groups[n-1].Logs = append(groups[n-1].Logs, l)
			continue
		}
		groups = append(groups, MonthGroup{
			Year:  d.Year(),
			Month: d.Month(),
			Label: fmt.Sprintf("%s %d", d.Month(), d.Year()),
			Logs:  []models.ExerciseLog{l},
		})
	}
	return groups
}

func (b *LogBook) save(logs []models.ExerciseLog) error {
	data, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("encoding exercise logs: %w", err)
	}
	if err := b.store.Put(logsKey, data); err != nil {
		return fmt.Errorf("saving exercise logs: %w", err)
	}
	return nil
}
