// Package watch drives one video-viewing session: it wraps the player
// capability, accumulates watched seconds while playback is active,
// and produces at most one logging decision per session.
package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/claude/sweatlog/internal/models"
)

// State is the explicit session state. A single value replaces the
// scattered is-playing / show-prompt / last-player-state flags so that
// impossible combinations cannot be represented.
type State int

const (
	// StateUninitialized: no session is open.
	StateUninitialized State = iota
	// StateLoading: a video was selected but the player has not
	// confirmed ready. A session stuck here is a reported condition,
	// not an error.
	StateLoading
	// StateReady: player reported ready; playback has been requested.
	StateReady
	// StatePlaying: playback active, accumulator running.
	StatePlaying
	// StatePaused: playback stopped short of the end; accumulated time
	// is retained.
	StatePaused
	// StatePromptPending: the session is over (ended naturally or the
	// user asked to close with time accrued) and awaits the log/discard
	// decision. Teardown is deferred until the decision resolves.
	StatePromptPending
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StatePromptPending:
		return "prompt_pending"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrNoPrompt is returned by Confirm/Decline when no decision is
// outstanding.
var ErrNoPrompt = errors.New("watch: no log prompt pending")

// Result is the single handoff a confirmed session produces.
type Result struct {
	VideoID         string
	VideoURL        string
	Title           string
	ThumbnailURL    string
	DurationMinutes int
	WatchedSeconds  int
}

// CollectFunc receives the session result exactly once, on confirm.
type CollectFunc func(Result)

// Tracker is the watch-session state machine. All transitions happen
// under one mutex; the accumulator is a one-second tick goroutine that
// is cancelled on every transition out of StatePlaying and on
// teardown.
type Tracker struct {
	mu       sync.Mutex
	player   Player
	collect  CollectFunc
	log      *slog.Logger
	state    State
	video    models.PlaylistItem
	watched  int
	stopTick chan struct{}
}

// NewTracker wires a tracker to a player capability and a result
// collector.
func NewTracker(player Player, collect CollectFunc, log *slog.Logger) *Tracker {
	return &Tracker{
		player:  player,
		collect: collect,
		log:     log,
	}
}

// Open starts a session for the given playlist item. An open session
// is superseded silently: its accumulated time is discarded with no
// log and the new session starts at zero. A player load failure leaves
// the session in StateLoading as a reported condition; the caller may
// re-request open.
func (t *Tracker) Open(item models.PlaylistItem) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateUninitialized {
		t.log.Info("superseding open session", "video", t.video.VideoID, "watched_sec", t.watched)
		t.stopTickLocked()
	}

	t.video = item
	t.watched = 0
	t.state = StateLoading

	if err := t.player.Load(item.VideoID); err != nil {
		return fmt.Errorf("player not ready: %w", err)
	}
	return nil
}

// HandleReady is the player's ready callback. Playback is requested
// immediately (auto-play on open).
func (t *Tracker) HandleReady() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateLoading {
		return
	}
	t.state = StateReady
	if err := t.player.Play(); err != nil {
		t.log.Warn("play request failed", "video", t.video.VideoID, "error", err)
	}
}

// HandleEvent is the player's state-change callback.
func (t *Tracker) HandleEvent(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Terminal for the session: once a decision is pending (or no
	// session exists) late player callbacks are ignored.
	if t.state == StateUninitialized || t.state == StatePromptPending {
		return
	}

	switch ev {
	case EventPlaying:
		if t.state == StatePlaying {
			return
		}
		t.state = StatePlaying
		t.startTickLocked()
	case EventEnded:
		t.stopTickLocked()
		t.state = StatePromptPending
	default:
		// Pause, buffering and every other non-playing state: freeze
		// the accumulator, keep the session open.
		t.stopTickLocked()
		if t.state == StatePlaying {
			t.state = StatePaused
		}
	}
}

// RequestClose handles a user close request. With zero accumulated
// time the session is discarded immediately and Close reports false.
// With time accrued the actual close is deferred: playback pauses and
// the log prompt becomes pending, reported as true. A close while the
// prompt is already pending leaves the decision outstanding.
func (t *Tracker) RequestClose() (promptPending bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case StateUninitialized:
		return false
	case StatePromptPending:
		return true
	}

	if t.watched == 0 {
		t.teardownLocked()
		return false
	}

	t.stopTickLocked()
	if err := t.player.Pause(); err != nil {
		t.log.Warn("pause on close failed", "error", err)
	}
	t.state = StatePromptPending
	return true
}

// Confirm resolves a pending prompt by logging the session. The
// result is handed to the collector exactly once and the session is
// torn down.
func (t *Tracker) Confirm() (Result, error) {
	t.mu.Lock()
	if t.state != StatePromptPending {
		t.mu.Unlock()
		return Result{}, ErrNoPrompt
	}

	res := Result{
		VideoID:         t.video.VideoID,
		VideoURL:        t.video.VideoURL,
		Title:           t.video.Title,
		ThumbnailURL:    t.video.ThumbnailURL,
		DurationMinutes: durationMinutes(t.watched),
		WatchedSeconds:  t.watched,
	}
	t.teardownLocked()
	t.mu.Unlock()

	// The collector appends to the log book and may call back into
	// other components; invoke it outside the lock.
	t.collect(res)
	return res, nil
}

// Decline resolves a pending prompt by discarding the session.
func (t *Tracker) Decline() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StatePromptPending {
		return ErrNoPrompt
	}
	t.teardownLocked()
	return nil
}

// Snapshot is the session state as exposed to the UI.
type Snapshot struct {
	State          string `json:"state"`
	VideoID        string `json:"videoId,omitempty"`
	Title          string `json:"title,omitempty"`
	WatchedSeconds int    `json:"watchedSeconds"`
	Watched        string `json:"watched,omitempty"`
}

// Snapshot returns the current session state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		State:          t.state.String(),
		WatchedSeconds: t.watched,
	}
	if t.state != StateUninitialized {
		snap.VideoID = t.video.VideoID
		snap.Title = t.video.Title
		snap.Watched = WatchedPhrase(t.watched)
	}
	return snap
}

// teardownLocked resolves the session: the accumulator is cancelled,
// the player destroyed, and the tracker reset for the next session.
func (t *Tracker) teardownLocked() {
	t.stopTickLocked()
	if err := t.player.Destroy(); err != nil {
		t.log.Warn("player destroy failed", "error", err)
	}
	t.state = StateUninitialized
	t.video = models.PlaylistItem{}
	t.watched = 0
}

func (t *Tracker) startTickLocked() {
	t.stopTickLocked()
	stop := make(chan struct{})
	t.stopTick = stop

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.mu.Lock()
				// The ownership check makes a late tick from a cancelled
				// goroutine harmless.
				if t.state == StatePlaying && t.stopTick == stop {
					t.watched++
				}
				t.mu.Unlock()
			}
		}
	}()
}

func (t *Tracker) stopTickLocked() {
	if t.stopTick != nil {
		close(t.stopTick)
		t.stopTick = nil
	}
}

// durationMinutes converts accumulated seconds to logged minutes:
// round to the nearest minute, never below one.
func durationMinutes(seconds int) int {
	m := int(math.Round(float64(seconds) / 60))
	if m < 1 {
		return 1
	}
	return m
}

// WatchedPhrase renders a watched time the way the prompt shows it:
// "5 minutes and 30 seconds", "1 minute", "45 seconds".
func WatchedPhrase(seconds int) string {
	m, s := seconds/60, seconds%60
	switch {
	case m > 0 && s > 0:
		return fmt.Sprintf("%s and %s", plural(m, "minute"), plural(s, "second"))
	case m > 0:
		return plural(m, "minute")
	default:
		return plural(s, "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
