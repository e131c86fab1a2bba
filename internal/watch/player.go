package watch

// Player is the embeddable video player as an opaque capability. The
// tracker drives it through these controls and learns about playback
// through HandleReady/HandleEvent; it has no dependency on how the
// player is obtained or wired.
type Player interface {
	// Load points the player at a video. Loading a second video into a
	// live player replaces the current one.
	Load(videoID string) error
	Play() error
	Pause() error
	// Destroy tears the player instance down. Called on every session
	// resolution.
	Destroy() error
}

// Event is a player state-change notification. The tracker only
// distinguishes playing, not-playing and ended; buffering and other
// intermediate player states map to EventPaused.
type Event string

const (
	EventPlaying Event = "playing"
	EventPaused  Event = "paused"
	EventEnded   Event = "ended"
)
