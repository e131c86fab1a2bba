package server

import "sync"

// PlayerCommand is one control instruction for the browser-side
// embedded player.
type PlayerCommand struct {
	Action  string `json:"action"` // load, play, pause, destroy
	VideoID string `json:"videoId,omitempty"`
}

// RemotePlayer implements the player capability for a player that
// lives in the browser: control calls queue commands which the client
// drains over HTTP, and the client reports lifecycle events back
// through the player event endpoint.
type RemotePlayer struct {
	mu    sync.Mutex
	queue []PlayerCommand
}

func NewRemotePlayer() *RemotePlayer {
	return &RemotePlayer{}
}

func (p *RemotePlayer) Load(videoID string) error {
	p.push(PlayerCommand{Action: "load", VideoID: videoID})
	return nil
}

func (p *RemotePlayer) Play() error {
	p.push(PlayerCommand{Action: "play"})
	return nil
}

func (p *RemotePlayer) Pause() error {
	p.push(PlayerCommand{Action: "pause"})
	return nil
}

func (p *RemotePlayer) Destroy() error {
	p.push(PlayerCommand{Action: "destroy"})
	return nil
}

func (p *RemotePlayer) push(cmd PlayerCommand) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, cmd)
}

// Drain returns and clears the queued commands in issue order.
func (p *RemotePlayer) Drain() []PlayerCommand {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.queue
	p.queue = nil
	if out == nil {
		out = []PlayerCommand{}
	}
	return out
}
