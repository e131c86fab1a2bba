package reminder

import (
	"fmt"
	"os/exec"
)

// Notifier fires a local notification. Missing notification support is
// represented by NopNotifier: a no-op, never an error.
type Notifier interface {
	Notify(title, body string) error
}

// NopNotifier silently drops notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(title, body string) error { return nil }

// CommandNotifier shells out to a desktop notification command
// (notify-send on Linux, osascript wrappers on macOS, etc.). The
// command receives the title and body as its last two arguments.
type CommandNotifier struct {
	Command string
}

func (n CommandNotifier) Notify(title, body string) error {
	if n.Command == "" {
		return nil
	}
	if err := exec.Command(n.Command, title, body).Run(); err != nil {
		return fmt.Errorf("notify command %s: %w", n.Command, err)
	}
	return nil
}
