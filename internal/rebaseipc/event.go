package rebaseipc

import (
	"fmt"
	"os"
	"time"
)

// event emulates a named, one-shot OS event (Windows CreateEvent / a
// POSIX named semaphore signaled exactly once) with a marker file: absent
// == not signaled, present == signaled. A plain "does this path exist"
// poll is the one primitive every platform's filesystem gives both
// processes for free, and the handshake here only ever needs a single
// edge (never-signaled -> signaled) per event, never a reusable one.
type event struct {
	path string
}

func newEvent(id, name string) *event {
	return &event{path: shmPath(id) + "." + name + ".evt"}
}

// signal marks the event signaled; idempotent.
func (e *event) signal() error {
	f, err := os.OpenFile(e.path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("rebaseipc: signal event %s: %w", e.path, err)
	}
	return f.Close()
}

// wait polls for the event to become signaled, failing if timeout
// elapses first. timeout <= 0 means wait indefinitely.
func (e *event) wait(timeout time.Duration) error {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		if _, err := os.Stat(e.path); err == nil {
			return nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return fmt.Errorf("rebaseipc: timed out waiting for event %s", e.path)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// arm puts the event in the "not signaled" state by removing any marker
// file left over from an earlier run; it matches the protocol
// description's "parent creates... both events" step.
func (e *event) arm() error {
	os.Remove(e.path)
	return nil
}

func (e *event) cleanup() {
	os.Remove(e.path)
}
