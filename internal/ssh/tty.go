// Package ssh adapts a gliderlabs SSH session into a terminal tcell can
// drive, so the level browser works over remote connections.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty on top of one SSH session. Reads come from the
// client's keyboard, writes go back down the channel, and window sizes
// track the client's resize events.
type SessionTty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	resize  func()
}

// NewSessionTty wraps session as a tcell Tty. pty carries the initial window
// size; winCh delivers resizes for the rest of the session.
func NewSessionTty(session gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{session: session, window: pty.Window, winCh: winCh}
}

// Read pulls raw input bytes from the SSH channel.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write pushes rendered output to the SSH channel.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the underlying session.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start is a no-op; the channel is already open when the SessionTty is built.
func (t *SessionTty) Start() error { return nil }

// Stop is a no-op; the server handler owns the channel lifetime.
func (t *SessionTty) Stop() error { return nil }

// Drain is a no-op; SSH writes are not buffered on our side.
func (t *SessionTty) Drain() error { return nil }

// WindowSize reports the client's current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb to fire on window changes and starts draining
// the resize channel for the life of the session.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.resize = cb
	t.mu.Unlock()

	go func() {
		for win := range t.winCh {
			t.mu.Lock()
			t.window = win
			cb := t.resize
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}()
}
