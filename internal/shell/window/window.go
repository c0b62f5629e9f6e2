// Package window tracks main-window visibility for the shell.
package window

import "sync"

// Surface is the rendering layer behind the main window. The actual
// implementation lives outside this module; a nil Surface means no window
// exists and show/hide are no-ops.
type Surface interface {
	Show() error
	Hide() error
	Focus() error
}

// State is the observable window state.
type State int

// Window states. The window starts Visible.
const (
	Visible State = iota
	Hidden
)

// String returns the state name.
func (s State) String() string {
	if s == Hidden {
		return "hidden"
	}
	return "visible"
}

// Manager is the two-state visibility machine over a Surface.
type Manager struct {
	mu      sync.Mutex
	surface Surface
	state   State
}

// NewManager creates a window manager in the Visible state.
func NewManager(surface Surface) *Manager {
	return &Manager{
		surface: surface,
		state:   Visible,
	}
}

// Show makes the window visible and gives it input focus. No-op when no
// surface is attached.
func (m *Manager) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.surface == nil {
		return
	}
	_ = m.surface.Show()
	_ = m.surface.Focus()
	m.state = Visible
}

// Hide makes the window invisible. The worker keeps running. No-op when no
// surface is attached.
func (m *Manager) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.surface == nil {
		return
	}
	_ = m.surface.Hide()
	m.state = Hidden
}

// Visible reports whether the window is in the Visible state.
func (m *Manager) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Visible
}

// CurrentState returns the window state.
func (m *Manager) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
