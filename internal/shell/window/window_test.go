package window

import "testing"

// fakeSurface records rendering-layer calls.
type fakeSurface struct {
	shows, hides, focuses int
}

func (f *fakeSurface) Show() error  { f.shows++; return nil }
func (f *fakeSurface) Hide() error  { f.hides++; return nil }
func (f *fakeSurface) Focus() error { f.focuses++; return nil }

func TestInitialStateVisible(t *testing.T) {
	m := NewManager(&fakeSurface{})
	if !m.Visible() {
		t.Error("window should start Visible")
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name    string
		actions []string
		want    State
	}{
		{name: "hide", actions: []string{"hide"}, want: Hidden},
		{name: "hide then show", actions: []string{"hide", "show"}, want: Visible},
		{name: "show when visible", actions: []string{"show"}, want: Visible},
		{name: "hide twice", actions: []string{"hide", "hide"}, want: Hidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(&fakeSurface{})
			for _, a := range tt.actions {
				if a == "show" {
					m.Show()
				} else {
					m.Hide()
				}
			}
			if got := m.CurrentState(); got != tt.want {
				t.Errorf("state = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShowFocusesSurface(t *testing.T) {
	s := &fakeSurface{}
	m := NewManager(s)

	m.Show()

	if s.shows != 1 || s.focuses != 1 {
		t.Errorf("Show() called surface show=%d focus=%d, want 1/1", s.shows, s.focuses)
	}
}

func TestNilSurfaceIsNoOp(t *testing.T) {
	m := NewManager(nil)

	// Window absent: actions do nothing, state is untouched.
	m.Hide()
	if !m.Visible() {
		t.Error("Hide() with no surface should not change state")
	}
	m.Show()
	if !m.Visible() {
		t.Error("Show() with no surface should not change state")
	}
}
