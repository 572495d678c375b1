package camera

// Event is a discrete input event consumed by CameraController.HandleEvent.
// Events are abstracted from the windowing library; the window package translates
// raw GLFW callbacks into these values.
type Event interface {
	event()
}

// KeyPressed reports a single key press (not repeats of a held key).
type KeyPressed struct {
	// Key is the virtual key code (see common.Key*).
	Key uint32
}

// MouseButtonPressed reports a mouse button press at a cursor position in window pixels.
type MouseButtonPressed struct {
	// Button is the mouse button code (see common.MouseButton*).
	Button uint32
	// X, Y is the cursor position in pixels, origin at the top-left corner.
	X, Y float32
}

// MouseButtonReleased reports a mouse button release.
type MouseButtonReleased struct {
	Button uint32
}

// MouseMoved reports relative cursor motion in pixels since the previous motion event.
type MouseMoved struct {
	DX, DY float32
}

// MouseScrolled reports a scroll wheel step. Positive values scroll up.
type MouseScrolled struct {
	Amount float32
}

func (KeyPressed) event()          {}
func (MouseButtonPressed) event()  {}
func (MouseButtonReleased) event() {}
func (MouseMoved) event()          {}
func (MouseScrolled) event()       {}

// KeyState is a per-frame snapshot of the keys currently held down, keyed by virtual key code.
// A nil KeyState holds no keys.
type KeyState map[uint32]bool

// Held reports whether key is currently held.
//
// Parameters:
//   - key: the virtual key code
//
// Returns:
//   - bool: true if the key is down in this snapshot
func (k KeyState) Held(key uint32) bool {
	return k[key]
}

// Clone returns an independent copy of the snapshot.
func (k KeyState) Clone() KeyState {
	cp := make(KeyState, len(k))
	for key, down := range k {
		if down {
			cp[key] = true
		}
	}
	return cp
}

// PointerCapturer is implemented by collaborators that can lock the cursor into
// relative-motion mode. The controller captures the pointer while rotating or panning.
type PointerCapturer interface {
	// SetPointerCaptured locks (true) or releases (false) the cursor.
	SetPointerCaptured(captured bool)
}
