package camera

import "github.com/go-gl/mathgl/mgl32"

// Mode is the controller's mouse interaction state.
type Mode int

const (
	// ModeIdle means no mouse drag is active and the pointer is free.
	ModeIdle Mode = iota
	// ModeRotating means the rotate button is held; motion changes yaw and pitch.
	ModeRotating
	// ModePanning means the pan button is held; motion translates the camera.
	ModePanning
	// ModeRotatingPanning means both buttons are held at once.
	ModeRotatingPanning
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRotating:
		return "rotating"
	case ModePanning:
		return "panning"
	case ModeRotatingPanning:
		return "rotating+panning"
	default:
		return "unknown"
	}
}

// CameraController defines the free-look camera used by the RTS view.
// The controller owns position and orientation (yaw/pitch in degrees), consumes discrete
// input events and per-frame key state, and derives the view matrix. The world is Z-up.
//
// A controller has a single owner, the main loop. It is not safe for concurrent use.
type CameraController interface {
	// HandleEvent applies one discrete input event: mouse button transitions, mouse motion,
	// scroll and the reset key. Unknown or malformed events are ignored.
	//
	// Parameters:
	//   - e: the input event
	HandleEvent(e Event)

	// Tick applies continuous movement and arrow-key look for the keys held this frame.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick; negative or non-finite values count as 0
	//   - keys: snapshot of held keys
	Tick(deltaTime float32, keys KeyState)

	// Update is HandleEvent followed by Tick. A nil event only ticks.
	//
	// Parameters:
	//   - e: the input event, or nil
	//   - deltaTime: seconds since the previous update
	//   - keys: snapshot of held keys
	Update(e Event, deltaTime float32, keys KeyState)

	// ViewMatrix returns the look-at transform from the position along the view direction.
	//
	// Returns:
	//   - mgl32.Mat4: world-to-eye matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// Direction returns the unit view direction derived from yaw and pitch.
	Direction() mgl32.Vec3

	// Right returns the unit right vector, normalize(cross(direction, worldUp)).
	Right() mgl32.Vec3

	// Yaw returns the horizontal look angle in degrees.
	Yaw() float32

	// Pitch returns the vertical look angle in degrees.
	Pitch() float32

	// Pose returns position, yaw and pitch together.
	Pose() Pose

	// Mode returns the current interaction mode.
	Mode() Mode

	// Rotating reports whether the rotate button is held.
	Rotating() bool

	// Panning reports whether the pan button is held.
	Panning() bool

	// PointerCaptured reports whether the pointer is locked; true iff rotating or panning.
	PointerCaptured() bool

	// Reset restores the default pose, clears the interaction mode and releases the pointer.
	Reset()

	// Config returns the controller's tunables.
	Config() ControllerConfig

	// SetPointerCapturer attaches the collaborator that locks and releases the cursor.
	//
	// Parameters:
	//   - pc: the capturer, or nil to detach
	SetPointerCapturer(pc PointerCapturer)
}
