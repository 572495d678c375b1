package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed vertical axis. The world ground is the XY plane, Z is up.
var WorldUp = mgl32.Vec3{0, 0, 1}

// Bounds is an axis-aligned box that the camera position is kept inside.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Clamp returns v with each component limited to the box.
//
// Parameters:
//   - v: the point to clamp
//
// Returns:
//   - mgl32.Vec3: the clamped point
func (b Bounds) Clamp(v mgl32.Vec3) mgl32.Vec3 {
	for i := range 3 {
		v[i] = common.Clamp(v[i], b.Min[i], b.Max[i])
	}
	return v
}

// Contains reports whether v lies inside the box, edges included. NaN is never inside.
func (b Bounds) Contains(v mgl32.Vec3) bool {
	for i := range 3 {
		if !(v[i] >= b.Min[i] && v[i] <= b.Max[i]) {
			return false
		}
	}
	return true
}

// normalized swaps any inverted min/max pair.
func (b Bounds) normalized() Bounds {
	for i := range 3 {
		if b.Min[i] > b.Max[i] {
			b.Min[i], b.Max[i] = b.Max[i], b.Min[i]
		}
	}
	return b
}

// Pose is a camera position plus yaw and pitch in degrees.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// KeyBindings maps controller actions to virtual key codes.
type KeyBindings struct {
	Forward     uint32
	Back        uint32
	StrafeLeft  uint32
	StrafeRight uint32
	Up          uint32
	Down        uint32
	LookLeft    uint32
	LookRight   uint32
	LookUp      uint32
	LookDown    uint32
	Reset       uint32
}

// DefaultKeyBindings returns WASD movement, Space/LeftShift vertical movement,
// arrow-key look and R to reset.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Forward:     common.KeyW,
		Back:        common.KeyS,
		StrafeLeft:  common.KeyA,
		StrafeRight: common.KeyD,
		Up:          common.KeySpace,
		Down:        common.KeyLeftShift,
		LookLeft:    common.KeyLeft,
		LookRight:   common.KeyRight,
		LookUp:      common.KeyUp,
		LookDown:    common.KeyDown,
		Reset:       common.KeyR,
	}
}

// ControllerConfig holds the tunables of a CameraController. They are fixed at
// construction and never change while the controller is alive.
type ControllerConfig struct {
	// MoveSpeed is world units per second (delta-time scaling) or per tick (fixed stepping).
	MoveSpeed float32
	// MouseSensitivity is degrees of yaw/pitch per pixel of mouse motion while rotating.
	MouseSensitivity float32
	// ScrollSpeed is world units of vertical travel per scroll step.
	ScrollSpeed float32
	// PanSpeed is world units per pixel of mouse motion while panning.
	PanSpeed float32
	// LookStep is degrees of yaw/pitch applied per tick while an arrow key is held.
	LookStep float32
	// PitchLimit bounds pitch to [-PitchLimit, PitchLimit] degrees. Must be in (0, 90).
	PitchLimit float32
	// Bounds is the box the position is clamped to after every update.
	Bounds Bounds
	// UseDeltaTimeScaling scales continuous movement by the tick's delta time.
	// When false every tick moves a fixed MoveSpeed, which ties speed to frame rate.
	UseDeltaTimeScaling bool
	// DefaultPose is the pose restored by Reset.
	DefaultPose Pose
	// Keys holds the key bindings for continuous movement and reset.
	Keys KeyBindings
	// RotateButton and PanButton select the mouse buttons that enter rotating and panning.
	RotateButton uint32
	PanButton    uint32
}

// DefaultControllerConfig returns the tunables of the frame-rate independent controller.
//
// Returns:
//   - ControllerConfig: default configuration
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		MoveSpeed:        5.0,
		MouseSensitivity: 0.1,
		ScrollSpeed:      2.0,
		PanSpeed:         0.01,
		LookStep:         1.0,
		PitchLimit:       89.0,
		Bounds: Bounds{
			Min: mgl32.Vec3{-50, -50, 1},
			Max: mgl32.Vec3{50, 50, 50},
		},
		UseDeltaTimeScaling: true,
		DefaultPose: Pose{
			Position: mgl32.Vec3{0, -15, 15},
			Yaw:      0,
			Pitch:    -45,
		},
		Keys:         DefaultKeyBindings(),
		RotateButton: common.MouseButtonSecondary,
		PanButton:    common.MouseButtonMiddle,
	}
}

// finite reports whether every component of v is finite.
func finite(v mgl32.Vec3) bool {
	return common.Finite(v[0]) && common.Finite(v[1]) && common.Finite(v[2])
}

// validRate reports whether a speed or sensitivity is usable.
func validRate(v float32) bool {
	return common.Finite(v) && v >= 0
}

// WrapYaw folds a yaw angle into (-360, 360) degrees. The view direction is unchanged.
func WrapYaw(yaw float32) float32 {
	return float32(math.Mod(float64(yaw), 360))
}

// sanitized replaces values that would break the controller invariants.
func (c ControllerConfig) sanitized() ControllerConfig {
	d := DefaultControllerConfig()
	if !common.Finite(c.PitchLimit) || c.PitchLimit <= 0 || c.PitchLimit >= 90 {
		c.PitchLimit = d.PitchLimit
	}
	if !validRate(c.MoveSpeed) {
		c.MoveSpeed = d.MoveSpeed
	}
	if !validRate(c.MouseSensitivity) {
		c.MouseSensitivity = d.MouseSensitivity
	}
	if !validRate(c.ScrollSpeed) {
		c.ScrollSpeed = d.ScrollSpeed
	}
	if !validRate(c.PanSpeed) {
		c.PanSpeed = d.PanSpeed
	}
	if !validRate(c.LookStep) {
		c.LookStep = d.LookStep
	}
	if !finite(c.Bounds.Min) || !finite(c.Bounds.Max) {
		c.Bounds = d.Bounds
	}
	c.Bounds = c.Bounds.normalized()
	if !common.Finite(c.DefaultPose.Yaw) {
		c.DefaultPose.Yaw = d.DefaultPose.Yaw
	}
	c.DefaultPose.Yaw = WrapYaw(c.DefaultPose.Yaw)
	if !common.Finite(c.DefaultPose.Pitch) {
		c.DefaultPose.Pitch = d.DefaultPose.Pitch
	}
	if !finite(c.DefaultPose.Position) {
		c.DefaultPose.Position = d.DefaultPose.Position
	}
	c.DefaultPose.Pitch = common.Clamp(c.DefaultPose.Pitch, -c.PitchLimit, c.PitchLimit)
	c.DefaultPose.Position = c.Bounds.Clamp(c.DefaultPose.Position)
	return c
}
