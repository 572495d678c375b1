package camera

import (
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithConfig replaces every tunable at once.
//
// Parameters:
//   - cfg: the controller configuration
//
// Returns:
//   - CameraControllerOption: functional option to set the configuration
func WithConfig(cfg ControllerConfig) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.config = cfg
	}
}

// WithPose sets the initial position, yaw and pitch.
//
// Parameters:
//   - pose: the initial pose (angles in degrees)
//
// Returns:
//   - CameraControllerOption: functional option to set the pose
func WithPose(pose Pose) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = pose.Position
		cc.yaw = pose.Yaw
		cc.pitch = pose.Pitch
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = mgl32.Vec3{x, y, z}
	}
}

// WithYaw sets the initial horizontal angle.
//
// Parameters:
//   - yaw: degrees, 0 looks along +X
//
// Returns:
//   - CameraControllerOption: functional option to set the yaw
func WithYaw(yaw float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.yaw = yaw
	}
}

// WithPitch sets the initial vertical angle. It is clamped to the pitch limit.
//
// Parameters:
//   - pitch: degrees, negative looks down
//
// Returns:
//   - CameraControllerOption: functional option to set the pitch
func WithPitch(pitch float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.pitch = pitch
	}
}

// WithMoveSpeed sets the keyboard movement speed.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraControllerOption: functional option to set move speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.config.MoveSpeed = speed
	}
}

// WithMouseSensitivity sets the mouse-look sensitivity.
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.config.MouseSensitivity = sensitivity
	}
}

// WithScrollSpeed sets the scroll-wheel zoom speed.
//
// Parameters:
//   - speed: world units per scroll step
//
// Returns:
//   - CameraControllerOption: functional option to set scroll speed
func WithScrollSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.config.ScrollSpeed = speed
	}
}

// WithPanSpeed sets the middle-drag pan speed.
//
// Parameters:
//   - speed: world units per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.config.PanSpeed = speed
	}
}

// WithBounds sets the world box the position is clamped to.
//
// Parameters:
//   - min: lower corner
//   - max: upper corner
//
// Returns:
//   - CameraControllerOption: functional option to set position bounds
func WithBounds(min, max mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.config.Bounds = Bounds{Min: min, Max: max}
	}
}

// WithDeltaTimeScaling toggles frame-rate independent movement.
//
// Parameters:
//   - enabled: true to scale movement by delta time
//
// Returns:
//   - CameraControllerOption: functional option to set delta-time scaling
func WithDeltaTimeScaling(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.config.UseDeltaTimeScaling = enabled
	}
}

// WithPointerCapturer attaches the collaborator that locks the cursor while dragging.
//
// Parameters:
//   - pc: the pointer capturer
//
// Returns:
//   - CameraControllerOption: functional option to set the pointer capturer
func WithPointerCapturer(pc PointerCapturer) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.capturer = pc
	}
}

// WithLogger sets the logger used for mode transitions.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - CameraControllerOption: functional option to set the logger
func WithLogger(logger *log.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.logger = logger
	}
}
