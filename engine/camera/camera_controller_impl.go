package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"
)

// cameraControllerImpl is the single implementation of CameraController.
// Rotating and panning are tracked independently so both drags can be active at once;
// the pointer stays captured while either is held.
type cameraControllerImpl struct {
	config ControllerConfig

	position mgl32.Vec3
	yaw      float32 // degrees, wrapped into (-360, 360)
	pitch    float32 // degrees, within ±config.PitchLimit

	rotating bool
	panning  bool
	captured bool

	capturer PointerCapturer
	logger   *log.Logger
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller at the default pose with the default tunables.
// Options may override the pose and any tunable. The starting pose is clamped into the
// configured pitch range and bounds. The pointer starts released.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cfg := DefaultControllerConfig()
	cc := &cameraControllerImpl{
		config:   cfg,
		position: cfg.DefaultPose.Position,
		yaw:      cfg.DefaultPose.Yaw,
		pitch:    cfg.DefaultPose.Pitch,
		logger:   log.Default(),
	}

	for _, option := range options {
		option(cc)
	}

	cc.config = cc.config.sanitized()
	if !common.Finite(cc.yaw) {
		cc.yaw = cc.config.DefaultPose.Yaw
	}
	cc.yaw = WrapYaw(cc.yaw)
	if !common.Finite(cc.pitch) {
		cc.pitch = cc.config.DefaultPose.Pitch
	}
	for i := range 3 {
		if !common.Finite(cc.position[i]) {
			cc.position[i] = cc.config.DefaultPose.Position[i]
		}
	}
	cc.clampState()
	return cc
}

// --- internal helpers ---

// direction converts yaw/pitch to a unit vector: (cos y·cos p, sin y·cos p, sin p).
func direction(yaw, pitch float32) mgl32.Vec3 {
	y := float64(mgl32.DegToRad(yaw))
	p := float64(mgl32.DegToRad(pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(y) * math.Cos(p)),
		float32(math.Sin(p)),
	}
}

// right is normalize(cross(direction, worldUp)). Pitch never reaches ±90 so the
// cross product is never zero.
func right(dir mgl32.Vec3) mgl32.Vec3 {
	return dir.Cross(WorldUp).Normalize()
}

// flatForward projects the view direction onto the ground plane.
func flatForward(dir mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{dir.X(), dir.Y(), 0}.Normalize()
}

// clampState enforces the pitch range and the position bounds.
func (cc *cameraControllerImpl) clampState() {
	cc.pitch = common.Clamp(cc.pitch, -cc.config.PitchLimit, cc.config.PitchLimit)
	cc.position = cc.config.Bounds.Clamp(cc.position)
}

// syncCapture locks the pointer while either drag is active and releases it otherwise.
func (cc *cameraControllerImpl) syncCapture() {
	want := cc.rotating || cc.panning
	if want == cc.captured {
		return
	}
	cc.captured = want
	if cc.capturer != nil {
		cc.capturer.SetPointerCaptured(want)
	}
}

func (cc *cameraControllerImpl) setDrag(button uint32, down bool) {
	before := cc.Mode()
	switch button {
	case cc.config.RotateButton:
		cc.rotating = down
	case cc.config.PanButton:
		cc.panning = down
	default:
		return
	}
	cc.syncCapture()
	if after := cc.Mode(); after != before && cc.logger != nil {
		cc.logger.Debug("camera mode changed", "from", before, "to", after, "captured", cc.captured)
	}
}

// look applies a yaw/pitch delta. Deltas that overflow to Inf are dropped.
func (cc *cameraControllerImpl) look(dYaw, dPitch float32) {
	if !common.Finite(dYaw) || !common.Finite(dPitch) {
		return
	}
	cc.yaw = WrapYaw(cc.yaw + dYaw)
	cc.pitch = common.Clamp(cc.pitch+dPitch, -cc.config.PitchLimit, cc.config.PitchLimit)
}

// --- CameraController implementation ---

func (cc *cameraControllerImpl) HandleEvent(e Event) {
	switch ev := e.(type) {
	case KeyPressed:
		if ev.Key == cc.config.Keys.Reset {
			cc.Reset()
		}
	case MouseButtonPressed:
		cc.setDrag(ev.Button, true)
	case MouseButtonReleased:
		cc.setDrag(ev.Button, false)
	case MouseMoved:
		if !common.Finite(ev.DX) || !common.Finite(ev.DY) {
			return
		}
		r := right(cc.Direction())
		if cc.rotating {
			cc.look(-ev.DX*cc.config.MouseSensitivity, -ev.DY*cc.config.MouseSensitivity)
		}
		if dx, dy := -ev.DX*cc.config.PanSpeed, ev.DY*cc.config.PanSpeed; cc.panning && common.Finite(dx) && common.Finite(dy) {
			cc.position = cc.position.Add(r.Mul(dx)).Add(WorldUp.Mul(dy))
		}
	case MouseScrolled:
		if !common.Finite(ev.Amount) {
			return
		}
		if dz := ev.Amount * cc.config.ScrollSpeed; common.Finite(dz) {
			cc.position[2] -= dz
		}
	default:
		return
	}
	cc.clampState()
}

func (cc *cameraControllerImpl) Tick(deltaTime float32, keys KeyState) {
	if !common.Finite(deltaTime) || deltaTime < 0 {
		deltaTime = 0
	}
	step := cc.config.MoveSpeed
	if cc.config.UseDeltaTimeScaling {
		step *= deltaTime
	}

	dir := cc.Direction()
	forward := flatForward(dir)
	r := right(dir)
	k := cc.config.Keys

	var move mgl32.Vec3
	if keys.Held(k.Forward) {
		move = move.Add(forward)
	}
	if keys.Held(k.Back) {
		move = move.Sub(forward)
	}
	if keys.Held(k.StrafeRight) {
		move = move.Add(r)
	}
	if keys.Held(k.StrafeLeft) {
		move = move.Sub(r)
	}
	if keys.Held(k.Up) {
		move = move.Add(WorldUp)
	}
	if keys.Held(k.Down) {
		move = move.Sub(WorldUp)
	}
	if common.Finite(step) {
		cc.position = cc.position.Add(move.Mul(step))
	}

	if keys.Held(k.LookLeft) {
		cc.look(cc.config.LookStep, 0)
	}
	if keys.Held(k.LookRight) {
		cc.look(-cc.config.LookStep, 0)
	}
	if keys.Held(k.LookUp) {
		cc.look(0, cc.config.LookStep)
	}
	if keys.Held(k.LookDown) {
		cc.look(0, -cc.config.LookStep)
	}

	cc.clampState()
}

func (cc *cameraControllerImpl) Update(e Event, deltaTime float32, keys KeyState) {
	if e != nil {
		cc.HandleEvent(e)
	}
	cc.Tick(deltaTime, keys)
}

func (cc *cameraControllerImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(cc.position, cc.position.Add(cc.Direction()), WorldUp)
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	return cc.position
}

func (cc *cameraControllerImpl) Direction() mgl32.Vec3 {
	return direction(cc.yaw, cc.pitch)
}

func (cc *cameraControllerImpl) Right() mgl32.Vec3 {
	return right(cc.Direction())
}

func (cc *cameraControllerImpl) Yaw() float32 {
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	return cc.pitch
}

func (cc *cameraControllerImpl) Pose() Pose {
	return Pose{Position: cc.position, Yaw: cc.yaw, Pitch: cc.pitch}
}

func (cc *cameraControllerImpl) Mode() Mode {
	switch {
	case cc.rotating && cc.panning:
		return ModeRotatingPanning
	case cc.rotating:
		return ModeRotating
	case cc.panning:
		return ModePanning
	default:
		return ModeIdle
	}
}

func (cc *cameraControllerImpl) Rotating() bool {
	return cc.rotating
}

func (cc *cameraControllerImpl) Panning() bool {
	return cc.panning
}

func (cc *cameraControllerImpl) PointerCaptured() bool {
	return cc.captured
}

func (cc *cameraControllerImpl) Reset() {
	pose := cc.config.DefaultPose
	cc.position = pose.Position
	cc.yaw = pose.Yaw
	cc.pitch = pose.Pitch
	cc.rotating = false
	cc.panning = false
	cc.syncCapture()
	cc.clampState()
}

func (cc *cameraControllerImpl) Config() ControllerConfig {
	return cc.config
}

func (cc *cameraControllerImpl) SetPointerCapturer(pc PointerCapturer) {
	cc.capturer = pc
}
