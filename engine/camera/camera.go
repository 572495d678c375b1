package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera holds perspective settings and caches the view/projection matrices
// derived from an attached CameraController. Matrices are refreshed by Update(),
// which the main loop calls once per frame after the controller has ticked.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ViewMatrix returns the cached view matrix.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the cached projection matrix.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection × view.
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the projection matrix.
	InverseProjectionMatrix() mgl32.Mat4

	// Controller returns the attached controller, or nil.
	Controller() CameraController

	// Update recomputes all matrices from the controller's current state.
	// If no controller is attached, this method does nothing.
	Update()

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and recomputes matrices.
	SetAspect(aspect float32)

	// SetNear sets the near plane distance and recomputes matrices.
	SetNear(near float32)

	// SetFar sets the far plane distance and recomputes matrices.
	SetFar(far float32)

	// SetController attaches a controller and recomputes matrices.
	SetController(ctrl CameraController)

	// Pick returns the grid cell under a screen pixel using the cached matrices.
	//
	// Parameters:
	//   - screenX, screenY: cursor position in pixels
	//   - width, height: viewport size in pixels
	//   - gridOriginOffset: half the grid's world extent
	//
	// Returns:
	//   - picker.GridCell: the picked cell
	//   - bool: false when the cursor ray does not reach the ground
	Pick(screenX, screenY float32, width, height int, gridOriginOffset float32) (picker.GridCell, bool)

	// Uniform returns the GPU camera block for the current frame.
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings
// (45° vertical fov, aspect 1, near 0.1, far 100).
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		fov:                     45.0 * (math.Pi / 180.0),
		aspect:                  1.0,
		near:                    0.1,
		far:                     100.0,
		viewMatrix:              mgl32.Ident4(),
		projectionMatrix:        mgl32.Ident4(),
		viewProjectionMatrix:    mgl32.Ident4(),
		inverseProjectionMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) Update() {
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.controller = ctrl
	c.updateMatrices()
}

func (c *cameraImpl) Pick(screenX, screenY float32, width, height int, gridOriginOffset float32) (picker.GridCell, bool) {
	return picker.PickGridCell(screenX, screenY, float32(width), float32(height),
		c.projectionMatrix, c.viewMatrix, gridOriginOffset)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	u := GPUCameraUniform{ViewProj: c.viewProjectionMatrix}
	if c.controller != nil {
		u.CameraPosition = c.controller.Position()
	}
	return u
}

// updateMatrices recalculates the projection, view-projection and inverse projection
// matrices, and the view matrix when a controller is attached.
func (c *cameraImpl) updateMatrices() {
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()

	if c.controller != nil {
		c.viewMatrix = c.controller.ViewMatrix()
	}
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
