// Package picker casts rays from screen pixels into the world and resolves the grid cell
// under the cursor. Everything here is a pure function of its arguments.
package picker

import (
	"errors"
	"math"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the smallest |direction.z| accepted when intersecting the ground plane.
// Rays flatter than this are treated as parallel to the ground.
const Epsilon = 1e-6

var (
	// ErrInvalidViewport is returned when the viewport has no area.
	ErrInvalidViewport = errors.New("picker: viewport width and height must be positive")
	// ErrSingularMatrix is returned when the projection or view matrix cannot be inverted.
	ErrSingularMatrix = errors.New("picker: matrix is not invertible")
)

// GridCell is an integer-indexed unit square on the ground plane.
type GridCell struct {
	X, Y int
}

// Ray is a half-line in world space. Direction is unit length.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point Origin + t·Direction.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToNDC converts a pixel position to normalized device coordinates.
// Y is flipped because screen Y grows downward while NDC Y grows upward.
//
// Parameters:
//   - screenX, screenY: cursor position in pixels, origin top-left
//   - width, height: viewport size in pixels
//
// Returns:
//   - ndcX, ndcY: coordinates in [-1, 1] for points inside the viewport
func ScreenToNDC(screenX, screenY, width, height float32) (ndcX, ndcY float32) {
	ndcX = 2*screenX/width - 1
	ndcY = 1 - 2*screenY/height
	return ndcX, ndcY
}

// invert returns the inverse of m, or false if m is singular.
func invert(m mgl32.Mat4) (mgl32.Mat4, bool) {
	det := m.Det()
	if !common.Finite(det) || mgl32.Abs(det) < 1e-12 {
		return mgl32.Mat4{}, false
	}
	return m.Inv(), true
}

// ScreenRay builds the world-space ray through a pixel.
// The pixel is placed on the near plane in clip space, unprojected to eye space, turned into a
// direction (z = -1, w = 0), then rotated into world space by the inverse view matrix.
// The origin is the camera position, the translation column of the inverse view matrix.
//
// Parameters:
//   - screenX, screenY: cursor position in pixels
//   - width, height: viewport size in pixels
//   - projection: the projection matrix used for rendering
//   - view: the camera's world-to-eye matrix
//
// Returns:
//   - Ray: world-space ray with a unit direction
//   - error: ErrInvalidViewport or ErrSingularMatrix
func ScreenRay(screenX, screenY, width, height float32, projection, view mgl32.Mat4) (Ray, error) {
	if !(width > 0) || !(height > 0) {
		return Ray{}, ErrInvalidViewport
	}
	invProjection, ok := invert(projection)
	if !ok {
		return Ray{}, ErrSingularMatrix
	}
	invView, ok := invert(view)
	if !ok {
		return Ray{}, ErrSingularMatrix
	}

	ndcX, ndcY := ScreenToNDC(screenX, screenY, width, height)
	eye := invProjection.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	eye = mgl32.Vec4{eye.X(), eye.Y(), -1, 0}

	dir := invView.Mul4x1(eye).Vec3()
	if dir.Len() < Epsilon {
		return Ray{}, ErrSingularMatrix
	}

	return Ray{
		Origin:    invView.Col(3).Vec3(),
		Direction: dir.Normalize(),
	}, nil
}

// IntersectGround intersects a ray with the plane z = 0.
// There is no hit when the ray is parallel to the plane (|direction.z| < Epsilon) or when
// the plane lies behind the ray origin.
//
// Parameters:
//   - ray: the world-space ray
//
// Returns:
//   - mgl32.Vec3: the intersection point (z = 0)
//   - bool: false if the ray does not reach the ground
func IntersectGround(ray Ray) (mgl32.Vec3, bool) {
	dz := ray.Direction.Z()
	if mgl32.Abs(dz) < Epsilon {
		return mgl32.Vec3{}, false
	}
	t := -ray.Origin.Z() / dz
	if t < 0 || !common.Finite(t) {
		return mgl32.Vec3{}, false
	}
	hit := ray.At(t)
	hit[2] = 0
	return hit, true
}

// Quantize maps a ground point to the grid cell containing it.
// gridOriginOffset re-centres the grid so index 0 is its negative-most corner;
// it is half the grid's world extent.
//
// Parameters:
//   - point: a point on the ground plane
//   - gridOriginOffset: half the grid extent in world units
//
// Returns:
//   - GridCell: floor(point + offset) per axis
func Quantize(point mgl32.Vec3, gridOriginOffset float32) GridCell {
	return GridCell{
		X: int(math.Floor(float64(point.X() + gridOriginOffset))),
		Y: int(math.Floor(float64(point.Y() + gridOriginOffset))),
	}
}

// PickGridCell returns the grid cell under a screen pixel.
//
// Parameters:
//   - screenX, screenY: cursor position in pixels
//   - screenWidth, screenHeight: viewport size in pixels
//   - projection: the projection matrix used for rendering
//   - view: the camera's current view matrix
//   - gridOriginOffset: half the grid extent in world units
//
// Returns:
//   - GridCell: the picked cell
//   - bool: false when there is no cell under the cursor (ray misses the ground,
//     degenerate viewport or non-invertible matrices)
func PickGridCell(screenX, screenY, screenWidth, screenHeight float32, projection, view mgl32.Mat4, gridOriginOffset float32) (GridCell, bool) {
	ray, err := ScreenRay(screenX, screenY, screenWidth, screenHeight, projection, view)
	if err != nil {
		return GridCell{}, false
	}
	hit, ok := IntersectGround(ray)
	if !ok {
		return GridCell{}, false
	}
	return Quantize(hit, gridOriginOffset), true
}
