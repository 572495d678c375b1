package common

import (
	"math"
)

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention where depth maps to [0, 1].
// The matrix is stored in column-major order, so an mgl32.Mat4 can be passed as m[:].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	for i := range out[:16] {
		out[i] = 0
	}

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
}

// Clamp limits v to the closed range [lo, hi]. NaN maps to lo.
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
