package camera

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	if !mgl32.FloatEqual(c.Fov(), mgl32.DegToRad(45)) {
		t.Errorf("Fov() = %v, want 45° in radians", c.Fov())
	}
	if c.Aspect() != 1 || c.Near() != 0.1 || c.Far() != 100 {
		t.Errorf("aspect/near/far = %v/%v/%v, want 1/0.1/100", c.Aspect(), c.Near(), c.Far())
	}
	if c.Controller() != nil {
		t.Error("Controller() should be nil without WithController")
	}
	if c.ViewMatrix() != mgl32.Ident4() {
		t.Error("view matrix should be identity without a controller")
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(WithFov(mgl32.DegToRad(90)), WithAspect(2), WithNear(1), WithFar(10))
	p := c.ProjectionMatrix()

	if !mgl32.FloatEqualThreshold(p[0], 0.5, 1e-5) || !mgl32.FloatEqualThreshold(p[5], 1, 1e-5) {
		t.Errorf("focal terms = %v/%v, want 0.5/1", p[0], p[5])
	}
	if p[11] != -1 {
		t.Errorf("p[11] = %v, want -1", p[11])
	}

	// The near plane maps to depth 0 and the far plane to depth 1.
	for _, tc := range []struct {
		z, depth float32
	}{{-1, 0}, {-10, 1}} {
		clip := p.Mul4x1(mgl32.Vec4{0, 0, tc.z, 1})
		if d := clip.Z() / clip.W(); !mgl32.FloatEqualThreshold(d+1, tc.depth+1, 1e-5) {
			t.Errorf("depth at z=%v = %v, want %v", tc.z, d, tc.depth)
		}
	}

	if !near(c.InverseProjectionMatrix().Mul4(p).Col(0).Vec3(), mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Error("InverseProjectionMatrix is not the inverse of ProjectionMatrix")
	}
}

func TestCameraFollowsController(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithYaw(0), WithPitch(-45))
	c := NewCamera(WithController(cc))

	if c.ViewMatrix() != cc.ViewMatrix() {
		t.Fatal("camera view does not match controller view after construction")
	}

	cc.Tick(1, KeyState{cc.Config().Keys.Forward: true})
	if c.ViewMatrix() == cc.ViewMatrix() {
		t.Fatal("camera view changed before Update")
	}
	c.Update()
	if c.ViewMatrix() != cc.ViewMatrix() {
		t.Error("camera view does not match controller view after Update")
	}
	if c.ViewProjectionMatrix() != c.ProjectionMatrix().Mul4(c.ViewMatrix()) {
		t.Error("ViewProjectionMatrix != projection × view")
	}
}

func TestCameraSetters(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(16.0 / 9.0)
	if c.ProjectionMatrix() == before {
		t.Error("SetAspect did not recompute the projection")
	}
	c.SetFov(mgl32.DegToRad(60))
	c.SetNear(0.5)
	c.SetFar(500)

	fresh := NewCamera(WithAspect(16.0/9.0), WithFov(mgl32.DegToRad(60)), WithNear(0.5), WithFar(500))
	if c.ProjectionMatrix() != fresh.ProjectionMatrix() {
		t.Error("setters produced a different projection than the equivalent options")
	}

	cc := NewCameraController()
	c.SetController(cc)
	if c.Controller() != cc || c.ViewMatrix() != cc.ViewMatrix() {
		t.Error("SetController did not attach and refresh the view")
	}
}

func TestCameraPick(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithYaw(0), WithPitch(-89))
	c := NewCamera(WithFov(mgl32.DegToRad(60)), WithAspect(800.0/600.0), WithController(cc))

	cell, ok := c.Pick(400, 300, 800, 600, 7.5)
	if !ok {
		t.Fatal("expected a hit looking almost straight down")
	}
	if cell != (picker.GridCell{X: 7, Y: 7}) {
		t.Errorf("cell = %v, want {7 7}", cell)
	}

	if _, ok := c.Pick(400, 300, 0, 600, 7.5); ok {
		t.Error("zero-width viewport should not pick")
	}

	flat := NewCamera(WithController(NewCameraController(WithPosition(0, 0, 5), WithPitch(0))))
	if cell, ok := flat.Pick(50, 50, 100, 100, 7.5); ok {
		t.Errorf("horizontal view picked %v, want no cell", cell)
	}
}

func TestCameraUniform(t *testing.T) {
	cc := NewCameraController(WithPosition(1, 2, 3))
	c := NewCamera(WithController(cc))
	u := c.Uniform()

	if u.ViewProj != c.ViewProjectionMatrix() {
		t.Error("uniform ViewProj does not match the camera")
	}
	if u.CameraPosition != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("uniform position = %v, want (1,2,3)", u.CameraPosition)
	}
	if u.Size() != 80 {
		t.Fatalf("Size() = %d, want 80", u.Size())
	}

	buf := u.Marshal()
	if len(buf) != 80 {
		t.Fatalf("len(Marshal()) = %d, want 80", len(buf))
	}
	for i, want := range []float32{1, 2, 3} {
		got := math.Float32frombits(binary.LittleEndian.Uint32(buf[64+i*4:]))
		if got != want {
			t.Errorf("position[%d] = %v, want %v", i, got, want)
		}
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[20:])); got != u.ViewProj[5] {
		t.Errorf("matrix element 5 = %v, want %v", got, u.ViewProj[5])
	}
	if binary.LittleEndian.Uint32(buf[76:]) != 0 {
		t.Error("padding bytes should be zero")
	}
}

func TestCameraUniformSource(t *testing.T) {
	for _, field := range []string{"struct CameraUniform", "view_proj: mat4x4<f32>", "camera_position: vec3<f32>"} {
		if !strings.Contains(GPUCameraUniformSource, field) {
			t.Errorf("WGSL source missing %q", field)
		}
	}
}
