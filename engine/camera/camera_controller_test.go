package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/go-gl/mathgl/mgl32"
)

// recordingCapturer remembers every capture toggle it receives.
type recordingCapturer struct {
	calls []bool
}

func (r *recordingCapturer) SetPointerCaptured(captured bool) {
	r.calls = append(r.calls, captured)
}

func keys(codes ...uint32) KeyState {
	k := KeyState{}
	for _, c := range codes {
		k[c] = true
	}
	return k
}

func TestNewCameraControllerStartsIdle(t *testing.T) {
	pc := &recordingCapturer{}
	cc := NewCameraController(WithPosition(1, 2, 3), WithYaw(30), WithPitch(-20), WithPointerCapturer(pc))

	if got := cc.Position(); !near(got, mgl32.Vec3{1, 2, 3}, 1e-6) {
		t.Errorf("Position() = %v, want (1,2,3)", got)
	}
	if cc.Yaw() != 30 || cc.Pitch() != -20 {
		t.Errorf("yaw/pitch = %v/%v, want 30/-20", cc.Yaw(), cc.Pitch())
	}
	if cc.Mode() != ModeIdle {
		t.Errorf("Mode() = %v, want idle", cc.Mode())
	}
	if cc.PointerCaptured() || len(pc.calls) != 0 {
		t.Errorf("pointer captured at construction: %v %v", cc.PointerCaptured(), pc.calls)
	}
}

func TestNewCameraControllerSanitizesPose(t *testing.T) {
	cc := NewCameraController(WithPosition(500, -500, 0), WithPitch(120))

	if cc.Pitch() != 89 {
		t.Errorf("Pitch() = %v, want 89", cc.Pitch())
	}
	want := mgl32.Vec3{50, -50, 1}
	if got := cc.Position(); !near(got, want, 1e-6) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestDirectionAndViewMatrix(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float32
		want       mgl32.Vec3
	}{
		{"along +x", 0, 0, mgl32.Vec3{1, 0, 0}},
		{"along +y", 90, 0, mgl32.Vec3{0, 1, 0}},
		{"down 45", 0, -45, mgl32.Vec3{float32(math.Sqrt2 / 2), 0, -float32(math.Sqrt2 / 2)}},
		{"yaw wraps", 360, 0, mgl32.Vec3{1, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cc := NewCameraController(WithPosition(0, 0, 10), WithYaw(tc.yaw), WithPitch(tc.pitch))
			dir := cc.Direction()
			if !near(dir, tc.want, 1e-5) {
				t.Errorf("Direction() = %v, want %v", dir, tc.want)
			}

			// The view matrix maps a point ahead of the camera onto the -Z eye axis.
			ahead := cc.Position().Add(dir.Mul(4))
			eye := cc.ViewMatrix().Mul4x1(ahead.Vec4(1))
			if !near(eye.Vec3(), mgl32.Vec3{0, 0, -4}, 1e-4) {
				t.Errorf("view * ahead = %v, want (0,0,-4)", eye)
			}
		})
	}
}

func TestPitchStaysClamped(t *testing.T) {
	cc := NewCameraController()
	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})

	motions := []MouseMoved{
		{DX: 0, DY: -5000},
		{DX: 300, DY: 12000},
		{DX: -1, DY: -1},
		{DX: 0, DY: -1e9},
	}
	for i, m := range motions {
		cc.HandleEvent(m)
		if p := cc.Pitch(); p < -89 || p > 89 {
			t.Fatalf("after motion %d pitch = %v, outside [-89, 89]", i, p)
		}
	}

	for i := 0; i < 500; i++ {
		cc.Tick(1.0/60, keys(common.KeyUp))
		if p := cc.Pitch(); p > 89 {
			t.Fatalf("tick %d pitch = %v, above 89", i, p)
		}
	}
	if cc.Pitch() != 89 {
		t.Errorf("holding look-up should pin pitch at 89, got %v", cc.Pitch())
	}

	for i := 0; i < 500; i++ {
		cc.Tick(1.0/60, keys(common.KeyDown))
	}
	if cc.Pitch() != -89 {
		t.Errorf("holding look-down should pin pitch at -89, got %v", cc.Pitch())
	}
}

func TestPositionStaysInBounds(t *testing.T) {
	cfg := DefaultControllerConfig()
	bounds := Bounds{Min: mgl32.Vec3{-20, -20, 1}, Max: mgl32.Vec3{20, 20, 20}}
	cfg.Bounds = bounds
	cc := NewCameraController(WithConfig(cfg))

	check := func(step string) {
		t.Helper()
		if !bounds.Contains(cc.Position()) {
			t.Fatalf("%s: position %v outside bounds", step, cc.Position())
		}
	}

	for i := 0; i < 50; i++ {
		cc.HandleEvent(MouseScrolled{Amount: -10})
		check("scroll out")
	}
	if cc.Position().Z() != 20 {
		t.Errorf("scrolling out should stop at z=20, got %v", cc.Position().Z())
	}
	for i := 0; i < 50; i++ {
		cc.HandleEvent(MouseScrolled{Amount: 10})
		check("scroll in")
	}
	if cc.Position().Z() != 1 {
		t.Errorf("scrolling in should stop at z=1, got %v", cc.Position().Z())
	}

	held := []KeyState{
		keys(common.KeyW),
		keys(common.KeyA, common.KeySpace),
		keys(common.KeyS, common.KeyD),
		keys(common.KeyLeftShift, common.KeyLeft),
	}
	for _, k := range held {
		for i := 0; i < 600; i++ {
			cc.Tick(0.1, k)
			check("tick")
		}
	}

	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonMiddle})
	for i := 0; i < 100; i++ {
		cc.HandleEvent(MouseMoved{DX: 1000, DY: -1000})
		check("pan")
	}
}

func TestResetIsIdempotent(t *testing.T) {
	pc := &recordingCapturer{}
	cc := NewCameraController(WithPosition(3, 4, 5), WithYaw(120), WithPitch(10), WithPointerCapturer(pc))
	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})
	cc.HandleEvent(MouseMoved{DX: 40, DY: 12})

	cc.Reset()
	first := cc.Pose()
	firstView := cc.ViewMatrix()
	cc.Reset()

	if cc.Pose() != first {
		t.Errorf("second Reset changed pose: %+v -> %+v", first, cc.Pose())
	}
	if cc.ViewMatrix() != firstView {
		t.Error("second Reset changed the view matrix")
	}

	want := Pose{Position: mgl32.Vec3{0, -15, 15}, Yaw: 0, Pitch: -45}
	if first != want {
		t.Errorf("Reset pose = %+v, want %+v", first, want)
	}
	eye := want.Position
	expected := mgl32.LookAtV(eye, eye.Add(direction(0, -45)), mgl32.Vec3{0, 0, 1})
	if firstView != expected {
		t.Errorf("view after Reset = %v, want %v", firstView, expected)
	}

	if cc.Mode() != ModeIdle || cc.PointerCaptured() {
		t.Errorf("Reset left mode %v captured %v", cc.Mode(), cc.PointerCaptured())
	}
	if len(pc.calls) != 2 || pc.calls[0] != true || pc.calls[1] != false {
		t.Errorf("capture calls = %v, want [true false]", pc.calls)
	}
}

func TestResetKeyEvent(t *testing.T) {
	cc := NewCameraController(WithPosition(10, 10, 10), WithYaw(77))
	cc.HandleEvent(KeyPressed{Key: common.KeyW})
	if cc.Yaw() != 77 {
		t.Fatalf("non-reset key changed yaw to %v", cc.Yaw())
	}
	cc.HandleEvent(KeyPressed{Key: common.KeyR})
	if cc.Pose() != cc.Config().DefaultPose {
		t.Errorf("R did not reset: %+v", cc.Pose())
	}
}

func TestRotateAndPanTrackedIndependently(t *testing.T) {
	pc := &recordingCapturer{}
	cc := NewCameraController(WithPointerCapturer(pc))

	steps := []struct {
		name     string
		event    Event
		mode     Mode
		captured bool
	}{
		{"press rotate", MouseButtonPressed{Button: common.MouseButtonSecondary}, ModeRotating, true},
		{"press pan", MouseButtonPressed{Button: common.MouseButtonMiddle}, ModeRotatingPanning, true},
		{"release rotate", MouseButtonReleased{Button: common.MouseButtonSecondary}, ModePanning, true},
		{"press rotate again", MouseButtonPressed{Button: common.MouseButtonSecondary}, ModeRotatingPanning, true},
		{"release pan", MouseButtonReleased{Button: common.MouseButtonMiddle}, ModeRotating, true},
		{"release rotate", MouseButtonReleased{Button: common.MouseButtonSecondary}, ModeIdle, false},
		{"primary ignored", MouseButtonPressed{Button: common.MouseButtonPrimary}, ModeIdle, false},
	}

	for _, s := range steps {
		cc.HandleEvent(s.event)
		if cc.Mode() != s.mode {
			t.Errorf("%s: Mode() = %v, want %v", s.name, cc.Mode(), s.mode)
		}
		if cc.PointerCaptured() != s.captured {
			t.Errorf("%s: PointerCaptured() = %v, want %v", s.name, cc.PointerCaptured(), s.captured)
		}
	}

	if len(pc.calls) != 2 || pc.calls[0] != true || pc.calls[1] != false {
		t.Errorf("capture calls = %v, want exactly [true false]", pc.calls)
	}
}

func TestMouseLookSignConvention(t *testing.T) {
	cc := NewCameraController(WithYaw(0), WithPitch(0), WithMouseSensitivity(0.5))

	cc.HandleEvent(MouseMoved{DX: 10, DY: 10})
	if cc.Yaw() != 0 || cc.Pitch() != 0 {
		t.Fatalf("motion while idle changed orientation: %v/%v", cc.Yaw(), cc.Pitch())
	}

	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})
	cc.HandleEvent(MouseMoved{DX: 10, DY: 4})
	if !mgl32.FloatEqual(cc.Yaw(), -5) {
		t.Errorf("Yaw() = %v, want -5", cc.Yaw())
	}
	if !mgl32.FloatEqual(cc.Pitch(), -2) {
		t.Errorf("Pitch() = %v, want -2", cc.Pitch())
	}
}

func TestPanMovesAlongRightAndUp(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithYaw(0), WithPitch(-45), WithPanSpeed(0.01))

	// yaw 0: right = cross(dir, up) = (0, -1, 0)
	if r := cc.Right(); !near(r, mgl32.Vec3{0, -1, 0}, 1e-5) {
		t.Fatalf("Right() = %v, want (0,-1,0)", r)
	}

	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonMiddle})
	cc.HandleEvent(MouseMoved{DX: 100, DY: 50})

	want := mgl32.Vec3{0, 1, 10.5}
	if got := cc.Position(); !near(got, want, 1e-4) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
	if cc.Yaw() != 0 || cc.Pitch() != -45 {
		t.Errorf("panning changed orientation: %v/%v", cc.Yaw(), cc.Pitch())
	}
}

func TestScrollAdjustsHeightInAnyMode(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithScrollSpeed(2))

	cc.HandleEvent(MouseScrolled{Amount: 1})
	if z := cc.Position().Z(); !mgl32.FloatEqual(z, 8) {
		t.Errorf("idle scroll: z = %v, want 8", z)
	}

	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})
	cc.HandleEvent(MouseScrolled{Amount: -1.5})
	if z := cc.Position().Z(); !mgl32.FloatEqual(z, 11) {
		t.Errorf("rotating scroll: z = %v, want 11", z)
	}
}

func TestMalformedEventsIgnored(t *testing.T) {
	cc := NewCameraController()
	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})
	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonMiddle})
	before := cc.Pose()

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for _, e := range []Event{
		MouseMoved{DX: nan, DY: 1},
		MouseMoved{DX: 1, DY: inf},
		MouseScrolled{Amount: nan},
		nil,
	} {
		cc.HandleEvent(e)
	}
	cc.Tick(nan, keys(common.KeyW))
	cc.Tick(-1, keys(common.KeyW))

	if cc.Pose() != before {
		t.Errorf("malformed input changed pose: %+v -> %+v", before, cc.Pose())
	}
}

func TestForwardMovementScenario(t *testing.T) {
	cc := NewCameraController(WithPosition(0, -15, 15), WithYaw(0), WithPitch(-45), WithMoveSpeed(5))
	start := cc.Position()

	for i := 0; i < 60; i++ {
		cc.Tick(1.0/60, keys(common.KeyW))
	}

	delta := cc.Position().Sub(start)
	if !mgl32.FloatEqualThreshold(delta.Len(), 5, 1e-3) {
		t.Errorf("displacement = %v (|%v|), want magnitude 5", delta, delta.Len())
	}
	if !near(delta.Normalize(), mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Errorf("displacement direction = %v, want horizontal forward (1,0,0)", delta.Normalize())
	}
	if cc.Position().Z() != start.Z() {
		t.Errorf("z changed from %v to %v", start.Z(), cc.Position().Z())
	}
}

func TestTickMovementKeys(t *testing.T) {
	tests := []struct {
		name string
		held KeyState
		want mgl32.Vec3
	}{
		{"back", keys(common.KeyS), mgl32.Vec3{-1, 0, 10}},
		{"strafe right", keys(common.KeyD), mgl32.Vec3{0, -1, 10}},
		{"strafe left", keys(common.KeyA), mgl32.Vec3{0, 1, 10}},
		{"up", keys(common.KeySpace), mgl32.Vec3{0, 0, 11}},
		{"down", keys(common.KeyLeftShift), mgl32.Vec3{0, 0, 9}},
		{"forward and back cancel", keys(common.KeyW, common.KeyS), mgl32.Vec3{0, 0, 10}},
		{"nothing held", nil, mgl32.Vec3{0, 0, 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cc := NewCameraController(WithPosition(0, 0, 10), WithYaw(0), WithPitch(-30), WithMoveSpeed(2))
			cc.Tick(0.5, tc.held)
			if got := cc.Position(); !near(got, tc.want, 1e-5) {
				t.Errorf("Position() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestArrowKeysAdjustLook(t *testing.T) {
	cc := NewCameraController(WithYaw(0), WithPitch(0))

	cc.Tick(1.0/60, keys(common.KeyLeft))
	cc.Tick(1.0/60, keys(common.KeyLeft))
	cc.Tick(1.0/60, keys(common.KeyRight))
	cc.Tick(1.0/60, keys(common.KeyUp))

	if cc.Yaw() != 1 {
		t.Errorf("Yaw() = %v, want 1", cc.Yaw())
	}
	if cc.Pitch() != 1 {
		t.Errorf("Pitch() = %v, want 1", cc.Pitch())
	}
}

func TestFixedStepIgnoresDeltaTime(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithYaw(90), WithPitch(0),
		WithMoveSpeed(0.15), WithDeltaTimeScaling(false))

	cc.Tick(0, keys(common.KeyW))
	cc.Tick(10, keys(common.KeyW))

	want := mgl32.Vec3{0, 0.3, 10}
	if got := cc.Position(); !near(got, want, 1e-5) {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestUpdateComposesEventAndTick(t *testing.T) {
	cc := NewCameraController(WithPosition(0, 0, 10), WithYaw(0), WithPitch(0), WithMoveSpeed(1))

	cc.Update(MouseScrolled{Amount: 1}, 1, keys(common.KeyW))
	want := mgl32.Vec3{1, 0, 8}
	if got := cc.Position(); !near(got, want, 1e-5) {
		t.Errorf("Position() = %v, want %v", got, want)
	}

	cc.Update(nil, 1, keys(common.KeyW))
	if got := cc.Position().X(); !mgl32.FloatEqual(got, 2) {
		t.Errorf("tick-only update: x = %v, want 2", got)
	}
}

func TestConfigSanitized(t *testing.T) {
	cfg := DefaultControllerConfig()
	cfg.PitchLimit = 95
	cfg.Bounds = Bounds{Min: mgl32.Vec3{10, 10, 10}, Max: mgl32.Vec3{-10, -10, 1}}
	cc := NewCameraController(WithConfig(cfg))

	got := cc.Config()
	if got.PitchLimit != 89 {
		t.Errorf("PitchLimit = %v, want 89", got.PitchLimit)
	}
	want := Bounds{Min: mgl32.Vec3{-10, -10, 1}, Max: mgl32.Vec3{10, 10, 10}}
	if got.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", got.Bounds, want)
	}
	if !got.Bounds.Contains(got.DefaultPose.Position) {
		t.Errorf("default pose %v outside bounds", got.DefaultPose.Position)
	}
}

func TestNonFiniteTunablesFallBackToDefaults(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	d := DefaultControllerConfig()

	tests := []struct {
		name   string
		mutate func(*ControllerConfig)
		check  func(ControllerConfig) bool
	}{
		{"nan mouse sensitivity", func(c *ControllerConfig) { c.MouseSensitivity = nan }, func(c ControllerConfig) bool { return c.MouseSensitivity == d.MouseSensitivity }},
		{"negative move speed", func(c *ControllerConfig) { c.MoveSpeed = -3 }, func(c ControllerConfig) bool { return c.MoveSpeed == d.MoveSpeed }},
		{"inf scroll speed", func(c *ControllerConfig) { c.ScrollSpeed = inf }, func(c ControllerConfig) bool { return c.ScrollSpeed == d.ScrollSpeed }},
		{"nan pan speed", func(c *ControllerConfig) { c.PanSpeed = nan }, func(c ControllerConfig) bool { return c.PanSpeed == d.PanSpeed }},
		{"negative look step", func(c *ControllerConfig) { c.LookStep = -1 }, func(c ControllerConfig) bool { return c.LookStep == d.LookStep }},
		{"nan bounds", func(c *ControllerConfig) { c.Bounds.Max[0] = nan }, func(c ControllerConfig) bool { return c.Bounds == d.Bounds }},
		{"nan default pose", func(c *ControllerConfig) { c.DefaultPose.Pitch = nan; c.DefaultPose.Position[1] = inf }, func(c ControllerConfig) bool { return c.DefaultPose == d.DefaultPose }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultControllerConfig()
			tt.mutate(&cfg)
			cc := NewCameraController(WithConfig(cfg))
			if !tt.check(cc.Config()) {
				t.Fatalf("config not repaired: %+v", cc.Config())
			}

			cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})
			cc.HandleEvent(MouseMoved{DX: 1, DY: 1})
			cc.HandleEvent(MouseScrolled{Amount: 1})
			cc.Tick(1.0/60, keys(common.KeyW, common.KeyLeft))
			assertInvariants(t, cc)
		})
	}
}

func TestExtremeDeltasKeepInvariants(t *testing.T) {
	cc := NewCameraController()
	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})
	for i := 0; i < 20; i++ {
		cc.HandleEvent(MouseMoved{DX: 3e38, DY: -3e38})
		assertInvariants(t, cc)
	}
	if y := cc.Yaw(); y <= -360 || y >= 360 {
		t.Errorf("Yaw() = %v, want wrapped into (-360, 360)", y)
	}
	cc.Tick(1.0/60, keys(common.KeyW))
	assertInvariants(t, cc)

	cc.HandleEvent(MouseButtonPressed{Button: common.MouseButtonMiddle})
	cc.HandleEvent(MouseMoved{DX: 3e38, DY: 3e38})
	cc.HandleEvent(MouseScrolled{Amount: 3e38})
	assertInvariants(t, cc)

	huge := NewCameraController(WithMoveSpeed(3e38), WithMouseSensitivity(3e38))
	huge.HandleEvent(MouseButtonPressed{Button: common.MouseButtonSecondary})
	huge.HandleEvent(MouseMoved{DX: 3e38, DY: 3e38})
	huge.Tick(1e30, keys(common.KeyW, common.KeyD, common.KeySpace))
	assertInvariants(t, huge)
}

func TestWrapYawKeepsDirection(t *testing.T) {
	for _, yaw := range []float32{0, 45, 359, 360, 725, -30, -1090} {
		w := WrapYaw(yaw)
		if w <= -360 || w >= 360 {
			t.Errorf("WrapYaw(%v) = %v, outside (-360, 360)", yaw, w)
		}
		if !near(direction(w, -30), direction(yaw, -30), 1e-4) {
			t.Errorf("WrapYaw(%v) = %v changes the view direction", yaw, w)
		}
	}
}

func TestBoundsContainsRejectsNaN(t *testing.T) {
	b := Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	nan := float32(math.NaN())
	if b.Contains(mgl32.Vec3{nan, 0, 0}) {
		t.Error("Contains accepted a NaN component")
	}
	if !b.Contains(mgl32.Vec3{1, -1, 0}) {
		t.Error("Contains rejected a point on the edge")
	}
	if got := b.Clamp(mgl32.Vec3{nan, 5, -5}); got != (mgl32.Vec3{-1, 1, -1}) {
		t.Errorf("Clamp = %v, want (-1, 1, -1)", got)
	}
}

// assertInvariants fails when pitch leaves the limit or the position leaves the bounds.
func assertInvariants(t *testing.T, cc CameraController) {
	t.Helper()
	cfg := cc.Config()
	if p := cc.Pitch(); !(p >= -cfg.PitchLimit && p <= cfg.PitchLimit) {
		t.Fatalf("pitch %v outside ±%v", p, cfg.PitchLimit)
	}
	if !common.Finite(cc.Yaw()) {
		t.Fatalf("yaw %v not finite", cc.Yaw())
	}
	if !cfg.Bounds.Contains(cc.Position()) {
		t.Fatalf("position %v outside bounds %+v", cc.Position(), cfg.Bounds)
	}
}

func TestModeString(t *testing.T) {
	tests := map[Mode]string{
		ModeIdle:            "idle",
		ModeRotating:        "rotating",
		ModePanning:         "panning",
		ModeRotatingPanning: "rotating+panning",
		Mode(42):            "unknown",
	}
	for m, want := range tests {
		if m.String() != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), m.String(), want)
		}
	}
}

// near reports whether a and b are within tol of each other.
func near(a, b mgl32.Vec3, tol float32) bool {
	return a.Sub(b).Len() <= tol
}
