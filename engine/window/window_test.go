package window

import (
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
)

func recordEvents(w *engineWindow) *[]camera.Event {
	var events []camera.Event
	w.SetEventCallback(func(e camera.Event) {
		events = append(events, e)
	})
	return &events
}

func TestNewEngineWindowOptions(t *testing.T) {
	w := newEngineWindow(
		WithTitle("test"),
		WithWidth(5000),
		WithHeight(100),
		WithMaxWidth(1920),
		WithMinHeight(240),
	)

	if w.title != "test" {
		t.Errorf("title = %q, want test", w.title)
	}
	if w.Width() != 1920 || w.Height() != 240 {
		t.Errorf("size = %dx%d, want clamped 1920x240", w.Width(), w.Height())
	}
	if w.IsRunning() {
		t.Error("window without a platform window should not report running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("SurfaceDescriptor should be nil without a platform window")
	}
	if err := w.Close(); err == nil {
		t.Error("Close without a platform window should fail")
	}
}

func TestKeyTracking(t *testing.T) {
	w := newEngineWindow()
	events := recordEvents(w)

	w.handleKey(common.KeyW, true, false)
	w.handleKey(common.KeyW, true, true)
	w.handleKey(common.KeyA, true, false)

	keys := w.KeyState()
	if !keys.Held(common.KeyW) || !keys.Held(common.KeyA) {
		t.Fatalf("KeyState() = %v, want W and A held", keys)
	}

	// The snapshot is a copy.
	keys[common.KeyD] = true
	if w.KeyState().Held(common.KeyD) {
		t.Error("mutating the snapshot leaked into the window")
	}

	w.handleKey(common.KeyW, false, false)
	if w.KeyState().Held(common.KeyW) {
		t.Error("W still held after release")
	}

	want := []camera.Event{camera.KeyPressed{Key: common.KeyW}, camera.KeyPressed{Key: common.KeyA}}
	if !reflect.DeepEqual(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}

	w.handleFocusLost()
	if len(w.KeyState()) != 0 {
		t.Errorf("focus loss should release all keys, got %v", w.KeyState())
	}
}

func TestCursorProducesRelativeMotion(t *testing.T) {
	w := newEngineWindow()
	events := recordEvents(w)

	w.handleCursor(100, 100)
	w.handleCursor(110, 95)
	w.handleCursor(110, 95)
	w.handleCursor(90, 100)

	want := []camera.Event{
		camera.MouseMoved{DX: 10, DY: -5},
		camera.MouseMoved{DX: -20, DY: 5},
	}
	if !reflect.DeepEqual(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
	if x, y := w.CursorPos(); x != 90 || y != 100 {
		t.Errorf("CursorPos() = (%v, %v), want (90, 100)", x, y)
	}
}

func TestCaptureResetsMotionBaseline(t *testing.T) {
	w := newEngineWindow()
	events := recordEvents(w)

	w.handleCursor(10, 10)
	w.SetPointerCaptured(true)
	if !w.PointerCaptured() {
		t.Fatal("PointerCaptured() = false after capture")
	}

	// Capturing re-centres the platform cursor; the first report is only a baseline.
	w.handleCursor(640, 360)
	w.handleCursor(645, 360)

	want := []camera.Event{camera.MouseMoved{DX: 5, DY: 0}}
	if !reflect.DeepEqual(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}

	w.SetPointerCaptured(false)
	if w.PointerCaptured() {
		t.Error("PointerCaptured() = true after release")
	}
}

func TestButtonsAndScroll(t *testing.T) {
	w := newEngineWindow()
	events := recordEvents(w)

	w.handleCursor(320, 240)
	w.handleButton(common.MouseButtonPrimary, true)
	w.handleButton(common.MouseButtonPrimary, false)
	w.handleButton(common.MouseButtonMiddle, true)
	w.handleScroll(0)
	w.handleScroll(-1.5)

	want := []camera.Event{
		camera.MouseButtonPressed{Button: common.MouseButtonPrimary, X: 320, Y: 240},
		camera.MouseButtonReleased{Button: common.MouseButtonPrimary},
		camera.MouseButtonPressed{Button: common.MouseButtonMiddle, X: 320, Y: 240},
		camera.MouseScrolled{Amount: -1.5},
	}
	if !reflect.DeepEqual(*events, want) {
		t.Errorf("events = %v, want %v", *events, want)
	}
}

func TestResizeCallback(t *testing.T) {
	w := newEngineWindow()
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) {
		gotW, gotH = width, height
	})

	w.handleResize(800, 600)
	if gotW != 800 || gotH != 600 || w.Width() != 800 || w.Height() != 600 {
		t.Errorf("resize = %dx%d, window %dx%d, want 800x600", gotW, gotH, w.Width(), w.Height())
	}
}

func TestNoCallbackIsSafe(t *testing.T) {
	w := newEngineWindow()
	w.handleKey(common.KeyR, true, false)
	w.handleButton(common.MouseButtonSecondary, true)
	w.handleCursor(1, 1)
	w.handleCursor(2, 2)
	w.handleScroll(1)
	w.handleResize(640, 480)
	w.RequestClose()
	if w.IsRunning() {
		t.Error("IsRunning() after RequestClose")
	}
}

func TestCursorScaledToFramebufferPixels(t *testing.T) {
	tests := []struct {
		name             string
		winW, winH       int
		fbW, fbH         int
		cursorX, cursorY float64
		wantX, wantY     float32
	}{
		{"standard display", 1280, 720, 1280, 720, 640, 360, 640, 360},
		{"2x display centre", 640, 360, 1280, 720, 320, 180, 640, 360},
		{"1.5x display corner", 800, 600, 1200, 900, 800, 600, 1200, 900},
		{"minimized keeps scale 1", 0, 0, 0, 0, 10, 20, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEngineWindow()
			events := recordEvents(w)
			w.setCursorScale(tt.winW, tt.winH, tt.fbW, tt.fbH)

			w.handleCursor(tt.cursorX, tt.cursorY)
			w.handleButton(common.MouseButtonPrimary, true)

			if len(*events) != 1 {
				t.Fatalf("got %d events, want 1", len(*events))
			}
			press, ok := (*events)[0].(camera.MouseButtonPressed)
			if !ok {
				t.Fatalf("event = %#v, want MouseButtonPressed", (*events)[0])
			}
			if press.X != tt.wantX || press.Y != tt.wantY {
				t.Errorf("press at (%v, %v), want (%v, %v)", press.X, press.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestCursorScaleLeavesMotionInWindowUnits(t *testing.T) {
	w := newEngineWindow()
	events := recordEvents(w)
	w.setCursorScale(640, 360, 1280, 720)

	w.handleCursor(100, 100)
	w.handleCursor(103, 98)

	want := []camera.Event{camera.MouseMoved{DX: 3, DY: -2}}
	if !reflect.DeepEqual(*events, want) {
		t.Errorf("events = %#v, want %#v", *events, want)
	}
}
