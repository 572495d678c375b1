package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
// Raw platform input is translated into camera events and a held-key snapshot so
// that the controller never sees platform types.
type Window interface {
	camera.PointerCapturer

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetEventCallback sets the function receiving translated input events.
	// Key presses, mouse button transitions, relative mouse motion and scroll are delivered in
	// the order the platform reports them.
	//
	// Parameters:
	//   - callback: function receiving each event (or nil to disable)
	SetEventCallback(callback func(e camera.Event))

	// KeyState returns a snapshot of the keys currently held.
	//
	// Returns:
	//   - camera.KeyState: an independent copy of the held keys
	KeyState() camera.KeyState

	// PointerCaptured reports whether the cursor is locked for relative motion.
	PointerCaptured() bool

	// CursorPos returns the last known cursor position in framebuffer pixels, the
	// same units as Width and Height.
	CursorPos() (x, y float32)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, input tracking and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// held tracks keys between press and release.
	held camera.KeyState

	// cursorX, cursorY are the last reported cursor position in window coordinates.
	cursorX, cursorY float64

	// cursorScaleX, cursorScaleY convert window coordinates to framebuffer pixels.
	// They differ from 1 on high-DPI displays.
	cursorScaleX, cursorScaleY float64

	// hasCursor is false until the first cursor report, and after a capture toggle,
	// so the next report establishes a baseline instead of producing a jump.
	hasCursor bool

	// captured mirrors the platform cursor mode.
	captured bool

	// closeRequested stops the message loop on the next iteration.
	closeRequested bool

	logger *log.Logger

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onEvent receives translated input.
	onEvent func(e camera.Event)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	w.logger.Info("window created", "title", w.title, "width", w.width, "height", w.height)
	return w, nil
}

// newEngineWindow builds the platform-independent window state.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "oxy-rts",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
		held:      camera.KeyState{},
		logger:    log.Default(),

		cursorScaleX: 1,
		cursorScaleY: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = common.Clamp(w.width, w.minWidth, w.maxWidth)
	w.height = common.Clamp(w.height, w.minHeight, w.maxHeight)
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetEventCallback(callback func(e camera.Event)) {
	w.onEvent = callback
}

func (w *engineWindow) KeyState() camera.KeyState {
	return w.held.Clone()
}

func (w *engineWindow) SetPointerCaptured(captured bool) {
	if captured == w.captured {
		return
	}
	w.captured = captured
	w.hasCursor = false
	platformSetCursorCaptured(w, captured)
}

func (w *engineWindow) PointerCaptured() bool {
	return w.captured
}

func (w *engineWindow) CursorPos() (float32, float32) {
	return float32(w.cursorX * w.cursorScaleX), float32(w.cursorY * w.cursorScaleY)
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return !w.closeRequested && platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	w.closeRequested = true
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// --- platform-independent input translation ---

func (w *engineWindow) emit(e camera.Event) {
	if w.onEvent != nil {
		w.onEvent(e)
	}
}

// handleKey records a key transition. Only the initial press is emitted as an event;
// auto-repeat keeps the key held without re-emitting.
func (w *engineWindow) handleKey(key uint32, down, repeat bool) {
	if !down {
		delete(w.held, key)
		return
	}
	w.held[key] = true
	if !repeat {
		w.emit(camera.KeyPressed{Key: key})
	}
}

// handleButton emits a button transition with the cursor position at the time of the press.
func (w *engineWindow) handleButton(button uint32, down bool) {
	if down {
		x, y := w.CursorPos()
		w.emit(camera.MouseButtonPressed{Button: button, X: x, Y: y})
		return
	}
	w.emit(camera.MouseButtonReleased{Button: button})
}

// handleCursor converts absolute cursor positions into relative motion.
func (w *engineWindow) handleCursor(x, y float64) {
	if !w.hasCursor {
		w.cursorX, w.cursorY = x, y
		w.hasCursor = true
		return
	}
	dx, dy := x-w.cursorX, y-w.cursorY
	w.cursorX, w.cursorY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	w.emit(camera.MouseMoved{DX: float32(dx), DY: float32(dy)})
}

// handleScroll emits vertical wheel motion; positive is away from the user.
func (w *engineWindow) handleScroll(yoff float64) {
	if yoff == 0 {
		return
	}
	w.emit(camera.MouseScrolled{Amount: float32(yoff)})
}

func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

// setCursorScale records the framebuffer-to-window size ratio. Unusable sizes keep a scale of 1.
func (w *engineWindow) setCursorScale(windowWidth, windowHeight, fbWidth, fbHeight int) {
	w.cursorScaleX, w.cursorScaleY = 1, 1
	if windowWidth > 0 && fbWidth > 0 {
		w.cursorScaleX = float64(fbWidth) / float64(windowWidth)
	}
	if windowHeight > 0 && fbHeight > 0 {
		w.cursorScaleY = float64(fbHeight) / float64(windowHeight)
	}
}

// handleFocusLost releases every held key so movement does not stick after alt-tab.
func (w *engineWindow) handleFocusLost() {
	clear(w.held)
}
