package engine

import (
	"errors"
	"time"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
	"github.com/Carmen-Shannon/oxy-rts/engine/picker"
	"github.com/Carmen-Shannon/oxy-rts/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rts/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
	"github.com/charmbracelet/log"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine: no window to run")

// engine implements the Engine interface.
// Everything runs on the thread that calls Run: window messages, input, camera
// updates and rendering share one loop, so no state here is locked.
type engine struct {
	window   window.Window
	camera   camera.Camera
	grid     *grid.Grid
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	logger *log.Logger

	viewportWidth  int
	viewportHeight int

	selected     picker.GridCell
	hasSelection bool
	linesDirty   bool

	running  bool
	now      func() time.Time
	lastTick time.Time

	tickCallback func(deltaTime float32)
	pickCallback func(cell picker.GridCell, restricted bool)
}

// Engine is the main entry point for the RTS view.
// It routes window input to the camera controller, turns primary clicks into grid
// picks, advances the camera each frame and keeps the renderer's camera block and
// line list current.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	Window() window.Window

	// Camera returns the camera that owns the projection and the controller.
	Camera() camera.Camera

	// Grid returns the ground grid picks are resolved against.
	Grid() *grid.Grid

	// Renderer returns the renderer, or nil for a headless engine.
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame after the camera update.
	//
	// Parameters:
	//   - callback: function receiving the frame's delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetPickCallback registers the function called after every primary click that hits
	// a cell on the grid.
	//
	// Parameters:
	//   - callback: function receiving the picked cell and whether it is restricted
	SetPickCallback(callback func(cell picker.GridCell, restricted bool))

	// HandleEvent applies one input event. A primary button press picks the cell under
	// the cursor; every event is then passed to the camera controller.
	//
	// Parameters:
	//   - e: the input event
	HandleEvent(e camera.Event)

	// Step advances the camera by one frame of held-key movement and refreshes its matrices.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous step
	//   - keys: snapshot of held keys
	Step(deltaTime float32, keys camera.KeyState)

	// Pick resolves a screen position to a grid cell using the current camera.
	//
	// Parameters:
	//   - x, y: cursor position in pixels, origin top-left
	//
	// Returns:
	//   - picker.GridCell: the cell under the cursor
	//   - bool: true if the ray hit the ground inside the grid
	Pick(x, y float32) (picker.GridCell, bool)

	// Selected returns the most recently picked cell.
	//
	// Returns:
	//   - picker.GridCell: the selected cell
	//   - bool: false if nothing has been picked
	Selected() (picker.GridCell, bool)

	// ClearSelection drops the selected cell.
	ClearSelection()

	// Resize updates the viewport, the camera aspect ratio and the renderer surface.
	// A zero dimension keeps the previous aspect ratio.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	Resize(width, height int)

	// Run drives the window's message loop until the window closes or Quit is called.
	//
	// Returns:
	//   - error: ErrNoWindow if the engine has no window
	Run() error

	// Quit asks the message loop to stop. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Without options the engine is headless with the default camera, controller and grid.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profilingEnabled: false,
		logger:           log.Default(),
		viewportWidth:    1280,
		viewportHeight:   720,
		now:              time.Now,
		linesDirty:       true,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.camera == nil {
		e.camera = camera.NewCamera(camera.WithController(camera.NewCameraController(camera.WithLogger(e.logger))))
	}
	if e.camera.Controller() == nil {
		e.camera.SetController(camera.NewCameraController(camera.WithLogger(e.logger)))
	}
	if e.grid == nil {
		e.grid = grid.NewGrid()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.camera.Controller().SetPointerCapturer(e.window)
		e.window.SetEventCallback(e.HandleEvent)
		e.window.SetResizeCallback(e.Resize)
		e.window.SetUpdateCallback(e.frame)
		e.viewportWidth, e.viewportHeight = e.window.Width(), e.window.Height()
	}
	if e.viewportWidth > 0 && e.viewportHeight > 0 {
		e.camera.SetAspect(float32(e.viewportWidth) / float32(e.viewportHeight))
	}
	e.camera.Update()

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Grid() *grid.Grid {
	return e.grid
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetPickCallback(callback func(cell picker.GridCell, restricted bool)) {
	e.pickCallback = callback
}

func (e *engine) HandleEvent(ev camera.Event) {
	if press, ok := ev.(camera.MouseButtonPressed); ok && press.Button == common.MouseButtonPrimary {
		e.selectAt(press.X, press.Y)
	}
	e.camera.Controller().HandleEvent(ev)
}

// selectAt picks the cell under the cursor and makes it the selection.
// Misses keep the previous selection.
func (e *engine) selectAt(x, y float32) {
	cell, ok := e.Pick(x, y)
	if !ok {
		e.logger.Debug("pick missed the grid", "x", x, "y", y)
		return
	}
	restricted := e.grid.IsRestricted(cell)
	e.selected, e.hasSelection = cell, true
	e.linesDirty = true
	e.logger.Info("cell picked", "x", cell.X, "y", cell.Y, "restricted", restricted)
	if e.pickCallback != nil {
		e.pickCallback(cell, restricted)
	}
}

func (e *engine) Pick(x, y float32) (picker.GridCell, bool) {
	e.camera.Update()
	cell, ok := e.camera.Pick(x, y, e.viewportWidth, e.viewportHeight, e.grid.Offset())
	if !ok || !e.grid.Contains(cell) {
		return picker.GridCell{}, false
	}
	return cell, true
}

func (e *engine) Selected() (picker.GridCell, bool) {
	return e.selected, e.hasSelection
}

func (e *engine) ClearSelection() {
	if e.hasSelection {
		e.hasSelection = false
		e.linesDirty = true
	}
}

func (e *engine) Step(deltaTime float32, keys camera.KeyState) {
	e.camera.Controller().Tick(deltaTime, keys)
	e.camera.Update()
}

func (e *engine) Resize(width, height int) {
	e.viewportWidth, e.viewportHeight = width, height
	if width > 0 && height > 0 {
		e.camera.SetAspect(float32(width) / float32(height))
		e.camera.Update()
	}
	if e.renderer != nil {
		if err := e.renderer.Resize(width, height); err != nil {
			e.logger.Error("renderer resize failed", "width", width, "height", height, "err", err)
		}
	}
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.running = true
	e.lastTick = e.now()
	e.logger.Info("engine running", "viewport_width", e.viewportWidth, "viewport_height", e.viewportHeight)
	e.window.ProcessMessages()
	e.running = false
	return nil
}

// Quit asks the window loop to stop. Repeated calls are no-ops.
func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
	e.running = false
}

// frame runs one iteration of the main loop: movement, the tick callback,
// rendering and profiling.
func (e *engine) frame() {
	current := e.now()
	dt := float32(current.Sub(e.lastTick).Seconds())
	e.lastTick = current

	e.Step(dt, e.window.KeyState())

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	e.render()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// render uploads the camera block, rebuilds the line list when the selection
// changed and draws one frame.
func (e *engine) render() {
	if e.renderer == nil {
		return
	}
	if e.linesDirty {
		var sel *picker.GridCell
		if e.hasSelection {
			sel = &e.selected
		}
		if err := e.renderer.SetLines(renderer.GridLines(e.grid, sel)); err != nil {
			e.logger.Error("failed to upload grid lines", "err", err)
		} else {
			e.linesDirty = false
		}
	}
	e.renderer.UpdateCamera(e.camera.Uniform())
	if err := e.renderer.RenderFrame(); err != nil {
		e.logger.Warn("frame dropped", "err", err)
	}
}
