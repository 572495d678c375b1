package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
	"github.com/Carmen-Shannon/oxy-rts/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rts/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
	"github.com/charmbracelet/log"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine. The window's
// event, resize and update callbacks are claimed by the engine, and it becomes the
// controller's pointer capturer.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets the camera. A camera without a controller gets the default controller.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithGrid sets the ground grid.
//
// Parameters:
//   - g: the grid
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithGrid(g *grid.Grid) EngineBuilderOption {
	return func(e *engine) {
		e.grid = g
	}
}

// WithRenderer sets the renderer that draws each frame.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithViewport sets the initial viewport size used for picking when no window is attached.
// A window's size takes precedence.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewport(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.viewportWidth, e.viewportHeight = width, height
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock replaces the frame clock.
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if now != nil {
			e.now = now
		}
	}
}
