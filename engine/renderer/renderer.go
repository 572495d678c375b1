package renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/grid_lines.wgsl
var gridLinesSource string

// GridLinesShaderSource returns the complete WGSL source of the line pipeline,
// the camera uniform struct followed by the line shader.
func GridLinesShaderSource() string {
	return camera.GPUCameraUniformSource + "\n" + gridLinesSource
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend wgpuRendererBackend

	width  int
	height int

	logger *log.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer draws the RTS view: a cleared frame with the ground grid, restricted zone
// outlines and the selected cell as colored lines, projected by the camera uniform.
//
// The Renderer hides the GPU backend behind a small frame-oriented API. It is owned by
// the main loop and must be used from the thread that created it.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	// A zero size (minimized window) suspends rendering until the next non-zero resize.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface attachments could not be recreated
	Resize(width, height int) error

	// SetClearColor sets the background color.
	SetClearColor(r, g, b, a float64)

	// UpdateCamera uploads the camera block used by the line shader.
	//
	// Parameters:
	//   - u: the camera uniform for this frame
	UpdateCamera(u camera.GPUCameraUniform)

	// SetLines replaces the line list drawn each frame.
	//
	// Parameters:
	//   - lines: vertices in consecutive pairs
	//
	// Returns:
	//   - error: an error if the vertex buffer could not be allocated
	SetLines(lines []LineVertex) error

	// RenderFrame clears, draws the line list and presents one frame.
	// Does nothing while suspended.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	RenderFrame() error

	// Suspended reports whether rendering is paused for a zero-size surface.
	Suspended() bool

	// Release frees all GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer on the given surface and registers the line pipeline.
//
// Parameters:
//   - surfaceDescriptor: the window's surface descriptor
//   - width, height: initial framebuffer size in pixels
//   - options: functional options applied before the backend is created
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if the adapter, device, surface or pipeline could not be created
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("renderer needs a surface descriptor")
	}
	r := newRenderer(options...)

	backend, err := newWGPURendererBackend(surfaceDescriptor, r.forceFallbackAdapter, r.sampleCount)
	if err != nil {
		return nil, err
	}
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)

	if err := r.Resize(width, height); err != nil {
		r.Release()
		return nil, err
	}
	if err := r.backend.RegisterLinePipeline(GridLinesShaderSource(), uint64((&camera.GPUCameraUniform{}).Size())); err != nil {
		r.Release()
		return nil, fmt.Errorf("failed to register line pipeline: %w", err)
	}

	r.logger.Info("renderer ready",
		"width", width, "height", height,
		"msaa", uint32(r.sampleCount), "present", r.presentMode,
		"software", r.forceFallbackAdapter)
	return r, nil
}

// newRenderer applies defaults and options without touching the GPU.
func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		logger:      log.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Resize(width, height int) error {
	r.width, r.height = width, height
	if r.Suspended() {
		r.logger.Debug("renderer suspended", "width", width, "height", height)
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface %dx%d: %w", width, height, err)
	}
	return nil
}

func (r *renderer) SetClearColor(red, green, blue, alpha float64) {
	r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	if r.backend != nil {
		r.backend.SetClearColor(r.clearColor)
	}
}

func (r *renderer) UpdateCamera(u camera.GPUCameraUniform) {
	r.backend.WriteCameraUniform(u.Marshal())
}

func (r *renderer) SetLines(lines []LineVertex) error {
	return r.backend.WriteLineVertices(MarshalLineVertices(lines), len(lines))
}

func (r *renderer) RenderFrame() error {
	if r.Suspended() {
		return nil
	}
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	drawErr := r.backend.DrawLines()
	r.backend.EndFrame()
	r.backend.Present()
	return drawErr
}

func (r *renderer) Suspended() bool {
	return r.width <= 0 || r.height <= 0
}

func (r *renderer) Release() {
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
