package renderer

// PresentMode controls how frames reach the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank. The view only redraws lines, so this is the default.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately. Useful with the profiler to see the loop's real cost.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	if m == PresentModeUncapped {
		return "uncapped"
	}
	return "vsync"
}

// MSAASampleCount is the multisample count of the color and depth attachments.
// WebGPU guarantees 1 and 4; the line pipeline is built for one of those.
type MSAASampleCount uint32

const (
	// MSAAOff draws aliased grid lines.
	MSAAOff MSAASampleCount = 1

	// MSAA4x smooths the thin grid lines at shallow camera pitch. This is the default.
	MSAA4x MSAASampleCount = 4
)

// supported reports whether every adapter can render with this sample count.
func (c MSAASampleCount) supported() bool {
	return c == MSAAOff || c == MSAA4x
}
