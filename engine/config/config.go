// Package config provides YAML-based configuration for the RTS view: window size,
// camera tunables, projection, the ground grid and engine switches.
package config

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/grid"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Grid       GridConfig       `yaml:"grid"`
	Engine     EngineConfig     `yaml:"engine"`
}

// WindowConfig defines the initial window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PoseConfig is a camera pose in YAML form.
type PoseConfig struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
}

// CameraConfig defines the controller tunables.
type CameraConfig struct {
	MoveSpeed        float32    `yaml:"move_speed"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	ScrollSpeed      float32    `yaml:"scroll_speed"`
	PanSpeed         float32    `yaml:"pan_speed"`
	LookStep         float32    `yaml:"look_step"`
	PitchLimit       float32    `yaml:"pitch_limit"`
	DeltaTimeScaling bool       `yaml:"delta_time_scaling"`
	BoundsMin        [3]float32 `yaml:"bounds_min"`
	BoundsMax        [3]float32 `yaml:"bounds_max"`
	DefaultPose      PoseConfig `yaml:"default_pose"`
}

// ProjectionConfig defines the perspective projection.
type ProjectionConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// ZoneConfig is an inclusive rectangle of restricted cells.
type ZoneConfig struct {
	Min [2]int `yaml:"min"`
	Max [2]int `yaml:"max"`
}

// GridConfig defines the ground grid.
type GridConfig struct {
	Size       int          `yaml:"size"`
	Restricted []ZoneConfig `yaml:"restricted"`
}

// EngineConfig defines engine-wide switches.
type EngineConfig struct {
	LogLevel         string     `yaml:"log_level"`
	Profiling        bool       `yaml:"profiling"`
	VSync            bool       `yaml:"vsync"`
	SoftwareRenderer bool       `yaml:"software_renderer"`
	ClearColor       [4]float64 `yaml:"clear_color"`
}

var (
	// ErrInvalidWindow is returned when the window has no area.
	ErrInvalidWindow = errors.New("config: window width and height must be positive")
	// ErrInvalidProjection is returned for an unusable fov or clip range.
	ErrInvalidProjection = errors.New("config: projection needs 0 < fov < 180 and 0 < near < far")
	// ErrInvalidGrid is returned for a non-positive grid size.
	ErrInvalidGrid = errors.New("config: grid size must be positive")
	// ErrInvalidCamera is returned for negative or non-finite camera tunables.
	ErrInvalidCamera = errors.New("config: camera speeds must be finite and non-negative, pitch_limit below 90, bounds and pose finite")
)

// Validate checks the values that cannot be repaired by clamping.
//
// Returns:
//   - error: a joined error describing every invalid section, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height))
	}
	p := c.Projection
	if !(p.FovDegrees > 0 && p.FovDegrees < 180) || !(p.Near > 0 && p.Near < p.Far) {
		errs = append(errs, fmt.Errorf("%w: fov=%v near=%v far=%v", ErrInvalidProjection, p.FovDegrees, p.Near, p.Far))
	}
	if c.Grid.Size <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidGrid, c.Grid.Size))
	}
	if err := c.Camera.validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validate rejects camera values that would poison the controller state.
// Zero speeds are allowed and mean "use the default".
func (cc CameraConfig) validate() error {
	rates := []struct {
		name  string
		value float32
	}{
		{"move_speed", cc.MoveSpeed},
		{"mouse_sensitivity", cc.MouseSensitivity},
		{"scroll_speed", cc.ScrollSpeed},
		{"pan_speed", cc.PanSpeed},
		{"look_step", cc.LookStep},
	}
	for _, r := range rates {
		if !common.Finite(r.value) || r.value < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidCamera, r.name, r.value)
		}
	}
	if !(cc.PitchLimit >= 0 && cc.PitchLimit < 90) {
		return fmt.Errorf("%w: pitch_limit=%v", ErrInvalidCamera, cc.PitchLimit)
	}
	values := []float32{cc.DefaultPose.Yaw, cc.DefaultPose.Pitch}
	values = append(values, cc.BoundsMin[:]...)
	values = append(values, cc.BoundsMax[:]...)
	values = append(values, cc.DefaultPose.Position[:]...)
	for _, v := range values {
		if !common.Finite(v) {
			return fmt.Errorf("%w: bounds_min=%v bounds_max=%v default_pose=%+v", ErrInvalidCamera, cc.BoundsMin, cc.BoundsMax, cc.DefaultPose)
		}
	}
	return nil
}

// ControllerConfig converts the camera section into controller tunables.
// Zero speeds and limits fall back to the controller defaults.
//
// Returns:
//   - camera.ControllerConfig: the controller configuration
func (c Config) ControllerConfig() camera.ControllerConfig {
	d := camera.DefaultControllerConfig()
	cc := c.Camera

	cfg := d
	cfg.MoveSpeed = common.Coalesce(cc.MoveSpeed, d.MoveSpeed)
	cfg.MouseSensitivity = common.Coalesce(cc.MouseSensitivity, d.MouseSensitivity)
	cfg.ScrollSpeed = common.Coalesce(cc.ScrollSpeed, d.ScrollSpeed)
	cfg.PanSpeed = common.Coalesce(cc.PanSpeed, d.PanSpeed)
	cfg.LookStep = common.Coalesce(cc.LookStep, d.LookStep)
	cfg.PitchLimit = common.Coalesce(cc.PitchLimit, d.PitchLimit)
	cfg.UseDeltaTimeScaling = cc.DeltaTimeScaling

	if cc.BoundsMin != cc.BoundsMax {
		cfg.Bounds = camera.Bounds{Min: mgl32.Vec3(cc.BoundsMin), Max: mgl32.Vec3(cc.BoundsMax)}
	}
	cfg.DefaultPose = camera.Pose{
		Position: mgl32.Vec3(cc.DefaultPose.Position),
		Yaw:      cc.DefaultPose.Yaw,
		Pitch:    cc.DefaultPose.Pitch,
	}
	return cfg
}

// CameraOptions returns the projection options for camera.NewCamera.
// The aspect ratio follows the window size.
//
// Returns:
//   - []camera.CameraBuilderOption: fov, aspect, near and far options
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	opts := []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(common.Coalesce(c.Projection.FovDegrees, 45))),
		camera.WithNear(common.Coalesce(c.Projection.Near, 0.1)),
		camera.WithFar(common.Coalesce(c.Projection.Far, 100)),
	}
	if c.Window.Width > 0 && c.Window.Height > 0 {
		opts = append(opts, camera.WithAspect(float32(c.Window.Width)/float32(c.Window.Height)))
	}
	return opts
}

// GridOptions returns the options for grid.NewGrid.
//
// Returns:
//   - []grid.GridOption: size and restricted zone options
func (c Config) GridOptions() []grid.GridOption {
	zones := make([]grid.Zone, 0, len(c.Grid.Restricted))
	for _, z := range c.Grid.Restricted {
		zones = append(zones, grid.Zone{
			MinX: min(z.Min[0], z.Max[0]), MinY: min(z.Min[1], z.Max[1]),
			MaxX: max(z.Min[0], z.Max[0]), MaxY: max(z.Min[1], z.Max[1]),
		})
	}
	return []grid.GridOption{
		grid.WithSize(common.Coalesce(c.Grid.Size, 30)),
		grid.WithRestrictedZones(zones...),
	}
}

// Marshal renders the configuration as YAML.
//
// Returns:
//   - []byte: the YAML document
//   - error: an error if encoding fails
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
