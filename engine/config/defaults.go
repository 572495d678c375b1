package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/oxy-rts.yaml
var defaultYAML []byte

// Default returns the embedded default configuration.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return fallbackConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// fallbackConfig mirrors defaults/oxy-rts.yaml.
func fallbackConfig() Config {
	return Config{
		Window: WindowConfig{Title: "oxy-rts", Width: 1280, Height: 720},
		Camera: CameraConfig{
			MoveSpeed:        5,
			MouseSensitivity: 0.1,
			ScrollSpeed:      2,
			PanSpeed:         0.01,
			LookStep:         1,
			PitchLimit:       89,
			DeltaTimeScaling: true,
			BoundsMin:        [3]float32{-50, -50, 1},
			BoundsMax:        [3]float32{50, 50, 50},
			DefaultPose:      PoseConfig{Position: [3]float32{0, -15, 15}, Yaw: 0, Pitch: -45},
		},
		Projection: ProjectionConfig{FovDegrees: 45, Near: 0.1, Far: 100},
		Grid: GridConfig{
			Size: 30,
			Restricted: []ZoneConfig{
				{Min: [2]int{5, 5}, Max: [2]int{7, 7}},
				{Min: [2]int{25, 25}, Max: [2]int{27, 27}},
			},
		},
		Engine: EngineConfig{
			LogLevel:   "info",
			VSync:      true,
			ClearColor: [4]float64{0.1, 0.2, 0.3, 1.0},
		},
	}
}
