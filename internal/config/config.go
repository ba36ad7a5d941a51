// Package config loads the externally supplied simulation constants.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// Config holds every tunable the core treats as a parameter rather than a
// hardcoded behavior.
type Config struct {
	// CellSize scales grid units into canvas units.
	CellSize float64 `yaml:"cell_size"`

	// Canvas extents in canvas units. The origin pose sits at the center.
	CanvasWidth  float64 `yaml:"canvas_width"`
	CanvasHeight float64 `yaml:"canvas_height"`

	// StepDelay is the pause before each command's effect, giving renderers
	// time to animate.
	StepDelay time.Duration `yaml:"step_delay"`

	// StartDelay is the pause between a start request and the first command.
	StartDelay time.Duration `yaml:"start_delay"`

	// OriginAngle is the robot's heading after a reset, in degrees with
	// 0 = East. -90 points up in screen coordinates.
	OriginAngle float64 `yaml:"origin_angle"`
}

// Default returns the reference configuration: 40-unit cells, 500ms delays,
// origin at the canvas center facing up.
func Default() Config {
	return Config{
		CellSize:     40,
		CanvasWidth:  400,
		CanvasHeight: 400,
		StepDelay:    500 * time.Millisecond,
		StartDelay:   500 * time.Millisecond,
		OriginAngle:  -90,
	}
}

// Load reads a YAML config file, layering it over the defaults so partial
// files are valid.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %v", c.CellSize)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas extents must be positive, got %vx%v", c.CanvasWidth, c.CanvasHeight)
	}
	if c.StepDelay < 0 || c.StartDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}

// Origin returns the reset pose: canvas center, configured heading, pen down.
func (c Config) Origin() domain.Pose {
	return domain.Pose{
		X:       c.CanvasWidth / 2,
		Y:       c.CanvasHeight / 2,
		Angle:   c.OriginAngle,
		PenDown: true,
	}
}
