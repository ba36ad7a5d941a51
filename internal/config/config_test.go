package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botlab-edu/botlab/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 40.0, cfg.CellSize)
	assert.Equal(t, 500*time.Millisecond, cfg.StepDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.StartDelay)
	assert.Equal(t, -90.0, cfg.OriginAngle)
	require.NoError(t, cfg.Validate())
}

func TestOriginIsCanvasCenter(t *testing.T) {
	cfg := config.Default()
	origin := cfg.Origin()

	assert.Equal(t, cfg.CanvasWidth/2, origin.X)
	assert.Equal(t, cfg.CanvasHeight/2, origin.Y)
	assert.Equal(t, -90.0, origin.Angle, "robot starts facing up")
	assert.True(t, origin.PenDown)
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cell_size: 20\nstep_delay: 50ms\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.CellSize)
	assert.Equal(t, 50*time.Millisecond, cfg.StepDelay)
	// Untouched keys keep their defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.StartDelay)
	assert.Equal(t, 400.0, cfg.CanvasWidth)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "botlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cell_size: -1\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero cell size", func(c *config.Config) { c.CellSize = 0 }},
		{"negative canvas", func(c *config.Config) { c.CanvasHeight = -10 }},
		{"negative step delay", func(c *config.Config) { c.StepDelay = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
