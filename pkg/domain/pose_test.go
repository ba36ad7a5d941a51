package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botlab-edu/botlab/pkg/domain"
)

const geomTolerance = 1e-9

func TestApplyMovement(t *testing.T) {
	tests := []struct {
		name     string
		cmd      domain.Command
		start    domain.Pose
		wantX    float64
		wantY    float64
	}{
		{
			name:  "forward along east",
			cmd:   domain.NewMoveForward(2),
			start: domain.Pose{Angle: 0},
			wantX: 80,
			wantY: 0,
		},
		{
			name:  "forward along south (90 degrees, screen coords)",
			cmd:   domain.NewMoveForward(2),
			start: domain.Pose{Angle: 90},
			wantX: 0,
			wantY: 80,
		},
		{
			name:  "backward inverts the heading",
			cmd:   domain.NewMoveBackward(3),
			start: domain.Pose{Angle: 0},
			wantX: -120,
			wantY: 0,
		},
		{
			name:  "zero distance stays put",
			cmd:   domain.NewMoveForward(0),
			start: domain.Pose{X: 7, Y: 8, Angle: 45},
			wantX: 7,
			wantY: 8,
		},
		{
			name:  "negative distance is accepted",
			cmd:   domain.NewMoveForward(-1),
			start: domain.Pose{Angle: 0},
			wantX: -40,
			wantY: 0,
		},
		{
			name:  "unnormalized angle works through trig",
			cmd:   domain.NewMoveForward(1),
			start: domain.Pose{Angle: 360 + 90},
			wantX: 0,
			wantY: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, sample := domain.Apply(tt.start, tt.cmd, 40)

			assert.InDelta(t, tt.wantX, next.X, geomTolerance)
			assert.InDelta(t, tt.wantY, next.Y, geomTolerance)
			assert.Equal(t, tt.start.Angle, next.Angle, "movement never changes the heading")

			require.NotNil(t, sample, "movement always emits a path sample")
			assert.InDelta(t, next.X, sample.X, geomTolerance)
			assert.InDelta(t, next.Y, sample.Y, geomTolerance)
		})
	}
}

func TestApplyTurn(t *testing.T) {
	t.Run("right adds degrees", func(t *testing.T) {
		next, sample := domain.Apply(domain.Pose{Angle: 10}, domain.NewTurnRight(90), 40)
		assert.Equal(t, 100.0, next.Angle)
		assert.Nil(t, sample, "turns emit no path sample")
	})

	t.Run("left subtracts degrees", func(t *testing.T) {
		next, _ := domain.Apply(domain.Pose{Angle: 10}, domain.NewTurnLeft(90), 40)
		assert.Equal(t, -80.0, next.Angle)
	})

	t.Run("angle accumulates without normalization", func(t *testing.T) {
		pose := domain.Pose{}
		for i := 0; i < 5; i++ {
			pose, _ = domain.Apply(pose, domain.NewTurnRight(360), 40)
		}
		assert.Equal(t, 1800.0, pose.Angle)
	})

	t.Run("position is untouched", func(t *testing.T) {
		next, _ := domain.Apply(domain.Pose{X: 3, Y: 4}, domain.NewTurnRight(90), 40)
		assert.Equal(t, 3.0, next.X)
		assert.Equal(t, 4.0, next.Y)
	})
}

func TestApplyRepeat(t *testing.T) {
	// A repeat block has no geometric effect of its own.
	start := domain.Pose{X: 1, Y: 2, Angle: 3}
	next, sample := domain.Apply(start, domain.NewRepeat(5, domain.NewMoveForward(1)), 40)
	assert.Equal(t, start, next)
	assert.Nil(t, sample)
}

func TestApplyIsPure(t *testing.T) {
	cmd := domain.NewMoveForward(2)
	start := domain.Pose{Angle: 30}

	first, _ := domain.Apply(start, cmd, 40)
	second, _ := domain.Apply(start, cmd, 40)

	assert.Equal(t, first, second, "same inputs must yield same outputs")
	assert.Equal(t, 30.0, start.Angle, "input pose must not be mutated")
}
