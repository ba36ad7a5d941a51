package botlab

import (
	"context"
	"log/slog"
	"time"

	"github.com/botlab-edu/botlab/internal/logging"
	"github.com/botlab-edu/botlab/internal/runtime"
	"github.com/botlab-edu/botlab/pkg/domain"
)

// Simulator is the high-level entry point for the botlab library. It wraps
// the internal run controller and exposes the editing and run-control
// surface.
type Simulator struct {
	ctrl *runtime.Controller
}

type settings struct {
	cellSize   float64
	stepDelay  time.Duration
	startDelay time.Duration
	origin     domain.Pose
	hooks      domain.Hooks
	logger     *slog.Logger
}

// Option configures the Simulator.
type Option func(*settings)

// WithCellSize sets the canvas units per grid cell. Default 40.
func WithCellSize(size float64) Option {
	return func(s *settings) { s.cellSize = size }
}

// WithStepDelay sets the pause before each command's effect. Default 500ms.
func WithStepDelay(d time.Duration) Option {
	return func(s *settings) { s.stepDelay = d }
}

// WithStartDelay sets the pause between Start and the first command.
// Default 500ms.
func WithStartDelay(d time.Duration) Option {
	return func(s *settings) { s.startDelay = d }
}

// WithOrigin sets the reset pose. Default (200, 200) facing up (-90 degrees
// in the 0 = East convention).
func WithOrigin(origin domain.Pose) Option {
	return func(s *settings) { s.origin = origin }
}

// WithHooks registers the host's observer callbacks.
func WithHooks(hooks domain.Hooks) Option {
	return func(s *settings) { s.hooks = hooks }
}

// WithLogger configures structured logging. Default is a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// New creates an idle Simulator with an empty program.
func New(opts ...Option) *Simulator {
	s := settings{
		cellSize:   40,
		stepDelay:  500 * time.Millisecond,
		startDelay: 500 * time.Millisecond,
		origin:     domain.Pose{X: 200, Y: 200, Angle: -90, PenDown: true},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}

	ctrl := runtime.NewController(runtime.Params{
		CellSize:   s.cellSize,
		StepDelay:  s.stepDelay,
		StartDelay: s.startDelay,
		Origin:     s.origin,
	},
		runtime.WithControllerHooks(s.hooks),
		runtime.WithControllerLogger(s.logger),
	)
	return &Simulator{ctrl: ctrl}
}

// Insert appends cmd to the active container.
func (s *Simulator) Insert(cmd domain.Command) error { return s.ctrl.Insert(cmd) }

// InsertInto appends cmd to an explicit container id;
// domain.RootContainer targets the top level.
func (s *Simulator) InsertInto(containerID string, cmd domain.Command) error {
	return s.ctrl.InsertInto(containerID, cmd)
}

// Remove deletes a command (and its subtree) by id; unknown ids are no-ops.
func (s *Simulator) Remove(id string) { s.ctrl.Remove(id) }

// UpdateValue changes a command's numeric parameter; unknown ids are no-ops.
func (s *Simulator) UpdateValue(id string, value int) { s.ctrl.UpdateValue(id, value) }

// Find looks up a command at any nesting depth.
func (s *Simulator) Find(id string) (domain.Command, bool) { return s.ctrl.Find(id) }

// SetActiveContainer opens a repeat block for nested editing.
func (s *Simulator) SetActiveContainer(id string) error { return s.ctrl.SetActiveContainer(id) }

// ActiveContainer returns the currently open repeat block id, or
// domain.RootContainer.
func (s *Simulator) ActiveContainer() string { return s.ctrl.ActiveContainer() }

// SetProgram replaces the whole program as one snapshot. Intended for hosts
// that author programs elsewhere (script files, the dsl package).
func (s *Simulator) SetProgram(p domain.Program) {
	s.ctrl.SetProgram(context.Background(), p)
}

// Program returns the current immutable program snapshot.
func (s *Simulator) Program() domain.Program { return s.ctrl.Program() }

// Status returns the run status.
func (s *Simulator) Status() domain.RunStatus { return s.ctrl.Status() }

// Pose returns the latest published pose.
func (s *Simulator) Pose() domain.Pose { return s.ctrl.Pose() }

// Path returns the latest recorded trail.
func (s *Simulator) Path() domain.Path { return s.ctrl.Path() }

// Start begins a run; see runtime.Controller.Start for the rejection rules.
func (s *Simulator) Start(ctx context.Context) error { return s.ctrl.Start(ctx) }

// Stop requests cancellation of the running session.
func (s *Simulator) Stop() { s.ctrl.Stop() }

// Wait blocks until the current run finishes.
func (s *Simulator) Wait() { s.ctrl.Wait() }

// ClearAll discards the program and resets the robot to the origin.
func (s *Simulator) ClearAll(ctx context.Context) { s.ctrl.ClearAll(ctx) }

// Controller exposes the underlying run controller for in-module adapters.
func (s *Simulator) Controller() *runtime.Controller { return s.ctrl }
