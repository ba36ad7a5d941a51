package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// Engine walks a command tree depth-first and applies each leaf command to
// the robot pose, publishing every effect through the configured hooks before
// moving on.
//
// The engine is single-threaded by contract: one Run drives one goroutine,
// commands are never in flight concurrently, and the per-leaf delay is the
// only suspension point. Cancellation is polled from ctx at every suspension
// point and at the top of every loop level, so an abort unwinds through all
// repeat nesting without executing further commands.
type Engine struct {
	cellSize  float64
	stepDelay time.Duration
	hooks     domain.Hooks
	logger    *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithHooks registers the observer callbacks.
func WithHooks(hooks domain.Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger configures a logger for per-command debug output.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine. cellSize scales movement distances into
// canvas units; stepDelay is the pause before each leaf command takes effect,
// giving renderers time to animate the previous change.
func NewEngine(cellSize float64, stepDelay time.Duration, opts ...EngineOption) *Engine {
	e := &Engine{
		cellSize:  cellSize,
		stepDelay: stepDelay,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes program from the start pose and returns the final pose and
// recorded path. The path always begins with the start position. When ctx is
// cancelled mid-run, the returned pose and path are exactly the state reached
// at the moment of cancellation.
func (e *Engine) Run(ctx context.Context, program domain.Program, start domain.Pose) (domain.Pose, domain.Path) {
	pose := start
	path := domain.Path{{X: start.X, Y: start.Y}}
	e.exec(ctx, program, &pose, &path)
	return pose, path
}

// exec runs one command list. Reports false when cancellation was observed,
// which callers propagate so the abort unwinds every enclosing repeat level.
func (e *Engine) exec(ctx context.Context, list []domain.Command, pose *domain.Pose, path *domain.Path) bool {
	for _, cmd := range list {
		if ctx.Err() != nil {
			return false
		}

		if rep, isRepeat := cmd.(*domain.Repeat); isRepeat {
			for i := 0; i < rep.Count; i++ {
				if ctx.Err() != nil {
					return false
				}
				if !e.exec(ctx, rep.Body, pose, path) {
					return false
				}
			}
			continue
		}

		// The one legitimate suspension point: give the renderer time to
		// animate the previous change before the next effect lands.
		if err := Sleep(ctx, e.stepDelay); err != nil {
			return false
		}

		next, sample := domain.Apply(*pose, cmd, e.cellSize)
		*pose = next
		e.publishPose(ctx, next)
		if sample != nil {
			*path = append(*path, *sample)
			e.publishPath(ctx, *path)
		}
		e.publishCommand(ctx, cmd, next)

		e.logger.Debug("command applied",
			"kind", cmd.Kind(),
			"value", cmd.Value(),
			"x", next.X,
			"y", next.Y,
			"angle", next.Angle,
		)
	}
	return true
}

func (e *Engine) publishPose(ctx context.Context, pose domain.Pose) {
	if e.hooks.OnPoseChanged != nil {
		e.hooks.OnPoseChanged(ctx, pose)
	}
}

// publishPath hands consumers a snapshot so later appends cannot alias into
// whatever they retain.
func (e *Engine) publishPath(ctx context.Context, path domain.Path) {
	if e.hooks.OnPathChanged == nil {
		return
	}
	snapshot := make(domain.Path, len(path))
	copy(snapshot, path)
	e.hooks.OnPathChanged(ctx, snapshot)
}

func (e *Engine) publishCommand(ctx context.Context, cmd domain.Command, pose domain.Pose) {
	if e.hooks.OnCommandApplied == nil {
		return
	}
	e.hooks.OnCommandApplied(ctx, &domain.CommandEvent{
		Timestamp: time.Now(),
		CommandID: cmd.ID(),
		Kind:      cmd.Kind(),
		Value:     cmd.Value(),
		Pose:      pose,
	})
}

// Sleep pauses for d or until ctx is cancelled, whichever comes first. A
// non-positive d still observes cancellation before returning.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
