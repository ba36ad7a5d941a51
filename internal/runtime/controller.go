package runtime

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// Params holds the externally supplied constants of a simulation.
type Params struct {
	// CellSize scales grid units into canvas units.
	CellSize float64
	// StepDelay is the pause before each leaf command takes effect.
	StepDelay time.Duration
	// StartDelay is the pause between a Start call and the first command.
	StartDelay time.Duration
	// Origin is the pose the robot is reset to at the start of each run.
	Origin domain.Pose
}

// Controller owns the current program, the robot state, and the single run
// session. It is the inbound surface for editing hosts (insert, remove,
// update, find, active container) and for run control (start, stop, clear).
//
// All methods are safe for concurrent use. Exactly one run is in progress at
// a time: Start refuses while a run is active, with no queuing.
type Controller struct {
	params Params
	engine *Engine
	hooks  domain.Hooks
	logger *slog.Logger

	mu              sync.Mutex
	program         domain.Program
	activeContainer string
	status          domain.RunStatus
	pose            domain.Pose
	path            domain.Path
	cancel          context.CancelFunc
	done            chan struct{}
}

// ControllerOption configures the Controller.
type ControllerOption func(*Controller)

// WithControllerHooks registers the observer callbacks for pose, path and
// run-state notifications.
func WithControllerHooks(hooks domain.Hooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithControllerLogger configures a logger for lifecycle events.
func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates an idle controller with an empty program and the
// robot at the origin.
func NewController(params Params, opts ...ControllerOption) *Controller {
	c := &Controller{
		params: params,
		status: domain.StatusIdle,
		pose:   params.Origin,
		path:   domain.Path{{X: params.Origin.X, Y: params.Origin.Y}},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	// The engine publishes through a recorder first so the controller's view
	// of pose and path tracks the run exactly, then fans out to the host.
	recorder := domain.Hooks{
		OnPoseChanged: func(_ context.Context, p domain.Pose) {
			c.mu.Lock()
			c.pose = p
			c.mu.Unlock()
		},
		OnPathChanged: func(_ context.Context, p domain.Path) {
			c.mu.Lock()
			c.path = p
			c.mu.Unlock()
		},
	}
	c.engine = NewEngine(params.CellSize, params.StepDelay,
		WithHooks(recorder.Merge(c.hooks)),
		WithLogger(c.logger),
	)
	return c
}

// Program returns the current program snapshot. Programs are immutable, so
// the returned value never changes under the caller.
func (c *Controller) Program() domain.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.program
}

// Status returns the current run status.
func (c *Controller) Status() domain.RunStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Pose returns the robot's latest published pose.
func (c *Controller) Pose() domain.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pose
}

// Path returns the latest recorded trail.
func (c *Controller) Path() domain.Path {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// ActiveContainer returns the id of the repeat block currently open for
// editing, or domain.RootContainer when edits target the top level.
func (c *Controller) ActiveContainer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeContainer
}

// SetActiveContainer opens a repeat block for nested editing. The id must
// resolve to an existing repeat node; domain.RootContainer reverts edits to
// the top level.
func (c *Controller) SetActiveContainer(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == domain.RootContainer {
		c.activeContainer = domain.RootContainer
		return nil
	}
	cmd, ok := domain.Find(c.program, id)
	if !ok {
		return domain.ErrInvalidContainer
	}
	if _, isRepeat := cmd.(*domain.Repeat); !isRepeat {
		return domain.ErrInvalidContainer
	}
	c.activeContainer = id
	return nil
}

// Insert appends cmd to the currently active container.
func (c *Controller) Insert(cmd domain.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := domain.Insert(c.program, c.activeContainer, cmd)
	if err != nil {
		return err
	}
	c.program = next
	return nil
}

// InsertInto appends cmd to an explicit container, bypassing the active
// container reference.
func (c *Controller) InsertInto(containerID string, cmd domain.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := domain.Insert(c.program, containerID, cmd)
	if err != nil {
		return err
	}
	c.program = next
	return nil
}

// Remove deletes the command with id, subtree included. Unknown ids are a
// silent no-op. If the active container was inside the removed subtree the
// reference is reset to the root so it can never dangle.
func (c *Controller) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = domain.Remove(c.program, id)
	if c.activeContainer != domain.RootContainer {
		if _, ok := domain.Find(c.program, c.activeContainer); !ok {
			c.activeContainer = domain.RootContainer
		}
	}
}

// UpdateValue replaces the numeric parameter of the command with id. Unknown
// ids are a silent no-op.
func (c *Controller) UpdateValue(id string, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.program = domain.Update(c.program, id, value)
}

// Find looks up a command at any nesting depth.
func (c *Controller) Find(id string) (domain.Command, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Find(c.program, id)
}

// Start begins a run over the current program. It returns
// domain.ErrRunInProgress while a run is active and domain.ErrEmptyProgram
// when there is nothing to execute; both are non-fatal no-ops. Otherwise the
// robot is reset to the origin, the reset is published, and after the start
// delay the engine executes the program on its own goroutine.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.status.Active() {
		c.mu.Unlock()
		return domain.ErrRunInProgress
	}
	if len(c.program) == 0 {
		c.mu.Unlock()
		return domain.ErrEmptyProgram
	}

	program := c.program
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.status = domain.StatusRunning
	c.pose = c.params.Origin
	c.path = domain.Path{{X: c.params.Origin.X, Y: c.params.Origin.Y}}
	pose, path := c.pose, c.path
	c.mu.Unlock()

	c.logger.Info("run started", "commands", len(program))
	c.publishState(runCtx, domain.StatusRunning)
	c.publishPose(runCtx, pose)
	c.publishPath(runCtx, path)

	go c.run(runCtx, program, done)
	return nil
}

// run drives one session to completion or cancellation.
func (c *Controller) run(ctx context.Context, program domain.Program, done chan struct{}) {
	defer close(done)

	if err := Sleep(ctx, c.params.StartDelay); err == nil {
		c.engine.Run(ctx, program, c.params.Origin)
	}

	final := domain.StatusCompleted
	if ctx.Err() != nil {
		final = domain.StatusStopped
	}

	c.logger.Info("run finished", "status", final)

	// The terminal state must be published before it becomes observable
	// through Status. A Start accepted the moment the status flips publishes
	// from its caller's goroutine; flipping only after the hook has returned
	// keeps those publications strictly after this one.
	c.publishState(ctx, final)

	c.mu.Lock()
	c.status = final
	c.cancel = nil
	c.mu.Unlock()
}

// Stop requests cancellation of the running session. The robot remains
// wherever it was interrupted; pose and path are not reset. Calling Stop with
// no run in progress has no effect.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		c.logger.Info("stop requested")
		cancel()
	}
}

// Wait blocks until the current run finishes. It returns immediately when no
// run is in progress.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// SetProgram replaces the whole program with p as one snapshot. Intended for
// hosts that author programs elsewhere (script files, the dsl package). Like
// ClearAll it is safe at any time: a running session is stopped first, and
// pose, path and the active container are reset.
func (c *Controller) SetProgram(ctx context.Context, p domain.Program) {
	c.reset(ctx, p)
	c.logger.Info("program replaced", "commands", len(p))
}

// ClearAll discards the program, resets pose and path to the origin, and
// clears the active container. It is safe to call at any time: a running
// session is stopped and waited out first so the reset cannot race it.
func (c *Controller) ClearAll(ctx context.Context) {
	c.reset(ctx, nil)
	c.logger.Info("cleared")
}

func (c *Controller) reset(ctx context.Context, p domain.Program) {
	c.Stop()
	c.Wait()

	c.mu.Lock()
	c.program = p
	c.activeContainer = domain.RootContainer
	c.status = domain.StatusIdle
	c.pose = c.params.Origin
	c.path = domain.Path{{X: c.params.Origin.X, Y: c.params.Origin.Y}}
	pose, path := c.pose, c.path
	c.mu.Unlock()

	c.publishState(ctx, domain.StatusIdle)
	c.publishPose(ctx, pose)
	c.publishPath(ctx, path)
}

func (c *Controller) publishState(ctx context.Context, s domain.RunStatus) {
	if c.hooks.OnRunStateChanged != nil {
		c.hooks.OnRunStateChanged(ctx, s)
	}
}

func (c *Controller) publishPose(ctx context.Context, p domain.Pose) {
	if c.hooks.OnPoseChanged != nil {
		c.hooks.OnPoseChanged(ctx, p)
	}
}

func (c *Controller) publishPath(ctx context.Context, p domain.Path) {
	if c.hooks.OnPathChanged != nil {
		snapshot := make(domain.Path, len(p))
		copy(snapshot, p)
		c.hooks.OnPathChanged(ctx, snapshot)
	}
}
