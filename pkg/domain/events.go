package domain

import (
	"context"
	"time"
)

// CommandEvent describes one executed leaf command. Emitted after the pose
// update has been published, in strict traversal order.
type CommandEvent struct {
	Timestamp time.Time `json:"timestamp"`
	CommandID string    `json:"command_id"`
	Kind      Kind      `json:"kind"`
	Value     int       `json:"value"`
	Pose      Pose      `json:"pose"`
}

// Hooks defines the callbacks a host registers to observe a run.
//
// Callbacks are never invoked concurrently: command effects are published
// synchronously from the single executing goroutine, lifecycle transitions
// from the controlling call, and each publication completes before the next
// begins. Consumers therefore observe pose updates, path appends and state
// transitions in causal order. A nil callback is skipped. Callbacks must not
// block longer than the host can afford: the run does not advance while a
// callback is running.
type Hooks struct {
	// OnPoseChanged fires once per executed leaf command and once per reset,
	// carrying the latest pose.
	OnPoseChanged func(context.Context, Pose)

	// OnPathChanged fires whenever the trail changes (movement commands and
	// resets), carrying the full current path.
	OnPathChanged func(context.Context, Path)

	// OnRunStateChanged fires on every run lifecycle transition.
	OnRunStateChanged func(context.Context, RunStatus)

	// OnCommandApplied fires after each leaf command's effect is published.
	// Intended for logging and metrics.
	OnCommandApplied func(context.Context, *CommandEvent)
}

// Merge returns hooks that fan out to both receivers, h first. Useful for
// stacking metrics on top of a renderer.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnPoseChanged:     mergeHook(h.OnPoseChanged, other.OnPoseChanged),
		OnPathChanged:     mergeHook(h.OnPathChanged, other.OnPathChanged),
		OnRunStateChanged: mergeHook(h.OnRunStateChanged, other.OnRunStateChanged),
		OnCommandApplied:  mergeHook(h.OnCommandApplied, other.OnCommandApplied),
	}
}

func mergeHook[T any](a, b func(context.Context, T)) func(context.Context, T) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, v T) {
		a(ctx, v)
		b(ctx, v)
	}
}
