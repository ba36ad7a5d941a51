/*
Package botlab is the execution core of an educational visual-programming
environment: a user composes a tree of movement commands and the engine
animates a simulated robot tracing the resulting path on a 2D grid.

The core owns the command-tree model, the pose geometry, the sequential
execution engine and the run controller. Rendering, command editing widgets
and sound are host concerns: hosts feed edits and run requests in through the
Simulator and observe pose, path and run-state notifications through hooks.

# Usage

	sim := botlab.New(botlab.WithHooks(domain.Hooks{
		OnPoseChanged: func(_ context.Context, p domain.Pose) {
			// animate the robot
		},
	}))

	_ = sim.Insert(domain.NewMoveForward(2))
	_ = sim.Start(context.Background())
	sim.Wait()

Hooks fire synchronously from the single executing goroutine, in exact
traversal order, with a configurable delay before each command so a renderer
can animate every intermediate pose.
*/
package botlab
