package domain

import "math"

// Point is a planar position in the same unit space as the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Path is the ordered trail of positions visited by movement commands. It
// starts at the run origin and grows by exactly one point per movement
// command executed; turns never append.
type Path []Point

// Pose is the robot's instantaneous position and heading.
//
// Angle is in degrees with 0 pointing East and positive rotation clockwise in
// screen coordinates (Y grows downward). The angle accumulates without bound:
// normalization is deliberately left to renderers at display time.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`

	// PenDown is carried for future extension. The core records the path
	// regardless of its value.
	PenDown bool `json:"pen_down"`
}

// Apply computes the pose after executing cmd and, for movement commands, the
// path sample to record. It is deterministic and side-effect free.
//
// Repeat blocks have no geometric effect of their own; their contribution is
// the execution of their body, which is the engine's concern.
func Apply(pose Pose, cmd Command, cellSize float64) (Pose, *Point) {
	switch c := cmd.(type) {
	case *Move:
		dist := float64(c.Distance) * cellSize
		if c.kind == KindMoveBackward {
			dist = -dist
		}
		rad := pose.Angle * math.Pi / 180
		pose.X += math.Cos(rad) * dist
		pose.Y += math.Sin(rad) * dist
		sample := Point{X: pose.X, Y: pose.Y}
		return pose, &sample
	case *Turn:
		deg := float64(c.Degrees)
		if c.kind == KindTurnLeft {
			deg = -deg
		}
		pose.Angle += deg
		return pose, nil
	default:
		return pose, nil
	}
}
