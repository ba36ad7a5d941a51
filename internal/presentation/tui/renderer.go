// Package tui draws the grid, the robot and its trail in the terminal. It is
// a host-side consumer of the core's notifications, not part of the core.
package tui

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/muesli/termenv"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// headingGlyphs covers the 8 compass directions starting at East, advancing
// clockwise in 45-degree steps (screen coordinates, Y grows downward).
var headingGlyphs = []string{"→", "↘", "↓", "↙", "←", "↖", "↑", "↗"}

// Renderer paints the canvas after every notification. Register Hooks() with
// the controller; the strict ordering of notifications makes each frame a
// consistent snapshot.
type Renderer struct {
	out      *termenv.Output
	cellSize float64
	cols     int
	rows     int

	pose   domain.Pose
	path   domain.Path
	status domain.RunStatus
}

// NewRenderer creates a renderer for a canvas of the given extents, drawn one
// terminal cell per grid cell.
func NewRenderer(cellSize, canvasWidth, canvasHeight float64) *Renderer {
	return &Renderer{
		out:      termenv.NewOutput(os.Stdout),
		cellSize: cellSize,
		cols:     int(canvasWidth / cellSize),
		rows:     int(canvasHeight / cellSize),
		status:   domain.StatusIdle,
	}
}

// Hooks returns the callbacks that drive the display.
func (r *Renderer) Hooks() domain.Hooks {
	return domain.Hooks{
		OnPoseChanged: func(_ context.Context, p domain.Pose) {
			r.pose = p
			r.draw()
		},
		OnPathChanged: func(_ context.Context, p domain.Path) {
			r.path = p
		},
		OnRunStateChanged: func(_ context.Context, s domain.RunStatus) {
			r.status = s
			r.draw()
		},
	}
}

func (r *Renderer) draw() {
	r.out.ClearScreen()

	robotCol, robotRow := r.cell(r.pose.X, r.pose.Y)
	trail := make(map[[2]int]bool, len(r.path))
	for _, pt := range r.path {
		col, row := r.cell(pt.X, pt.Y)
		trail[[2]int{col, row}] = true
	}

	p := r.out.ColorProfile()
	robotStyle := termenv.String(r.headingGlyph()).Foreground(p.Color("#f59e0b")).Bold()
	trailStyle := termenv.String("•").Foreground(p.Color("#818cf8"))

	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			switch {
			case col == robotCol && row == robotRow:
				fmt.Fprintf(r.out, "%s ", robotStyle)
			case trail[[2]int{col, row}]:
				fmt.Fprintf(r.out, "%s ", trailStyle)
			default:
				fmt.Fprint(r.out, ". ")
			}
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "\nstatus: %s  pose: (%.0f, %.0f) @ %.0f°\n",
		r.status, r.pose.X, r.pose.Y, r.pose.Angle)
}

// cell maps canvas coordinates onto the terminal grid, clamped to the edges
// so an out-of-canvas robot stays visible at the border.
func (r *Renderer) cell(x, y float64) (int, int) {
	col := int(math.Floor(x / r.cellSize))
	row := int(math.Floor(y / r.cellSize))
	return clamp(col, 0, r.cols-1), clamp(row, 0, r.rows-1)
}

// headingGlyph normalizes the unbounded angle at display time only.
func (r *Renderer) headingGlyph() string {
	angle := math.Mod(r.pose.Angle, 360)
	if angle < 0 {
		angle += 360
	}
	octant := int(math.Round(angle/45)) % len(headingGlyphs)
	return headingGlyphs[octant]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
