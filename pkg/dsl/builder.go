package dsl

import "github.com/botlab-edu/botlab/pkg/domain"

// Builder accumulates commands for one nesting level.
type Builder struct {
	cmds []domain.Command
}

// New creates an empty program builder.
func New() *Builder {
	return &Builder{}
}

// Forward appends a forward movement of distance grid units.
func (b *Builder) Forward(distance int) *Builder {
	b.cmds = append(b.cmds, domain.NewMoveForward(distance))
	return b
}

// Backward appends a backward movement of distance grid units.
func (b *Builder) Backward(distance int) *Builder {
	b.cmds = append(b.cmds, domain.NewMoveBackward(distance))
	return b
}

// Left appends a counter-clockwise turn of degrees.
func (b *Builder) Left(degrees int) *Builder {
	b.cmds = append(b.cmds, domain.NewTurnLeft(degrees))
	return b
}

// Right appends a clockwise turn of degrees.
func (b *Builder) Right(degrees int) *Builder {
	b.cmds = append(b.cmds, domain.NewTurnRight(degrees))
	return b
}

// Repeat appends a repeat block whose body is composed by fn on a nested
// builder.
func (b *Builder) Repeat(count int, fn func(*Builder)) *Builder {
	nested := New()
	if fn != nil {
		fn(nested)
	}
	b.cmds = append(b.cmds, domain.NewRepeat(count, nested.cmds...))
	return b
}

// Build returns the composed program.
func (b *Builder) Build() domain.Program {
	out := make(domain.Program, len(b.cmds))
	copy(out, b.cmds)
	return out
}
