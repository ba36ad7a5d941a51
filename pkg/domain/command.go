package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies the behavior of a command node.
type Kind string

const (
	KindMoveForward  Kind = "move_forward"
	KindMoveBackward Kind = "move_backward"
	KindTurnLeft     Kind = "turn_left"
	KindTurnRight    Kind = "turn_right"
	KindRepeat       Kind = "repeat"
)

// Command is one instruction node in the program tree.
//
// The set of implementations is closed: *Move, *Turn and *Repeat. Only *Repeat
// carries children, so the "only repeat blocks nest" invariant is enforced by
// the type system rather than by convention.
type Command interface {
	// ID returns the opaque identifier assigned at creation. It is stable for
	// the lifetime of the node and survives copy-on-write edits.
	ID() string

	// Kind returns the command kind.
	Kind() Kind

	// Value returns the numeric parameter: grid units for moves, degrees for
	// turns, repetition count for repeat blocks.
	Value() int

	// withValue returns a copy with a new numeric parameter. Unexported so
	// the implementation set stays closed to this package.
	withValue(v int) Command
}

// Move advances the robot along its current heading. Distance is in grid
// units and may be negative or zero.
type Move struct {
	id       string
	kind     Kind
	Distance int
}

// NewMoveForward creates a forward movement of distance grid units.
func NewMoveForward(distance int) *Move {
	return &Move{id: uuid.NewString(), kind: KindMoveForward, Distance: distance}
}

// NewMoveBackward creates a backward movement of distance grid units.
func NewMoveBackward(distance int) *Move {
	return &Move{id: uuid.NewString(), kind: KindMoveBackward, Distance: distance}
}

func (m *Move) ID() string { return m.id }

func (m *Move) Kind() Kind { return m.kind }

func (m *Move) Value() int { return m.Distance }

func (m *Move) withValue(v int) Command {
	cp := *m
	cp.Distance = v
	return &cp
}

// Turn rotates the robot in place. Degrees is a magnitude; the kind decides
// the sign. The suggested editing range is 1-360 but the model does not
// enforce it.
type Turn struct {
	id      string
	kind    Kind
	Degrees int
}

// NewTurnLeft creates a counter-clockwise rotation of degrees.
func NewTurnLeft(degrees int) *Turn {
	return &Turn{id: uuid.NewString(), kind: KindTurnLeft, Degrees: degrees}
}

// NewTurnRight creates a clockwise rotation of degrees.
func NewTurnRight(degrees int) *Turn {
	return &Turn{id: uuid.NewString(), kind: KindTurnRight, Degrees: degrees}
}

func (t *Turn) ID() string { return t.id }

func (t *Turn) Kind() Kind { return t.kind }

func (t *Turn) Value() int { return t.Degrees }

func (t *Turn) withValue(v int) Command {
	cp := *t
	cp.Degrees = v
	return &cp
}

// Repeat executes its body Count times in sequence. It is the only command
// that owns children; each child belongs to exactly one parent list.
type Repeat struct {
	id    string
	Count int
	Body  []Command
}

// NewRepeat creates a repeat block. A nil or empty body is valid; children
// are usually added later via Insert.
func NewRepeat(count int, body ...Command) *Repeat {
	return &Repeat{id: uuid.NewString(), Count: count, Body: body}
}

func (r *Repeat) ID() string { return r.id }

func (r *Repeat) Kind() Kind { return KindRepeat }

func (r *Repeat) Value() int { return r.Count }

// withValue copies the node but shares the body slice, so descendants keep
// their identity across an Update.
func (r *Repeat) withValue(v int) Command {
	cp := *r
	cp.Count = v
	return &cp
}

// NewCommand creates a command of the given kind with a fresh identifier.
// Repeat blocks start empty. Used by hosts that receive kind and value over
// the wire rather than calling the typed constructors.
func NewCommand(kind Kind, value int) (Command, error) {
	switch kind {
	case KindMoveForward:
		return NewMoveForward(value), nil
	case KindMoveBackward:
		return NewMoveBackward(value), nil
	case KindTurnLeft:
		return NewTurnLeft(value), nil
	case KindTurnRight:
		return NewTurnRight(value), nil
	case KindRepeat:
		if value < 0 {
			return nil, fmt.Errorf("repeat count must not be negative, got %d", value)
		}
		return NewRepeat(value), nil
	}
	return nil, fmt.Errorf("unknown command kind %q", kind)
}
