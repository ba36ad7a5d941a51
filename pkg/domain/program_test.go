package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// buildNested returns a program with a repeat nested three levels deep:
//
//	[ Forward(1), Repeat(2) [ Right(90), Repeat(3) [ Repeat(4) [ Forward(5) ] ] ] ]
func buildNested() (domain.Program, *domain.Repeat, *domain.Repeat, *domain.Repeat, *domain.Move) {
	leaf := domain.NewMoveForward(5)
	inner := domain.NewRepeat(4, leaf)
	middle := domain.NewRepeat(3, inner)
	outer := domain.NewRepeat(2, domain.NewTurnRight(90), middle)
	program := domain.Program{domain.NewMoveForward(1), outer}
	return program, outer, middle, inner, leaf
}

func TestInsert(t *testing.T) {
	t.Run("appends at root", func(t *testing.T) {
		p1 := domain.Program{domain.NewMoveForward(1)}
		cmd := domain.NewTurnLeft(90)

		p2, err := domain.Insert(p1, domain.RootContainer, cmd)
		require.NoError(t, err)

		assert.Len(t, p1, 1, "input program must not be mutated")
		require.Len(t, p2, 2)
		assert.Same(t, p1[0], p2[0], "existing nodes keep identity")
		assert.Same(t, cmd, p2[1])
	})

	t.Run("appends into nested repeat", func(t *testing.T) {
		p1, outer, middle, inner, leaf := buildNested()
		cmd := domain.NewMoveBackward(2)

		p2, err := domain.Insert(p1, inner.ID(), cmd)
		require.NoError(t, err)

		got, ok := domain.Find(p2, inner.ID())
		require.True(t, ok)
		newInner := got.(*domain.Repeat)
		require.Len(t, newInner.Body, 2)
		assert.Same(t, leaf, newInner.Body[0])
		assert.Same(t, cmd, newInner.Body[1])

		// The whole root-to-target path is rebuilt; everything else is shared.
		assert.Same(t, p1[0], p2[0])
		assert.NotSame(t, outer, p2[1])
		newOuter := p2[1].(*domain.Repeat)
		assert.Same(t, outer.Body[0], newOuter.Body[0], "sibling of the path keeps identity")
		assert.NotSame(t, middle, newOuter.Body[1])

		// The original tree is untouched.
		assert.Len(t, inner.Body, 1)
	})

	t.Run("rejects unknown container", func(t *testing.T) {
		p1 := domain.Program{domain.NewMoveForward(1)}
		p2, err := domain.Insert(p1, "no-such-id", domain.NewTurnLeft(90))
		assert.ErrorIs(t, err, domain.ErrInvalidContainer)
		assert.Equal(t, p1, p2)
	})

	t.Run("rejects non-repeat container", func(t *testing.T) {
		move := domain.NewMoveForward(1)
		p1 := domain.Program{move}
		_, err := domain.Insert(p1, move.ID(), domain.NewTurnLeft(90))
		assert.ErrorIs(t, err, domain.ErrInvalidContainer)
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes a nested node", func(t *testing.T) {
		p1, _, _, inner, leaf := buildNested()

		p2 := domain.Remove(p1, leaf.ID())

		_, ok := domain.Find(p2, leaf.ID())
		assert.False(t, ok)
		got, ok := domain.Find(p2, inner.ID())
		require.True(t, ok)
		assert.Empty(t, got.(*domain.Repeat).Body)

		// Original still holds the leaf.
		_, ok = domain.Find(p1, leaf.ID())
		assert.True(t, ok)
	})

	t.Run("removes a repeat with its whole subtree", func(t *testing.T) {
		p1, outer, middle, inner, leaf := buildNested()

		p2 := domain.Remove(p1, outer.ID())

		require.Len(t, p2, 1)
		for _, id := range []string{outer.ID(), middle.ID(), inner.ID(), leaf.ID()} {
			_, ok := domain.Find(p2, id)
			assert.False(t, ok, "subtree node %s must be gone", id)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		p1, _, _, _, _ := buildNested()
		p2 := domain.Remove(p1, "no-such-id")
		assert.Equal(t, p1, p2)
		assert.Same(t, p1[1], p2[1])
	})
}

func TestUpdate(t *testing.T) {
	t.Run("replaces value only", func(t *testing.T) {
		p1, _, _, _, leaf := buildNested()

		p2 := domain.Update(p1, leaf.ID(), 9)

		got, ok := domain.Find(p2, leaf.ID())
		require.True(t, ok)
		assert.Equal(t, 9, got.Value())
		assert.Equal(t, domain.KindMoveForward, got.Kind())
		assert.Equal(t, leaf.ID(), got.ID(), "identity survives the edit")

		// Original is untouched.
		assert.Equal(t, 5, leaf.Value())
	})

	t.Run("updating a repeat keeps its children by identity", func(t *testing.T) {
		p1, outer, _, _, _ := buildNested()

		p2 := domain.Update(p1, outer.ID(), 7)

		got, _ := domain.Find(p2, outer.ID())
		newOuter := got.(*domain.Repeat)
		assert.Equal(t, 7, newOuter.Count)
		require.Len(t, newOuter.Body, 2)
		assert.Same(t, outer.Body[0], newOuter.Body[0])
		assert.Same(t, outer.Body[1], newOuter.Body[1])
	})

	t.Run("every node off the edit path keeps identity", func(t *testing.T) {
		p1, outer, middle, inner, leaf := buildNested()

		p2 := domain.Update(p1, inner.ID(), 11)

		assert.Same(t, p1[0], p2[0])
		newOuter := p2[1].(*domain.Repeat)
		assert.NotSame(t, outer, newOuter)
		assert.Same(t, outer.Body[0], newOuter.Body[0])
		newMiddle := newOuter.Body[1].(*domain.Repeat)
		assert.NotSame(t, middle, newMiddle)
		newInner := newMiddle.Body[0].(*domain.Repeat)
		assert.NotSame(t, inner, newInner)
		assert.Same(t, leaf, newInner.Body[0], "descendants of the edited node keep identity")
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		p1, _, _, _, _ := buildNested()
		p2 := domain.Update(p1, "no-such-id", 42)
		assert.Equal(t, p1, p2)
	})
}

func TestFind(t *testing.T) {
	t.Run("locates a node three levels deep unmodified", func(t *testing.T) {
		p, _, _, _, leaf := buildNested()

		got, ok := domain.Find(p, leaf.ID())
		require.True(t, ok)
		assert.Same(t, leaf, got)
	})

	t.Run("reports missing ids", func(t *testing.T) {
		p, _, _, _, _ := buildNested()
		_, ok := domain.Find(p, "no-such-id")
		assert.False(t, ok)
	})
}

func TestNewCommand(t *testing.T) {
	tests := []struct {
		kind  domain.Kind
		value int
	}{
		{domain.KindMoveForward, 2},
		{domain.KindMoveBackward, 1},
		{domain.KindTurnLeft, 90},
		{domain.KindTurnRight, 45},
		{domain.KindRepeat, 3},
	}
	for _, tt := range tests {
		cmd, err := domain.NewCommand(tt.kind, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, cmd.Kind())
		assert.Equal(t, tt.value, cmd.Value())
		assert.NotEmpty(t, cmd.ID())
	}

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := domain.NewCommand("teleport", 1)
		assert.Error(t, err)
	})

	t.Run("rejects negative repeat counts", func(t *testing.T) {
		_, err := domain.NewCommand(domain.KindRepeat, -1)
		assert.Error(t, err)
	})

	t.Run("identifiers are unique", func(t *testing.T) {
		a := domain.NewMoveForward(1)
		b := domain.NewMoveForward(1)
		assert.NotEqual(t, a.ID(), b.ID())
	})
}
