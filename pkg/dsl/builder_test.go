package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botlab-edu/botlab/pkg/domain"
	"github.com/botlab-edu/botlab/pkg/dsl"
)

func TestBuilder(t *testing.T) {
	program := dsl.New().
		Forward(2).
		Backward(1).
		Left(45).
		Repeat(4, func(b *dsl.Builder) {
			b.Right(90).Forward(1)
		}).
		Build()

	require.Len(t, program, 4)
	assert.Equal(t, domain.KindMoveForward, program[0].Kind())
	assert.Equal(t, 2, program[0].Value())
	assert.Equal(t, domain.KindMoveBackward, program[1].Kind())
	assert.Equal(t, domain.KindTurnLeft, program[2].Kind())

	rep, ok := program[3].(*domain.Repeat)
	require.True(t, ok)
	assert.Equal(t, 4, rep.Count)
	require.Len(t, rep.Body, 2)
	assert.Equal(t, domain.KindTurnRight, rep.Body[0].Kind())
}

func TestBuilderEmptyRepeat(t *testing.T) {
	program := dsl.New().Repeat(3, nil).Build()
	require.Len(t, program, 1)
	assert.Empty(t, program[0].(*domain.Repeat).Body)
}

func TestBuildSnapshotIsIndependent(t *testing.T) {
	b := dsl.New().Forward(1)
	first := b.Build()
	b.Forward(2)
	second := b.Build()

	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}
