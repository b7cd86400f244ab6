package go_javad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelArena(t *testing.T) {
	arena := NewLabelArena()
	first, second := arena.NewLabel(), arena.NewLabel()
	require.NotEqual(t, NoLabel, first)
	require.NotEqual(t, first, second)
	require.Equal(t, "L1", first.String())

	_, ok := arena.Position(first)
	require.False(t, ok)

	require.NoError(t, arena.declare(first, 4))
	index, ok := arena.Position(first)
	require.True(t, ok)
	require.Equal(t, 4, index)

	err := arena.declare(first, 5)
	require.EqualError(t, err, "Already visited label")
	require.ErrorIs(t, err, ErrIllegalState)
}

func TestLabelArenaSkipsDeclaredLabels(t *testing.T) {
	arena := NewLabelArena()
	require.NoError(t, arena.declare(Label(7), 0))
	require.Equal(t, Label(8), arena.NewLabel())
}

func TestLabelSet(t *testing.T) {
	var set labelSet
	set.add(Label(9), Label(2), Label(9), Label(5))
	require.Equal(t, 3, set.len())
	require.True(t, set.has(Label(5)))
	require.False(t, set.has(Label(3)))
	require.Equal(t, []Label{2, 5, 9}, set.labels())
}
