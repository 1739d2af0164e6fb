package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

func snap(score int) Snapshot {
	return Snapshot{Grid: engine.Grid{{score % 4096}}, Score: score}
}

func TestPushPopLIFO(t *testing.T) {
	var s Stack
	s.Push(snap(1))
	s.Push(snap(2))
	s.Push(snap(3))

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got.Score)
	}

	_, ok := s.Pop()
	assert.False(t, ok, "pop on empty stack should report false")
	assert.Equal(t, 0, s.Len())
}

func TestPushEvictsOldest(t *testing.T) {
	var s Stack
	for i := 1; i <= Depth+5; i++ {
		s.Push(snap(i))
		assert.LessOrEqual(t, s.Len(), Depth)
	}

	require.Equal(t, Depth, s.Len())

	snaps := s.Snapshots()
	assert.Equal(t, 6, snaps[0].Score, "oldest five should have been evicted")
	assert.Equal(t, Depth+5, snaps[len(snaps)-1].Score)

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, Depth+5, top.Score)
}

func TestSnapshotIsACopy(t *testing.T) {
	var s Stack
	g := engine.Grid{{2, 4}}
	s.Push(Snapshot{Grid: g, Score: 8})

	g[0][0] = 1024

	got, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, got.Grid[0][0], "mutating the source grid must not affect the snapshot")
}

func TestNewStackKeepsNewest(t *testing.T) {
	var input []Snapshot
	for i := range Depth + 3 {
		input = append(input, snap(i))
	}

	s := NewStack(input...)
	require.Equal(t, Depth, s.Len())
	assert.Equal(t, 3, s.Snapshots()[0].Score)

	input[len(input)-1].Score = -1
	top, _ := s.Peek()
	assert.Equal(t, Depth+2, top.Score, "NewStack must not alias the input slice")
}

func TestClear(t *testing.T) {
	s := NewStack(snap(1), snap(2))
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshots())
}
