// Package history keeps the bounded undo log of (grid, score) snapshots.
package history

import (
	"slices"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Depth is the maximum number of snapshots kept. Pushing past it evicts
// the oldest entry.
const Depth = 20

// Snapshot captures the grid and score at one point in a game.
type Snapshot struct {
	Grid  engine.Grid
	Score int
}

// Stack is a LIFO undo log capped at Depth entries.
// The zero value is an empty stack ready for use.
type Stack struct {
	entries []Snapshot
}

// NewStack builds a stack from snapshots ordered oldest first.
// Only the newest Depth snapshots are kept.
func NewStack(snapshots ...Snapshot) *Stack {
	if len(snapshots) > Depth {
		snapshots = snapshots[len(snapshots)-Depth:]
	}
	return &Stack{entries: slices.Clone(snapshots)}
}

// Push appends snap, evicting the oldest snapshot on overflow.
func (s *Stack) Push(snap Snapshot) {
	s.entries = append(s.entries, snap)
	if over := len(s.entries) - Depth; over > 0 {
		s.entries = slices.Delete(s.entries, 0, over)
	}
}

// Pop removes and returns the most recent snapshot.
// Returns false if the stack is empty.
func (s *Stack) Pop() (Snapshot, bool) {
	if len(s.entries) == 0 {
		return Snapshot{}, false
	}
	last := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return last, true
}

// Peek returns the most recent snapshot without removing it.
func (s *Stack) Peek() (Snapshot, bool) {
	if len(s.entries) == 0 {
		return Snapshot{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of snapshots held.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear drops every snapshot.
func (s *Stack) Clear() {
	s.entries = nil
}

// Snapshots returns a copy of the stack contents, oldest first.
func (s *Stack) Snapshots() []Snapshot {
	return slices.Clone(s.entries)
}
