package engine

import (
	"math/rand"
	"time"
)

const (
	// spawnFourProb is the chance a spawned tile is 4 instead of 2.
	spawnFourProb = 0.1

	minStartTiles = 2
	maxStartTiles = 3
)

// Spawner places new tiles on a grid using its own random source.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner backed by rng.
// A nil rng is replaced with a time-seeded source.
func NewSpawner(rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spawner{rng: rng}
}

// NewSeededSpawner creates a deterministic spawner for the given seed.
func NewSeededSpawner(seed int64) *Spawner {
	return NewSpawner(rand.New(rand.NewSource(seed)))
}

// Spawn sets a uniformly chosen empty cell to 2 (90%) or 4 (10%).
// Returns the cell used, or false if the grid is full.
func (s *Spawner) Spawn(g *Grid) (Cell, bool) {
	empty := EmptyCells(*g)
	if len(empty) == 0 {
		return Cell{}, false
	}

	cell := empty[s.rng.Intn(len(empty))]

	value := 2
	if s.rng.Float64() < spawnFourProb {
		value = 4
	}

	g.Set(cell, value)
	return cell, true
}

// StartTiles returns how many tiles a fresh game begins with: 2 or 3,
// chosen uniformly.
func (s *Spawner) StartTiles() int {
	return minStartTiles + s.rng.Intn(maxStartTiles-minStartTiles+1)
}

// Seed spawns n tiles onto g.
func (s *Spawner) Seed(g *Grid, n int) {
	for range n {
		s.Spawn(g)
	}
}
