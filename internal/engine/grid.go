// Package engine implements the 2048 grid and the pure transformations
// applied to it: directional moves, tile spawning and terminal detection.
package engine

import (
	"strconv"
	"strings"
)

// Size is the grid dimension. Only 4x4 grids are supported.
const Size = 4

// Grid is a 4x4 matrix of tile values. Zero marks an empty cell; every
// other value is a power of two. Grid is a value type, so assignment copies.
type Grid [Size][Size]int

// Cell addresses a single position on the grid.
type Cell struct {
	Row int
	Col int
}

// At returns the value at the given cell.
func (g Grid) At(c Cell) int {
	return g[c.Row][c.Col]
}

// Set stores v at the given cell.
func (g *Grid) Set(c Cell, v int) {
	g[c.Row][c.Col] = v
}

// Valid reports whether every cell holds zero or a power of two.
func (g Grid) Valid() bool {
	for r := range Size {
		for c := range Size {
			if !validTile(g[r][c]) {
				return false
			}
		}
	}
	return true
}

func validTile(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// EmptyCells returns every empty cell in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(g Grid) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if two orthogonally adjacent cells hold
// the same non-zero value.
func HasPossibleMerge(g Grid) bool {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if c < Size-1 && g[r][c+1] == v {
				return true
			}
			if r < Size-1 && g[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if at least one direction would change the grid.
func CanMove(g Grid) bool {
	return HasEmptyCell(g) || HasPossibleMerge(g)
}

// IsTerminal reports whether no move is possible: the grid is full and no
// adjacent pair is equal. The whole grid is scanned on every call.
func IsTerminal(g Grid) bool {
	return !CanMove(g)
}

// MaxTile returns the highest tile value on the grid.
func MaxTile(g Grid) int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			maxVal = max(maxVal, g[r][c])
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func Sum(g Grid) int {
	total := 0
	for r := range Size {
		for c := range Size {
			total += g[r][c]
		}
	}
	return total
}

// String renders the grid as four space-separated rows, using "." for empty cells.
func (g Grid) String() string {
	var b strings.Builder
	for r := range Size {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				b.WriteByte(' ')
			}
			if g[r][c] == 0 {
				b.WriteByte('.')
				continue
			}
			b.WriteString(strconv.Itoa(g[r][c]))
		}
	}
	return b.String()
}
