package engine

// MoveResult is the outcome of applying one direction to a grid.
type MoveResult struct {
	Grid       Grid
	ScoreDelta int
	Changed    bool
}

// ApplyMove slides and merges every line of g toward dir.
// It is pure: the same input always yields the same result, and g is not
// modified. An unknown direction returns g unchanged.
func ApplyMove(g Grid, dir Direction) MoveResult {
	res := MoveResult{Grid: g}
	if !dir.Valid() {
		return res
	}

	for i := range Size {
		cells := lineCells(dir, i)

		var line [Size]int
		for j, c := range cells {
			line[j] = g.At(c)
		}

		slid, delta := slideLine(line)
		res.ScoreDelta += delta

		for j, c := range cells {
			if slid[j] != line[j] {
				res.Changed = true
			}
			res.Grid.Set(c, slid[j])
		}
	}

	return res
}

// lineCells returns the cells of line i ordered from the edge tiles move
// toward. Left/right lines are rows, up/down lines are columns.
func lineCells(dir Direction, i int) [Size]Cell {
	var cells [Size]Cell
	for j := range Size {
		switch dir {
		case DirLeft:
			cells[j] = Cell{Row: i, Col: j}
		case DirRight:
			cells[j] = Cell{Row: i, Col: Size - 1 - j}
		case DirUp:
			cells[j] = Cell{Row: j, Col: i}
		case DirDown:
			cells[j] = Cell{Row: Size - 1 - j, Col: i}
		}
	}
	return cells
}

// slideLine compacts a line toward index 0, merges equal neighbours
// scanning from index 0, and pads the tail with zeros.
// A tile merges at most once per call.
func slideLine(line [Size]int) (out [Size]int, delta int) {
	var tiles [Size]int
	n := 0
	for _, v := range line {
		if v != 0 {
			tiles[n] = v
			n++
		}
	}

	w := 0
	for i := 0; i < n; i++ {
		v := tiles[i]
		if i+1 < n && tiles[i+1] == v {
			v *= 2
			delta += v
			i++ // both sources consumed
		}
		out[w] = v
		w++
	}

	return out, delta
}
