package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/history"
	"github.com/vovakirdan/tui-2048/internal/leaderboard"
)

// ErrMalformed marks a stored game state that cannot be restored.
var ErrMalformed = errors.New("persist: malformed state")

// GameState is everything needed to resume a session.
type GameState struct {
	Grid    engine.Grid
	Score   int
	History []history.Snapshot // oldest first
}

// snapshotRecord and stateRecord mirror the stored JSON:
//
//	{"matrix": [[...]], "score": 0, "history": [{"matrix": [[...]], "score": 0}]}
type snapshotRecord struct {
	Matrix [][]int `json:"matrix"`
	Score  int     `json:"score"`
}

type stateRecord struct {
	Matrix  [][]int          `json:"matrix"`
	Score   int              `json:"score"`
	History []snapshotRecord `json:"history"`
}

// EncodeState serializes st to the stored JSON layout.
func EncodeState(st GameState) ([]byte, error) {
	rec := stateRecord{
		Matrix:  toMatrix(st.Grid),
		Score:   st.Score,
		History: make([]snapshotRecord, len(st.History)),
	}
	for i, snap := range st.History {
		rec.History[i] = snapshotRecord{Matrix: toMatrix(snap.Grid), Score: snap.Score}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("persist: cannot encode state: %w", err)
	}
	return data, nil
}

// DecodeState parses and validates a stored game state.
// Any schema or value violation yields an error wrapping ErrMalformed.
func DecodeState(data []byte) (GameState, error) {
	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return GameState{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	grid, err := fromMatrix(rec.Matrix)
	if err != nil {
		return GameState{}, fmt.Errorf("%w: matrix: %v", ErrMalformed, err)
	}
	if rec.Score < 0 {
		return GameState{}, fmt.Errorf("%w: negative score %d", ErrMalformed, rec.Score)
	}

	st := GameState{Grid: grid, Score: rec.Score}
	for i, h := range rec.History {
		g, err := fromMatrix(h.Matrix)
		if err != nil {
			return GameState{}, fmt.Errorf("%w: history[%d]: %v", ErrMalformed, i, err)
		}
		if h.Score < 0 {
			return GameState{}, fmt.Errorf("%w: history[%d]: negative score %d", ErrMalformed, i, h.Score)
		}
		st.History = append(st.History, history.Snapshot{Grid: g, Score: h.Score})
	}

	return st, nil
}

// EncodeLeaderboard serializes records as a JSON array.
func EncodeLeaderboard(records []leaderboard.Record) ([]byte, error) {
	if records == nil {
		records = []leaderboard.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("persist: cannot encode leaderboard: %w", err)
	}
	return data, nil
}

// DecodeLeaderboard parses a stored leaderboard.
func DecodeLeaderboard(data []byte) ([]leaderboard.Record, error) {
	var records []leaderboard.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", leaderboard.ErrMalformed, err)
	}
	for i, r := range records {
		if r.Score < 0 {
			return nil, fmt.Errorf("%w: entry %d has negative score", leaderboard.ErrMalformed, i)
		}
	}
	return records, nil
}

func toMatrix(g engine.Grid) [][]int {
	m := make([][]int, engine.Size)
	for r := range engine.Size {
		m[r] = append([]int(nil), g[r][:]...)
	}
	return m
}

func fromMatrix(m [][]int) (engine.Grid, error) {
	var g engine.Grid
	if len(m) != engine.Size {
		return g, fmt.Errorf("want %d rows, got %d", engine.Size, len(m))
	}
	for r, row := range m {
		if len(row) != engine.Size {
			return g, fmt.Errorf("row %d: want %d cells, got %d", r, engine.Size, len(row))
		}
		copy(g[r][:], row)
	}
	if !g.Valid() {
		return g, errors.New("tile values must be 0 or a power of two")
	}
	return g, nil
}
