package session

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/history"
	"github.com/vovakirdan/tui-2048/internal/leaderboard"
	"github.com/vovakirdan/tui-2048/internal/persist"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// almostStuck becomes terminal after one move right, whichever tile spawns.
var almostStuck = engine.Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{8, 64, 8, 32},
	{16, 32, 64, 0},
}

var stuck = engine.Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func seeded() Option {
	return WithRand(rand.New(rand.NewSource(1)))
}

func tiles(g engine.Grid) int {
	return engine.Size*engine.Size - len(engine.EmptyCells(g))
}

// startFrom returns a session resumed from grid and score.
func startFrom(t *testing.T, g engine.Grid, score int, opts ...Option) (*Session, *persist.Bridge) {
	t.Helper()
	ctx := context.Background()

	bridge := persist.NewBridge(storage.NewMemory())
	require.NoError(t, bridge.SaveState(ctx, persist.GameState{Grid: g, Score: score}))

	opts = append([]Option{seeded(), WithStore(bridge)}, opts...)
	s := New(ctx, opts...)
	require.True(t, s.Restored())
	return s, bridge
}

func TestNewFreshGame(t *testing.T) {
	s := New(context.Background(), seeded())

	n := tiles(s.Grid())
	assert.True(t, n == 2 || n == 3, "got %d start tiles", n)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, StatePlaying, s.State())
	assert.False(t, s.CanUndo())
	assert.False(t, s.Restored())
}

func TestMoveMergesAndSpawns(t *testing.T) {
	ctx := context.Background()
	s, _ := startFrom(t, engine.Grid{{2, 2, 0, 0}}, 0)

	res := s.Move(ctx, engine.DirLeft)
	require.True(t, res.Changed)
	assert.Equal(t, 4, res.ScoreDelta)
	assert.Equal(t, 4, s.Score())
	assert.Equal(t, 4, s.Grid()[0][0])
	assert.Equal(t, 2, tiles(s.Grid()), "merged tile plus one spawn")
	assert.Equal(t, 1, s.HistoryLen())
}

func TestNoOpMoveStillPushesHistory(t *testing.T) {
	ctx := context.Background()
	start := engine.Grid{{2, 0, 0, 0}}
	s, _ := startFrom(t, start, 0)

	res := s.Move(ctx, engine.DirLeft)
	assert.False(t, res.Changed)
	assert.Equal(t, start, s.Grid(), "no spawn after a no-op move")
	assert.Equal(t, 1, s.HistoryLen())
}

func TestInvalidDirectionIsIgnored(t *testing.T) {
	ctx := context.Background()
	start := engine.Grid{{2, 2, 0, 0}}
	s, _ := startFrom(t, start, 0)

	res := s.Move(ctx, engine.Direction(42))
	assert.False(t, res.Changed)
	assert.Equal(t, start, s.Grid())
	assert.Equal(t, 0, s.HistoryLen())
}

func TestHistoryIsBounded(t *testing.T) {
	ctx := context.Background()
	s, _ := startFrom(t, engine.Grid{{2, 0, 0, 0}}, 0)

	for range history.Depth + 5 {
		s.Move(ctx, engine.DirLeft)
	}
	assert.Equal(t, history.Depth, s.HistoryLen())
}

func TestUndoRestoresPreviousPosition(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, seeded())

	type position struct {
		grid  engine.Grid
		score int
	}
	var before []position
	for i := range 10 {
		before = append(before, position{s.Grid(), s.Score()})
		s.Move(ctx, engine.Directions[i%len(engine.Directions)])
		if s.IsGameOver() {
			t.Fatalf("unexpected game over after %d moves", i+1)
		}
	}

	for i := len(before) - 1; i >= 0; i-- {
		require.True(t, s.Undo(ctx))
		assert.Equal(t, before[i].grid, s.Grid(), "undo step %d", i)
		assert.Equal(t, before[i].score, s.Score(), "undo step %d", i)
	}

	assert.False(t, s.Undo(ctx), "empty history")
	assert.Equal(t, before[0].grid, s.Grid())
}

func TestGameOverTransition(t *testing.T) {
	ctx := context.Background()
	s, _ := startFrom(t, almostStuck, 100)
	require.Equal(t, StatePlaying, s.State())

	res := s.Move(ctx, engine.DirRight)
	require.True(t, res.Changed)
	assert.Equal(t, StateGameOver, s.State())
	assert.True(t, s.IsGameOver())
	assert.False(t, s.CanUndo())

	grid := s.Grid()
	assert.Equal(t, engine.MoveResult{Grid: grid}, s.Move(ctx, engine.DirLeft), "moves are ignored")
	assert.False(t, s.Undo(ctx), "undo is ignored")
	assert.Equal(t, grid, s.Grid())
	assert.Equal(t, 100, s.Score())
}

func TestLoadedTerminalStateIsGameOver(t *testing.T) {
	s, _ := startFrom(t, stuck, 12)
	assert.Equal(t, StateGameOver, s.State())
}

func TestRestart(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, seeded(), WithStore(persist.NewBridge(storage.NewMemory())))
	startTiles := tiles(s.Grid())

	s.Move(ctx, engine.DirLeft)
	s.Move(ctx, engine.DirUp)

	s.Restart(ctx)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.HistoryLen())
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, startTiles, tiles(s.Grid()), "restart reuses the start tile count")
}

func TestRestartClearsSavedGame(t *testing.T) {
	ctx := context.Background()
	s, bridge := startFrom(t, stuck, 12)

	s.Restart(ctx)

	_, ok, err := bridge.LoadState(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StatePlaying, s.State())
}

func TestStatePersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	bridge := persist.NewBridge(storage.NewMemory())

	first := New(ctx, seeded(), WithStore(bridge))
	for _, d := range engine.Directions {
		first.Move(ctx, d)
	}

	second := New(ctx, WithStore(bridge))
	require.True(t, second.Restored())
	assert.Equal(t, first.Grid(), second.Grid())
	assert.Equal(t, first.Score(), second.Score())
	assert.Equal(t, first.HistoryLen(), second.HistoryLen())

	first.Undo(ctx)
	require.True(t, second.Undo(ctx))
	assert.Equal(t, first.Grid(), second.Grid())
}

func TestMalformedSaveStartsFresh(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	require.NoError(t, kv.Put(ctx, persist.DefaultStateKey, []byte(`{"matrix": [[3]]}`)))

	s := New(ctx, seeded(), WithStore(persist.NewBridge(kv)))
	assert.False(t, s.Restored())
	assert.Equal(t, StatePlaying, s.State())
	n := tiles(s.Grid())
	assert.True(t, n == 2 || n == 3)
}

type failingStore struct {
	saves int
}

func (f *failingStore) SaveState(context.Context, persist.GameState) error {
	f.saves++
	return errors.New("read-only filesystem")
}

func (f *failingStore) LoadState(context.Context) (persist.GameState, bool, error) {
	return persist.GameState{}, false, errors.New("read-only filesystem")
}

func (f *failingStore) ClearState(context.Context) error {
	return errors.New("read-only filesystem")
}

func TestStorageFailuresDoNotStopPlay(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	s := New(ctx, seeded(), WithStore(store))

	s.Move(ctx, engine.DirLeft)
	s.Move(ctx, engine.DirRight)
	assert.Equal(t, 2, store.saves)
	assert.Equal(t, 2, s.HistoryLen())
	assert.True(t, s.Undo(ctx))

	s.Restart(ctx)
	assert.Equal(t, 0, s.HistoryLen())
}

func TestRecordScore(t *testing.T) {
	ctx := context.Background()
	board := leaderboard.New(persist.NewBridge(storage.NewMemory()))
	s, _ := startFrom(t, almostStuck, 256, WithLeaderboard(board))

	_, err := s.RecordScore(ctx, "ann")
	assert.ErrorIs(t, err, ErrNotGameOver)

	s.Move(ctx, engine.DirRight)
	require.True(t, s.IsGameOver())

	records, err := s.RecordScore(ctx, "ann")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ann", records[0].Name)
	assert.Equal(t, 256, records[0].Score)
	assert.True(t, s.Recorded())

	_, err = s.RecordScore(ctx, "ann")
	assert.ErrorIs(t, err, ErrAlreadyRecorded)

	view, err := s.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Len(t, view, 1)

	s.Restart(ctx)
	assert.False(t, s.Recorded())
}

func TestNoLeaderboard(t *testing.T) {
	ctx := context.Background()
	s, _ := startFrom(t, stuck, 8)

	_, err := s.RecordScore(ctx, "x")
	assert.ErrorIs(t, err, ErrNoLeaderboard)

	_, err = s.Leaderboard(ctx)
	assert.ErrorIs(t, err, ErrNoLeaderboard)
}

func TestObserverSeesEveryChange(t *testing.T) {
	ctx := context.Background()
	var views []View
	s, _ := startFrom(t, engine.Grid{{2, 2, 0, 0}}, 0, WithObserver(ObserverFunc(func(v View) {
		views = append(views, v)
	})))

	s.Move(ctx, engine.DirLeft)
	s.Undo(ctx)
	s.Restart(ctx)

	require.Len(t, views, 3)
	assert.Equal(t, 4, views[0].Score)
	assert.Equal(t, 1, views[0].HistoryLen)
	assert.Equal(t, 0, views[1].Score)
	assert.Equal(t, 0, views[2].HistoryLen)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "game over", StateGameOver.String())
	assert.Equal(t, "unknown", State(9).String())
}
