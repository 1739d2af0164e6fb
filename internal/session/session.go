// Package session owns one game of 2048: the grid, the score and the
// undo history. It drives the engine, saves through an injected store
// and reports every change to its observers.
package session

import (
	"context"
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/history"
	"github.com/vovakirdan/tui-2048/internal/leaderboard"
	"github.com/vovakirdan/tui-2048/internal/persist"
)

var (
	// ErrNotGameOver is returned by RecordScore while the game is running.
	ErrNotGameOver = errors.New("session: game is not over")

	// ErrAlreadyRecorded is returned by a second RecordScore for one game.
	ErrAlreadyRecorded = errors.New("session: score already recorded")

	// ErrNoLeaderboard is returned when the session has no leaderboard.
	ErrNoLeaderboard = errors.New("session: no leaderboard configured")
)

// State is the session lifecycle.
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// StateStore saves and restores a session. *persist.Bridge implements it.
type StateStore interface {
	SaveState(ctx context.Context, st persist.GameState) error
	LoadState(ctx context.Context) (persist.GameState, bool, error)
	ClearState(ctx context.Context) error
}

// View is a read-only copy of what a renderer needs.
type View struct {
	Grid       engine.Grid
	Score      int
	State      State
	HistoryLen int
	Recorded   bool
}

// Observer is told about every state change.
type Observer interface {
	StateChanged(v View)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(View)

func (f ObserverFunc) StateChanged(v View) { f(v) }

// Session is a single game. It is not safe for concurrent use.
type Session struct {
	grid    engine.Grid
	score   int
	history *history.Stack
	state   State

	spawner    *engine.Spawner
	startTiles int

	store     StateStore
	board     *leaderboard.Board
	observers []Observer
	logger    *log.Logger

	recorded bool
	restored bool
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for tile spawns.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.spawner = engine.NewSpawner(rng)
	}
}

// WithStore sets where the session is saved and restored from.
func WithStore(store StateStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithLeaderboard sets the board finished games are recorded on.
func WithLeaderboard(board *leaderboard.Board) Option {
	return func(s *Session) {
		s.board = board
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithLogger sets the logger for storage warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session. A valid saved state is restored; anything else
// (nothing saved, a malformed blob, a read failure) starts a fresh game.
// The number of start tiles is drawn once here and reused by Restart.
func New(ctx context.Context, opts ...Option) *Session {
	s := &Session{
		history: history.NewStack(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.spawner == nil {
		s.spawner = engine.NewSpawner(nil)
	}
	s.startTiles = s.spawner.StartTiles()

	if s.load(ctx) {
		return s
	}

	s.spawner.Seed(&s.grid, s.startTiles)
	return s
}

func (s *Session) load(ctx context.Context) bool {
	if s.store == nil {
		return false
	}

	st, ok, err := s.store.LoadState(ctx)
	if errors.Is(err, persist.ErrMalformed) {
		s.logger.Warn("saved game is unreadable, starting fresh", "error", err)
		return false
	}
	if err != nil {
		s.logger.Warn("could not load saved game, starting fresh", "error", err)
		return false
	}
	if !ok {
		return false
	}

	s.grid = st.Grid
	s.score = st.Score
	s.history = history.NewStack(st.History...)
	s.restored = true
	if engine.IsTerminal(s.grid) {
		s.state = StateGameOver
	}

	s.logger.Debug("restored saved game", "score", s.score, "history", s.history.Len(), "state", s.state)
	return true
}

// Move slides the grid in dir. The pre-move position is pushed to the
// history even when nothing moves. Moves in GameOver and unknown
// directions do nothing.
func (s *Session) Move(ctx context.Context, dir engine.Direction) engine.MoveResult {
	if !dir.Valid() || s.state == StateGameOver {
		return engine.MoveResult{Grid: s.grid}
	}

	s.history.Push(history.Snapshot{Grid: s.grid, Score: s.score})

	res := engine.ApplyMove(s.grid, dir)
	if res.Changed {
		s.grid = res.Grid
		s.score += res.ScoreDelta
		s.spawner.Spawn(&s.grid)
	}

	s.save(ctx)

	if engine.IsTerminal(s.grid) {
		s.state = StateGameOver
		s.logger.Debug("game over", "score", s.score, "max_tile", engine.MaxTile(s.grid))
	}

	s.notify()
	return res
}

// Undo restores the position before the last move. It reports false,
// changing nothing, when the history is empty or the game is over.
func (s *Session) Undo(ctx context.Context) bool {
	if s.state == StateGameOver {
		return false
	}

	snap, ok := s.history.Pop()
	if !ok {
		return false
	}

	s.grid = snap.Grid
	s.score = snap.Score
	s.save(ctx)
	s.notify()
	return true
}

// Restart starts a new game and deletes the saved one.
func (s *Session) Restart(ctx context.Context) {
	s.grid = engine.Grid{}
	s.score = 0
	s.history.Clear()
	s.state = StatePlaying
	s.recorded = false
	s.restored = false

	s.spawner.Seed(&s.grid, s.startTiles)

	if s.store != nil {
		if err := s.store.ClearState(ctx); err != nil {
			s.logger.Warn("could not clear saved game", "error", err)
		}
	}

	s.notify()
}

// RecordScore puts the finished game on the leaderboard under name and
// returns the updated board. It works once per game and only in GameOver.
func (s *Session) RecordScore(ctx context.Context, name string) ([]leaderboard.Record, error) {
	if s.board == nil {
		return nil, ErrNoLeaderboard
	}
	if s.state != StateGameOver {
		return nil, ErrNotGameOver
	}
	if s.recorded {
		return nil, ErrAlreadyRecorded
	}

	records, err := s.board.Record(ctx, name, s.score)
	if err != nil {
		return nil, err
	}

	s.recorded = true
	s.notify()
	return records, nil
}

// Leaderboard returns the current board, best first.
func (s *Session) Leaderboard(ctx context.Context) ([]leaderboard.Record, error) {
	if s.board == nil {
		return nil, ErrNoLeaderboard
	}
	return s.board.View(ctx)
}

// Grid returns a copy of the current grid.
func (s *Session) Grid() engine.Grid { return s.grid }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// IsGameOver reports whether no move is possible.
func (s *Session) IsGameOver() bool { return s.state == StateGameOver }

// CanUndo reports whether Undo would do anything.
func (s *Session) CanUndo() bool {
	return s.state == StatePlaying && s.history.Len() > 0
}

// HistoryLen returns the number of undo steps available.
func (s *Session) HistoryLen() int { return s.history.Len() }

// Recorded reports whether this game's score is already on the leaderboard.
func (s *Session) Recorded() bool { return s.recorded }

// Restored reports whether the session resumed a saved game.
func (s *Session) Restored() bool { return s.restored }

// View returns a snapshot for rendering.
func (s *Session) View() View {
	return View{
		Grid:       s.grid,
		Score:      s.score,
		State:      s.state,
		HistoryLen: s.history.Len(),
		Recorded:   s.recorded,
	}
}

func (s *Session) save(ctx context.Context) {
	if s.store == nil {
		return
	}
	err := s.store.SaveState(ctx, persist.GameState{
		Grid:    s.grid,
		Score:   s.score,
		History: s.history.Snapshots(),
	})
	if err != nil {
		s.logger.Warn("could not save game", "error", err)
	}
}

func (s *Session) notify() {
	v := s.View()
	for _, o := range s.observers {
		o.StateChanged(v)
	}
}
