// Package leaderboard keeps the ranked list of best finished games.
package leaderboard

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// MaxEntries is the number of records kept on the board.
const MaxEntries = 10

const (
	DefaultPlaceholder = "Player"
	DefaultDateFormat  = "2006-01-02 15:04:05"
)

// ErrMalformed marks a stored leaderboard that could not be decoded.
// Board treats it as an empty leaderboard.
var ErrMalformed = errors.New("leaderboard: malformed record")

// Record is one leaderboard row.
type Record struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Date  string `json:"date"`
}

// Store loads and saves the whole leaderboard as a unit.
type Store interface {
	LoadLeaderboard(ctx context.Context) ([]Record, error)
	SaveLeaderboard(ctx context.Context, records []Record) error
}

// Board ranks records and persists them through a Store.
// It is safe for concurrent use by sessions sharing one Store.
type Board struct {
	mu          sync.Mutex
	store       Store
	placeholder string
	dateFormat  string
	now         func() time.Time
	logger      *log.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithPlaceholder sets the name used when a player leaves it blank.
func WithPlaceholder(name string) Option {
	return func(b *Board) {
		if strings.TrimSpace(name) != "" {
			b.placeholder = name
		}
	}
}

// WithDateFormat sets the time layout used for the record date.
func WithDateFormat(layout string) Option {
	return func(b *Board) {
		if layout != "" {
			b.dateFormat = layout
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

// WithLogger sets the logger used for degraded-read warnings.
func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a Board backed by store.
func New(store Store, opts ...Option) *Board {
	b := &Board{
		store:       store,
		placeholder: DefaultPlaceholder,
		dateFormat:  DefaultDateFormat,
		now:         time.Now,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Record adds a finished game, re-ranks, keeps the top MaxEntries,
// persists the result and returns it.
func (b *Board) Record(ctx context.Context, name string, score int) ([]Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.View(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = b.placeholder
	}

	records = Rank(records, Record{
		Name:  name,
		Score: score,
		Date:  b.now().Format(b.dateFormat),
	})

	if err := b.store.SaveLeaderboard(ctx, records); err != nil {
		return nil, err
	}

	b.logger.Debug("score recorded", "name", name, "score", score, "entries", len(records))
	return records, nil
}

// View returns the stored leaderboard, best first.
// A malformed stored list is reported as empty.
func (b *Board) View(ctx context.Context) ([]Record, error) {
	records, err := b.store.LoadLeaderboard(ctx)
	if errors.Is(err, ErrMalformed) {
		b.logger.Warn("ignoring malformed leaderboard", "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Best returns the top score, or 0 when the board is empty.
func (b *Board) Best(ctx context.Context) (int, error) {
	records, err := b.View(ctx)
	if err != nil || len(records) == 0 {
		return 0, err
	}
	return records[0].Score, nil
}

// Rank appends rec, stable-sorts by score descending and truncates to
// MaxEntries. Records with equal scores keep their insertion order.
// The input slice is not modified.
func Rank(records []Record, rec Record) []Record {
	ranked := make([]Record, 0, len(records)+1)
	ranked = append(ranked, records...)
	ranked = append(ranked, rec)

	slices.SortStableFunc(ranked, func(a, b Record) int {
		return b.Score - a.Score
	})

	if len(ranked) > MaxEntries {
		ranked = ranked[:MaxEntries]
	}
	return ranked
}
