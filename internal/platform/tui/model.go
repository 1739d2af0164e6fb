package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/leaderboard"
	"github.com/vovakirdan/tui-2048/internal/session"
)

const nameCharLimit = 24

// screen is the view GameModel currently shows.
type screen int

const (
	screenBoard screen = iota
	screenPrompt
	screenLeaderboard
)

// GameModel is the Bubble Tea model for one 2048 session.
type GameModel struct {
	ctx     context.Context
	session *session.Session
	logger  *log.Logger

	keys       GameKeyMap
	promptKeys PromptKeyMap
	help       help.Model
	input      textinput.Model
	board      LeaderboardModel

	screen      screen
	defaultName string
	best        int
	status      string
	statusID    int
	width       int
	height      int
	quitting    bool
}

// ModelOption configures a GameModel.
type ModelOption func(*GameModel)

// WithModelLogger sets the logger for storage errors surfaced by the UI.
func WithModelLogger(logger *log.Logger) ModelOption {
	return func(m *GameModel) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPlaceholderName sets the hint shown in the empty name prompt.
func WithPlaceholderName(name string) ModelOption {
	return func(m *GameModel) {
		if name != "" {
			m.input.Placeholder = name
		}
	}
}

// WithDefaultName pre-fills the name prompt.
func WithDefaultName(name string) ModelOption {
	return func(m *GameModel) {
		m.defaultName = name
	}
}

// WithWindowSize sets the initial window size, for SSH sessions that know
// the PTY size before the first WindowSizeMsg.
func WithWindowSize(width, height int) ModelOption {
	return func(m *GameModel) {
		m.width = width
		m.height = height
	}
}

// NewGameModel creates a model driving sess.
// A session that opens already lost goes straight to the name prompt.
func NewGameModel(ctx context.Context, sess *session.Session, opts ...ModelOption) GameModel {
	input := textinput.New()
	input.Prompt = "Name: "
	input.Placeholder = leaderboard.DefaultPlaceholder
	input.CharLimit = nameCharLimit

	h := help.New()
	h.ShowAll = false

	m := GameModel{
		ctx:        ctx,
		session:    sess,
		logger:     log.New(io.Discard),
		keys:       DefaultGameKeyMap(),
		promptKeys: DefaultPromptKeyMap(),
		help:       h,
		input:      input,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.refreshBest()
	if sess.IsGameOver() && !sess.Recorded() {
		m.openPrompt()
	}
	return m
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	if m.screen == screenPrompt {
		return textinput.Blink
	}
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen == screenLeaderboard {
			updated, _ := m.board.Update(msg)
			m.board = updated.(LeaderboardModel)
		}
		return m, nil

	case statusExpiredMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch m.screen {
		case screenPrompt:
			return m.updatePrompt(msg)
		case screenLeaderboard:
			return m.updateLeaderboard(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	if m.screen == screenPrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateBoard handles keys on the board screen.
func (m GameModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if !m.session.Undo(m.ctx) {
			return m.setStatus("nothing to undo")
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.session.Restart(m.ctx)
		m.refreshBest()
		return m.setStatus("new game")

	case key.Matches(msg, m.keys.Leaderboard):
		return m.openLeaderboard(0)
	}

	dir, ok := m.keys.Direction(msg)
	if !ok || m.session.IsGameOver() {
		return m, nil
	}

	m.session.Move(m.ctx, dir)
	m.best = max(m.best, m.session.Score())

	if m.session.IsGameOver() {
		m.openPrompt()
		return m, textinput.Blink
	}
	return m, nil
}

// updatePrompt handles keys while asking for the player's name.
func (m GameModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.promptKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.promptKeys.Skip):
		m.input.Blur()
		m.screen = screenBoard
		return m, nil

	case key.Matches(msg, m.promptKeys.Submit):
		m.input.Blur()
		records, err := m.session.RecordScore(m.ctx, m.input.Value())
		if err != nil {
			m.screen = screenBoard
			if !errors.Is(err, session.ErrAlreadyRecorded) {
				m.logger.Error("could not record score", "error", err)
			}
			return m.setStatus("score not saved")
		}
		m.refreshBest()
		return m.openLeaderboardWith(records, rankOf(records, m.session.Score(), m.input.Value()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateLeaderboard forwards keys to the embedded table.
func (m GameModel) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	updated, cmd := m.board.Update(msg)
	m.board = updated.(LeaderboardModel)

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.screen = screenBoard
		return m, nil
	}
	return m, cmd
}

func (m *GameModel) openPrompt() {
	m.screen = screenPrompt
	m.input.SetValue(m.defaultName)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m GameModel) openLeaderboard(highlight int) (tea.Model, tea.Cmd) {
	records, err := m.session.Leaderboard(m.ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoLeaderboard) {
			m.logger.Error("could not load leaderboard", "error", err)
		}
		return m.setStatus("leaderboard unavailable")
	}
	return m.openLeaderboardWith(records, highlight)
}

func (m GameModel) openLeaderboardWith(records []leaderboard.Record, highlight int) (tea.Model, tea.Cmd) {
	m.board = newEmbeddedLeaderboard(records, highlight, m.width, m.height)
	m.screen = screenLeaderboard
	return m, nil
}

func (m GameModel) setStatus(text string) (tea.Model, tea.Cmd) {
	m.statusID++
	m.status = text
	return m, expireStatus(m.statusID)
}

func (m *GameModel) refreshBest() {
	m.best = m.session.Score()
	records, err := m.session.Leaderboard(m.ctx)
	if err != nil {
		return
	}
	if len(records) > 0 {
		m.best = max(m.best, records[0].Score)
	}
}

// rankOf finds the 1-based rank of the record just added, or 0.
func rankOf(records []leaderboard.Record, score int, name string) int {
	name = strings.TrimSpace(name)
	rank := 0
	for i, r := range records {
		if r.Score == score && (name == "" || r.Name == name) {
			rank = i + 1
		}
	}
	return rank
}

// View renders the current screen.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenLeaderboard {
		return m.board.View()
	}

	v := m.session.View()

	var b strings.Builder
	b.WriteString(titleStyle.Render("2048"))
	b.WriteString("\n\n")
	b.WriteString(renderScores(v.Score, m.best, v.HistoryLen))
	b.WriteString("\n")

	board := RenderBoard(v.Grid)
	switch {
	case m.screen == screenPrompt:
		board = m.overlay(board, m.promptView(v))
	case v.State == session.StateGameOver:
		board = m.overlay(board, fmt.Sprintf("GAME OVER\n\nScore %d\nMax tile %d\n\npress r to play again", v.Score, engine.MaxTile(v.Grid)))
	}
	b.WriteString(board)
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	if m.screen == screenPrompt {
		b.WriteString(helpStyle.Render(m.help.View(m.promptKeys)))
	} else {
		b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	}

	out := b.String()
	if m.width > 0 {
		out = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, out)
	}
	return out
}

func (m GameModel) promptView(v session.View) string {
	return fmt.Sprintf("GAME OVER\n\nScore %d\n\n%s", v.Score, m.input.View())
}

// overlay draws box centered over the board.
func (m GameModel) overlay(board, text string) string {
	box := overlayStyle.Render(text)
	return lipgloss.Place(
		lipgloss.Width(board), lipgloss.Height(board),
		lipgloss.Center, lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars("·"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("238")),
	)
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// RunGame runs sess in the current terminal until the player quits.
func RunGame(ctx context.Context, sess *session.Session, opts ...ModelOption) error {
	p := tea.NewProgram(
		NewGameModel(ctx, sess, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
