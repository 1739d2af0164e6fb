package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/leaderboard"
	"github.com/vovakirdan/tui-2048/internal/persist"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// oneMoveFromEnd is lost after a move right, whatever tile spawns.
var oneMoveFromEnd = engine.Grid{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{8, 64, 8, 32},
	{16, 32, 64, 0},
}

func newTestModel(t *testing.T, g engine.Grid, score int) (GameModel, *session.Session) {
	t.Helper()
	ctx := context.Background()

	bridge := persist.NewBridge(storage.NewMemory())
	require.NoError(t, bridge.SaveState(ctx, persist.GameState{Grid: g, Score: score}))

	sess := session.New(ctx,
		session.WithRand(rand.New(rand.NewSource(3))),
		session.WithStore(bridge),
		session.WithLeaderboard(leaderboard.New(bridge)),
	)
	return NewGameModel(ctx, sess, WithWindowSize(80, 40)), sess
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m GameModel, msgs ...tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(GameModel)
	}
	return m, cmd
}

func TestArrowKeysMove(t *testing.T) {
	m, sess := newTestModel(t, engine.Grid{{2, 2, 0, 0}}, 0)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 4, sess.Score())
	assert.Equal(t, 4, m.best)
	assert.Equal(t, 1, sess.HistoryLen())

	m, _ = send(t, m, runes("u"))
	assert.Equal(t, 0, sess.Score())
	assert.Equal(t, screenBoard, m.screen)
}

func TestUndoOnEmptyHistoryShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, engine.Grid{{2, 0, 0, 0}}, 0)

	m, cmd := send(t, m, runes("u"))
	assert.Equal(t, "nothing to undo", m.status)
	require.NotNil(t, cmd)

	m, _ = send(t, m, statusExpiredMsg{id: m.statusID - 1})
	assert.NotEmpty(t, m.status, "stale expiry is ignored")

	m, _ = send(t, m, statusExpiredMsg{id: m.statusID})
	assert.Empty(t, m.status)
}

func TestRestartKey(t *testing.T) {
	m, sess := newTestModel(t, engine.Grid{{2, 2, 0, 0}}, 40)

	m, _ = send(t, m, runes("r"))
	assert.Equal(t, 0, sess.Score())
	assert.Equal(t, "new game", m.status)
}

func TestGameOverPromptRecordsScore(t *testing.T) {
	m, sess := newTestModel(t, oneMoveFromEnd, 512)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.True(t, sess.IsGameOver())
	assert.Equal(t, screenPrompt, m.screen)
	assert.Contains(t, m.View(), "GAME OVER")

	m, _ = send(t, m, runes("a"), runes("n"), runes("n"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, screenLeaderboard, m.screen)
	assert.True(t, sess.Recorded())
	assert.Equal(t, 512, m.best)

	records, err := sess.Leaderboard(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ann", records[0].Name)
	assert.Contains(t, m.View(), "ann")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenBoard, m.screen)
}

func TestGameOverPromptSkip(t *testing.T) {
	m, sess := newTestModel(t, oneMoveFromEnd, 8)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenBoard, m.screen)
	assert.False(t, sess.Recorded())

	grid := sess.Grid()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, grid, sess.Grid(), "moves are ignored after game over")
	assert.Contains(t, m.View(), "press r")
}

func TestRestoredLostGameOpensPrompt(t *testing.T) {
	stuck := engine.Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	m, _ := newTestModel(t, stuck, 30)
	assert.Equal(t, screenPrompt, m.screen)
	assert.NotNil(t, m.Init())
}

func TestLeaderboardToggle(t *testing.T) {
	m, _ := newTestModel(t, engine.Grid{{2, 0, 0, 0}}, 0)

	m, _ = send(t, m, runes("L"))
	assert.Equal(t, screenLeaderboard, m.screen)
	assert.Contains(t, m.View(), "No scores recorded yet")

	m, _ = send(t, m, runes("L"))
	assert.Equal(t, screenBoard, m.screen)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, engine.Grid{{2, 0, 0, 0}}, 0)

	m, cmd := send(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, engine.Grid{{2, 0, 0, 0}}, 0)
	short := m.View()

	m, _ = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.NotEqual(t, short, m.View())
}

func TestDirectionBindings(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want engine.Direction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, engine.DirUp},
		{runes("w"), engine.DirUp},
		{runes("k"), engine.DirUp},
		{tea.KeyMsg{Type: tea.KeyDown}, engine.DirDown},
		{runes("s"), engine.DirDown},
		{runes("j"), engine.DirDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, engine.DirLeft},
		{runes("a"), engine.DirLeft},
		{runes("h"), engine.DirLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, engine.DirRight},
		{runes("d"), engine.DirRight},
		{runes("l"), engine.DirRight},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := keys.Direction(tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := keys.Direction(runes("x"))
	assert.False(t, ok)
}

func TestRankOf(t *testing.T) {
	records := []leaderboard.Record{
		{Name: "a", Score: 100},
		{Name: "b", Score: 64},
		{Name: "Player", Score: 64},
	}
	assert.Equal(t, 2, rankOf(records, 64, "b"))
	assert.Equal(t, 3, rankOf(records, 64, ""))
	assert.Equal(t, 0, rankOf(records, 7, "zed"))
}

func TestRenderBoard(t *testing.T) {
	out := RenderBoard(engine.Grid{{2048, 0, 0, 0}, {0, 4, 0, 0}})
	assert.Contains(t, out, "2048")
	assert.Contains(t, out, "4")
	assert.Equal(t, 14, strings.Count(out, "·"), "one dot per empty cell")
}
