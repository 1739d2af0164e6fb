package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	tileWidth  = 8
	tileHeight = 3
)

// tileColors maps tile values to background/foreground colors.
// Values above 2048 share the last entry.
var tileColors = []struct {
	value  int
	bg, fg lipgloss.Color
}{
	{0, "236", "240"},
	{2, "255", "235"},
	{4, "223", "235"},
	{8, "215", "255"},
	{16, "209", "255"},
	{32, "203", "255"},
	{64, "196", "255"},
	{128, "229", "235"},
	{256, "228", "235"},
	{512, "227", "235"},
	{1024, "221", "235"},
	{2048, "220", "235"},
	{4096, "93", "255"},
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	scoreStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3).
			Align(lipgloss.Center)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyle returns the style for a tile value.
func tileStyle(v int) lipgloss.Style {
	c := tileColors[len(tileColors)-1]
	for _, tc := range tileColors {
		if tc.value == v {
			c = tc
			break
		}
	}
	return lipgloss.NewStyle().
		Width(tileWidth).
		Height(tileHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(v >= 8).
		Background(c.bg).
		Foreground(c.fg)
}

// renderTile draws one cell. Empty cells show a dot.
func renderTile(v int) string {
	label := "·"
	if v != 0 {
		label = strconv.Itoa(v)
	}
	return tileStyle(v).Render(label)
}

// RenderBoard draws the grid as coloured tiles inside a frame.
func RenderBoard(g engine.Grid) string {
	rows := make([]string, engine.Size)
	for r := range engine.Size {
		cells := make([]string, 0, 2*engine.Size-1)
		for c := range engine.Size {
			if c > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, renderTile(g[r][c]))
		}
		rows[r] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return boardStyle.Render(strings.Join(rows, "\n\n"))
}

// renderScores draws the score / best / undo boxes above the board.
func renderScores(score, best, undo int) string {
	box := func(label string, v int) string {
		return scoreStyle.Render(label + "\n" + titleStyle.Render(strconv.Itoa(v)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("SCORE", score), " ",
		box("BEST", best), " ",
		box("UNDO", undo),
	)
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
