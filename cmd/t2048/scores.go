package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top 10 scores.

Examples:
  t2048 scores
  t2048 scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Show the leaderboard as an interactive table")
}

func runScores(_ *cobra.Command, _ []string) {
	a := mustApp(flagScoresTUI)
	defer a.Close()

	records, err := a.board.View(context.Background())
	if err != nil {
		a.Close()
		fail("retrieving scores: %v", err)
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunLeaderboard(records, width, height); err != nil {
			a.Close()
			fail("%v", err)
		}
		return
	}

	fmt.Println("High Scores - 2048")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 't2048 play' to set the first high score!")
		return
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, r := range records {
		maxNameLen = max(maxNameLen, len(r.Name))
	}

	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "Rank", maxNameLen, "Name", "Score", "Date")
	fmt.Printf("  %-4s  %-*s  %-10s  %s\n", "----", maxNameLen, "----", "-----", "----")

	for i, r := range records {
		fmt.Printf("  %-4d  %-*s  %-10d  %s\n", i+1, maxNameLen, r.Name, r.Score, r.Date)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", records[0].Score)
}
