package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/session"
)

var flagPlayUser string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in this terminal",
	Long: `Start or resume a game of 2048.

Controls:
  Arrows/WASD/hjkl - Slide tiles
  U/Z              - Undo
  R                - New game
  L/Tab            - Leaderboard
  ?                - Toggle help
  Q/Ctrl+C         - Quit

The game is saved after every move and resumed on the next start.
When no move is left you can enter a name for the leaderboard.

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --user bob`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayUser, "user", "", "Play the saved game of an SSH user")
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fail("play needs an interactive terminal")
	}

	a := mustApp(true)
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []session.Option{
		session.WithStore(a.stateBridge(flagPlayUser)),
		session.WithLeaderboard(a.board),
		session.WithLogger(a.logger),
	}
	if flagSeed != 0 {
		opts = append(opts, session.WithRand(rand.New(rand.NewSource(flagSeed))))
	}
	sess := session.New(ctx, opts...)
	if sess.Restored() {
		a.logger.Info("resumed saved game", "score", sess.Score(), "history", sess.HistoryLen())
	}

	modelOpts := []tui.ModelOption{
		tui.WithModelLogger(a.logger),
		tui.WithPlaceholderName(a.cfg.Leaderboard.PlaceholderName),
		tui.WithDefaultName(flagPlayUser),
	}
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		modelOpts = append(modelOpts, tui.WithWindowSize(w, h))
	}

	if err := tui.RunGame(ctx, sess, modelOpts...); err != nil {
		a.Close()
		fail("%v", err)
	}
}
