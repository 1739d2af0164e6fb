package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/persist"
)

var (
	flagStateUser string
	flagStateList bool
	flagResetUser string
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the saved game",
	Long: `Print the saved board, score and undo depth.

Examples:
  t2048 state
  t2048 state --user alice
  t2048 state --list`,
	Args: cobra.NoArgs,
	Run:  runState,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved game",
	Long: `Delete the saved game so the next start deals a fresh board.
The leaderboard is left alone.

Examples:
  t2048 reset
  t2048 reset --user alice`,
	Args: cobra.NoArgs,
	Run:  runReset,
}

func init() {
	stateCmd.Flags().StringVar(&flagStateUser, "user", "", "Show the saved game of an SSH user")
	stateCmd.Flags().BoolVar(&flagStateList, "list", false, "List all saved game slots")
	resetCmd.Flags().StringVar(&flagResetUser, "user", "", "Reset the saved game of an SSH user")
}

func runState(_ *cobra.Command, _ []string) {
	a := mustApp(false)
	defer a.Close()
	ctx := context.Background()

	if flagStateList {
		lister, ok := a.store.(persist.Lister)
		if !ok {
			a.Close()
			fail("driver %q cannot list keys", a.cfg.Storage.Driver)
		}
		keys, err := lister.Keys(ctx, a.bridge.StateKey())
		if err != nil {
			a.Close()
			fail("listing saved games: %v", err)
		}
		if len(keys) == 0 {
			fmt.Println("No saved games.")
			return
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return
	}

	bridge := a.stateBridge(flagStateUser)
	st, ok, err := bridge.LoadState(ctx)
	if err != nil {
		a.Close()
		fail("loading %s: %v", bridge.StateKey(), err)
	}
	if !ok {
		fmt.Printf("No saved game under %q.\n", bridge.StateKey())
		return
	}

	fmt.Println(st.Grid)
	fmt.Println()
	fmt.Printf("Score:    %d\n", st.Score)
	fmt.Printf("Max tile: %d\n", engine.MaxTile(st.Grid))
	fmt.Printf("Undo:     %d\n", len(st.History))
	if engine.IsTerminal(st.Grid) {
		fmt.Println("Status:   game over")
	}
}

func runReset(_ *cobra.Command, _ []string) {
	a := mustApp(false)
	defer a.Close()

	bridge := a.stateBridge(flagResetUser)
	if err := bridge.ClearState(context.Background()); err != nil {
		a.Close()
		fail("clearing %s: %v", bridge.StateKey(), err)
	}
	fmt.Printf("Cleared %q.\n", bridge.StateKey())
}
