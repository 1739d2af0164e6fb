// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 play               - Play in the current terminal
//	t2048 scores             - Show the leaderboard
//	t2048 state              - Print the saved game
//	t2048 reset              - Discard the saved game
//	t2048 serve              - Start SSH server for remote play
//	t2048 drivers            - List storage drivers
//	t2048 config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.t2048, ./configs, embedded)
//	--driver <name>     - Storage driver: sqlite, badger or memory
//	--db <path>         - Storage path for the selected driver
//	--seed <value>      - RNG seed for reproducible tile spawns
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDriver   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 puzzle for the terminal.

Slide the tiles with the arrow keys (or WASD / hjkl). Equal tiles merge
and add their value to your score. The game is saved after every move,
so you can quit and pick up where you left off.

Available commands:
  play     - Play in the current terminal
  scores   - Show the leaderboard
  state    - Print the saved game
  reset    - Discard the saved game
  serve    - Start SSH server for remote play
  drivers  - List storage drivers
  config   - Print the effective configuration

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 scores --tui
  t2048 serve --ssh :2222
  t2048 --driver badger --db ./data play`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "Storage driver (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Storage path (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(driversCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints err and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
