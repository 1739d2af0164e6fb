package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List available storage drivers",
	Long:  `Shows the key-value drivers t2048 can keep its state in.`,
	Args:  cobra.NoArgs,
	Run:   runDrivers,
}

var flagConfigDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after file loading and flag overrides.

Examples:
  t2048 config
  t2048 config --default > ~/.t2048/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in default file instead")
}

func runDrivers(_ *cobra.Command, _ []string) {
	drivers := registry.List()

	if len(drivers) == 0 {
		fmt.Println("No storage drivers available.")
		return
	}

	fmt.Println("Available storage drivers:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, d := range drivers {
		maxNameLen = max(maxNameLen, len(d.Name))
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")

	for _, d := range drivers {
		fmt.Printf("  %-*s  %s\n", maxNameLen, d.Name, d.Description)
	}

	fmt.Println()
	fmt.Println("Select one with --driver <name> or storage.driver in the config.")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefault {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	cfg, source, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Printf("# source: %s\n", source)
	fmt.Print(string(out))
}
