// balance is a terminal simulator of a self-balancing two-wheeled vehicle.
//
// Usage:
//
//	balance list              - List available scenes
//	balance play [scene]      - Ride or watch a scene (default: ride)
//	balance menu              - Pick scenes, scores and the tutor interactively
//	balance sim               - Run the simulation headless and chart the lean
//	balance scores [scene]    - Show the longest rides
//	balance serve             - Start SSH server for remote play
//	balance feed              - Stream snapshots to WebSocket renderers
//	balance ask <question>    - Ask the physics tutor
//	balance config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for a reproducible road
//	--db <path>         - Set database path (default: ~/.balance/scores.db)
//	--config <path>     - Use a custom balance.yaml
//	--preset <name>     - Difficulty preset: easy, normal, hard, fixed
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/config"
	"github.com/vovakirdan/tui-balance/internal/scenes/ride"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-balance/internal/scenes/forces"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "balance",
	Short: "Balance - keep a two-wheeler upright in your terminal",
	Long: `Balance simulates the lean of a self-balancing two-wheeled vehicle.
Gravity tips it over; steering into the fall brings it back.

Available commands:
  list     - Show all scenes
  play     - Ride or watch a scene
  menu     - Interactive picker with scoreboard and tutor
  sim      - Headless run with a lean chart and exports
  scores   - View the longest rides
  serve    - Start SSH server for remote play
  feed     - WebSocket snapshot feed
  ask      - Ask the physics tutor
  config   - Print the effective configuration

Examples:
  balance play
  balance play wobble
  balance sim --autopilot --ticks 1200 --png lean.png
  balance serve --ssh :2222
  balance feed --addr :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagPreset); err != nil {
			return err
		}
		ride.SetConfigPath(flagConfig)
		ride.SetDifficultyPreset(flagPreset)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.balance/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom balance.yaml")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (terminal UIs log nowhere otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads balance.yaml and applies the --preset flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return cfg, err
	}
	if !config.IsFixedPreset(preset) {
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
