package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-balance/internal/core"
	"github.com/vovakirdan/tui-balance/internal/platform/tui"
	"github.com/vovakirdan/tui-balance/internal/registry"
	"github.com/vovakirdan/tui-balance/internal/scenes/ride"
	"github.com/vovakirdan/tui-balance/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Ride or watch a scene",
	Long: `Start the specified scene (default: ride).

Ride controls:
  Mouse         - Steer: pointer column maps to handlebar angle
  Left/Right    - Nudge the handlebar
  Up/Down, +/-  - Change speed
  Tab           - Toggle autopilot assist
  P             - Pause
  R/Space       - New run after a crash
  Esc/B         - Leave (when crashed or paused)
  Q/Ctrl+C      - Quit

Wobble and cornering controls:
  M             - Switch demonstration mode
  P             - Pause

Presets:
  easy   - Calmer road, slower fall
  normal - File values
  hard   - Rougher road, faster fall, higher start speed
  fixed  - File values

Examples:
  balance play
  balance play cornering
  balance play --preset hard
  balance play --config ./my-balance.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database, warning and continuing without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	sceneID := ride.ID
	if len(args) == 1 {
		sceneID = args[0]
	}
	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'balance list' to see available scenes.")
		os.Exit(1)
	}

	ride.SetLogger(newTUILogger("ride"))

	scene, err := registry.Create(sceneID)
	if err != nil {
		fail("creating scene: %v", err)
	}

	store := openStore()
	runErr := tui.Run(scene, store, terminalConfig())
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("running scene: %v", runErr)
	}
}
