package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/platform/tui"
	"github.com/vovakirdan/tui-balance/internal/registry"
	"github.com/vovakirdan/tui-balance/internal/scenes/ride"
	"github.com/vovakirdan/tui-balance/internal/tutor"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scene picker menu",
	Long: `Start in interactive menu mode.

After a scene ends you return to the menu to pick again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scene
  Tab          - Scoreboard
  T            - Physics tutor (needs GEMINI_API_KEY)
  Q            - Quit

Examples:
  balance menu
  balance menu --fps 30
  balance menu --db ./scores.db`,
	Run: runMenu,
}

// tutorClient returns a client from the environment, or nil when the tutor
// is not configured.
func tutorClient() tutor.Client {
	c, err := tutor.NewFromEnv()
	if err != nil {
		return nil
	}
	return c
}

func runMenu(_ *cobra.Command, _ []string) {
	ride.SetLogger(newTUILogger("ride"))

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalConfig()
	client := tutorClient()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return

		case result.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}

		case result.WantsTutor:
			goBack, tErr := tui.RunTutor(client, cfg.ScreenW, cfg.ScreenH)
			if tErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", tErr)
			}
			if !goBack {
				return
			}

		case result.SceneID != "":
			scene, err := registry.Create(result.SceneID)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
				continue
			}
			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			if err := tui.Run(scene, store, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
			}
		}
	}
}
