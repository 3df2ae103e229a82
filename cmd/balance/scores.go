package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/balance"
	"github.com/vovakirdan/tui-balance/internal/registry"
	"github.com/vovakirdan/tui-balance/internal/scenes/ride"
	"github.com/vovakirdan/tui-balance/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [scene]",
	Short: "Show the longest rides for a scene",
	Long: `Display the top 10 runs for the specified scene (default: ride),
with the crash side and speed of each, plus aggregate statistics.

Examples:
  balance scores
  balance scores ride --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all stored runs for the scene")
}

func outcomeText(outcome string) string {
	switch outcome {
	case balance.FellLeft.String():
		return balance.FellLeft.Label()
	case balance.FellRight.String():
		return balance.FellRight.Label()
	}
	return outcome
}

func runScores(_ *cobra.Command, args []string) {
	sceneID := ride.ID
	if len(args) == 1 {
		sceneID = args[0]
	}

	scene, err := registry.Create(sceneID)
	if err != nil {
		fail("%v\nRun 'balance list' to see available scenes.", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearRuns(sceneID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared runs for %s.\n", scene.Title())
		return
	}

	runs, err := store.TopRuns(sceneID, 10)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Longest rides - %s\n", scene.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'balance play %s' to set the first record!\n", sceneID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-17s  %-6s  %s\n", "Rank", "Ticks", "Outcome", "Speed", "Date")
	fmt.Printf("  %-4s  %-7s  %-17s  %-6s  %s\n", "----", "-----", "-------", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-17s  %-6.1f  %s\n",
			i+1, r.Score, outcomeText(r.Outcome), r.Speed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(sceneID); err == nil {
		fmt.Printf("Best: %d  Runs: %d  Average: %.0f  Fell left/right: %d/%d\n",
			stats.BestScore, stats.RunsCount, stats.AvgScore, stats.FellLeft, stats.FellRight)
	}
}
