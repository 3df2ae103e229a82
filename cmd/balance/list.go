package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenes",
	Long:  `Shows a list of all scenes registered in the simulator.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenes := registry.List()
	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	idWidth, titleWidth := 2, 5
	for _, s := range scenes {
		idWidth = max(idWidth, len(s.ID))
		titleWidth = max(titleWidth, len(s.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", idWidth, "ID", titleWidth, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", idWidth, "--", titleWidth, "-----", "-----------")
	for _, s := range scenes {
		fmt.Printf("  %-*s  %-*s  %s\n", idWidth, s.ID, titleWidth, s.Title, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'balance play <id>' to start a scene.")
}
