package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/tutor"
)

var flagAskModel string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the physics tutor a question",
	Long: `Send one question to the physics tutor and print the answer.
The tutor needs GEMINI_API_KEY (or API_KEY) in the environment.

Examples:
  balance ask "why do I steer into the lean?"
  balance ask why does speed make balancing easier`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&flagAskModel, "model", tutor.DefaultModel, "Model name")
}

func runAsk(_ *cobra.Command, args []string) {
	client, err := tutor.NewFromEnv(tutor.WithModel(flagAskModel))
	if err != nil {
		fail("%v (set GEMINI_API_KEY)", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	reply, err := client.SendMessage(ctx, strings.Join(args, " "))
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(reply)
}
