package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the search order and --preset are applied.
Redirect the output to ~/.balance/configs/balance.yaml to customize it.

Examples:
  balance config
  balance config --preset hard
  balance config --defaults > balance.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		_, _ = os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fail("%v", err)
	}
	_, _ = os.Stdout.Write(data)
}
