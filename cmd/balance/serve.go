package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/platform/tui"
	"github.com/vovakirdan/tui-balance/internal/scenes/ride"
	"github.com/vovakirdan/tui-balance/internal/tutor"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeTutor  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the balance SSH server",
	Long: `Start an SSH server that lets users connect and ride.

Each SSH connection gets its own session with the scene menu.
Runs are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.balance/host_key

Examples:
  balance serve                           # Listen on :23234
  balance serve --ssh :2222               # Listen on port 2222
  balance serve --host-key ./my_host_key  # Use specific host key
  balance serve --tutor                   # Offer the tutor (GEMINI_API_KEY)

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeTutor, "tutor", false, "Offer the physics tutor to SSH users")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("balance-ssh")
	ride.SetLogger(logger.WithPrefix("ride"))

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	if flagServeTutor {
		if _, err := tutor.NewFromEnv(); err != nil {
			fail("tutor: %v", err)
		}
		cfg.NewTutor = func() tutor.Client {
			c, err := tutor.NewFromEnv()
			if err != nil {
				return nil
			}
			return c
		}
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting balance SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
