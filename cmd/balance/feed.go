package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-balance/internal/balance"
	"github.com/vovakirdan/tui-balance/internal/feed"
)

var (
	flagFeedAddr    string
	flagFeedRestart time.Duration
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Stream simulation snapshots over WebSocket",
	Long: `Run one shared simulation and stream every snapshot to WebSocket
clients at /ws as JSON envelopes:

  server -> client  {"t":"welcome","p":{...}}  {"t":"state","p":{...}}  {"t":"crash","p":{...}}
  client -> server  {"t":"pointer","p":{"x":..,"w":..}}  {"t":"speed","p":{"v":..}}  {"t":"reset"}

Examples:
  balance feed
  balance feed --addr :9000 --restart-after 0`,
	Args: cobra.NoArgs,
	Run:  runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&flagFeedAddr, "addr", ":8080", "HTTP listen address")
	feedCmd.Flags().DurationVar(&flagFeedRestart, "restart-after", 2*time.Second, "Start a new run this long after a crash (0 waits for a client reset)")
}

func runFeed(cmd *cobra.Command, _ []string) {
	logger := newLogger("feed")

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	mode, err := cfg.StepMode()
	if err != nil {
		fail("%v", err)
	}
	tickRate := cfg.Loop.TickRate
	if cmd.Flags().Changed("fps") {
		tickRate = flagFPS
	}

	sim := balance.NewSimulator(cfg.Params(), balance.NewNoise(flagSeed))
	hub := feed.NewHub(sim, feed.Options{
		TickRate:     tickRate,
		StepMode:     mode,
		InitialSpeed: cfg.Speed.Initial,
		RestartAfter: flagFeedRestart,
		Logger:       logger,
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{
		Addr:              flagFeedAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hubDone := make(chan error, 1)
	go func() { hubDone <- hub.Run(ctx) }()

	go func() {
		logger.Info("listening", "addr", flagFeedAddr, "path", "/ws")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", "err", err)
	}
	if err := <-hubDone; err != nil && !errors.Is(err, context.Canceled) {
		fail("%v", err)
	}
}
