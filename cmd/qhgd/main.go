// Command qhgd serves the Quantum Hermetic Gematria engine over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talgya/quantum-gematria/internal/config"
	"github.com/talgya/quantum-gematria/internal/daemon"
	"github.com/talgya/quantum-gematria/internal/logger"
)

var (
	Version   = "0.1.0"
	CommitSha = "unknown"
)

func main() {
	cfg, err := config.Load(os.Getenv("QHG_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Server.Port)

	if err := daemon.Run(ctx, cfg, Version+"-"+CommitSha); err != nil {
		slog.Error("qhgd stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("qhgd stopped")
}
