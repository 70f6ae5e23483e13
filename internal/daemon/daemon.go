// Package daemon assembles and runs the qhg HTTP service.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/talgya/quantum-gematria/internal/api"
	"github.com/talgya/quantum-gematria/internal/config"
	"github.com/talgya/quantum-gematria/internal/engine"
	"github.com/talgya/quantum-gematria/internal/metrics"
	"github.com/talgya/quantum-gematria/internal/persistence"
	"github.com/talgya/quantum-gematria/internal/phi"
)

// Run opens the history store, starts the API and blocks until ctx is done.
func Run(ctx context.Context, cfg *config.Config, version string) error {
	slog.Info("Quantum Hermetic Gematria resonance service", "version", version)

	t := phi.Default()
	slog.Info("constants",
		"phi", t.Phi,
		"fine_structure", fmt.Sprintf("%.8f", t.FineStructure),
		"cosmic_ratio", fmt.Sprintf("%.5f", t.CosmicRatio),
		"golden_spiral", fmt.Sprintf("%.5f", t.GoldenSpiral),
		"quantum_coherence", fmt.Sprintf("%.5f", t.QuantumCoherence),
	)

	// ── Database ──────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	db, err := persistence.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.Storage.Path, "history_limit", cfg.Storage.HistoryLimit)

	// ── Engine + metrics ─────────────────────────────────────────────
	eng := engine.New(t)
	eng.BatchWorkers = cfg.Batch.Workers

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.Server.AdminKey == "" {
		slog.Warn("QHG_ADMIN_KEY not set, history purge endpoint disabled")
	}
	srv := api.NewServer(cfg, eng, db, m, reg)
	srv.Version = version

	if err := srv.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
