package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/talgya/quantum-gematria/internal/chart"
	"github.com/talgya/quantum-gematria/internal/client"
	"github.com/talgya/quantum-gematria/internal/config"
	"github.com/talgya/quantum-gematria/internal/engine"
	"github.com/talgya/quantum-gematria/internal/gematria"
	"github.com/talgya/quantum-gematria/internal/persistence"
)

// localSession tags history written by the CLI in local mode.
const localSession = "cli"

// backend is where commands send their work: the in-process engine or a
// remote qhgd.
type backend interface {
	Analyze(ctx context.Context, text, scheme string) (*engine.Analysis, error)
	Compare(ctx context.Context, phrase1, phrase2 string) (*engine.Comparison, error)
	Chart(ctx context.Context, text, scheme string) (*chart.Chart, error)
	Schemes(ctx context.Context) ([]string, error)
	History(ctx context.Context, limit int) (*client.History, error)
	ClearHistory(ctx context.Context) error
	Close() error
}

// loadSession returns the remote history session stored at path, creating
// one on first use. An empty result leaves the session to the cookie jar.
func loadSession(path string) string {
	if raw, err := os.ReadFile(path); err == nil {
		if id, err := uuid.Parse(strings.TrimSpace(string(raw))); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		slog.Warn("session dir", "path", path, "error", err)
		return ""
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		slog.Warn("session write", "path", path, "error", err)
		return ""
	}
	return id
}

type remoteBackend struct {
	c *client.Client
}

func (r *remoteBackend) Analyze(ctx context.Context, text, scheme string) (*engine.Analysis, error) {
	return r.c.Analyze(ctx, text, scheme)
}

func (r *remoteBackend) Compare(ctx context.Context, phrase1, phrase2 string) (*engine.Comparison, error) {
	return r.c.Compare(ctx, phrase1, phrase2)
}

func (r *remoteBackend) Chart(ctx context.Context, text, scheme string) (*chart.Chart, error) {
	return r.c.Chart(ctx, text, scheme)
}

func (r *remoteBackend) Schemes(ctx context.Context) ([]string, error) {
	return r.c.Schemes(ctx)
}

func (r *remoteBackend) History(ctx context.Context, limit int) (*client.History, error) {
	h, err := r.c.History(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		h.Analyses = h.Analyses[:min(limit, len(h.Analyses))]
		h.Comparisons = h.Comparisons[:min(limit, len(h.Comparisons))]
	}
	return h, nil
}

func (r *remoteBackend) ClearHistory(ctx context.Context) error {
	return r.c.ClearHistory(ctx)
}

func (r *remoteBackend) Close() error { return nil }

// localBackend runs the engine in process and keeps history in the
// configured SQLite file. History is best effort: if the store cannot be
// opened, analysis still works.
type localBackend struct {
	eng   *engine.Engine
	cfg   *config.Config
	db    *persistence.DB
	dbErr error
	tried bool
}

func newLocalBackend(cfg *config.Config) *localBackend {
	eng := engine.NewDefault()
	eng.BatchWorkers = cfg.Batch.Workers
	return &localBackend{eng: eng, cfg: cfg}
}

func (l *localBackend) store() (*persistence.DB, error) {
	if !l.tried {
		l.tried = true
		if err := os.MkdirAll(filepath.Dir(l.cfg.Storage.Path), 0o755); err != nil {
			l.dbErr = err
		} else {
			l.db, l.dbErr = persistence.Open(l.cfg.Storage.Path)
		}
	}
	return l.db, l.dbErr
}

func (l *localBackend) record(kind string, save func(*persistence.DB) (string, error)) {
	db, err := l.store()
	if err != nil {
		slog.Warn("history unavailable", "path", l.cfg.Storage.Path, "error", err)
		return
	}
	if _, err := save(db); err != nil {
		slog.Warn("history write failed", "kind", kind, "error", err)
		return
	}
	if _, err := db.Trim(context.Background(), localSession, l.cfg.Storage.HistoryLimit); err != nil {
		slog.Warn("history trim failed", "error", err)
	}
}

func (l *localBackend) Analyze(ctx context.Context, text, scheme string) (*engine.Analysis, error) {
	a, err := l.eng.AnalyzeName(text, scheme)
	if err != nil {
		return nil, err
	}
	l.record("analysis", func(db *persistence.DB) (string, error) {
		return db.SaveAnalysis(ctx, localSession, a)
	})
	return a, nil
}

func (l *localBackend) Compare(ctx context.Context, phrase1, phrase2 string) (*engine.Comparison, error) {
	c, err := l.eng.Compare(phrase1, phrase2)
	if err != nil {
		return nil, err
	}
	l.record("comparison", func(db *persistence.DB) (string, error) {
		return db.SaveComparison(ctx, localSession, phrase1, phrase2, c)
	})
	return c, nil
}

func (l *localBackend) Chart(ctx context.Context, text, scheme string) (*chart.Chart, error) {
	a, err := l.eng.AnalyzeName(text, scheme)
	if err != nil {
		return nil, err
	}
	c := chart.Build(a)
	return &c, nil
}

func (l *localBackend) Schemes(ctx context.Context) ([]string, error) {
	return gematria.SchemeNames(), nil
}

// History reads every session, so daemon entries sharing the file show too.
func (l *localBackend) History(ctx context.Context, limit int) (*client.History, error) {
	db, err := l.store()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = l.cfg.Storage.HistoryLimit
	}
	analyses, err := db.RecentAnalyses(ctx, "", limit)
	if err != nil {
		return nil, err
	}
	comparisons, err := db.RecentComparisons(ctx, "", limit)
	if err != nil {
		return nil, err
	}
	return &client.History{Analyses: analyses, Comparisons: comparisons}, nil
}

func (l *localBackend) ClearHistory(ctx context.Context) error {
	db, err := l.store()
	if err != nil {
		return err
	}
	return db.Clear(ctx, "")
}

func (l *localBackend) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
