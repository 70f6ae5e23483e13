package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talgya/quantum-gematria/internal/gematria"
)

// AnalyzeBatch analyzes texts concurrently under scheme s, bounded by
// BatchWorkers. Results keep input order. The scheme is checked before any
// work starts; a cancelled context stops texts that have not started yet.
func (e *Engine) AnalyzeBatch(ctx context.Context, texts []string, s gematria.Scheme) ([]*Analysis, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", gematria.ErrUnknownScheme, s)
	}

	start := time.Now()
	results := make([]*Analysis, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := e.Analyze(text, s)
			if err != nil {
				return fmt.Errorf("analyze batch item %d: %w", i, err)
			}
			results[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("batch analyzed", "count", len(texts), "scheme", s.String(), "elapsed", time.Since(start))
	return results, nil
}
