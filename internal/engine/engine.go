// Package engine runs the resonance pipeline: encode text, transform the base
// value, score it against geometry, hermetic and pattern catalogs, and compare
// two profiles. Every result is a pure function of its input text.
package engine

import (
	"runtime"

	"github.com/talgya/quantum-gematria/internal/gematria"
	"github.com/talgya/quantum-gematria/internal/patterns"
	"github.com/talgya/quantum-gematria/internal/phi"
	"github.com/talgya/quantum-gematria/internal/quantum"
)

// Engine wires the pipeline stages over one constant table. All stages are
// read-only after construction, so an Engine is safe for concurrent use.
type Engine struct {
	// BatchWorkers bounds the concurrency of AnalyzeBatch. Zero or less
	// means GOMAXPROCS.
	BatchWorkers int

	table       *phi.Table
	encoder     *gematria.Encoder
	transformer *quantum.Transformer
	detector    *patterns.Detector
}

// New builds an engine over t.
func New(t *phi.Table) *Engine {
	return &Engine{
		table:       t,
		encoder:     gematria.NewEncoder(t),
		transformer: quantum.NewTransformer(t),
		detector:    patterns.NewDetector(t),
	}
}

// NewDefault builds an engine over the shared default constant table.
func NewDefault() *Engine {
	return New(phi.Default())
}

// Table returns the engine's constant table.
func (e *Engine) Table() *phi.Table { return e.table }

// Encoder returns the engine's symbol encoder.
func (e *Engine) Encoder() *gematria.Encoder { return e.encoder }

// Transformer returns the engine's matrix stage.
func (e *Engine) Transformer() *quantum.Transformer { return e.transformer }

// Detector returns the engine's pattern detector.
func (e *Engine) Detector() *patterns.Detector { return e.detector }

func (e *Engine) workers() int {
	if e.BatchWorkers > 0 {
		return e.BatchWorkers
	}
	return runtime.GOMAXPROCS(0)
}
