package engine

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/quantum-gematria/internal/gematria"
	"github.com/talgya/quantum-gematria/internal/phi"
)

func newTestEngine() *Engine {
	return NewDefault()
}

func TestAnalyze_Light(t *testing.T) {
	e := newTestEngine()

	a, err := e.Analyze("LIGHT", gematria.QuantumHermetic)
	require.NoError(t, err)

	assert.Equal(t, "LIGHT", a.Text)
	assert.Equal(t, 71648, a.BaseValue)
	assert.InDelta(t, 42617.05239976637, a.QuantumResonance, 1e-6)
	assert.InDelta(t, 855.4332878778713, a.QuantumState[0], 1e-9)
	assert.Equal(t, "pentagonal", a.DominantPattern)
	assert.Equal(t, "polarity", a.DominantPrinciple)
	assert.InDelta(t, 80.42951090827253, a.HarmonicResonance, 1e-6)

	assert.Len(t, a.GeometryResonance, 4)
	assert.Len(t, a.HermeticResonances, phi.NumPrinciples)
	assert.Len(t, a.QuantumPatterns, 3)
	assert.Contains(t, a.QuantumPatterns, "stability")

	require.NotNil(t, a.Interpretation.PrimaryPattern)
	assert.Equal(t, "stability", *a.Interpretation.PrimaryPattern)
	assert.Equal(t, "Strong", a.Interpretation.ResonanceQuality)
	assert.Equal(t, "pentagonal", a.Interpretation.GeometricHarmony)
	assert.Equal(t, "polarity", a.Interpretation.HermeticInfluence)

	require.Len(t, a.EgyptianTechnology, 3)
	assert.Equal(t, "benben_stone", a.EgyptianTechnology[0].Name)
	require.NotNil(t, a.Interpretation.AlignedEgyptianTech)
	assert.Equal(t, "benben_stone", a.Interpretation.AlignedEgyptianTech.Device)
	assert.Equal(t, "Primordial energy focusing", a.Interpretation.AlignedEgyptianTech.Purpose)

	require.Len(t, a.ModernEquivalents, 3)
	require.NotNil(t, a.Interpretation.ModernEquivalent)
	assert.Equal(t, "pyramid_frame", a.Interpretation.ModernEquivalent.Device)
}

func TestAnalyze_Deterministic(t *testing.T) {
	e := newTestEngine()

	first, err := e.Analyze("Emerald Tablet", gematria.QuantumHermetic)
	require.NoError(t, err)
	for range 5 {
		again, err := e.Analyze("Emerald Tablet", gematria.QuantumHermetic)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	// A second engine over the same table agrees.
	other, err := New(phi.Default()).Analyze("Emerald Tablet", gematria.QuantumHermetic)
	require.NoError(t, err)
	assert.Equal(t, first, other)
}

func TestAnalyze_Empty(t *testing.T) {
	e := newTestEngine()

	a, err := e.Analyze("", gematria.QuantumHermetic)
	require.NoError(t, err)
	assert.Equal(t, 0, a.BaseValue)
	assert.InDelta(t, 126.41750182361564, a.QuantumResonance, 1e-9)
	assert.Equal(t, "pentagonal", a.DominantPattern)
	assert.NotNil(t, a.QuantumPatterns)
	assert.NotNil(t, a.EgyptianTechnology)
	assert.NotNil(t, a.ModernEquivalents)

	// Text with no mapped characters behaves like empty text.
	b, err := e.Analyze("!!! 123", gematria.QuantumHermetic)
	require.NoError(t, err)
	assert.Equal(t, a.QuantumResonance, b.QuantumResonance)
}

func TestAnalyze_UnknownScheme(t *testing.T) {
	e := newTestEngine()

	_, err := e.Analyze("LIGHT", gematria.Scheme(42))
	assert.True(t, errors.Is(err, gematria.ErrUnknownScheme))

	_, err = e.AnalyzeName("LIGHT", "klingon")
	assert.True(t, errors.Is(err, gematria.ErrUnknownScheme))
}

func TestAnalyzeName(t *testing.T) {
	e := newTestEngine()

	a, err := e.AnalyzeName("LIGHT", "")
	require.NoError(t, err)
	assert.Equal(t, gematria.QuantumHermetic, a.Scheme)

	b, err := e.AnalyzeName("LIGHT", "english_ordinal")
	require.NoError(t, err)
	assert.Equal(t, gematria.EnglishOrdinal, b.Scheme)
	assert.NotEqual(t, a.BaseValue, b.BaseValue)
}

func TestAnalyze_ThresholdConsistency(t *testing.T) {
	e := newTestEngine()

	for _, text := range []string{"", "a", "LIGHT", "LOVE", "truth", "As above, so below", "Hermes Trismegistus"} {
		a, err := e.Analyze(text, gematria.QuantumHermetic)
		require.NoError(t, err)

		for name, score := range a.QuantumPatterns {
			assert.Greater(t, score, phi.ResonanceThreshold, "%q pattern %s", text, name)
		}
		assert.LessOrEqual(t, len(a.EgyptianTechnology), 3)
		for _, m := range a.EgyptianTechnology {
			assert.Greater(t, m.AlignmentStrength, phi.ResonanceThreshold)
		}
		for _, m := range a.ModernEquivalents {
			assert.Greater(t, m.MatchStrength, phi.ResonanceThreshold)
		}
	}
}

func TestAnalysis_JSONShape(t *testing.T) {
	e := newTestEngine()

	a, err := e.Analyze("", gematria.QuantumHermetic)
	require.NoError(t, err)

	raw, err := json.Marshal(a)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{
		"base_value", "quantum_resonance", "quantum_state", "geometry_resonance",
		"harmonic_resonance", "dominant_pattern", "hermetic_resonances",
		"dominant_principle", "quantum_patterns", "pattern_significance",
		"interpretation", "egyptian_technology", "modern_equivalents",
	} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, `"quantum_hermetic"`, string(doc["scheme"]))

	var state []float64
	require.NoError(t, json.Unmarshal(doc["quantum_state"], &state))
	assert.Len(t, state, 2)
}

func TestBatch_KeepsOrder(t *testing.T) {
	e := newTestEngine()
	e.BatchWorkers = 2

	texts := []string{"LIGHT", "LOVE", "", "truth", "abc"}
	got, err := e.AnalyzeBatch(context.Background(), texts, gematria.QuantumHermetic)
	require.NoError(t, err)
	require.Len(t, got, len(texts))

	for i, text := range texts {
		want, err := e.Analyze(text, gematria.QuantumHermetic)
		require.NoError(t, err)
		assert.Equal(t, want, got[i])
	}
}

func TestBatch_Empty(t *testing.T) {
	got, err := newTestEngine().AnalyzeBatch(context.Background(), nil, gematria.QuantumHermetic)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBatch_UnknownScheme(t *testing.T) {
	_, err := newTestEngine().AnalyzeBatch(context.Background(), []string{"a"}, gematria.Scheme(99))
	assert.True(t, errors.Is(err, gematria.ErrUnknownScheme))
}

func TestBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine().AnalyzeBatch(ctx, []string{"a", "b", "c"}, gematria.QuantumHermetic)
	assert.ErrorIs(t, err, context.Canceled)
}
