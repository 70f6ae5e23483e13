// Package chart turns an analysis into plottable series.
package chart

import (
	"math"

	"github.com/talgya/quantum-gematria/internal/engine"
	"github.com/talgya/quantum-gematria/internal/phi"
	"github.com/talgya/quantum-gematria/internal/quantum"
)

// HarmonicSamples is the number of points in the harmonic wave series.
const HarmonicSamples = 100

// Bar is one geometry pattern score.
type Bar struct {
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Dominant bool    `json:"dominant"`
}

// Point is a labelled or indexed sample.
type Point struct {
	Label string  `json:"label,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Chart holds the four series drawn for an analysis.
type Chart struct {
	Text         string  `json:"text"`
	Geometry     []Bar   `json:"geometry"`
	Hermetic     []Point `json:"hermetic"`
	QuantumState []Point `json:"quantum_state"`
	Harmonic     []Point `json:"harmonic"`
}

// Build derives the chart series from a. It does not recompute anything.
func Build(a *engine.Analysis) Chart {
	c := Chart{
		Text:         a.Text,
		Geometry:     make([]Bar, 0, quantum.NumGeometryPatterns),
		Hermetic:     make([]Point, 0, phi.NumPrinciples),
		QuantumState: make([]Point, 0, len(a.QuantumState)),
		Harmonic:     make([]Point, 0, HarmonicSamples),
	}

	for p := quantum.GeometryPattern(0); p < quantum.NumGeometryPatterns; p++ {
		name := p.String()
		c.Geometry = append(c.Geometry, Bar{
			Label:    name,
			Value:    a.GeometryResonance[name],
			Dominant: name == a.DominantPattern,
		})
	}

	for p := phi.Principle(0); p < phi.NumPrinciples; p++ {
		name := p.String()
		c.Hermetic = append(c.Hermetic, Point{
			Label: name,
			X:     float64(p),
			Y:     a.HermeticResonances[name],
		})
	}

	for i, v := range a.QuantumState {
		c.QuantumState = append(c.QuantumState, Point{X: float64(i), Y: v})
	}

	step := 2 * math.Pi / float64(HarmonicSamples-1)
	for i := range HarmonicSamples {
		x := float64(i) * step
		if i == HarmonicSamples-1 {
			x = 2 * math.Pi
		}
		c.Harmonic = append(c.Harmonic, Point{X: x, Y: math.Sin(x * a.HarmonicResonance)})
	}

	return c
}
