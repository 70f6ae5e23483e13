package quantum

import (
	"math"

	"github.com/talgya/quantum-gematria/internal/phi"
)

// Transformer holds the matrices derived from a constant table. It has no
// mutable state and is safe for concurrent use.
type Transformer struct {
	t        *phi.Table
	quantum  Mat2
	hermetic Mat72
	geometry [NumGeometryPatterns]Mat2
}

// NewTransformer builds the quantum, hermetic and geometry matrices.
func NewTransformer(t *phi.Table) *Transformer {
	alpha := t.FineStructure

	tr := &Transformer{
		t: t,
		quantum: Mat2{
			{t.Phi * (1 + alpha), 1 / (t.Phi * (1 - alpha))},
			{1 / (t.Phi * (1 + alpha)), -t.Phi * (1 - alpha)},
		},
		geometry: geometryTensors(t),
	}
	for p := phi.Principle(0); p < phi.NumPrinciples; p++ {
		v := t.Principle(p)
		tr.hermetic[p] = [2]float64{v, 1 / v}
	}
	return tr
}

// QuantumMatrix returns the 2×2 quantum matrix.
func (tr *Transformer) QuantumMatrix() Mat2 { return tr.quantum }

// HermeticMatrix returns the 7×2 hermetic matrix.
func (tr *Transformer) HermeticMatrix() Mat72 { return tr.hermetic }

// GeometryTensor returns the tensor for p.
func (tr *Transformer) GeometryTensor(p GeometryPattern) Mat2 { return tr.geometry[p] }

// Transform pushes a base value through the quantum and hermetic matrices.
// It returns the scalar resonance and the intermediate quantum state Q·s.
// A base of zero still yields a nonzero state because of the cosmic term.
func (tr *Transformer) Transform(base float64) (float64, Vec2) {
	state := Vec2{base * tr.t.FineStructure, tr.t.CosmicRatio}
	transformed := tr.quantum.MulVec(state)
	resonance := norm7(tr.hermetic.MulVec(transformed)) * tr.t.CosmicRatio
	return resonance, transformed
}

// SacredGeometry scores a resonance against one geometry tensor. Unknown
// patterns pass the resonance through unchanged.
func (tr *Transformer) SacredGeometry(resonance float64, p GeometryPattern) float64 {
	if p >= NumGeometryPatterns {
		return resonance
	}
	v := Vec2{resonance / 100.0, 1.0}
	return tr.geometry[p].MulVec(v).Norm() * tr.t.Phi * 100
}

// GeometryScores holds one score per GeometryPattern.
type GeometryScores [NumGeometryPatterns]float64

// Map returns the scores keyed by pattern name.
func (g GeometryScores) Map() map[string]float64 {
	out := make(map[string]float64, NumGeometryPatterns)
	for i, v := range g {
		out[GeometryPattern(i).String()] = v
	}
	return out
}

// Geometry scores the resonance against every tensor and returns the
// dominant pattern, the first one holding the maximum.
func (tr *Transformer) Geometry(resonance float64) (GeometryScores, GeometryPattern) {
	var scores GeometryScores
	dominant := VesicaPiscis
	for p := GeometryPattern(0); p < NumGeometryPatterns; p++ {
		scores[p] = tr.SacredGeometry(resonance, p)
		if scores[p] > scores[dominant] {
			dominant = p
		}
	}
	return scores, dominant
}

// Harmonic computes the harmonic resonance
//
//	q·(Φ/π)·ln(q+1)·sin(q·dna)·cos(q·cosmic),  q = resonance·α
//
// which is zero at q = 0 and defined for every q ≥ 0.
func (tr *Transformer) Harmonic(resonance float64) float64 {
	t := tr.t
	q := resonance * t.FineStructure

	harmonic := q * (t.Phi / t.Pi) * math.Log(q+1)
	dna := math.Sin(q * t.DNARatio)
	cosmic := math.Cos(q * t.CosmicRatio)

	return harmonic * dna * cosmic
}

// HermeticScores holds one score per hermetic principle.
type HermeticScores [phi.NumPrinciples]float64

// Map returns the scores keyed by principle name.
func (h HermeticScores) Map() map[string]float64 {
	out := make(map[string]float64, phi.NumPrinciples)
	for i, v := range h {
		out[phi.Principle(i).String()] = v
	}
	return out
}

// Hermetic divides the resonance by each principle scalar and returns the
// dominant principle, the first one holding the maximum.
func (tr *Transformer) Hermetic(resonance float64) (HermeticScores, phi.Principle) {
	var scores HermeticScores
	dominant := phi.Mentalism
	for p := phi.Principle(0); p < phi.NumPrinciples; p++ {
		scores[p] = resonance / tr.t.Principle(p)
		if scores[p] > scores[dominant] {
			dominant = p
		}
	}
	return scores, dominant
}
