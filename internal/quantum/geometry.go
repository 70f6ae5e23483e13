package quantum

import (
	"math"

	"github.com/talgya/quantum-gematria/internal/phi"
)

// GeometryPattern selects one of the sacred geometry tensors. Declaration
// order is iteration order, and ties go to the earlier pattern.
type GeometryPattern uint8

const (
	VesicaPiscis GeometryPattern = iota
	Triangular
	Pentagonal
	PhiSpiral

	NumGeometryPatterns = 4
)

var geometryNames = [NumGeometryPatterns]string{
	"vesica_piscis", "triangular", "pentagonal", "phi_spiral",
}

func (g GeometryPattern) String() string {
	if g < NumGeometryPatterns {
		return geometryNames[g]
	}
	return "unknown"
}

// geometryTensors builds the four tensors. Each pairs a root with a ratio
// and its negation; the Φ spiral is normalized by the true √2.
func geometryTensors(t *phi.Table) [NumGeometryPatterns]Mat2 {
	return [NumGeometryPatterns]Mat2{
		VesicaPiscis: {
			{t.Sqrt2, t.DNARatio},
			{-t.DNARatio, 1 / t.Sqrt2},
		},
		Triangular: {
			{t.Sqrt3, t.GoldenSpiral},
			{-t.GoldenSpiral, 1 / t.Sqrt3},
		},
		Pentagonal: {
			{t.Sqrt5, t.CosmicRatio},
			{-t.CosmicRatio, 1 / t.Sqrt5},
		},
		PhiSpiral: Mat2{
			{t.Phi, -t.E},
			{t.Pi, t.Phi},
		}.Div(math.Sqrt(2)),
	}
}
