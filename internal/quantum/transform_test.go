package quantum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/quantum-gematria/internal/phi"
)

func newTestTransformer() *Transformer {
	return NewTransformer(phi.Default())
}

func TestMat2_MulVecOrder(t *testing.T) {
	m := Mat2{{1, 2}, {3, 4}}
	v := Vec2{5, 6}

	// m·v, not v·m.
	assert.Equal(t, Vec2{17, 39}, m.MulVec(v))
}

func TestMat72_MulVec(t *testing.T) {
	var m Mat72
	for i := range m {
		m[i] = [2]float64{float64(i), 1}
	}
	out := m.MulVec(Vec2{2, 3})
	for i, v := range out {
		assert.Equal(t, float64(2*i+3), v)
	}
}

func TestVec2_Norm(t *testing.T) {
	assert.Equal(t, 5.0, Vec2{3, 4}.Norm())
	assert.Equal(t, 0.0, Vec2{}.Norm())
}

func TestMatrices(t *testing.T) {
	tr := newTestTransformer()
	tbl := phi.Default()

	q := tr.QuantumMatrix()
	assert.InDelta(t, tbl.Phi*(1+tbl.FineStructure), q[0][0], 1e-15)
	assert.InDelta(t, -tbl.Phi*(1-tbl.FineStructure), q[1][1], 1e-15)
	assert.NotEqual(t, q[0][1], q[1][0], "quantum matrix is not symmetric")

	h := tr.HermeticMatrix()
	for p := phi.Principle(0); p < phi.NumPrinciples; p++ {
		assert.Equal(t, tbl.Principle(p), h[p][0])
		assert.InDelta(t, 1.0, h[p][0]*h[p][1], 1e-15)
	}

	spiral := tr.GeometryTensor(PhiSpiral)
	assert.InDelta(t, tbl.Phi/math.Sqrt2, spiral[0][0], 1e-15)
	assert.InDelta(t, -tbl.E/math.Sqrt2, spiral[0][1], 1e-15)
}

func TestTransform_ZeroBase(t *testing.T) {
	tr := newTestTransformer()

	resonance, state := tr.Transform(0)
	assert.InDelta(t, 126.41750182361564, resonance, 1e-9)
	assert.InDelta(t, 3.285866343373834, state[0], 1e-12)
	assert.InDelta(t, -8.4774167712026, state[1], 1e-12)
}

func TestTransform_Light(t *testing.T) {
	tr := newTestTransformer()

	resonance, state := tr.Transform(71648)
	assert.InDelta(t, 42617.05239976637, resonance, 1e-6)
	assert.InDelta(t, 855.4332878778713, state[0], 1e-9)
	assert.InDelta(t, 312.31498173278106, state[1], 1e-9)
}

func TestTransform_Deterministic(t *testing.T) {
	tr := newTestTransformer()

	r1, s1 := tr.Transform(1234)
	r2, s2 := tr.Transform(1234)
	assert.Equal(t, r1, r2)
	assert.Equal(t, s1, s2)
}

func TestGeometry(t *testing.T) {
	tr := newTestTransformer()

	scores, dominant := tr.Geometry(42617.05239976637)
	assert.Equal(t, Pentagonal, dominant)
	assert.InDelta(t, 148322.47251267437, scores[VesicaPiscis], 1e-4)
	assert.InDelta(t, 395521.22417085763, scores[Pentagonal], 1e-4)

	m := scores.Map()
	assert.Len(t, m, NumGeometryPatterns)
	assert.Equal(t, scores[PhiSpiral], m["phi_spiral"])
}

func TestSacredGeometry_UnknownPattern(t *testing.T) {
	tr := newTestTransformer()
	assert.Equal(t, 42.0, tr.SacredGeometry(42, GeometryPattern(200)))
}

func TestHarmonic(t *testing.T) {
	tr := newTestTransformer()

	assert.Equal(t, 0.0, tr.Harmonic(0))
	assert.InDelta(t, 80.42951090827253, tr.Harmonic(42617.05239976637), 1e-6)
	assert.InDelta(t, 0.04825803898813235, tr.Harmonic(126.41750182361564), 1e-12)
}

func TestHermetic(t *testing.T) {
	tr := newTestTransformer()

	scores, dominant := tr.Hermetic(42617.05239976637)
	assert.Equal(t, phi.Polarity, dominant)
	assert.InDelta(t, 16278.26551637548, scores[phi.Mentalism], 1e-6)

	m := scores.Map()
	require.Len(t, m, phi.NumPrinciples)
	assert.Equal(t, scores[phi.Gender], m["gender"])

	// All-zero scores keep the first principle.
	_, dominant = tr.Hermetic(0)
	assert.Equal(t, phi.Mentalism, dominant)
}

func TestGeometryPatternNames(t *testing.T) {
	assert.Equal(t, "vesica_piscis", VesicaPiscis.String())
	assert.Equal(t, "phi_spiral", PhiSpiral.String())
	assert.Equal(t, "unknown", GeometryPattern(9).String())
}
