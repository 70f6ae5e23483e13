// Package quantum applies the fixed linear transforms that turn a base value
// into a resonance: the quantum matrix, the hermetic matrix and the sacred
// geometry tensors. All matrices are built once from the constant table.
package quantum

import "math"

// Products below are wrapped in float64 conversions so the compiler cannot
// fuse them into FMA instructions; results must be bit-identical on every
// architecture.

// Vec2 is a column vector of length two.
type Vec2 [2]float64

// Norm returns the Euclidean norm of v.
func (v Vec2) Norm() float64 {
	return math.Sqrt(float64(v[0]*v[0]) + float64(v[1]*v[1]))
}

// Mat2 is a row-major 2×2 matrix.
type Mat2 [2][2]float64

// MulVec returns m·v. The matrices here are not symmetric, so operand order
// matters.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		float64(m[0][0]*v[0]) + float64(m[0][1]*v[1]),
		float64(m[1][0]*v[0]) + float64(m[1][1]*v[1]),
	}
}

// Div returns m with every element divided by k.
func (m Mat2) Div(k float64) Mat2 {
	return Mat2{
		{m[0][0] / k, m[0][1] / k},
		{m[1][0] / k, m[1][1] / k},
	}
}

// Mat72 is a 7×2 matrix, one row per hermetic principle.
type Mat72 [7][2]float64

// MulVec returns m·v as a 7-vector.
func (m Mat72) MulVec(v Vec2) [7]float64 {
	var out [7]float64
	for i, row := range m {
		out[i] = float64(row[0]*v[0]) + float64(row[1]*v[1])
	}
	return out
}

// norm7 returns the Euclidean norm of a 7-vector.
func norm7(v [7]float64) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x * x)
	}
	return math.Sqrt(sum)
}
