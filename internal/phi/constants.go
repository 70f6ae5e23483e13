// Package phi provides the constant table behind every resonance computation.
// Base constants are fixed literals; everything else is derived from them once,
// when Default is first called, and never recomputed.
package phi

import (
	"fmt"
	"math"
	"sync"
)

// Base constants. The root literals are carried at the precision the
// reference tables were built with, which for Sqrt2 and Sqrt3 is one digit
// short of math.Sqrt2 and math.Sqrt3. Do not swap them for the math package.
const (
	Phi   = 1.618033988749895 // golden ratio
	Pi    = 3.141592653589793
	E     = 2.718281828459045
	Sqrt2 = 1.414213562373095
	Sqrt3 = 1.732050807568877
	Sqrt5 = 2.236067977499790

	// FineStructure is the electromagnetic coupling constant α.
	FineStructure = 0.0072973525693

	PlanckLength = 1.616255e-35
	PlanckTime   = 5.391247e-44
	SpeedOfLight = 299792458.0
)

// Acceptance thresholds.
const (
	// ResonanceThreshold gates quantum patterns and technology catalogs (≈ 1/Φ).
	ResonanceThreshold = 0.618

	// SynergyThreshold marks a relationship pattern as "Strong Positive".
	SynergyThreshold = 0.777

	// InterferenceThreshold is the floor for a "Moderate" relationship pattern.
	InterferenceThreshold = 0.333
)

// Table is the process-wide constant table. A Table is read-only once built;
// callers share it by pointer and must not modify it.
type Table struct {
	Phi, Pi, E          float64
	Sqrt2, Sqrt3, Sqrt5 float64
	FineStructure       float64

	// Ratios derived from the base constants.
	DNARatio         float64 // 34/21
	GoldenSpiral     float64 // Φ^(1/Φ)
	CosmicRatio      float64 // π·e/Φ
	QuantumCoherence float64 // π/Φ

	PlanckLength float64
	PlanckTime   float64
	SpeedOfLight float64

	// Principles holds the seven hermetic principle scalars in Principle order.
	Principles [NumPrinciples]float64

	Fibonacci []int
	Primes    []int

	PlatonicAngles []Angle

	ResonanceThreshold    float64
	SynergyThreshold      float64
	InterferenceThreshold float64

	// Archetypes holds the archetypal reference frequencies in Archetype order.
	Archetypes [NumArchetypes]float64

	EgyptianTech         []Technology
	ModernEquivalents    []Technology
	RelationshipPatterns []RelationshipPattern
	AlignmentMetrics     [NumMetrics]AlignmentMetric

	fib   map[int]bool
	prime map[int]bool
}

// Angle is a named platonic solid angle in degrees.
type Angle struct {
	Name    string  `json:"name"`
	Degrees float64 `json:"degrees"`
}

// Scalar is a named constant value, used when the table is reported.
type Scalar struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Default returns the shared constant table, building it on first use.
var Default = sync.OnceValue(func() *Table {
	t := build()
	if err := t.Validate(); err != nil {
		panic(err)
	}
	return t
})

func build() *Table {
	// Work on float64 variables so every derived value is rounded exactly
	// the way a runtime computation would round it.
	var (
		phi, pi, e          float64 = Phi, Pi, E
		sqrt2, sqrt3, sqrt5 float64 = Sqrt2, Sqrt3, Sqrt5
		alpha               float64 = FineStructure
	)

	t := &Table{
		Phi: phi, Pi: pi, E: e,
		Sqrt2: sqrt2, Sqrt3: sqrt3, Sqrt5: sqrt5,
		FineStructure: alpha,

		DNARatio:         float64(34) / float64(21),
		GoldenSpiral:     math.Pow(phi, 1/phi),
		CosmicRatio:      pi * e / phi,
		QuantumCoherence: pi / phi,

		PlanckLength: PlanckLength,
		PlanckTime:   PlanckTime,
		SpeedOfLight: SpeedOfLight,

		Fibonacci: []int{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233},
		Primes:    []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41},

		PlatonicAngles: []Angle{
			{"tetrahedron", 19.471220634490697},
			{"cube", 90.0},
			{"octahedron", 109.47122063449069},
			{"dodecahedron", 116.56505117707799},
			{"icosahedron", 138.19074733861384},
		},

		ResonanceThreshold:    ResonanceThreshold,
		SynergyThreshold:      SynergyThreshold,
		InterferenceThreshold: InterferenceThreshold,
	}

	t.Principles = [NumPrinciples]float64{
		Mentalism:      phi * phi,
		Correspondence: pi * phi,
		Vibration:      e * phi,
		Polarity:       sqrt2 * phi,
		Rhythm:         sqrt3 * phi,
		Causation:      sqrt5 * phi,
		Gender:         (phi + pi) / 2,
	}

	t.Archetypes = [NumArchetypes]float64{
		Unity:        phi,
		Duality:      sqrt2,
		Creation:     sqrt3,
		Stability:    4.0,
		Change:       sqrt5,
		Harmony:      6.0,
		Spirituality: 7.0,
	}

	t.EgyptianTech = egyptianCatalog(t)
	t.ModernEquivalents = modernCatalog(t)
	t.RelationshipPatterns = relationshipCatalog(t)
	t.AlignmentMetrics = alignmentCatalog()

	t.fib = make(map[int]bool, len(t.Fibonacci))
	for _, v := range t.Fibonacci {
		t.fib[v] = true
	}
	t.prime = make(map[int]bool, len(t.Primes))
	for _, v := range t.Primes {
		t.prime[v] = true
	}

	return t
}

// IsFibonacci reports whether v is in the table's Fibonacci set.
func (t *Table) IsFibonacci(v int) bool { return t.fib[v] }

// IsPrime reports whether v is in the table's prime set.
func (t *Table) IsPrime(v int) bool { return t.prime[v] }

// Principle returns the scalar for a hermetic principle.
func (t *Table) Principle(p Principle) float64 { return t.Principles[p] }

// Archetype returns the reference frequency for an archetype.
func (t *Table) Archetype(a Archetype) float64 { return t.Archetypes[a] }

// Validate checks that every value used as a divisor is finite and nonzero.
func (t *Table) Validate() error {
	check := func(name string, v float64) error {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("phi: %s must be finite and nonzero, got %v", name, v)
		}
		return nil
	}

	for _, s := range t.Scalars() {
		if err := check(s.Name, s.Value); err != nil {
			return err
		}
	}
	for p := Principle(0); p < NumPrinciples; p++ {
		if err := check("principle "+p.String(), t.Principles[p]); err != nil {
			return err
		}
	}
	for a := Archetype(0); a < NumArchetypes; a++ {
		if err := check("archetype "+a.String(), t.Archetypes[a]); err != nil {
			return err
		}
	}
	for _, d := range t.EgyptianTech {
		if err := check("egyptian "+d.Name, d.Frequency); err != nil {
			return err
		}
	}
	for _, d := range t.ModernEquivalents {
		if err := check("modern "+d.Name, d.Frequency); err != nil {
			return err
		}
	}
	for _, r := range t.RelationshipPatterns {
		if err := check("relationship "+r.Name, r.Threshold); err != nil {
			return err
		}
	}
	return nil
}

// Scalars lists the named scalar constants in a fixed order.
func (t *Table) Scalars() []Scalar {
	return []Scalar{
		{"phi", t.Phi},
		{"pi", t.Pi},
		{"e", t.E},
		{"sqrt2", t.Sqrt2},
		{"sqrt3", t.Sqrt3},
		{"sqrt5", t.Sqrt5},
		{"fine_structure", t.FineStructure},
		{"dna_ratio", t.DNARatio},
		{"golden_spiral", t.GoldenSpiral},
		{"cosmic_ratio", t.CosmicRatio},
		{"quantum_coherence", t.QuantumCoherence},
		{"planck_length", t.PlanckLength},
		{"planck_time", t.PlanckTime},
		{"speed_of_light", t.SpeedOfLight},
		{"resonance_threshold", t.ResonanceThreshold},
		{"synergy_threshold", t.SynergyThreshold},
		{"interference_threshold", t.InterferenceThreshold},
	}
}
