// Package patterns detects which reference frequencies a resonance aligns with.
// Every score is strictly above its governing threshold, or it is not reported.
package patterns

import (
	"math"
	"sort"

	"github.com/talgya/quantum-gematria/internal/phi"
)

// Names of the two derived patterns reported alongside the archetypes.
const (
	QuantumCoherent  = "quantum_coherent"
	FibonacciAligned = "fibonacci_aligned"
)

// MaxTechMatches caps the technology catalogs.
const MaxTechMatches = 3

// Resonance quality bands.
const (
	QualityStrong = "Strong"
	QualityMedium = "Medium"
	QualityWeak   = "Weak"
)

// Detector scores resonances against the constant table's catalogs.
type Detector struct {
	t *phi.Table
}

// NewDetector returns a Detector over t.
func NewDetector(t *phi.Table) *Detector {
	return &Detector{t: t}
}

// Match is one detected pattern and its score.
type Match struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Detection is the ordered set of patterns that cleared the resonance
// threshold: archetypes in catalog order, then quantum_coherent, then
// fibonacci_aligned. It may be empty.
type Detection struct {
	matches []Match
}

// Detect evaluates every archetype, the quantum coherence score and the
// Fibonacci alignment score against the resonance threshold.
func (d *Detector) Detect(resonance float64) Detection {
	t := d.t
	var det Detection

	for a := phi.Archetype(0); a < phi.NumArchetypes; a++ {
		score := math.Abs(math.Sin(resonance / t.Archetype(a)))
		det.add(a.String(), score, t.ResonanceThreshold)
	}

	coherence := math.Abs(math.Cos(resonance * t.QuantumCoherence))
	det.add(QuantumCoherent, coherence, t.ResonanceThreshold)

	fib := math.Abs(math.Sin(resonance/t.Phi)) * math.Abs(math.Cos(resonance/t.GoldenSpiral))
	det.add(FibonacciAligned, fib, t.ResonanceThreshold)

	return det
}

func (det *Detection) add(name string, score, threshold float64) {
	if score > threshold {
		det.matches = append(det.matches, Match{Name: name, Score: score})
	}
}

// Len returns the number of detected patterns.
func (det Detection) Len() int { return len(det.matches) }

// Matches returns a copy of the detected patterns in detection order.
func (det Detection) Matches() []Match {
	out := make([]Match, len(det.matches))
	copy(out, det.matches)
	return out
}

// Map returns the detected patterns keyed by name. It is never nil.
func (det Detection) Map() map[string]float64 {
	out := make(map[string]float64, len(det.matches))
	for _, m := range det.matches {
		out[m.Name] = m.Score
	}
	return out
}

// Significance is the mean detected score, or 0 when nothing was detected.
func (det Detection) Significance() float64 {
	if len(det.matches) == 0 {
		return 0
	}
	var total float64
	for _, m := range det.matches {
		total += m.Score
	}
	return total / float64(len(det.matches))
}

// Strongest returns the first pattern holding the highest score.
func (det Detection) Strongest() (string, bool) {
	if len(det.matches) == 0 {
		return "", false
	}
	best := det.matches[0]
	for _, m := range det.matches[1:] {
		if m.Score > best.Score {
			best = m
		}
	}
	return best.Name, true
}

// Quality classifies a pattern significance.
func Quality(significance float64) string {
	switch {
	case significance > 0.8:
		return QualityStrong
	case significance > 0.6:
		return QualityMedium
	default:
		return QualityWeak
	}
}

// TechMatch is a catalog entry aligned with a resonance. Detail is the
// materials of an ancient device or the common form of a modern one.
type TechMatch struct {
	Name    string
	Score   float64
	Purpose string
	Detail  string
}

// EgyptianTechnology ranks the ancient catalog by |sin(r/f)|.
func (d *Detector) EgyptianTechnology(resonance float64) []TechMatch {
	return d.rank(d.t.EgyptianTech, func(f float64) float64 {
		return math.Abs(math.Sin(resonance / f))
	})
}

// ModernEquivalents ranks the modern catalog by |cos(r/f)|.
func (d *Detector) ModernEquivalents(resonance float64) []TechMatch {
	return d.rank(d.t.ModernEquivalents, func(f float64) float64 {
		return math.Abs(math.Cos(resonance / f))
	})
}

// rank keeps entries above the resonance threshold, sorts them by score
// descending with catalog order breaking ties, and keeps the top three.
func (d *Detector) rank(catalog []phi.Technology, score func(float64) float64) []TechMatch {
	matches := make([]TechMatch, 0, len(catalog))
	for _, tech := range catalog {
		s := score(tech.Frequency)
		if s > d.t.ResonanceThreshold {
			matches = append(matches, TechMatch{
				Name:    tech.Name,
				Score:   s,
				Purpose: tech.Purpose,
				Detail:  tech.Detail,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > MaxTechMatches {
		matches = matches[:MaxTechMatches]
	}
	return matches
}
