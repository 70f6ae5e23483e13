package engine

import (
	"math"
	"strings"

	"github.com/talgya/quantum-gematria/internal/gematria"
	"github.com/talgya/quantum-gematria/internal/phi"
)

// Relationship statuses.
const (
	StatusStrongPositive = "Strong Positive"
	StatusModerate       = "Moderate"
)

// Alignment metric ratings.
const (
	RatingHigh   = "High"
	RatingMedium = "Medium"
	RatingLow    = "Low"
)

// Recommendation bands keyed by overall score.
const (
	RecommendStrong   = "Strong universal alignment - Highly favorable combination"
	RecommendPositive = "Positive resonance - Favorable with minor adjustments needed"
	RecommendModerate = "Moderate alignment - Consider carefully and look for complementary factors"
)

// Comparison is the relationship report for two phrases.
type Comparison struct {
	OverallCompatibilityScore int                             `json:"overall_compatibility_score"`
	ResonanceCompatibility    float64                         `json:"resonance_compatibility"`
	RelationshipPatterns      map[string]RelationshipStrength `json:"relationship_patterns"`
	AlignmentMetrics          map[string]MetricValue          `json:"alignment_metrics"`
	QuantumInterference       Interference                    `json:"quantum_interference"`
	HermeticSynergy           map[string]float64              `json:"hermetic_synergy"`
	Recommendations           []string                        `json:"recommendations"`
	IndividualAnalyses        IndividualAnalyses              `json:"individual_analyses"`
}

// RelationshipStrength is a relationship pattern that cleared the
// interference threshold.
type RelationshipStrength struct {
	Strength    float64 `json:"strength"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// MetricValue is one weighted alignment metric.
type MetricValue struct {
	Value       float64 `json:"value"`
	Description string  `json:"description"`
	Rating      string  `json:"rating"`
}

// Interference splits two resonances into their constructive and destructive
// halves.
type Interference struct {
	Constructive float64 `json:"constructive"`
	Destructive  float64 `json:"destructive"`
}

// IndividualAnalyses embeds both single-phrase profiles in argument order.
type IndividualAnalyses struct {
	Phrase1 *Analysis `json:"phrase1"`
	Phrase2 *Analysis `json:"phrase2"`
}

// Compare analyzes both phrases under the default scheme and combines them.
func (e *Engine) Compare(text1, text2 string) (*Comparison, error) {
	a1, err := e.Analyze(text1, gematria.DefaultScheme)
	if err != nil {
		return nil, err
	}
	a2, err := e.Analyze(text2, gematria.DefaultScheme)
	if err != nil {
		return nil, err
	}
	return e.Combine(a1, a2), nil
}

// Combine builds the comparison of two existing analyses. It performs no
// encoding, so the analyses may come from any scheme.
func (e *Engine) Combine(a1, a2 *Analysis) *Comparison {
	t := e.table
	r1, r2 := a1.QuantumResonance, a2.QuantumResonance
	diff := math.Abs(r1 - r2)
	compatibility := math.Exp(-diff / t.Phi)

	c := &Comparison{
		ResonanceCompatibility: compatibility,
		RelationshipPatterns:   make(map[string]RelationshipStrength),
		AlignmentMetrics:       make(map[string]MetricValue, phi.NumMetrics),
		QuantumInterference: Interference{
			Constructive: math.Abs(r1+r2) / 2,
			Destructive:  diff / 2,
		},
		HermeticSynergy:    hermeticSynergy(a1, a2),
		IndividualAnalyses: IndividualAnalyses{Phrase1: a1, Phrase2: a2},
	}

	product := r1 * r2
	var strengthSum float64
	strongest, strongestScore := "", math.Inf(-1)
	for _, p := range t.RelationshipPatterns {
		s := math.Abs(math.Cos(product / p.Threshold))
		var status string
		switch {
		case s > t.SynergyThreshold:
			status = StatusStrongPositive
		case s > t.InterferenceThreshold:
			status = StatusModerate
		default:
			continue
		}
		c.RelationshipPatterns[p.Name] = RelationshipStrength{
			Strength:    s,
			Description: p.Description,
			Status:      status,
		}
		strengthSum += s
		if s > strongestScore {
			strongest, strongestScore = p.Name, s
		}
	}

	values := e.metricValues(a1, a2, compatibility, diff)
	var metricSum float64
	topMetric := phi.Metric(0)
	for m := phi.Metric(0); m < phi.NumMetrics; m++ {
		v := values[m]
		metricSum += v
		if v > values[topMetric] {
			topMetric = m
		}
		def := t.AlignmentMetrics[m]
		c.AlignmentMetrics[def.Name] = MetricValue{
			Value:       v,
			Description: def.Description,
			Rating:      Rating(v),
		}
	}

	n := len(c.RelationshipPatterns)
	score := compatibility*0.3 +
		strengthSum*0.4/float64(max(n, 1)) +
		metricSum*0.3/float64(phi.NumMetrics)
	c.OverallCompatibilityScore = int(min(max(math.Round(score*100), 0), 100))

	c.Recommendations = append(c.Recommendations, band(c.OverallCompatibilityScore))
	if n > 0 {
		c.Recommendations = append(c.Recommendations,
			"Focus on "+humanize(strongest)+" aspects for best results")
	}
	c.Recommendations = append(c.Recommendations,
		"Leverage strong "+humanize(topMetric.String())+" for practical implementation")

	return c
}

// metricValues evaluates the five weighted alignment formulas in enum order.
func (e *Engine) metricValues(a1, a2 *Analysis, compatibility, diff float64) [phi.NumMetrics]float64 {
	t := e.table
	r1, r2 := a1.QuantumResonance, a2.QuantumResonance
	w := func(m phi.Metric) float64 { return t.AlignmentMetrics[m].Weight }

	var v [phi.NumMetrics]float64
	v[phi.EnergeticCompatibility] = compatibility * w(phi.EnergeticCompatibility)
	v[phi.GrowthPotential] = math.Abs(math.Sin(a1.HarmonicResonance*a2.HarmonicResonance)) * w(phi.GrowthPotential)
	v[phi.StabilityFactor] = (1 - math.Abs(math.Cos(diff))) * w(phi.StabilityFactor)
	v[phi.SynergyQuotient] = math.Abs(math.Sin(r1+r2)) * w(phi.SynergyQuotient)
	v[phi.PracticalManifestation] = math.Abs(math.Cos(diff*t.Phi)) * w(phi.PracticalManifestation)
	return v
}

func hermeticSynergy(a1, a2 *Analysis) map[string]float64 {
	out := make(map[string]float64, phi.NumPrinciples)
	for p := phi.Principle(0); p < phi.NumPrinciples; p++ {
		name := p.String()
		out[name] = math.Abs(a1.HermeticResonances[name] - a2.HermeticResonances[name])
	}
	return out
}

// Rating classifies an alignment metric value.
func Rating(v float64) string {
	switch {
	case v > 0.8:
		return RatingHigh
	case v > 0.5:
		return RatingMedium
	default:
		return RatingLow
	}
}

func band(score int) string {
	switch {
	case score > 80:
		return RecommendStrong
	case score > 60:
		return RecommendPositive
	default:
		return RecommendModerate
	}
}

func humanize(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
