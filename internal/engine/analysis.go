package engine

import (
	"github.com/talgya/quantum-gematria/internal/gematria"
	"github.com/talgya/quantum-gematria/internal/patterns"
	"github.com/talgya/quantum-gematria/internal/quantum"
)

// Analysis is the resonance profile of one text. Collections are never nil,
// so an empty result still serializes every key.
type Analysis struct {
	Text                string             `json:"text"`
	Scheme              gematria.Scheme    `json:"scheme"`
	BaseValue           int                `json:"base_value"`
	QuantumResonance    float64            `json:"quantum_resonance"`
	QuantumState        quantum.Vec2       `json:"quantum_state"`
	GeometryResonance   map[string]float64 `json:"geometry_resonance"`
	HarmonicResonance   float64            `json:"harmonic_resonance"`
	DominantPattern     string             `json:"dominant_pattern"`
	HermeticResonances  map[string]float64 `json:"hermetic_resonances"`
	DominantPrinciple   string             `json:"dominant_principle"`
	QuantumPatterns     map[string]float64 `json:"quantum_patterns"`
	PatternSignificance float64            `json:"pattern_significance"`
	Interpretation      Interpretation     `json:"interpretation"`
	EgyptianTechnology  []EgyptianMatch    `json:"egyptian_technology"`
	ModernEquivalents   []ModernMatch      `json:"modern_equivalents"`
}

// Interpretation summarizes an analysis in words. PrimaryPattern is nil when
// no quantum pattern was detected.
type Interpretation struct {
	PrimaryPattern      *string      `json:"primary_pattern"`
	ResonanceQuality    string       `json:"resonance_quality"`
	GeometricHarmony    string       `json:"geometric_harmony"`
	HermeticInfluence   string       `json:"hermetic_influence"`
	AlignedEgyptianTech *EgyptianRef `json:"aligned_egyptian_tech,omitempty"`
	ModernEquivalent    *ModernRef   `json:"modern_equivalent,omitempty"`
}

// EgyptianRef points at the top-ranked ancient device.
type EgyptianRef struct {
	Device  string `json:"device"`
	Purpose string `json:"purpose"`
}

// ModernRef points at the top-ranked modern equivalent.
type ModernRef struct {
	Device     string `json:"device"`
	CommonForm string `json:"common_form"`
}

// EgyptianMatch is a ranked ancient-device alignment.
type EgyptianMatch struct {
	Name              string  `json:"name"`
	AlignmentStrength float64 `json:"alignment_strength"`
	Purpose           string  `json:"purpose"`
	Materials         string  `json:"materials"`
}

// ModernMatch is a ranked modern-equivalent alignment.
type ModernMatch struct {
	Name          string  `json:"name"`
	MatchStrength float64 `json:"match_strength"`
	Purpose       string  `json:"purpose"`
	CommonForm    string  `json:"common_form"`
}

// Analyze runs the full single-text pipeline under scheme s. The only error
// is gematria.ErrUnknownScheme.
func (e *Engine) Analyze(text string, s gematria.Scheme) (*Analysis, error) {
	base, err := e.encoder.Encode(text, s)
	if err != nil {
		return nil, err
	}

	resonance, state := e.transformer.Transform(float64(base))
	geometry, dominantPattern := e.transformer.Geometry(resonance)
	harmonic := e.transformer.Harmonic(resonance)
	hermetic, dominantPrinciple := e.transformer.Hermetic(resonance)

	detection := e.detector.Detect(resonance)
	significance := detection.Significance()

	a := &Analysis{
		Text:                text,
		Scheme:              s,
		BaseValue:           base,
		QuantumResonance:    resonance,
		QuantumState:        state,
		GeometryResonance:   geometry.Map(),
		HarmonicResonance:   harmonic,
		DominantPattern:     dominantPattern.String(),
		HermeticResonances:  hermetic.Map(),
		DominantPrinciple:   dominantPrinciple.String(),
		QuantumPatterns:     detection.Map(),
		PatternSignificance: significance,
		Interpretation: Interpretation{
			ResonanceQuality:  patterns.Quality(significance),
			GeometricHarmony:  dominantPattern.String(),
			HermeticInfluence: dominantPrinciple.String(),
		},
		EgyptianTechnology: egyptianMatches(e.detector.EgyptianTechnology(resonance)),
		ModernEquivalents:  modernMatches(e.detector.ModernEquivalents(resonance)),
	}

	if name, ok := detection.Strongest(); ok {
		a.Interpretation.PrimaryPattern = &name
	}
	if len(a.EgyptianTechnology) > 0 {
		top := a.EgyptianTechnology[0]
		a.Interpretation.AlignedEgyptianTech = &EgyptianRef{Device: top.Name, Purpose: top.Purpose}
	}
	if len(a.ModernEquivalents) > 0 {
		top := a.ModernEquivalents[0]
		a.Interpretation.ModernEquivalent = &ModernRef{Device: top.Name, CommonForm: top.CommonForm}
	}

	return a, nil
}

// AnalyzeName parses the scheme name (empty selects the default) and analyzes.
func (e *Engine) AnalyzeName(text, scheme string) (*Analysis, error) {
	s, err := gematria.ParseScheme(scheme)
	if err != nil {
		return nil, err
	}
	return e.Analyze(text, s)
}

func egyptianMatches(in []patterns.TechMatch) []EgyptianMatch {
	out := make([]EgyptianMatch, 0, len(in))
	for _, m := range in {
		out = append(out, EgyptianMatch{
			Name:              m.Name,
			AlignmentStrength: m.Score,
			Purpose:           m.Purpose,
			Materials:         m.Detail,
		})
	}
	return out
}

func modernMatches(in []patterns.TechMatch) []ModernMatch {
	out := make([]ModernMatch, 0, len(in))
	for _, m := range in {
		out = append(out, ModernMatch{
			Name:          m.Name,
			MatchStrength: m.Score,
			Purpose:       m.Purpose,
			CommonForm:    m.Detail,
		})
	}
	return out
}
