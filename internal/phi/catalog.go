package phi

// Principle is one of the seven hermetic principles. Used as a ranking and
// reporting axis; the declaration order is the iteration order everywhere.
type Principle uint8

const (
	Mentalism      Principle = iota // The All is Mind
	Correspondence                  // As above, so below
	Vibration                       // Nothing rests
	Polarity                        // Everything is dual
	Rhythm                          // Everything flows
	Causation                       // Cause and effect
	Gender                          // Gender is in everything

	NumPrinciples = 7
)

var principleNames = [NumPrinciples]string{
	"mentalism", "correspondence", "vibration", "polarity", "rhythm", "causation", "gender",
}

func (p Principle) String() string {
	if p < NumPrinciples {
		return principleNames[p]
	}
	return "unknown"
}

// Archetype is one of the archetypal reference frequencies.
type Archetype uint8

const (
	Unity        Archetype = iota // oneness, wholeness
	Duality                       // polarities, reflection
	Creation                      // divine creation, growth
	Stability                     // foundation, order
	Change                        // transformation
	Harmony                       // balance, beauty
	Spirituality                  // mystical wisdom

	NumArchetypes = 7
)

var archetypeNames = [NumArchetypes]string{
	"unity", "duality", "creation", "stability", "change", "harmony", "spirituality",
}

func (a Archetype) String() string {
	if a < NumArchetypes {
		return archetypeNames[a]
	}
	return "unknown"
}

// Metric is one of the practical alignment metrics of a comparison.
type Metric uint8

const (
	EnergeticCompatibility Metric = iota
	GrowthPotential
	StabilityFactor
	SynergyQuotient
	PracticalManifestation

	NumMetrics = 5
)

var metricNames = [NumMetrics]string{
	"energetic_compatibility",
	"growth_potential",
	"stability_factor",
	"synergy_quotient",
	"practical_manifestation",
}

func (m Metric) String() string {
	if m < NumMetrics {
		return metricNames[m]
	}
	return "unknown"
}

// Technology is a catalog entry matched against a resonance by frequency.
// Detail carries the materials for ancient devices and the common form for
// modern equivalents.
type Technology struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
	Purpose   string  `json:"purpose"`
	Detail    string  `json:"detail"`
}

// RelationshipPattern is scored by the comparator against the product of
// two resonances.
type RelationshipPattern struct {
	Name        string  `json:"name"`
	Threshold   float64 `json:"threshold"`
	Description string  `json:"description"`
}

// AlignmentMetric is the fixed weight and description for a Metric.
type AlignmentMetric struct {
	Metric      Metric  `json:"-"`
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

func egyptianCatalog(t *Table) []Technology {
	phi, pi, e := t.Phi, t.Pi, t.E
	sqrt2, sqrt3, sqrt5 := t.Sqrt2, t.Sqrt3, t.Sqrt5

	return []Technology{
		{"ankh_device", phi * sqrt5, "Life force amplification and healing", "Gold, copper, crystalline structures"},
		{"pyramid_resonator", pi * sqrt3, "Energy focusing and cosmic alignment", "Limestone, granite, quartz crystal"},
		{"djed_pillar", e * phi, "Electromagnetic energy stabilization", "Gold-plated wood, electrum"},
		{"was_scepter", sqrt3 * phi, "Harmonic wave generation", "Copper, gold, ceremonial metals"},
		{"menat_counter", sqrt2 * pi, "Biorhythm harmonization", "Semi-precious stones, copper"},
		{"sistrum", phi * 7, "Sonic frequency modulation", "Bronze, silver, gold"},
		{"ba_sphere", e * sqrt5, "Consciousness expansion", "Gold, electrum, crystal"},
		{"benben_stone", pi * pi, "Primordial energy focusing", "Meteorite iron, crystalline stone"},
		{"lotus_resonator", phi * pi, "Spiritual awakening amplification", "Blue lotus extract, gold vessel"},
		{"scarab_circuit", e * sqrt2, "Solar energy transformation", "Lapis lazuli, gold, turquoise"},
		{"uraeus_amplifier", sqrt5 * sqrt3, "Kundalini energy activation", "Gold, electrum, serpentine"},
		{"thoth_tablet", phi * e, "Cosmic knowledge transmission", "Emerald, gold inscriptions"},
		{"heka_wand", pi * sqrt5, "Magical energy direction", "Ivory, gold, amethyst"},
		{"sekhem_staff", phi * sqrt2 * pi, "Power manifestation", "Cedar wood, gold caps, quartz"},
	}
}

func modernCatalog(t *Table) []Technology {
	phi, pi, e := t.Phi, t.Pi, t.E
	sqrt3, sqrt5 := t.Sqrt3, t.Sqrt5

	return []Technology{
		{"quartz_crystal", phi * sqrt3, "Frequency stabilization", "Crystal oscillators, watches"},
		{"copper_coil", pi * e, "Electromagnetic induction", "Tesla coils, transformers"},
		{"pyramid_frame", pi * sqrt3, "Energy focusing", "Meditation pyramids, greenhouse structures"},
		{"resonant_cavity", phi * 7, "Wave harmonization", "Singing bowls, bell metals"},
		{"orgone_accumulator", e * phi, "Energy accumulation", "Layered organic/inorganic materials"},
		{"plasma_sphere", sqrt5 * pi, "Electromagnetic visualization", "Plasma balls, lightning spheres"},
		{"fibonacci_spiral", phi * phi, "Natural growth patterns", "Spiral structures, vortex generators"},
	}
}

func relationshipCatalog(t *Table) []RelationshipPattern {
	return []RelationshipPattern{
		{"harmonic_resonance", t.Phi / 2, "Natural flow and mutual enhancement"},
		{"catalytic_growth", t.E / 2, "Mutual growth and transformation"},
		{"stable_foundation", t.Sqrt2 / 2, "Long-term stability and security"},
		{"dynamic_balance", t.Pi / 3, "Complementary energies in motion"},
		{"creative_synthesis", t.Sqrt3 / 2, "Innovation and new possibilities"},
		{"quantum_entanglement", t.FineStructure * 10, "Deep synchronicity and connection"},
		{"evolutionary_path", t.GoldenSpiral / 2, "Shared growth and development"},
	}
}

func alignmentCatalog() [NumMetrics]AlignmentMetric {
	return [NumMetrics]AlignmentMetric{
		{EnergeticCompatibility, EnergeticCompatibility.String(), 1.5, "Overall energy resonance match"},
		{GrowthPotential, GrowthPotential.String(), 1.3, "Capacity for mutual development"},
		{StabilityFactor, StabilityFactor.String(), 1.2, "Long-term harmony and balance"},
		{SynergyQuotient, SynergyQuotient.String(), 1.4, "Effectiveness of combined energies"},
		{PracticalManifestation, PracticalManifestation.String(), 1.1, "Real-world implementation ease"},
	}
}
