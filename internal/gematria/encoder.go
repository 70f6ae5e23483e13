package gematria

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/talgya/quantum-gematria/internal/phi"
)

// Encoder holds the five scheme tables. Tables are built once in NewEncoder
// and only read afterwards, so an Encoder is safe for concurrent use.
type Encoder struct {
	phi    float64
	tables [NumSchemes]map[rune]int
}

// NewEncoder builds every scheme table from the constant table.
func NewEncoder(t *phi.Table) *Encoder {
	return &Encoder{
		phi: t.Phi,
		tables: [NumSchemes]map[rune]int{
			QuantumHermetic: quantumHermeticTable(t),
			EnglishOrdinal:  englishOrdinalTable(),
			EnglishQBL:      englishQBLTable(),
			Greek:           greekTable(),
			Hebrew:          hebrewTable(),
		},
	}
}

// Encode returns the base value of text under scheme s.
//
// Characters missing from the scheme's table contribute nothing, so empty
// text, digits, punctuation and foreign scripts all degrade to 0 rather than
// failing. Every scheme except QuantumHermetic scales the raw sum by Φ and
// truncates.
func (e *Encoder) Encode(text string, s Scheme) (int, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownScheme, s)
	}

	if s.foldsCase() {
		text = strings.ToLower(text)
	}

	table := e.tables[s]
	sum := 0
	for _, r := range text {
		sum += table[r]
	}

	if s == QuantumHermetic {
		return sum, nil
	}
	return int(float64(sum) * e.phi), nil
}

// EncodeName parses name and encodes text under it.
func (e *Encoder) EncodeName(text, name string) (int, Scheme, error) {
	s, err := ParseScheme(name)
	if err != nil {
		return 0, 0, err
	}
	v, err := e.Encode(text, s)
	return v, s, err
}

// Value returns the table value of a single rune under s, after case folding.
func (e *Encoder) Value(r rune, s Scheme) (int, bool) {
	if !s.Valid() {
		return 0, false
	}
	if s.foldsCase() {
		r = unicode.ToLower(r)
	}
	v, ok := e.tables[s][r]
	return v, ok
}
