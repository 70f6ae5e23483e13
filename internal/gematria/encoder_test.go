package gematria

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/quantum-gematria/internal/phi"
)

func newTestEncoder() *Encoder {
	return NewEncoder(phi.Default())
}

func TestQuantumHermeticTable(t *testing.T) {
	enc := newTestEncoder()

	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1861},  // Fibonacci only
		{'b', 27},    // Fibonacci and prime
		{'d', 5530},  // neither
		{'e', 67},    // Fibonacci and prime
		{'g', 70},    // prime only
		{'z', 35948}, // neither
	}
	for _, tt := range tests {
		got, ok := enc.Value(tt.r, QuantumHermetic)
		require.True(t, ok, "rune %q", tt.r)
		assert.Equal(t, tt.want, got, "rune %q", tt.r)
	}
}

func TestEncode(t *testing.T) {
	enc := newTestEncoder()

	tests := []struct {
		name   string
		text   string
		scheme Scheme
		want   int
	}{
		{"quantum hermetic upper", "LIGHT", QuantumHermetic, 71648},
		{"quantum hermetic mixed case", "LiGhT", QuantumHermetic, 71648},
		{"quantum hermetic unscaled", "a", QuantumHermetic, 1861},
		{"ordinal scaled by phi", "LIGHT", EnglishOrdinal, 90},
		{"ordinal skips digits and spaces", "l i g h t 123!", EnglishOrdinal, 90},
		{"qbl skips unmapped letters", "abc", EnglishQBL, 4},
		{"qbl digraph counts per character", "ch", EnglishQBL, 8},
		{"greek lowercase", "αβγ", Greek, 9},
		{"greek uppercase is not folded", "ΑΒΓ", Greek, 0},
		{"hebrew", "אבג", Hebrew, 9},
		{"latin under hebrew", "abc", Hebrew, 0},
		{"empty", "", QuantumHermetic, 0},
		{"empty ordinal", "", EnglishOrdinal, 0},
		{"punctuation only", "?!.,", QuantumHermetic, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := enc.Encode(tt.text, tt.scheme)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_InvalidScheme(t *testing.T) {
	enc := newTestEncoder()

	_, err := enc.Encode("light", Scheme(42))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownScheme))
}

func TestEncodeName(t *testing.T) {
	enc := newTestEncoder()

	v, s, err := enc.EncodeName("LIGHT", "english_ordinal")
	require.NoError(t, err)
	assert.Equal(t, EnglishOrdinal, s)
	assert.Equal(t, 90, v)

	v, s, err = enc.EncodeName("LIGHT", "")
	require.NoError(t, err)
	assert.Equal(t, QuantumHermetic, s)
	assert.Equal(t, 71648, v)

	_, _, err = enc.EncodeName("LIGHT", "nonexistent")
	assert.ErrorIs(t, err, ErrUnknownScheme)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestParseScheme(t *testing.T) {
	for _, s := range Schemes() {
		got, err := ParseScheme(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseScheme("QUANTUM_HERMETIC")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestSchemeText(t *testing.T) {
	b, err := Greek.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "greek", string(b))

	var s Scheme
	require.NoError(t, s.UnmarshalText([]byte("hebrew")))
	assert.Equal(t, Hebrew, s)

	assert.ErrorIs(t, s.UnmarshalText([]byte("latin")), ErrUnknownScheme)

	_, err = Scheme(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestSchemeNames(t *testing.T) {
	assert.Equal(t,
		[]string{"quantum_hermetic", "english_ordinal", "english_qbl", "greek", "hebrew"},
		SchemeNames())
}
