// Package gematria encodes text into an integer base value under one of the
// registered symbol→value schemes.
package gematria

import (
	"errors"
	"fmt"
)

// ErrUnknownScheme is returned when a scheme name is not registered.
var ErrUnknownScheme = errors.New("unknown encoding scheme")

// Scheme identifies an encoding table. Declaration order is registry order.
type Scheme uint8

const (
	// QuantumHermetic is generated from the constant table; its values
	// already carry the Φ scaling.
	QuantumHermetic Scheme = iota
	EnglishOrdinal
	EnglishQBL
	Greek
	Hebrew

	NumSchemes = 5
)

// DefaultScheme is used whenever a caller does not name one.
const DefaultScheme = QuantumHermetic

var schemeNames = [NumSchemes]string{
	"quantum_hermetic",
	"english_ordinal",
	"english_qbl",
	"greek",
	"hebrew",
}

func (s Scheme) String() string {
	if s < NumSchemes {
		return schemeNames[s]
	}
	return fmt.Sprintf("scheme(%d)", uint8(s))
}

// Valid reports whether s is a registered scheme.
func (s Scheme) Valid() bool { return s < NumSchemes }

// foldsCase reports whether text is lowercased before lookup. Only the
// Latin-letter schemes fold.
func (s Scheme) foldsCase() bool {
	switch s {
	case QuantumHermetic, EnglishOrdinal, EnglishQBL:
		return true
	default:
		return false
	}
}

// ParseScheme maps a scheme name to its Scheme. The empty name selects
// DefaultScheme.
func ParseScheme(name string) (Scheme, error) {
	if name == "" {
		return DefaultScheme, nil
	}
	for i, n := range schemeNames {
		if n == name {
			return Scheme(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Schemes returns every registered scheme in registry order.
func Schemes() []Scheme {
	out := make([]Scheme, NumSchemes)
	for i := range out {
		out[i] = Scheme(i)
	}
	return out
}

// SchemeNames returns the registered scheme names in registry order.
func SchemeNames() []string {
	out := make([]string, NumSchemes)
	copy(out, schemeNames[:])
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scheme) UnmarshalText(b []byte) error {
	v, err := ParseScheme(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
