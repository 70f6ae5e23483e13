package gematria

import "github.com/talgya/quantum-gematria/internal/phi"

// quantumHermeticTable derives a value for each Latin letter from its ordinal
// (a=1 … z=26): v·Φ, scaled by the golden spiral for Fibonacci ordinals, by
// α for prime ordinals, then by the DNA and cosmic ratios, and quantized ×100.
func quantumHermeticTable(t *phi.Table) map[rune]int {
	table := make(map[rune]int, 26)
	for r := 'a'; r <= 'z'; r++ {
		v := int(r-'a') + 1

		freq := float64(v) * t.Phi
		if t.IsFibonacci(v) {
			freq *= t.GoldenSpiral
		}
		if t.IsPrime(v) {
			freq *= t.FineStructure
		}
		freq *= t.DNARatio
		freq *= t.CosmicRatio

		table[r] = int(freq * 100)
	}
	return table
}

func englishOrdinalTable() map[rune]int {
	table := make(map[rune]int, 26)
	for r := 'a'; r <= 'z'; r++ {
		table[r] = int(r-'a') + 1
	}
	return table
}

// englishQBLTable follows the 22 paths of the Tree of Life. The digraph
// paths (ch, ts, sh, th) are not representable per character and are left out.
func englishQBLTable() map[rune]int {
	return map[rune]int{
		'a': 1, 'b': 2, 'g': 3, 'd': 4, 'h': 5, 'v': 6, 'z': 7,
		't': 9, 'y': 10, 'k': 20, 'l': 30, 'm': 40,
		'n': 50, 's': 60, 'o': 70, 'p': 80, 'q': 100,
		'r': 200,
	}
}

// greekTable is classical isopsephy, including the archaic digamma and koppa.
func greekTable() map[rune]int {
	return map[rune]int{
		'α': 1, 'β': 2, 'γ': 3, 'δ': 4, 'ε': 5, 'ϝ': 6, 'ζ': 7, 'η': 8, 'θ': 9,
		'ι': 10, 'κ': 20, 'λ': 30, 'μ': 40, 'ν': 50, 'ξ': 60, 'ο': 70, 'π': 80, 'ϙ': 90,
		'ρ': 100, 'σ': 200, 'τ': 300, 'υ': 400, 'φ': 500, 'χ': 600, 'ψ': 700, 'ω': 800,
	}
}

func hebrewTable() map[rune]int {
	return map[rune]int{
		'א': 1, 'ב': 2, 'ג': 3, 'ד': 4, 'ה': 5, 'ו': 6, 'ז': 7, 'ח': 8, 'ט': 9,
		'י': 10, 'כ': 20, 'ל': 30, 'מ': 40, 'נ': 50, 'ס': 60, 'ע': 70, 'פ': 80, 'צ': 90,
		'ק': 100, 'ר': 200, 'ש': 300, 'ת': 400,
	}
}
