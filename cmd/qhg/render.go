package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/talgya/quantum-gematria/internal/chart"
	"github.com/talgya/quantum-gematria/internal/client"
	"github.com/talgya/quantum-gematria/internal/engine"
	"github.com/talgya/quantum-gematria/internal/phi"
	"github.com/talgya/quantum-gematria/internal/quantum"
)

var (
	titleStyle   = color.New(color.Bold, color.FgHiMagenta)
	headingStyle = color.New(color.Bold, color.FgHiWhite)
	labelStyle   = color.New(color.FgHiCyan)
	valueStyle   = color.New(color.FgHiGreen)
	dimStyle     = color.New(color.FgHiBlack)
	strongStyle  = color.New(color.Bold, color.FgHiYellow)
)

const barWidth = 30

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func kv(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Sprintf("%-22s", label+":"), valueStyle.Sprint(value))
}

func heading(w io.Writer, s string) {
	fmt.Fprintln(w)
	headingStyle.Fprintln(w, s)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func renderAnalysis(w io.Writer, a *engine.Analysis) {
	titleStyle.Fprintf(w, "Analysis of %q\n", a.Text)
	kv(w, "scheme", a.Scheme)
	kv(w, "base value", humanize.Comma(int64(a.BaseValue)))
	kv(w, "quantum resonance", fmt.Sprintf("%.6f", a.QuantumResonance))
	kv(w, "quantum state", fmt.Sprintf("[%.6f, %.6f]", a.QuantumState[0], a.QuantumState[1]))
	kv(w, "harmonic resonance", fmt.Sprintf("%.6f", a.HarmonicResonance))
	kv(w, "dominant pattern", a.DominantPattern)
	kv(w, "dominant principle", a.DominantPrinciple)
	kv(w, "pattern significance", fmt.Sprintf("%.4f (%s)", a.PatternSignificance, a.Interpretation.ResonanceQuality))

	heading(w, "Quantum patterns")
	if len(a.QuantumPatterns) == 0 {
		dimStyle.Fprintln(w, "  none above threshold")
	}
	for _, name := range sortedKeys(a.QuantumPatterns) {
		line := fmt.Sprintf("  %-18s %.4f", name, a.QuantumPatterns[name])
		if p := a.Interpretation.PrimaryPattern; p != nil && *p == name {
			strongStyle.Fprintln(w, line+"  primary")
			continue
		}
		fmt.Fprintln(w, line)
	}

	heading(w, "Sacred geometry")
	for p := quantum.GeometryPattern(0); p < quantum.NumGeometryPatterns; p++ {
		name := p.String()
		fmt.Fprintf(w, "  %-14s %s\n", name, humanize.CommafWithDigits(a.GeometryResonance[name], 2))
	}

	heading(w, "Hermetic principles")
	for p := phi.Principle(0); p < phi.NumPrinciples; p++ {
		name := p.String()
		fmt.Fprintf(w, "  %-14s %s\n", name, humanize.CommafWithDigits(a.HermeticResonances[name], 2))
	}

	heading(w, "Egyptian technology")
	if len(a.EgyptianTechnology) == 0 {
		dimStyle.Fprintln(w, "  no alignment")
	}
	for _, m := range a.EgyptianTechnology {
		fmt.Fprintf(w, "  %-20s %.4f  %s\n", m.Name, m.AlignmentStrength, dimStyle.Sprint(m.Purpose))
	}

	heading(w, "Modern equivalents")
	if len(a.ModernEquivalents) == 0 {
		dimStyle.Fprintln(w, "  no alignment")
	}
	for _, m := range a.ModernEquivalents {
		fmt.Fprintf(w, "  %-20s %.4f  %s\n", m.Name, m.MatchStrength, dimStyle.Sprint(m.CommonForm))
	}
}

func renderComparison(w io.Writer, c *engine.Comparison) {
	p1, p2 := c.IndividualAnalyses.Phrase1, c.IndividualAnalyses.Phrase2
	titleStyle.Fprintf(w, "Comparison of %q and %q\n", p1.Text, p2.Text)
	kv(w, "overall compatibility", fmt.Sprintf("%d/100", c.OverallCompatibilityScore))
	kv(w, "resonance compat.", fmt.Sprintf("%.6f", c.ResonanceCompatibility))
	kv(w, "constructive", fmt.Sprintf("%.4f", c.QuantumInterference.Constructive))
	kv(w, "destructive", fmt.Sprintf("%.4f", c.QuantumInterference.Destructive))

	heading(w, "Relationship patterns")
	if len(c.RelationshipPatterns) == 0 {
		dimStyle.Fprintln(w, "  none above threshold")
	}
	for _, p := range phi.Default().RelationshipPatterns {
		rel, ok := c.RelationshipPatterns[p.Name]
		if !ok {
			continue
		}
		style := valueStyle
		if rel.Status != engine.StatusStrongPositive {
			style = labelStyle
		}
		fmt.Fprintf(w, "  %-22s %.4f  %s\n", p.Name, rel.Strength, style.Sprint(rel.Status))
	}

	heading(w, "Alignment metrics")
	for m := phi.Metric(0); m < phi.NumMetrics; m++ {
		v := c.AlignmentMetrics[m.String()]
		fmt.Fprintf(w, "  %-24s %.4f  %s\n", m.String(), v.Value, v.Rating)
	}

	heading(w, "Recommendations")
	for _, r := range c.Recommendations {
		fmt.Fprintf(w, "  • %s\n", r)
	}
}

func bar(v, maxV float64) string {
	if maxV <= 0 || v <= 0 {
		return ""
	}
	n := int(math.Round(v / maxV * barWidth))
	return strings.Repeat("█", n)
}

const sparkRunes = "▁▂▃▄▅▆▇█"

func sparkline(points []chart.Point) string {
	runes := []rune(sparkRunes)
	var sb strings.Builder
	for _, p := range points {
		// y is a sine sample in [-1, 1].
		i := int(math.Round((p.Y + 1) / 2 * float64(len(runes)-1)))
		i = min(max(i, 0), len(runes)-1)
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

func renderChart(w io.Writer, c *chart.Chart) {
	titleStyle.Fprintf(w, "Chart of %q\n", c.Text)

	heading(w, "Sacred geometry")
	var maxGeo float64
	for _, b := range c.Geometry {
		maxGeo = max(maxGeo, b.Value)
	}
	for _, b := range c.Geometry {
		line := fmt.Sprintf("  %-14s %-*s %s", b.Label, barWidth, bar(b.Value, maxGeo), humanize.CommafWithDigits(b.Value, 2))
		if b.Dominant {
			strongStyle.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}

	heading(w, "Hermetic principles")
	var maxHerm float64
	for _, p := range c.Hermetic {
		maxHerm = max(maxHerm, p.Y)
	}
	for _, p := range c.Hermetic {
		fmt.Fprintf(w, "  %-14s %-*s %s\n", p.Label, barWidth, bar(p.Y, maxHerm), humanize.CommafWithDigits(p.Y, 2))
	}

	heading(w, "Quantum state")
	for _, p := range c.QuantumState {
		fmt.Fprintf(w, "  [%d] %.6f\n", int(p.X), p.Y)
	}

	heading(w, "Harmonic wave")
	fmt.Fprintf(w, "  %s\n", sparkline(c.Harmonic))
}

func renderHistory(w io.Writer, h *client.History, now time.Time) {
	heading(w, "Analyses")
	if len(h.Analyses) == 0 {
		dimStyle.Fprintln(w, "  empty")
	}
	for _, e := range h.Analyses {
		fmt.Fprintf(w, "  %-16s %-24q %s\n",
			dimStyle.Sprint(humanize.RelTime(e.CreatedAt, now, "ago", "from now")),
			e.Text,
			valueStyle.Sprintf("%s → %s", e.Result.DominantPattern, e.Result.DominantPrinciple))
	}

	heading(w, "Comparisons")
	if len(h.Comparisons) == 0 {
		dimStyle.Fprintln(w, "  empty")
	}
	for _, e := range h.Comparisons {
		fmt.Fprintf(w, "  %-16s %q vs %q %s\n",
			dimStyle.Sprint(humanize.RelTime(e.CreatedAt, now, "ago", "from now")),
			e.Phrase1, e.Phrase2,
			valueStyle.Sprintf("%d/100", e.Result.OverallCompatibilityScore))
	}
}
