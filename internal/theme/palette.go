package theme

import (
	"painel/internal/colormath"
)

// Palette is an ordered list of "#rrggbb" colors.
type Palette []string

// At returns the color for item i, cycling; "" for an empty palette.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

var (
	curatedExtras = map[Mode][]string{
		Light: {"#7c3aed", "#db2777", "#0d9488", "#facc15", "#f97316", "#3b82f6"},
		Dark:  {"#a855f7", "#f472b6", "#2dd4bf", "#fde047", "#fb923c", "#60a5fa"},
	}
	curatedFallback = map[Mode][]string{
		Light: {"#2563eb", "#10b981", "#f97316", "#7c3aed", "#ec4899", "#0ea5e9", "#facc15", "#14b8a6", "#6366f1", "#f87171"},
		Dark:  {"#60a5fa", "#34d399", "#fb923c", "#a855f7", "#f472b6", "#38bdf8", "#fde047", "#2dd4bf", "#818cf8", "#fca5a5"},
	}
	curatedVars = []struct {
		name        string
		light, dark string
	}{
		{"--accent-color", "#2563eb", "#60a5fa"},
		{"--accent-hover", "#1d4ed8", "#3b82f6"},
		{"--success-color", "#16a34a", "#34d399"},
		{"--warning-color", "#f59e0b", "#fbbf24"},
		{"--danger-color", "#dc2626", "#f87171"},
		{"--info-color", "#0ea5e9", "#38bdf8"},
	}
)

// DefaultAccent is the accent used when nothing else is available.
func DefaultAccent(m Mode) string {
	return Pick(m, "#2563eb", "#60a5fa")
}

// Curated returns the theme-derived colors followed by fixed extras and the
// mode fallback list, normalised and without duplicates.
func Curated(src StyleSource, m Mode) Palette {
	var raw []string
	for _, v := range curatedVars {
		raw = append(raw, Var(src, v.name, Pick(m, v.light, v.dark)))
	}
	raw = append(raw, curatedExtras[m]...)
	raw = append(raw, curatedFallback[m]...)
	return Dedupe(raw)
}

// Dedupe normalises colors, drops unparseable ones and keeps the first
// occurrence of each.
func Dedupe(colors []string) Palette {
	seen := make(map[string]bool, len(colors))
	out := make(Palette, 0, len(colors))
	for _, c := range colors {
		hex, ok := colormath.Normalize(c)
		if !ok || seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
	}
	return out
}

type cycleStep struct {
	lightness  []float64
	saturation float64
}

var steps = map[Mode]cycleStep{
	Light: {lightness: []float64{0, -0.14, 0.12}, saturation: 0.05},
	Dark:  {lightness: []float64{0, 0.08, -0.12}, saturation: -0.04},
}

var hueNudges = []float64{0, 4, -6}

// cycleShift is the HSL delta applied to every color of the given cycle.
func cycleShift(m Mode, cycle int) colormath.HSLShift {
	st := steps[m]
	s := st.saturation
	if cycle%2 == 1 {
		s = -st.saturation / 2
	}
	return colormath.HSLShift{
		H: hueNudges[cycle%len(hueNudges)],
		S: s,
		L: st.lightness[cycle%len(st.lightness)],
	}
}

// BuildPalette generates size colors from base followed by curated. Cycle k
// walks the de-duplicated seeds applying a lightness step, a saturation
// delta and a hue nudge; any swatch already produced is nudged further
// around the hue wheel until it is new. The result is deterministic.
func BuildPalette(size int, base, curated []string, m Mode) Palette {
	if size <= 0 {
		return Palette{}
	}
	if m != Dark {
		m = Light
	}
	seeds := Dedupe(append(append([]string{}, base...), curated...))
	if len(seeds) == 0 {
		seeds = Palette{DefaultAccent(m)}
	}

	out := make(Palette, 0, size)
	used := make(map[string]bool, size)
	for i := 0; len(out) < size; i++ {
		seed := seeds[i%len(seeds)]
		shift := cycleShift(m, i/len(seeds))
		color := colormath.Shift(seed, shift)
		for attempt := 1; used[color] && attempt <= 100; attempt++ {
			nudged := shift
			nudged.H += float64(attempt) * 7
			if attempt%2 == 0 {
				// Achromatic seeds ignore hue, so also walk away from the
				// nearest lightness bound.
				nudged.L += escape(seed) * float64(attempt) / 100
			}
			color = colormath.Shift(seed, nudged)
		}
		used[color] = true
		out = append(out, color)
	}
	return out
}

// Resolve builds the palette for a set of theme variables from src.
func Resolve(src StyleSource, vars []VarFallback, size int, m Mode) Palette {
	return BuildPalette(size, BaseColors(src, vars), Curated(src, m), m)
}

func escape(color string) float64 {
	if hsl, ok := colormath.HexToHSL(color); ok && hsl.L >= 0.5 {
		return -1
	}
	return 1
}
