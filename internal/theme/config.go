package theme

import "fmt"

// ChartConfig holds the surface colors charts draw with.
type ChartConfig struct {
	Colors        []string
	Emphasis      string
	Neutral       string
	Grid          string
	GridDim       string
	TooltipBG     string
	TooltipBorder string
	TooltipText   string
	AreaFill      string
	AreaStrong    string
}

// ResolveConfig reads --chart-* variables with mode defaults. Colors holds
// --chart-color-1..8 that are set, or the accent alone when none are.
func ResolveConfig(src StyleSource, m Mode) ChartConfig {
	var colors []string
	for i := 1; i <= 8; i++ {
		if v := Var(src, fmt.Sprintf("--chart-color-%d", i), ""); v != "" {
			colors = append(colors, v)
		}
	}
	if len(colors) == 0 {
		colors = append(colors, Var(src, "--accent-color", DefaultAccent(m)))
	}

	return ChartConfig{
		Colors:        colors,
		Emphasis:      Var(src, "--chart-color-emphasis", "#fbbf24"),
		Neutral:       Var(src, "--chart-neutral", Pick(m, "#64748b", "#94a3b8")),
		Grid:          Var(src, "--chart-grid-color", Pick(m, "rgba(15, 23, 42, 0.08)", "rgba(148, 163, 184, 0.18)")),
		GridDim:       Var(src, "--chart-grid-dim", Pick(m, "rgba(15, 23, 42, 0.06)", "rgba(148, 163, 184, 0.12)")),
		TooltipBG:     Var(src, "--chart-tooltip-bg", Pick(m, "rgba(248, 250, 252, 0.98)", "rgba(15, 23, 42, 0.94)")),
		TooltipBorder: Var(src, "--chart-tooltip-border", Pick(m, "1px solid rgba(148, 163, 184, 0.45)", "1px solid rgba(100, 116, 139, 0.35)")),
		TooltipText:   Var(src, "--chart-tooltip-text", Pick(m, "#1f2937", "#e2e8f0")),
		AreaFill:      Var(src, "--chart-area-fill", Pick(m, "rgba(52, 152, 219, 0.18)", "rgba(96, 165, 250, 0.22)")),
		AreaStrong:    Var(src, "--chart-area-strong", Pick(m, "rgba(52, 152, 219, 0.45)", "rgba(56, 189, 248, 0.38)")),
	}
}

// Tones are the fixed text and chrome colors for a mode.
type Tones struct {
	Text    string
	Subtle  string
	Legend  string
	Axis    string
	Divider string
	Shadow  string
	Up      string
	Down    string
	Flat    string
}

// TonesFor returns the tones for m.
func TonesFor(m Mode) Tones {
	return Tones{
		Text:    Pick(m, "#0f172a", "#e2e8f0"),
		Subtle:  Pick(m, "rgba(100, 116, 139, 0.86)", "rgba(148, 163, 184, 0.78)"),
		Legend:  Pick(m, "#1f2937", "#cbd5f5"),
		Axis:    Pick(m, "#475569", "#94a3b8"),
		Divider: Pick(m, "rgba(148, 163, 184, 0.35)", "rgba(100, 116, 139, 0.3)"),
		Shadow:  Pick(m, "0 18px 40px rgba(15, 23, 42, 0.18)", "0 18px 40px rgba(2, 6, 23, 0.55)"),
		Up:      "#22c55e",
		Down:    "#ef4444",
		Flat:    "#9ca3af",
	}
}
