// Package theme resolves chart colors from the page's CSS custom properties:
// the light/dark mode, base and curated palettes, generated palettes of any
// size, and the chart surface colors (grid, tooltip, area fills).
package theme

import (
	"strings"

	"painel/internal/colormath"
)

// Mode is the page color mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ResolveMode maps the root data-bs-theme attribute to a Mode. Anything
// other than "dark" is light.
func ResolveMode(attr string) Mode {
	if strings.EqualFold(strings.TrimSpace(attr), string(Dark)) {
		return Dark
	}
	return Light
}

// Pick returns dark when m is Dark, light otherwise.
func Pick[T any](m Mode, light, dark T) T {
	if m == Dark {
		return dark
	}
	return light
}

// StyleSource exposes computed CSS custom properties of the document root.
type StyleSource interface {
	CSSVar(name string) string
}

// StyleMap is a StyleSource backed by a map, keyed with the leading "--".
type StyleMap map[string]string

// CSSVar implements StyleSource.
func (m StyleMap) CSSVar(name string) string {
	return strings.TrimSpace(m[name])
}

// Var reads name from src, returning fallback when unset or blank.
func Var(src StyleSource, name, fallback string) string {
	if src == nil {
		return fallback
	}
	if v := strings.TrimSpace(src.CSSVar(name)); v != "" {
		return v
	}
	return fallback
}

// VarFallback names a CSS variable and its value when undefined.
type VarFallback struct {
	Name     string
	Fallback string
}

// RecordsBase are the theme variables seeding the records tab palette.
var RecordsBase = []VarFallback{
	{"--accent-color", "#3498db"},
	{"--accent-hover", "#2980b9"},
	{"--success-color", "#27ae60"},
	{"--warning-color", "#f39c12"},
	{"--danger-color", "#e74c3c"},
	{"--primary-color", "#2c3e50"},
}

// MergeBase seeds the merge tab palette.
var MergeBase = RecordsBase[:4]

// BaseColors reads each variable with its fallback. Values that do not parse
// as colors are replaced by the fallback.
func BaseColors(src StyleSource, vars []VarFallback) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		raw := Var(src, v.Name, v.Fallback)
		if hex, ok := colormath.Normalize(raw); ok {
			out = append(out, hex)
			continue
		}
		if hex, ok := colormath.Normalize(v.Fallback); ok {
			out = append(out, hex)
		}
	}
	return out
}
