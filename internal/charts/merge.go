package charts

import (
	"painel/internal/colormath"
	"painel/internal/theme"
)

// Merge empty-state messages.
const (
	MergeEmptyPie   = "Nenhum dado disponível para calcular percentual de treinamento."
	MergeEmptyBar   = "Nenhum dado disponível para calcular colaboradores treinados."
	MergeEmptyTotal = "Nenhum colaborador treinado encontrado na planilha recente."
)

// MergeColors are the fill, hover and border colors of the two merge
// buckets.
type MergeColors struct {
	Fill   []string
	Hover  []string
	Border []string
}

// At returns the three colors of bucket i.
func (c MergeColors) At(i int) (fill, hover, border string) {
	p := func(list []string) string { return theme.Palette(list).At(i) }
	return p(c.Fill), p(c.Hover), p(c.Border)
}

// NewMergeColors derives the merge colors from the first and third palette
// entries. The second bucket is hue-shifted so the two stay apart even when
// the palette is short.
func NewMergeColors(palette theme.Palette, m theme.Mode) MergeColors {
	first := palette.At(0)
	if first == "" {
		first = theme.DefaultAccent(m)
	}
	second := first
	if len(palette) > 2 {
		second = palette[2]
	} else {
		second = colormath.Adjust(first, theme.Pick(m, -0.1, 0.1))
	}

	var out MergeColors
	for i, base := range []string{first, second} {
		soft := colormath.Shift(base, colormath.HSLShift{
			H: pickIndex(i, 0, 6),
			S: theme.Pick(m, -0.12, -0.05),
			L: theme.Pick(m, 0.16, 0.08),
		})
		hover := colormath.Shift(base, colormath.HSLShift{
			H: pickIndex(i, 2, -4),
			S: theme.Pick(m, -0.05, -0.02),
			L: theme.Pick(m, -0.05, 0.18),
		})
		out.Fill = append(out.Fill, colormath.ToRGBA(soft, theme.Pick(m, 0.68, 0.78)))
		out.Hover = append(out.Hover, colormath.ToRGBA(hover, theme.Pick(m, 0.78, 0.88)))
		out.Border = append(out.Border, colormath.Adjust(base, theme.Pick(m, -0.25, -0.35)))
	}
	return out
}

func pickIndex(i int, first, second float64) float64 {
	if i == 1 {
		return second
	}
	return first
}
