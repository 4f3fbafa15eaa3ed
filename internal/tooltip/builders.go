package tooltip

import (
	"math"
	"time"

	"painel/internal/colormath"
	"painel/internal/locale"
	"painel/internal/stats"
	"painel/internal/theme"
)

const (
	leaderColor    = "#22c55e"
	runnerUpColor  = "#fbbf24"
	progressColor  = "#fbbf24"
	emphasisColor  = "#fbbf24"
	fallbackAccent = "#2563eb"
)

// Data is what the categorical builders read from.
type Data struct {
	Labels []string
	Values stats.Series
	// Colors are the rendered item colors, indexed like Values.
	Colors theme.Palette
	// Groups names the series of a stacked chart; empty otherwise.
	Groups []string

	Subtitle   string
	ValueLabel string
	Unit       string
	LeaderText string

	Mode   theme.Mode
	Locale *locale.Formatter
}

func (d Data) formatter() *locale.Formatter {
	if d.Locale == nil {
		return locale.New(locale.DefaultTag.String())
	}
	return d.Locale
}

func (d Data) label(i int) string {
	if i >= 0 && i < len(d.Labels) {
		return d.Labels[i]
	}
	return ""
}

func (d Data) accent(i int) string {
	if c := d.Colors.At(i); c != "" {
		return c
	}
	return fallbackAccent
}

func (d Data) valid(point int) bool {
	return point >= 0 && point < len(d.Values)
}

func rankColor(rank int) string {
	if rank == 1 {
		return leaderColor
	}
	return runnerUpColor
}

func (d Data) leaderDistance(row stats.Row, text string) string {
	if row.Rank == 1 {
		return text
	}
	if row.DeltaFromLeader > 0 {
		return "-" + d.formatter().Number(row.DeltaFromLeader)
	}
	return d.formatter().Number(row.DeltaFromLeader)
}

func (d Data) versusAverage(row stats.Row) Line {
	tones := theme.TonesFor(d.Mode)
	color := tones.Up
	sign := "+"
	if row.DeltaFromAverage < 0 {
		color = tones.Down
		sign = "-"
	}
	return Line{Label: "Vs. média", Value: sign + d.formatter().Number(math.Abs(row.DeltaFromAverage)), Color: color}
}

func (d Data) share(row stats.Row, factorLight, factorDark float64) Line {
	return Line{
		Label: "Participação",
		Value: d.formatter().Percent(row.PercentOfTotal),
		Color: colormath.Adjust(d.accent(row.Index), theme.Pick(d.Mode, factorLight, factorDark)),
	}
}

func (d Data) footer(prefix string) string {
	return prefix + d.formatter().Number(d.Values.Total()) + " " + d.Unit
}

// Categorical builds tooltips for a bar per category: volume, share, rank
// and distance to the leader.
func Categorical(d Data) Builder {
	return func(series, point int, value float64) (Content, bool) {
		if !d.valid(point) {
			return Content{}, false
		}
		row := stats.Derive(d.Values, point)
		return Content{
			Title:    d.label(point),
			Subtitle: d.Subtitle,
			Lines: []Line{
				{Label: d.ValueLabel, Value: d.formatter().Number(value)},
				d.share(row, -0.05, 0.18),
				{Label: "Ranking", Value: d.formatter().Ordinal(row.Rank), Color: rankColor(row.Rank)},
				{Label: "Distância p/ líder", Value: d.leaderDistance(row, d.LeaderText)},
			},
			Footer: d.footer("Total geral: "),
		}, true
	}
}

// Share builds tooltips for donut slices: volume, share, rank and the
// difference to the average slice.
func Share(d Data) Builder {
	return func(series, point int, value float64) (Content, bool) {
		if !d.valid(point) {
			return Content{}, false
		}
		row := stats.Derive(d.Values, point)
		return Content{
			Title:    d.label(point),
			Subtitle: d.Subtitle,
			Lines: []Line{
				{Label: d.ValueLabel, Value: d.formatter().Number(value)},
				d.share(row, -0.04, 0.22),
				{Label: "Ranking", Value: d.formatter().Ordinal(row.Rank), Color: rankColor(row.Rank)},
				d.versusAverage(row),
			},
			Footer: d.footer("Total geral: "),
		}, true
	}
}

// Ranking builds tooltips for horizontal bars. Statistics use the category
// totals; on stacked charts the hovered segment is listed first.
func Ranking(d Data) Builder {
	return func(series, point int, value float64) (Content, bool) {
		if !d.valid(point) {
			return Content{}, false
		}
		row := stats.Derive(d.Values, point)
		var lines []Line
		if len(d.Groups) > 1 && series >= 0 && series < len(d.Groups) {
			lines = append(lines, Line{Label: d.Groups[series], Value: d.formatter().Number(value), Color: d.Colors.At(series)})
		}
		lines = append(lines,
			Line{Label: d.ValueLabel, Value: d.formatter().Number(row.Value)},
			d.share(row, -0.05, 0.2),
			Line{Label: "Ranking", Value: d.formatter().Ordinal(row.Rank), Color: rankColor(row.Rank)},
			d.versusAverage(row),
			Line{Label: "Distância p/ líder", Value: d.leaderDistance(row, d.LeaderText)},
		)
		return Content{
			Title:    d.label(point),
			Subtitle: d.Subtitle,
			Lines:    lines,
			Footer:   d.footer("Total geral: "),
		}, true
	}
}

// Breakdown builds tooltips for the merge charts: a color swatch, the count
// and the share of the analysed total.
func Breakdown(d Data) Builder {
	return func(series, point int, value float64) (Content, bool) {
		if !d.valid(point) {
			return Content{}, false
		}
		row := stats.Derive(d.Values, point)
		accent := d.accent(point)
		return Content{
			Title:  d.label(point),
			Swatch: accent,
			Lines: []Line{
				{Label: d.ValueLabel, Value: d.formatter().Number(value)},
				{Label: "Participação", Value: d.formatter().Percent(row.PercentOfTotal), Color: colormath.Adjust(accent, theme.Pick(d.Mode, -0.04, 0.15))},
			},
			Footer: d.footer("Total analisado: "),
		}, true
	}
}

// TimelineData is what the time series builder reads from.
type TimelineData struct {
	Times  []time.Time
	Values stats.Series
	Mode   theme.Mode
	Locale *locale.Formatter
}

var trendNames = map[stats.Trend]string{
	stats.TrendUp:     "Crescimento",
	stats.TrendDown:   "Declínio",
	stats.TrendStable: "Estável",
}

// Timeline builds tooltips for time series points: timestamp, value,
// position in the period, change from the previous point, the three point
// trend and a badge on the period's peak and low.
func Timeline(d TimelineData) Builder {
	f := d.Locale
	if f == nil {
		f = locale.New(locale.DefaultTag.String())
	}
	tones := theme.TonesFor(d.Mode)
	maxV, maxAt := d.Values.Max()
	minV, minAt := d.Values.Min()

	return func(series, point int, value float64) (Content, bool) {
		if point < 0 || point >= len(d.Values) || point >= len(d.Times) {
			return Content{}, false
		}
		row := stats.DeriveSequential(d.Values, point)

		n := len(d.Values)
		progress := 100.0
		if n > 1 {
			progress = math.Round(float64(point) / float64(n-1) * 100)
		}

		variation := Line{Label: "Variação", Value: "—", Color: tones.Flat}
		if row.HasPrevious {
			variation.Value = f.Signed(row.DeltaFromPrevious)
			switch {
			case row.DeltaFromPrevious > 0:
				variation.Color = tones.Up
			case row.DeltaFromPrevious < 0:
				variation.Color = tones.Down
			}
		}

		trend := "Sem histórico"
		if row.HasTrend {
			trend = trendNames[row.Trend]
		}

		c := Content{
			Title: f.DateTime(d.Times[point]),
			Lines: []Line{
				{Label: "Matrículas", Value: f.Number(value)},
				{Label: "Progresso", Value: f.Int(progress) + "%", Color: progressColor},
				variation,
				{Label: "Tendência", Value: trend},
			},
			Footer: "Média do período: " + f.Int(d.Values.Average()) + " matrículas",
		}
		if n > 1 && maxV != minV {
			switch point {
			case maxAt:
				c.Badge = &Badge{Text: "Pico do período", Color: emphasisColor}
			case minAt:
				c.Badge = &Badge{Text: "Menor valor do período", Color: tones.Down}
			}
		}
		return c, true
	}
}
