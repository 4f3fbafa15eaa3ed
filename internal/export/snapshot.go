// Package export renders the panel datasets outside the browser: PNG
// snapshots for reports and a standalone ECharts preview page.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"painel/internal/charts"
	"painel/internal/colormath"
	"painel/internal/dataset"
	"painel/internal/locale"
	"painel/internal/theme"
)

// File is one rendered artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Renderer draws PNG snapshots with go-chart.
type Renderer struct {
	Mode   theme.Mode
	Width  int
	Height int
	Locale *locale.Formatter
}

// NewRenderer returns a 900x420 renderer for mode.
func NewRenderer(m theme.Mode, f *locale.Formatter) Renderer {
	if f == nil {
		f = locale.New(locale.DefaultTag.String())
	}
	return Renderer{Mode: m, Width: 900, Height: 420, Locale: f}
}

// color converts any CSS color colormath understands to a go-chart color.
func color(c string) drawing.Color {
	hex, ok := colormath.Normalize(c)
	if !ok {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func (r Renderer) background() chart.Style {
	return chart.Style{
		FillColor: color(theme.Pick(r.Mode, "#ffffff", "#0f172a")),
		Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
	}
}

func (r Renderer) titleStyle() chart.Style {
	return chart.Style{FontSize: 14, FontColor: color(theme.TonesFor(r.Mode).Text)}
}

func (r Renderer) axisStyle() chart.Style {
	return chart.Style{FontSize: 9, FontColor: color(theme.TonesFor(r.Mode).Axis)}
}

func (r Renderer) valueFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return r.Locale.Number(f)
	}
	return ""
}

// Bar draws one bar per category with the largest one highlighted.
func (r Renderer) Bar(w io.Writer, title string, data dataset.Categorical, palette theme.Palette) error {
	if data.Empty() {
		return fmt.Errorf("bar %q: no data", title)
	}
	maxV, maxAt := data.Series.Max()
	bars := make([]chart.Value, data.Len())
	for i, v := range data.Series {
		fill := palette.At(i)
		if i == maxAt {
			fill = colormath.Adjust(fill, theme.Pick(r.Mode, 0.12, 0.25))
		}
		bars[i] = chart.Value{
			Value: v,
			Label: charts.Truncate(data.Labels[i], 16, 14),
			Style: chart.Style{FillColor: color(fill), StrokeColor: color(colormath.Adjust(fill, -0.15)), StrokeWidth: 1},
		}
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: r.titleStyle(),
		Background: r.background(),
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   max(12, r.Width/(2*len(bars)+1)),
		XAxis:      r.axisStyle(),
		YAxis: chart.YAxis{
			Style:          r.axisStyle(),
			Range:          &chart.ContinuousRange{Min: 0, Max: maxV * 1.1},
			ValueFormatter: r.valueFormatter,
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar %q: %w", title, err)
	}
	return nil
}

// StackedBar draws one stacked column per category.
func (r Renderer) StackedBar(w io.Writer, title string, data dataset.Grouped, palette theme.Palette) error {
	if data.Empty() {
		return fmt.Errorf("stacked bar %q: no data", title)
	}
	// go-chart stacks to 100%, so categories without volume are left out.
	totals := data.Totals()
	bars := make([]chart.StackedBar, 0, len(data.Categories))
	for i, c := range data.Categories {
		if totals[i] <= 0 {
			continue
		}
		values := make([]chart.Value, 0, len(data.Series))
		for s, ns := range data.Series {
			if i >= len(ns.Data) || ns.Data[i] <= 0 {
				continue
			}
			values = append(values, chart.Value{
				Value: ns.Data[i],
				Label: ns.Name,
				Style: chart.Style{FillColor: color(palette.At(s)), StrokeColor: color(palette.At(s))},
			})
		}
		bars = append(bars, chart.StackedBar{Name: charts.Truncate(c, 16, 14), Values: values})
	}

	graph := chart.StackedBarChart{
		Title:      title,
		TitleStyle: r.titleStyle(),
		Background: r.background(),
		Width:      r.Width,
		Height:     r.Height,
		XAxis:      r.axisStyle(),
		YAxis:      r.axisStyle(),
		Bars:       bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render stacked bar %q: %w", title, err)
	}
	return nil
}

// Donut draws a ring with one slice per category.
func (r Renderer) Donut(w io.Writer, title string, data dataset.Categorical, palette theme.Palette) error {
	if data.Empty() {
		return fmt.Errorf("donut %q: no data", title)
	}
	total := data.Series.Total()
	values := make([]chart.Value, 0, data.Len())
	for i, v := range data.Series {
		if v <= 0 {
			continue
		}
		label := data.Labels[i]
		if v/total >= 0.06 {
			label += " " + r.Locale.Percent(v/total*100)
		}
		values = append(values, chart.Value{
			Value: v,
			Label: label,
			Style: chart.Style{FillColor: color(palette.At(i)), StrokeColor: color(theme.Pick(r.Mode, "#ffffff", "#0f172a")), FontSize: 10},
		})
	}

	graph := chart.DonutChart{
		Title:      title,
		TitleStyle: r.titleStyle(),
		Background: r.background(),
		Width:      r.Height,
		Height:     r.Height,
		Values:     values,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render donut %q: %w", title, err)
	}
	return nil
}

// Timeline draws the time series as a filled line.
func (r Renderer) Timeline(w io.Writer, title string, data dataset.TimeSeries, accent string) error {
	n := len(data.Points)
	if n < 2 || data.Points[0].At.Equal(data.Points[n-1].At) {
		return fmt.Errorf("timeline %q: need two distinct instants", title)
	}
	values := data.Values()
	maxV, _ := values.Max()
	if maxV <= 0 {
		maxV = 1
	}
	series := chart.TimeSeries{
		Name: title,
		Style: chart.Style{
			StrokeColor: color(accent),
			StrokeWidth: 3,
			FillColor:   color(accent).WithAlpha(60),
			DotColor:    color(colormath.Adjust(accent, -0.08)),
			DotWidth:    3,
		},
	}
	for _, p := range data.Points {
		series.XValues = append(series.XValues, p.At)
		series.YValues = append(series.YValues, p.Value)
	}

	graph := chart.Chart{
		Title:      title,
		TitleStyle: r.titleStyle(),
		Background: r.background(),
		Width:      r.Width,
		Height:     r.Height,
		XAxis: chart.XAxis{
			Style:          r.axisStyle(),
			ValueFormatter: chart.TimeValueFormatterWithFormat("02/01"),
		},
		YAxis: chart.YAxis{
			Style:          r.axisStyle(),
			Range:          &chart.ContinuousRange{Min: 0, Max: maxV * 1.15},
			ValueFormatter: r.valueFormatter,
		},
		Series: []chart.Series{series},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render timeline %q: %w", title, err)
	}
	return nil
}

// Snapshots renders a PNG for every non-empty dataset of b.
func (r Renderer) Snapshots(b dataset.Bundle, palette theme.Palette) ([]File, error) {
	type job struct {
		name string
		skip bool
		draw func(io.Writer) error
	}
	merge := dataset.NewCategorical(b.Merge.Labels, b.Merge.Values)
	jobs := []job{
		{"tipo.png", b.Tipo.Empty(), func(w io.Writer) error { return r.Bar(w, "Tipos de matrícula", b.Tipo, palette) }},
		{"turno.png", b.Turno.Empty(), func(w io.Writer) error { return r.Donut(w, "Turnos", b.Turno, palette) }},
		{"setor.png", b.Setor.Empty(), func(w io.Writer) error { return r.StackedBar(w, "Distribuição por setor", b.Setor, palette) }},
		{"timeline.png", len(b.Timeline.Points) < 2, func(w io.Writer) error {
			return r.Timeline(w, "Evolução temporal", b.Timeline, palette.At(0))
		}},
		{"merge.png", merge.Empty(), func(w io.Writer) error { return r.Donut(w, "Execução por voz", merge, palette) }},
	}

	var files []File
	for _, j := range jobs {
		if j.skip {
			continue
		}
		var buf bytes.Buffer
		if err := j.draw(&buf); err != nil {
			return files, err
		}
		files = append(files, File{Name: j.name, ContentType: "image/png", Data: buf.Bytes()})
	}
	return files, nil
}

