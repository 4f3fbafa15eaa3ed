package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"painel/internal/dataset"
	"painel/internal/locale"
	"painel/internal/theme"
)

// PreviewTitle is the page title of the preview.
const PreviewTitle = "Painel de Matrículas"

// Preview builds a standalone go-echarts page with the records charts. It
// is meant for quick inspection of a dataset file; the interactive panel
// does not use it.
type Preview struct {
	Mode   theme.Mode
	Locale *locale.Formatter
}

func (p Preview) init(id, height string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: PreviewTitle,
		ChartID:   id,
		Theme:     theme.Pick(p.Mode, types.ThemeWesteros, types.ThemeChalk),
		Width:     "900px",
		Height:    height,
	})
}

func (p Preview) tipo(b dataset.Bundle, palette theme.Palette) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		p.init("preview_tipo", "380px"),
		charts.WithTitleOpts(opts.Title{Title: "Tipos", Subtitle: "Contagem geral de matrículas"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Matrículas"}),
	)
	items := make([]opts.BarData, b.Tipo.Len())
	for i, v := range b.Tipo.Series {
		items[i] = opts.BarData{Name: b.Tipo.Labels[i], Value: v, ItemStyle: &opts.ItemStyle{Color: palette.At(i)}}
	}
	bar.SetXAxis(b.Tipo.Labels).
		AddSeries("Matrículas", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: true, Position: "top"}))
	return bar
}

func (p Preview) turno(b dataset.Bundle, palette theme.Palette) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		p.init("preview_turno", "380px"),
		charts.WithTitleOpts(opts.Title{Title: "Turnos", Subtitle: "Distribuição total"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item"}),
		charts.WithLegendOpts(opts.Legend{Show: true, Bottom: "0"}),
	)
	items := make([]opts.PieData, b.Turno.Len())
	for i, v := range b.Turno.Series {
		items[i] = opts.PieData{Name: b.Turno.Labels[i], Value: v, ItemStyle: &opts.ItemStyle{Color: palette.At(i)}}
	}
	pie.AddSeries("Turnos", items).
		SetSeriesOptions(
			charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "72%"}}),
			charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}),
		)
	return pie
}

func (p Preview) setor(b dataset.Bundle, palette theme.Palette) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		p.init("preview_setor", "420px"),
		charts.WithTitleOpts(opts.Title{Title: "Setores", Subtitle: "Total por setor"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: b.Setor.Stacked()}),
	)
	bar.SetXAxis(b.Setor.Categories)
	for s, ns := range b.Setor.Series {
		items := make([]opts.BarData, len(ns.Data))
		for i, v := range ns.Data {
			items[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(ns.Name, items,
			charts.WithBarChartOpts(opts.BarChart{Stack: "total"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.At(s)}),
		)
	}
	bar.XYReversal()
	return bar
}

func (p Preview) timeline(b dataset.Bundle, palette theme.Palette) *charts.Line {
	f := p.Locale
	if f == nil {
		f = locale.New(locale.DefaultTag.String())
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		p.init("preview_timeline", "420px"),
		charts.WithTitleOpts(opts.Title{Title: "Timeline", Subtitle: "Evolução temporal"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)
	x := make([]string, len(b.Timeline.Points))
	items := make([]opts.LineData, len(b.Timeline.Points))
	for i, pt := range b.Timeline.Points {
		x[i] = f.ShortDate(pt.At)
		items[i] = opts.LineData{Value: pt.Value}
	}
	line.SetXAxis(x).
		AddSeries("Matrículas", items).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{Smooth: true}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.25}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: palette.At(0)}),
		)
	return line
}

// Render writes the preview page for b.
func (p Preview) Render(w io.Writer, b dataset.Bundle, palette theme.Palette) error {
	page := components.NewPage()
	page.PageTitle = PreviewTitle

	var added int
	if !b.Tipo.Empty() {
		page.AddCharts(p.tipo(b, palette))
		added++
	}
	if !b.Turno.Empty() {
		page.AddCharts(p.turno(b, palette))
		added++
	}
	if !b.Setor.Empty() {
		page.AddCharts(p.setor(b, palette))
		added++
	}
	if !b.Timeline.Empty() {
		page.AddCharts(p.timeline(b, palette))
		added++
	}
	if added == 0 {
		return fmt.Errorf("preview: no dataset to render")
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render preview page: %w", err)
	}
	return nil
}
