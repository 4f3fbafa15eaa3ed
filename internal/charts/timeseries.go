package charts

import (
	"math"
	"time"

	"painel/internal/colormath"
	"painel/internal/dataset"
	"painel/internal/dom"
	"painel/internal/theme"
	"painel/internal/tooltip"
)

// TimelineEmpty is shown when there are no samples.
const TimelineEmpty = "Nenhum dado temporal disponível"

// Timeline animation defaults.
const (
	DefaultAnimationCeiling = 600
	DefaultAnimationTotal   = 5 * time.Second
)

// PointStyle is how one timeline sample is drawn.
type PointStyle struct {
	Radius      float64
	HoverRadius float64
	Color       string
	Highlight   bool
}

// LineWidth is the stroke of the timeline area.
const LineWidth = 3.5

// PointStyles grows points and shifts their color from a soft to a strong
// accent toward the latest sample. The maximum gets the emphasis color and
// a minimum size.
func PointStyles(n, maxAt int, accent, emphasis string) []PointStyle {
	soft := colormath.Adjust(accent, 0.28)
	strong := colormath.Adjust(accent, -0.08)
	out := make([]PointStyle, n)
	for i := range out {
		ratio := 1.0
		if n > 1 {
			ratio = float64(i) / float64(n-1)
		}
		ps := PointStyle{
			Radius:      3.5 + ratio*2.5,
			HoverRadius: 6 + ratio*2,
			Color:       colormath.Mix(soft, strong, ratio),
		}
		if i == maxAt {
			ps.Radius = math.Max(ps.Radius, 7)
			ps.HoverRadius = math.Max(ps.HoverRadius, 8.5)
			ps.Color = emphasis
			ps.Highlight = true
		}
		out[i] = ps
	}
	return out
}

// easeOutQuad decelerates toward t=1.
func easeOutQuad(t float64) float64 { return t * (2 - t) }

// AnimationPlan schedules the entrance of n points over total. Each point
// waits easeOutQuad(i/n)·total. Returns nil when n <= 1 or n > ceiling.
func AnimationPlan(n, ceiling int, total time.Duration) *Animation {
	if n <= 1 || n > ceiling || total <= 0 {
		return nil
	}
	ms := float64(total.Milliseconds())
	a := &Animation{
		Delays:    make([]float64, n),
		Durations: make([]float64, n),
		Easing:    "quadraticOut",
	}
	for i := 0; i < n; i++ {
		eased := easeOutQuad(float64(i) / float64(n))
		a.Delays[i] = math.Round(eased * ms)
		a.Durations[i] = math.Round(eased * ms / float64(n))
	}
	return a
}

// TimeSeriesArea mounts the timeline: an area line whose points grow
// toward the present, a dashed crosshair following the pointer and an
// entrance animation for moderately sized series.
func TimeSeriesArea(env Env, target dom.Element, data dataset.TimeSeries, palette theme.Palette) (*Handle, error) {
	if target == nil {
		return nil, nil
	}
	if data.Empty() {
		Placeholder(target, TimelineEmpty)
		return nil, nil
	}

	cfg := env.Config
	accent := palette.At(0)
	if accent == "" {
		accent = theme.DefaultAccent(env.Mode)
	}
	emphasis := cfg.Emphasis
	if emphasis == "" {
		emphasis = "#fbbf24"
	}

	values := data.Values()
	n := len(values)
	_, maxAt := values.Max()
	styles := PointStyles(n, maxAt, accent, emphasis)

	times := make([]time.Time, n)
	items := make([]interface{}, n)
	for i, p := range data.Points {
		times[i] = p.At
		ps := styles[i]
		item := map[string]interface{}{
			"value":      []interface{}{p.At.UnixMilli(), p.Value},
			"symbolSize": ps.Radius * 2,
			"itemStyle":  map[string]interface{}{"color": ps.Color, "borderColor": colormath.Adjust(accent, -0.08), "borderWidth": 1},
			"emphasis":   map[string]interface{}{"symbolSize": ps.HoverRadius * 2},
		}
		if ps.Highlight {
			item["itemStyle"] = map[string]interface{}{
				"color":       ps.Color,
				"borderColor": theme.Pick(env.Mode, "#ffffff", "#0f172a"),
				"borderWidth": 2,
				"shadowBlur":  12,
				"shadowColor": colormath.ToRGBA(emphasis, 0.6),
			}
		}
		items[i] = item
	}

	soft := colormath.Adjust(accent, 0.28)
	strong := colormath.Adjust(accent, -0.08)
	crosshair := map[string]interface{}{
		"type":  []int{6, 4},
		"width": 1.2,
		"color": colormath.ToRGBA(accent, theme.Pick(env.Mode, 0.35, 0.55)),
	}

	option := map[string]interface{}{
		"tooltip": map[string]interface{}{"show": false},
		"grid":    map[string]interface{}{"left": 8, "right": 16, "top": 24, "bottom": 8, "containLabel": true},
		"xAxis": map[string]interface{}{
			"type":        "time",
			"boundaryGap": false,
			"axisLabel":   merge(axisText(env), map[string]interface{}{"formatter": "{dd}/{MM}", "hideOverlap": true}),
			"axisPointer": map[string]interface{}{
				"show":           true,
				"type":           "line",
				"snap":           true,
				"triggerTooltip": false,
				"label":          map[string]interface{}{"show": false},
				"lineStyle":      crosshair,
			},
			"splitLine": map[string]interface{}{"show": false},
		},
		"yAxis": map[string]interface{}{
			"type":        "value",
			"minInterval": 1,
			"axisLabel":   axisText(env),
			"splitLine":   splitLine(cfg.Grid),
		},
		"series": []interface{}{map[string]interface{}{
			"type":          "line",
			"name":          "Matrículas",
			"data":          items,
			"smooth":        0.35,
			"showAllSymbol": true,
			"symbol":        "circle",
			"lineStyle":     map[string]interface{}{"width": LineWidth, "color": gradient(0, 0, 1, 0, soft, strong)},
			"areaStyle":     map[string]interface{}{"color": gradient(0, 0, 0, 1, cfg.AreaStrong, cfg.AreaFill)},
			"emphasis":      map[string]interface{}{"focus": "none", "scale": true},
			"clip":          false,
		}},
	}

	build := tooltip.Timeline(tooltip.TimelineData{
		Times:  times,
		Values: values,
		Mode:   env.Mode,
		Locale: env.formatter(),
	})
	ceiling := env.AnimationCeiling
	if ceiling == 0 {
		ceiling = DefaultAnimationCeiling
	}
	total := env.AnimationTotal
	if total == 0 {
		total = DefaultAnimationTotal
	}
	spec := Spec{
		ID:          target.ID(),
		Kind:        KindTimeSeriesArea,
		Option:      option,
		Animation:   AnimationPlan(n, ceiling, total),
		AxisTooltip: true,
	}
	return mount(env, target, spec, build, [][]float64{values})
}

// gradient is an ECharts linear gradient from one color to another.
func gradient(x, y, x2, y2 float64, from, to string) map[string]interface{} {
	return map[string]interface{}{
		"type": "linear",
		"x":    x, "y": y, "x2": x2, "y2": y2,
		"colorStops": []interface{}{
			map[string]interface{}{"offset": 0, "color": from},
			map[string]interface{}{"offset": 1, "color": to},
		},
	}
}
