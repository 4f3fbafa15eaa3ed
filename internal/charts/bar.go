package charts

import (
	"painel/internal/colormath"
	"painel/internal/dataset"
	"painel/internal/dom"
	"painel/internal/theme"
	"painel/internal/tooltip"
)

// highlight lightens the leading item so it stands out.
func highlight(color string, m theme.Mode) string {
	return colormath.Adjust(color, theme.Pick(m, 0.12, 0.25))
}

func hoverColor(color string, m theme.Mode) string {
	return colormath.Adjust(color, theme.Pick(m, -0.05, 0.15))
}

// barLabel is the pill drawn on top of a bar.
func barLabel(show bool, text, fill, position string) map[string]interface{} {
	if !show {
		return map[string]interface{}{"show": false}
	}
	return map[string]interface{}{
		"show":            true,
		"position":        position,
		"formatter":       text,
		"color":           colormath.ReadableText(fill),
		"backgroundColor": colormath.ToRGBA(colormath.Adjust(fill, -0.2), 0.65),
		"borderRadius":    8,
		"padding":         []int{4, 8},
		"fontWeight":      700,
		"fontSize":        12,
	}
}

// CategoricalBar mounts a vertical bar per category. The largest bar is
// highlighted and small shares lose their data label.
func CategoricalBar(env Env, target dom.Element, data dataset.Categorical, palette theme.Palette, text Text) (*Handle, error) {
	if target == nil {
		return nil, nil
	}
	if data.Empty() {
		Placeholder(target, text.Empty)
		return nil, nil
	}

	f := env.formatter()
	total := data.Series.Total()
	_, maxAt := data.Series.Max()

	colors := make(theme.Palette, data.Len())
	axisLabels := make([]string, data.Len())
	items := make([]interface{}, data.Len())
	for i, v := range data.Series {
		base := palette.At(i)
		if base == "" {
			base = theme.DefaultAccent(env.Mode)
		}
		fill := base
		if i == maxAt {
			fill = highlight(base, env.Mode)
		}
		colors[i] = fill
		axisLabels[i] = Truncate(data.Labels[i], 16, 14)
		items[i] = map[string]interface{}{
			"value": v,
			"name":  data.Labels[i],
			"itemStyle": map[string]interface{}{
				"color":        fill,
				"borderColor":  colormath.Adjust(base, -0.15),
				"borderWidth":  1,
				"borderRadius": []int{8, 8, 8, 8},
			},
			"emphasis": map[string]interface{}{"itemStyle": map[string]interface{}{"color": hoverColor(fill, env.Mode)}},
			"label":    barLabel(showLabel(v, total, MinShareCategorical), f.Number(v), fill, "top"),
		}
	}

	rotate := 0
	if data.Len() > 6 {
		rotate = 30
	}
	cfg := env.Config
	option := map[string]interface{}{
		"animationDuration": 600,
		"tooltip":           map[string]interface{}{"show": false},
		"grid":              map[string]interface{}{"left": 8, "right": 12, "top": 36, "bottom": 8, "containLabel": true},
		"xAxis": map[string]interface{}{
			"type":      "category",
			"data":      axisLabels,
			"axisLabel": merge(axisText(env), map[string]interface{}{"rotate": rotate, "interval": 0}),
			"axisLine":  map[string]interface{}{"show": false},
			"axisTick":  map[string]interface{}{"show": false},
		},
		"yAxis": map[string]interface{}{
			"type":          "value",
			"minInterval":   1,
			"name":          text.AxisName,
			"nameTextStyle": merge(axisText(env), map[string]interface{}{"fontWeight": 600}),
			"axisLabel":     axisText(env),
			"splitLine":     splitLine(cfg.Grid),
		},
		"series": []interface{}{map[string]interface{}{
			"type":     "bar",
			"name":     text.ValueLabel,
			"data":     items,
			"barWidth": "55%",
		}},
	}

	build := tooltip.Categorical(tooltip.Data{
		Labels:     data.Labels,
		Values:     data.Series,
		Colors:     colors,
		Subtitle:   text.Subtitle,
		ValueLabel: text.ValueLabel,
		Unit:       text.Unit,
		LeaderText: text.LeaderText,
		Mode:       env.Mode,
		Locale:     f,
	})
	spec := Spec{ID: target.ID(), Kind: KindCategoricalBar, Option: option}
	return mount(env, target, spec, build, [][]float64{data.Series})
}

func merge(a, b map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
