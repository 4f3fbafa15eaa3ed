package charts

import (
	"painel/internal/colormath"
	"painel/internal/dataset"
	"painel/internal/dom"
	"painel/internal/theme"
	"painel/internal/tooltip"
)

// HBarVariant selects the labelling and tooltip of a horizontal bar chart.
type HBarVariant int

const (
	// HBarRanking ranks categories by total; several series stack.
	HBarRanking HBarVariant = iota
	// HBarBreakdown draws the merge buckets with wrapped labels.
	HBarBreakdown
)

// HorizontalBar mounts one horizontal bar per category, largest share
// readable from the top. With more than one series the bars stack and each
// segment is labelled only when it is a large enough part of its category.
func HorizontalBar(env Env, target dom.Element, data dataset.Grouped, palette theme.Palette, variant HBarVariant, text Text) (*Handle, error) {
	if target == nil {
		return nil, nil
	}
	if data.Empty() {
		Placeholder(target, text.Empty)
		return nil, nil
	}

	f := env.formatter()
	totals := data.Totals()
	grand := totals.Total()
	_, maxAt := totals.Max()

	axisLabels := make([]string, len(data.Categories))
	for i, c := range data.Categories {
		if variant == HBarBreakdown {
			axisLabels[i] = Wrap(c, 14)
		} else {
			axisLabels[i] = Truncate(c, 24, 22)
		}
	}

	var (
		series []interface{}
		colors theme.Palette
		groups []string
		values [][]float64
	)
	switch {
	case variant == HBarBreakdown:
		mc := NewMergeColors(palette, env.Mode)
		items := make([]interface{}, len(totals))
		for i, v := range totals {
			fill, hover, border := mc.At(i)
			colors = append(colors, border)
			items[i] = map[string]interface{}{
				"value":     v,
				"itemStyle": barStyle(fill, border),
				"emphasis":  map[string]interface{}{"itemStyle": map[string]interface{}{"color": hover}},
				"label":     sideLabel(showLabel(v, grand, MinShareBreakdown), f.Number(v)+" • "+f.Percent(v/grand*100), env.Mode),
			}
		}
		series = append(series, barSeries(text.ValueLabel, items, ""))
		values = append(values, []float64(totals))

	case data.Stacked():
		for s, ns := range data.Series {
			base := palette.At(s)
			if base == "" {
				base = theme.DefaultAccent(env.Mode)
			}
			colors = append(colors, base)
			groups = append(groups, ns.Name)
			items := make([]interface{}, len(data.Categories))
			for i := range data.Categories {
				var v float64
				if i < len(ns.Data) {
					v = ns.Data[i]
				}
				items[i] = map[string]interface{}{
					"value": v,
					"label": inBarLabel(showLabel(v, totals[i], MinShareStacked), f.Number(v), base),
				}
			}
			bar := barSeries(ns.Name, items, "total")
			bar["itemStyle"] = barStyle(base, colormath.Adjust(base, -0.15))
			bar["emphasis"] = map[string]interface{}{"focus": "series", "itemStyle": map[string]interface{}{"color": hoverColor(base, env.Mode)}}
			series = append(series, bar)
			values = append(values, []float64(ns.Data))
		}

	default:
		name := text.ValueLabel
		if len(data.Series) == 1 && data.Series[0].Name != "" {
			name = data.Series[0].Name
		}
		items := make([]interface{}, len(totals))
		for i, v := range totals {
			base := palette.At(i)
			if base == "" {
				base = theme.DefaultAccent(env.Mode)
			}
			fill := base
			if i == maxAt {
				fill = highlight(base, env.Mode)
			}
			colors = append(colors, fill)
			items[i] = map[string]interface{}{
				"value":     v,
				"itemStyle": barStyle(fill, colormath.Adjust(base, -0.15)),
				"emphasis":  map[string]interface{}{"itemStyle": map[string]interface{}{"color": hoverColor(fill, env.Mode)}},
				"label":     sideLabel(v > 0, f.Number(v), env.Mode),
			}
		}
		series = append(series, barSeries(name, items, ""))
		values = append(values, []float64(totals))
	}

	cfg := env.Config
	option := map[string]interface{}{
		"animationDuration": 600,
		"tooltip":           map[string]interface{}{"show": false},
		"grid":              map[string]interface{}{"left": 8, "right": 48, "top": 16, "bottom": 8, "containLabel": true},
		"xAxis": map[string]interface{}{
			"type":        "value",
			"minInterval": 1,
			"name":        text.AxisName,
			"axisLabel":   axisText(env),
			"splitLine":   splitLine(cfg.GridDim),
		},
		"yAxis": map[string]interface{}{
			"type":      "category",
			"inverse":   true,
			"data":      axisLabels,
			"axisLabel": merge(axisText(env), map[string]interface{}{"interval": 0}),
			"axisTick":  map[string]interface{}{"show": false},
		},
		"series": series,
	}
	if data.Stacked() && variant == HBarRanking {
		option["legend"] = map[string]interface{}{
			"top":       0,
			"textStyle": map[string]interface{}{"color": theme.TonesFor(env.Mode).Legend},
		}
		option["grid"].(map[string]interface{})["top"] = 36
	}

	d := tooltip.Data{
		Labels:     data.Categories,
		Values:     totals,
		Colors:     colors,
		Groups:     groups,
		Subtitle:   text.Subtitle,
		ValueLabel: text.ValueLabel,
		Unit:       text.Unit,
		LeaderText: text.LeaderText,
		Mode:       env.Mode,
		Locale:     f,
	}
	build := tooltip.Ranking(d)
	if variant == HBarBreakdown {
		build = tooltip.Breakdown(d)
	}
	spec := Spec{ID: target.ID(), Kind: KindHorizontalBar, Option: option}
	return mount(env, target, spec, build, values)
}

func barSeries(name string, items []interface{}, stack string) map[string]interface{} {
	s := map[string]interface{}{
		"type":        "bar",
		"name":        name,
		"data":        items,
		"barMaxWidth": 28,
	}
	if stack != "" {
		s["stack"] = stack
	}
	return s
}

func barStyle(fill, border string) map[string]interface{} {
	return map[string]interface{}{
		"color":        fill,
		"borderColor":  border,
		"borderWidth":  1,
		"borderRadius": []int{0, 8, 8, 0},
	}
}

func sideLabel(show bool, text string, m theme.Mode) map[string]interface{} {
	return map[string]interface{}{
		"show":       show,
		"position":   "right",
		"formatter":  text,
		"color":      theme.TonesFor(m).Text,
		"fontWeight": 600,
	}
}

func inBarLabel(show bool, text, fill string) map[string]interface{} {
	return map[string]interface{}{
		"show":       show,
		"position":   "inside",
		"formatter":  text,
		"color":      colormath.ReadableText(fill),
		"fontWeight": 600,
		"fontSize":   11,
	}
}
