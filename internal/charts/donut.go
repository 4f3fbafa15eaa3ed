package charts

import (
	"painel/internal/dataset"
	"painel/internal/dom"
	"painel/internal/theme"
	"painel/internal/tooltip"
)

// DonutVariant selects the slice styling and tooltip of a donut.
type DonutVariant int

const (
	// DonutShare draws palette slices labelled "value\nshare".
	DonutShare DonutVariant = iota
	// DonutBreakdown draws the merge buckets labelled with their share.
	DonutBreakdown
)

// Donut mounts a ring chart with one slice per category. The legend sits
// under the ring.
func Donut(env Env, target dom.Element, data dataset.Categorical, palette theme.Palette, variant DonutVariant, text Text) (*Handle, error) {
	if target == nil {
		return nil, nil
	}
	if data.Empty() {
		Placeholder(target, text.Empty)
		return nil, nil
	}

	f := env.formatter()
	tones := theme.TonesFor(env.Mode)
	total := data.Series.Total()
	_, maxAt := data.Series.Max()
	threshold := MinShareDonut
	if variant == DonutBreakdown {
		threshold = MinShareBreakdown
	}
	mc := NewMergeColors(palette, env.Mode)

	colors := make(theme.Palette, data.Len())
	items := make([]interface{}, data.Len())
	for i, v := range data.Series {
		var fill, hover, border string
		if variant == DonutBreakdown {
			fill, hover, border = mc.At(i)
			colors[i] = border
		} else {
			base := palette.At(i)
			if base == "" {
				base = theme.DefaultAccent(env.Mode)
			}
			fill = base
			if i == maxAt {
				fill = highlight(base, env.Mode)
			}
			hover = hoverColor(fill, env.Mode)
			border = theme.Pick(env.Mode, "#ffffff", "#0f172a")
			colors[i] = fill
		}

		share := f.Percent(v / total * 100)
		label := share
		if variant == DonutShare {
			label = f.Number(v) + "\n" + share
		}
		items[i] = map[string]interface{}{
			"value": v,
			"name":  data.Labels[i],
			"itemStyle": map[string]interface{}{
				"color":       fill,
				"borderColor": border,
				"borderWidth": 2,
			},
			"emphasis": map[string]interface{}{"itemStyle": map[string]interface{}{"color": hover}, "scaleSize": 6},
			"label": map[string]interface{}{
				"show":       showLabel(v, total, threshold),
				"formatter":  label,
				"color":      tones.Text,
				"fontWeight": 600,
				"fontSize":   12,
			},
		}
	}

	option := map[string]interface{}{
		"animationDuration": 600,
		"tooltip":           map[string]interface{}{"show": false},
		"legend": map[string]interface{}{
			"bottom":    0,
			"icon":      "circle",
			"textStyle": map[string]interface{}{"color": tones.Legend, "fontSize": 12},
		},
		"series": []interface{}{map[string]interface{}{
			"type":              "pie",
			"name":              text.ValueLabel,
			"radius":            []string{"52%", "76%"},
			"center":            []string{"50%", "45%"},
			"avoidLabelOverlap": true,
			"data":              items,
			"labelLine":         map[string]interface{}{"show": true, "length": 8, "length2": 6},
		}},
	}

	d := tooltip.Data{
		Labels:     data.Labels,
		Values:     data.Series,
		Colors:     colors,
		Subtitle:   text.Subtitle,
		ValueLabel: text.ValueLabel,
		Unit:       text.Unit,
		LeaderText: text.LeaderText,
		Mode:       env.Mode,
		Locale:     f,
	}
	build := tooltip.Share(d)
	if variant == DonutBreakdown {
		build = tooltip.Breakdown(d)
	}
	spec := Spec{ID: target.ID(), Kind: KindDonut, Option: option}
	return mount(env, target, spec, build, [][]float64{data.Series})
}
