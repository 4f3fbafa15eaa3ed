package charts

import (
	"errors"

	"painel/internal/dom"
)

// ErrDestroyed is returned when a destroyed chart is used again.
var ErrDestroyed = errors.New("chart destroyed")

// Kind identifies a chart mounter.
type Kind string

const (
	KindCategoricalBar Kind = "categorical-bar"
	KindDonut          Kind = "donut"
	KindHorizontalBar  Kind = "horizontal-bar"
	KindTimeSeriesArea Kind = "time-series-area"
)

// Animation is a per-point entrance schedule in milliseconds.
type Animation struct {
	Delays    []float64 `json:"delays"`
	Durations []float64 `json:"durations"`
	Easing    string    `json:"easing"`
}

// Spec is everything a chart library needs to draw one chart.
type Spec struct {
	ID   string
	Kind Kind
	// Option is an ECharts option object.
	Option map[string]interface{}
	// Tooltips holds pre-rendered tooltip HTML by [series][point].
	Tooltips [][]string
	// Animation is nil when the chart should draw without entrance motion.
	Animation *Animation
	// AxisTooltip tracks the pointer along the x axis (crosshair) instead of
	// reacting to individual items.
	AxisTooltip bool
}

// Library creates chart instances on document targets.
type Library interface {
	Init(target dom.Element, spec Spec) (Instance, error)
}

// Instance is one live chart.
type Instance interface {
	Render() error
	Update(spec Spec) error
	Destroy() error
}
