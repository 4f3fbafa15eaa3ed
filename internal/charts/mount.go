package charts

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"painel/internal/dom"
	"painel/internal/locale"
	"painel/internal/logger"
	"painel/internal/theme"
	"painel/internal/tooltip"
)

// EmptyClass marks the "no data" placeholder.
const EmptyClass = "chart-empty"

// WrapperClass is the class of the element sized to hold a chart.
const WrapperClass = "chart-wrapper"

// Label visibility thresholds: data labels are drawn only for items whose
// share is at least this fraction.
const (
	MinShareCategorical = 0.06
	MinShareDonut       = 0.06
	MinShareStacked     = 0.10
	MinShareBreakdown   = 0.04
)

// Env is the shared context of every mounter.
type Env struct {
	Library Library
	Mode    theme.Mode
	Config  theme.ChartConfig
	Locale  *locale.Formatter
	Logger  *logger.Logger

	// Timeline entrance animation runs for 1 < points <= AnimationCeiling.
	AnimationCeiling int
	AnimationTotal   time.Duration
}

func (e Env) log() *logger.Logger {
	if e.Logger == nil {
		return logger.Discard()
	}
	return e.Logger
}

func (e Env) formatter() *locale.Formatter {
	if e.Locale == nil {
		return locale.New(locale.DefaultTag.String())
	}
	return e.Locale
}

// Text is the copy shown by a chart.
type Text struct {
	Subtitle   string
	ValueLabel string
	Unit       string
	LeaderText string
	AxisName   string
	Empty      string
}

// wrapperOf finds the nearest enclosing chart wrapper, falling back to the
// direct parent.
func wrapperOf(el dom.Element) dom.Element {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.HasClass(WrapperClass) {
			return p
		}
	}
	if p := el.Parent(); p != nil {
		return p
	}
	return el
}

// Placeholder replaces the chart wrapper content with a muted message.
func Placeholder(target dom.Element, message string) {
	if target == nil {
		return
	}
	markup := fmt.Sprintf(`<div class="text-muted text-center py-5 %s">%s</div>`, EmptyClass, html.EscapeString(message))
	_ = wrapperOf(target).SetInnerHTML(markup)
}

// Truncate shortens labels longer than limit to keep runes plus an ellipsis.
func Truncate(label string, limit, keep int) string {
	if utf8.RuneCountInString(label) <= limit {
		return label
	}
	r := []rune(label)
	return string(r[:keep]) + "…"
}

// Wrap breaks a label into lines of at most width runes on word
// boundaries. Words longer than width stay whole.
func Wrap(label string, width int) string {
	words := strings.Fields(label)
	if len(words) == 0 {
		return label
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

// showLabel applies a label threshold to a share in [0,1].
func showLabel(value, total, minShare float64) bool {
	if value <= 0 || total <= 0 {
		return false
	}
	return value/total >= minShare
}

// mount wires a built spec to the library and the tooltip overlay.
func mount(env Env, target dom.Element, spec Spec, build tooltip.Builder, series [][]float64) (*Handle, error) {
	if env.Library == nil {
		return nil, fmt.Errorf("mount %s: no chart library", spec.ID)
	}
	style := tooltip.StyleFor(env.Mode, env.Config)
	overlay, err := tooltip.Ensure(wrapperOf(target), spec.ID, style)
	if err != nil {
		return nil, err
	}
	presenter := tooltip.NewPresenter(overlay, build, style)

	spec.Tooltips = make([][]string, len(series))
	for s, values := range series {
		tips, err := presenter.Precompute(s, values)
		if err != nil {
			overlay.Remove()
			return nil, err
		}
		spec.Tooltips[s] = tips
	}

	inst, err := env.Library.Init(target, spec)
	if err != nil {
		overlay.Remove()
		return nil, fmt.Errorf("failed to init chart %s: %w", spec.ID, err)
	}
	if err := inst.Render(); err != nil {
		if dErr := inst.Destroy(); dErr != nil {
			env.log().Warn("failed to destroy chart after render error", logger.Fields{"chart": spec.ID, "error": dErr.Error()})
		}
		overlay.Remove()
		return nil, fmt.Errorf("failed to render chart %s: %w", spec.ID, err)
	}

	env.log().Debug("chart mounted", logger.Fields{"chart": spec.ID, "kind": string(spec.Kind)})
	return newHandle(spec, inst, presenter, env.log()), nil
}

// axisText is the common axis label style.
func axisText(env Env) map[string]interface{} {
	return map[string]interface{}{"color": theme.TonesFor(env.Mode).Axis, "fontSize": 11}
}

func splitLine(color string) map[string]interface{} {
	return map[string]interface{}{"show": true, "lineStyle": map[string]interface{}{"color": color}}
}
