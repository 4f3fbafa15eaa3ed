// Package tooltip renders the synthetic chart tooltips: content built from
// derived statistics, an HTML overlay element per chart, and a presenter
// that updates the overlay on hover.
package tooltip

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"painel/internal/theme"
)

// Line is one "label .... value" row.
type Line struct {
	Label string
	Value string
	Color string
}

// Badge is a highlighted note above the rows.
type Badge struct {
	Text  string
	Color string
}

// Content is everything a tooltip shows for one point.
type Content struct {
	Title    string
	Subtitle string
	Swatch   string
	Badge    *Badge
	Lines    []Line
	Footer   string
}

// Style carries the mode-dependent chrome of the overlay.
type Style struct {
	Text       string
	Subtle     string
	Divider    string
	Background string
	Border     string
	Shadow     string
	MinWidth   int
}

// StyleFor derives the overlay style from a mode and chart config.
func StyleFor(m theme.Mode, cfg theme.ChartConfig) Style {
	tones := theme.TonesFor(m)
	return Style{
		Text:    cfg.TooltipText,
		Subtle:  tones.Subtle,
		Divider: tones.Divider,
		Background: theme.Pick(m,
			"linear-gradient(135deg, rgba(248,250,252,0.98) 0%, rgba(255,255,255,0.96) 100%)",
			"linear-gradient(135deg, rgba(15,23,42,0.94) 0%, rgba(15,23,42,0.88) 100%)"),
		Border:   cfg.TooltipBorder,
		Shadow:   tones.Shadow,
		MinWidth: 220,
	}
}

var safeCSS = regexp.MustCompile(`^[#\w\s(),.%-]*$`)

// css marks a color value as trusted after checking it holds only
// characters a color or gradient needs.
func css(v string) template.CSS {
	if !safeCSS.MatchString(v) {
		return ""
	}
	return template.CSS(v)
}

type lineView struct {
	Label string
	Value string
	Color template.CSS
}

type view struct {
	Title      string
	Subtitle   string
	Swatch     template.CSS
	SwatchRing template.CSS
	BadgeText  string
	BadgeColor template.CSS
	Lines      []lineView
	Footer     string
	Subtle     template.CSS
	Divider    template.CSS
}

var bodyTemplate = template.Must(template.New("tooltip").Parse(
	`<div class="chart-tooltip__body" style="display:flex; flex-direction:column; gap:10px;">` +
		`<div style="display:flex; align-items:center; gap:8px;">` +
		`{{if .Swatch}}<span class="chart-tooltip__swatch" style="display:inline-flex; width:14px; height:14px; border-radius:999px; background:{{.Swatch}}; box-shadow:0 0 0 4px {{.SwatchRing}};"></span>{{end}}` +
		`<div style="display:flex; flex-direction:column; gap:4px;">` +
		`<div class="chart-tooltip__title" style="font-weight:700; font-size:14px;">{{.Title}}</div>` +
		`{{if .Subtitle}}<div style="font-size:12px; color:{{.Subtle}};">{{.Subtitle}}</div>{{end}}` +
		`</div></div>` +
		`{{if .BadgeText}}<div class="chart-tooltip__badge" style="align-self:flex-start; font-size:11px; font-weight:700; padding:2px 8px; border-radius:999px; color:{{.BadgeColor}}; border:1px solid {{.BadgeColor}};">{{.BadgeText}}</div>{{end}}` +
		`<div style="display:flex; flex-direction:column; gap:6px; font-size:13px;">` +
		`{{range .Lines}}<div class="chart-tooltip__row" style="display:flex; justify-content:space-between; gap:16px;{{if .Color}} color:{{.Color}};{{end}}">` +
		`<span>{{.Label}}</span><strong>{{.Value}}</strong></div>{{end}}` +
		`</div>` +
		`{{if .Footer}}<div class="chart-tooltip__footer" style="border-top:1px solid {{.Divider}}; padding-top:6px; font-size:11px; color:{{.Subtle}};">{{.Footer}}</div>{{end}}` +
		`</div>`))

// HTML renders c for the overlay. Text is escaped; colors outside the
// allowed character set are dropped.
func (c Content) HTML(st Style) (string, error) {
	v := view{
		Title:    c.Title,
		Subtitle: c.Subtitle,
		Footer:   c.Footer,
		Subtle:   css(st.Subtle),
		Divider:  css(st.Divider),
	}
	if c.Swatch != "" {
		v.Swatch = css(c.Swatch)
		v.SwatchRing = css(ring(c.Swatch))
	}
	if c.Badge != nil {
		v.BadgeText = c.Badge.Text
		v.BadgeColor = css(c.Badge.Color)
	}
	for _, l := range c.Lines {
		v.Lines = append(v.Lines, lineView{Label: l.Label, Value: l.Value, Color: css(l.Color)})
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("failed to render tooltip: %w", err)
	}
	return buf.String(), nil
}
