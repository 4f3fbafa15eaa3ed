package page

import (
	"painel/internal/charts"
	"painel/internal/dataset"
	"painel/internal/dom"
	"painel/internal/locale"
	"painel/internal/logger"
	"painel/internal/models"
	"painel/internal/panel"
	"painel/internal/theme"
)

// EnhanceOptions configure the in-process panel run
type EnhanceOptions struct {
	// URL is the address the page was requested at
	URL     string
	Library charts.Library
	Locale  *locale.Formatter
	Logger  *logger.Logger
	Panel   panel.Options
}

// Enhance runs the panel controller over doc the way the browser would on
// load: tabs bound, records charts mounted, merge charts mounted when the
// address asks for that tab.
func Enhance(doc dom.Document, opts EnhanceOptions) (*panel.Controller, error) {
	raw := opts.URL
	if raw == "" {
		raw = "/painel"
	}
	loc, err := panel.NewStaticLocation(raw)
	if err != nil {
		return nil, err
	}
	c, err := panel.New(panel.Deps{
		Document: doc,
		Location: loc,
		Library:  opts.Library,
		Locale:   opts.Locale,
		Logger:   opts.Logger,
		Options:  opts.Panel,
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

// ModeFor picks the color mode: a valid override first, then the fixture,
// then the builder default.
func (b *Builder) ModeFor(data *models.PanelData, override string) theme.Mode {
	switch {
	case override == "light" || override == "dark":
		return theme.Mode(override)
	case data != nil && data.Mode != "":
		return theme.ResolveMode(data.Mode)
	default:
		return theme.ResolveMode(b.DefaultMode)
	}
}

// Palette is the records palette the page would resolve for bundle
func Palette(data *models.PanelData, bundle dataset.Bundle, m theme.Mode) theme.Palette {
	vars := theme.StyleMap{}
	for k, v := range DefaultTheme[string(m)] {
		vars[k] = v
	}
	if data != nil {
		for k, v := range data.Theme {
			vars[k] = v
		}
	}
	return theme.Resolve(vars, theme.RecordsBase, bundle.PaletteSize(), m)
}
