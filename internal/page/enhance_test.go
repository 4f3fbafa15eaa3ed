package page

import (
	"strings"
	"testing"

	"painel/internal/charts"
	"painel/internal/dom"
	"painel/internal/models"
	"painel/internal/panel"
	"painel/internal/theme"
)

func fullPanel() *models.PanelData {
	p := samplePanel()
	p.Setor = models.GroupedCounts{
		Categories: []string{"Mercearia", "Bebidas"},
		Series:     []models.NamedCounts{{Name: "Registros", Counts: []float64{40, 22}}},
	}
	p.Filters = models.FilterOptions{Setores: []string{"Mercearia", "Bebidas"}}
	return p
}

func TestEnhanceMountsEChartsScripts(t *testing.T) {
	doc, err := NewBuilder(charts.DefaultEChartsURL, "light").Build(fullPanel(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	c, err := Enhance(doc, EnhanceOptions{URL: "/painel?tab=merge", Library: charts.NewECharts(nil)})
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}

	if c.Tab() != panel.TabMerged || !c.MergeMounted() {
		t.Errorf("tab = %s merge mounted = %v", c.Tab(), c.MergeMounted())
	}
	scripts := map[string]bool{}
	for _, s := range doc.FindAll(dom.HasAttr(charts.ScriptAttr)) {
		id, _ := s.Attr(charts.ScriptAttr)
		scripts[id] = true
	}
	for _, id := range []string{"chart-tipo", "chart-turno", "chart-setor", "chart-merge-colab-percent", "chart-merge-colab"} {
		if !scripts[id] {
			t.Errorf("no init script for %s", id)
		}
	}
	// The fixture has no timeline samples.
	if scripts["chart-timeline"] {
		t.Error("timeline mounted without data")
	}
	if !strings.Contains(doc.String(), "Nenhum dado temporal disponível") {
		t.Error("timeline placeholder missing")
	}
	if doc.ElementByID("tab-merge").HasClass("d-none") {
		t.Error("merge section hidden")
	}
}

func TestEnhanceRejectsBadURL(t *testing.T) {
	doc, err := NewBuilder("", "light").Build(fullPanel(), Request{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Enhance(doc, EnhanceOptions{URL: "http://[::1"}); err == nil {
		t.Error("expected a URL parse error")
	}
}

func TestModeForAndPalette(t *testing.T) {
	b := NewBuilder("", "dark")
	if got := b.ModeFor(nil, ""); got != theme.Dark {
		t.Errorf("default mode = %s", got)
	}
	if got := b.ModeFor(&models.PanelData{Mode: "light"}, ""); got != theme.Light {
		t.Errorf("fixture mode = %s", got)
	}
	if got := b.ModeFor(&models.PanelData{Mode: "light"}, "dark"); got != theme.Dark {
		t.Errorf("override mode = %s", got)
	}

	data := fullPanel()
	bundle, err := data.Bundle(models.Selection{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := Palette(data, bundle, theme.Light)
	if len(p) < bundle.PaletteSize() {
		t.Errorf("palette has %d colors for %d series", len(p), bundle.PaletteSize())
	}
	if def := Palette(nil, bundle, theme.Light); p[0] == def[0] {
		t.Errorf("fixture accent ignored: %s", p[0])
	}
	if again := Palette(data, bundle, theme.Light); again[0] != p[0] {
		t.Error("palette is not deterministic")
	}
}
