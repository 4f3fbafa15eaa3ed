package charts

import (
	"errors"
	"strings"
	"testing"
	"time"

	"painel/internal/dataset"
	"painel/internal/dom"
	"painel/internal/stats"
	"painel/internal/theme"
	"painel/internal/tooltip"
)

type fakeLibrary struct {
	inits       int
	renders     int
	destroys    int
	failRender  bool
	failDestroy bool
	last        Spec
}

type fakeInstance struct {
	lib  *fakeLibrary
	spec Spec
}

func (l *fakeLibrary) Init(target dom.Element, spec Spec) (Instance, error) {
	l.inits++
	l.last = spec
	return &fakeInstance{lib: l, spec: spec}, nil
}

func (i *fakeInstance) Render() error {
	i.lib.renders++
	if i.lib.failRender {
		return errors.New("render failed")
	}
	return nil
}

func (i *fakeInstance) Update(spec Spec) error {
	i.spec = spec
	i.lib.last = spec
	return nil
}

func (i *fakeInstance) Destroy() error {
	i.lib.destroys++
	if i.lib.failDestroy {
		return errors.New("already disposed")
	}
	return nil
}

const page = `<html><body>
<div class="chart-wrapper" id="wrap-tipo"><div id="chart-tipo"></div></div>
<div class="chart-wrapper" id="wrap-setor"><div id="chart-setor"></div></div>
<div class="chart-wrapper" id="wrap-timeline"><div id="chart-timeline"></div></div>
</body></html>`

func newDoc(t *testing.T) *dom.HTMLDocument {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func newEnv(lib Library) Env {
	return Env{Library: lib, Mode: theme.Light, Config: theme.ChartConfig{Emphasis: "#fbbf24", Grid: "#eeeeee"}}
}

var testPalette = theme.Palette{"#3498db", "#2980b9", "#27ae60", "#f39c12"}

func seriesItems(t *testing.T, spec Spec, s int) []map[string]interface{} {
	t.Helper()
	series, ok := spec.Option["series"].([]interface{})
	if !ok || s >= len(series) {
		t.Fatalf("option has no series %d", s)
	}
	data := series[s].(map[string]interface{})["data"].([]interface{})
	out := make([]map[string]interface{}, len(data))
	for i, d := range data {
		out[i] = d.(map[string]interface{})
	}
	return out
}

func labelShown(item map[string]interface{}) bool {
	return item["label"].(map[string]interface{})["show"].(bool)
}

func TestMountersSkipMissingTarget(t *testing.T) {
	lib := &fakeLibrary{}
	env := newEnv(lib)

	h, err := CategoricalBar(env, nil, dataset.NewCategorical([]string{"A"}, []float64{1}), testPalette, Text{})
	if h != nil || err != nil {
		t.Errorf("CategoricalBar(nil target) = %v, %v", h, err)
	}
	h, err = TimeSeriesArea(env, nil, dataset.TimeSeries{}, testPalette)
	if h != nil || err != nil {
		t.Errorf("TimeSeriesArea(nil target) = %v, %v", h, err)
	}
	if lib.inits != 0 {
		t.Errorf("library was called %d times", lib.inits)
	}
}

func TestEmptyDataRendersPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		mount func(env Env, doc *dom.HTMLDocument) (*Handle, error)
		wrap  string
		want  string
	}{
		{
			name: "empty categorical",
			mount: func(env Env, doc *dom.HTMLDocument) (*Handle, error) {
				return CategoricalBar(env, doc.ElementByID("chart-tipo"), dataset.NewCategorical(nil, nil), testPalette, Text{Empty: "Sem dados"})
			},
			wrap: "wrap-tipo",
			want: "Sem dados",
		},
		{
			name: "zero sum grouped",
			mount: func(env Env, doc *dom.HTMLDocument) (*Handle, error) {
				g := dataset.NewGrouped([]string{"A", "B"}, []dataset.NamedSeries{{Name: "x", Data: stats.Series{0, 0}}})
				return HorizontalBar(env, doc.ElementByID("chart-setor"), g, testPalette, HBarRanking, Text{Empty: "Nada"})
			},
			wrap: "wrap-setor",
			want: "Nada",
		},
		{
			name: "empty timeline",
			mount: func(env Env, doc *dom.HTMLDocument) (*Handle, error) {
				return TimeSeriesArea(env, doc.ElementByID("chart-timeline"), dataset.TimeSeries{}, testPalette)
			},
			wrap: "wrap-timeline",
			want: TimelineEmpty,
		},
		{
			name: "zero sum timeline",
			mount: func(env Env, doc *dom.HTMLDocument) (*Handle, error) {
				ts := dataset.TimeSeries{Points: []dataset.Point{
					{At: time.UnixMilli(1709251200000), Value: 0},
					{At: time.UnixMilli(1709337600000), Value: 0},
				}}
				return TimeSeriesArea(env, doc.ElementByID("chart-timeline"), ts, testPalette)
			},
			wrap: "wrap-timeline",
			want: TimelineEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newDoc(t)
			lib := &fakeLibrary{}
			h, err := tt.mount(newEnv(lib), doc)
			if err != nil || h != nil {
				t.Fatalf("mount = %v, %v; want nil, nil", h, err)
			}
			wrap := doc.ElementByID(tt.wrap)
			empty := wrap.Find(dom.ByClass(EmptyClass))
			if empty == nil {
				t.Fatalf("no placeholder in %s", wrap.InnerHTML())
			}
			if empty.Text() != tt.want {
				t.Errorf("placeholder = %q, want %q", empty.Text(), tt.want)
			}
			if lib.inits != 0 {
				t.Error("library initialised for empty data")
			}
		})
	}
}

func TestCategoricalBarColorsAndLabels(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{}
	data := dataset.NewCategorical([]string{"A", "B", "C", "D"}, []float64{10, 30, 10, 1})

	h, err := CategoricalBar(newEnv(lib), doc.ElementByID("chart-tipo"), data, testPalette, Text{ValueLabel: "Matrículas"})
	if err != nil || h == nil {
		t.Fatalf("mount failed: %v", err)
	}
	items := seriesItems(t, lib.last, 0)

	wantColors := []string{testPalette[0], highlight(testPalette[1], theme.Light), testPalette[2], testPalette[3]}
	for i, item := range items {
		got := item["itemStyle"].(map[string]interface{})["color"]
		if got != wantColors[i] {
			t.Errorf("item %d color = %v, want %v", i, got, wantColors[i])
		}
	}
	wantLabels := []bool{true, true, true, false}
	for i, item := range items {
		if labelShown(item) != wantLabels[i] {
			t.Errorf("item %d label shown = %v, want %v", i, labelShown(item), wantLabels[i])
		}
	}
	if len(lib.last.Tooltips) != 1 || len(lib.last.Tooltips[0]) != 4 {
		t.Fatalf("tooltips = %v", lib.last.Tooltips)
	}
	if !strings.Contains(lib.last.Tooltips[0][1], "1º lugar") {
		t.Errorf("leader tooltip missing rank: %s", lib.last.Tooltips[0][1])
	}
}

func TestLongCategoryLabelsAreTruncated(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{}
	data := dataset.NewCategorical([]string{"Manutenção Preventiva Geral"}, []float64{3})

	if _, err := CategoricalBar(newEnv(lib), doc.ElementByID("chart-tipo"), data, testPalette, Text{}); err != nil {
		t.Fatal(err)
	}
	labels := lib.last.Option["xAxis"].(map[string]interface{})["data"].([]string)
	if labels[0] != "Manutenção Pre…" {
		t.Errorf("axis label = %q", labels[0])
	}
}

func TestStackedSegmentLabels(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{}
	g := dataset.NewGrouped([]string{"Setor A", "Setor B"}, []dataset.NamedSeries{
		{Name: "Manhã", Data: stats.Series{95, 40}},
		{Name: "Noite", Data: stats.Series{5, 60}},
	})

	if _, err := HorizontalBar(newEnv(lib), doc.ElementByID("chart-setor"), g, testPalette, HBarRanking, Text{}); err != nil {
		t.Fatal(err)
	}
	night := seriesItems(t, lib.last, 1)
	if labelShown(night[0]) {
		t.Error("5% segment should not be labelled")
	}
	if !labelShown(night[1]) {
		t.Error("60% segment should be labelled")
	}
	series := lib.last.Option["series"].([]interface{})
	if series[0].(map[string]interface{})["stack"] != "total" {
		t.Error("stacked series do not share a stack")
	}
	if _, ok := lib.last.Option["legend"]; !ok {
		t.Error("stacked chart has no legend")
	}
}

func TestBreakdownDonutLabels(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{}
	data := dataset.NewCategorical(dataset.DefaultBreakdownLabels, []float64{97, 3})

	if _, err := Donut(newEnv(lib), doc.ElementByID("chart-tipo"), data, testPalette, DonutBreakdown, Text{}); err != nil {
		t.Fatal(err)
	}
	items := seriesItems(t, lib.last, 0)
	if !labelShown(items[0]) || labelShown(items[1]) {
		t.Errorf("labels shown = %v, %v; want true, false", labelShown(items[0]), labelShown(items[1]))
	}
	fill := items[0]["itemStyle"].(map[string]interface{})["color"].(string)
	if !strings.HasPrefix(fill, "rgba(") {
		t.Errorf("breakdown fill = %q, want translucent rgba", fill)
	}
}

func TestHandleDestroyIsIdempotent(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{failDestroy: true}
	data := dataset.NewCategorical([]string{"A", "B"}, []float64{1, 2})

	h, err := CategoricalBar(newEnv(lib), doc.ElementByID("chart-tipo"), data, testPalette, Text{})
	if err != nil {
		t.Fatal(err)
	}
	wrap := doc.ElementByID("wrap-tipo")
	if len(wrap.FindAll(dom.ByClass(tooltip.Class))) != 1 {
		t.Fatal("expected one tooltip overlay")
	}

	h.Destroy()
	h.Destroy()

	if lib.destroys != 1 {
		t.Errorf("library destroy called %d times, want 1", lib.destroys)
	}
	if len(wrap.FindAll(dom.ByClass(tooltip.Class))) != 0 {
		t.Error("tooltip overlay left behind")
	}
	if err := h.Hover(tooltip.HoverEvent{Active: true}); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Hover after destroy = %v", err)
	}
}

func TestRemountReusesSingleOverlay(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{}
	data := dataset.NewCategorical([]string{"A", "B"}, []float64{1, 2})
	target := doc.ElementByID("chart-tipo")

	first, err := CategoricalBar(newEnv(lib), target, data, testPalette, Text{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := CategoricalBar(newEnv(lib), target, data, testPalette, Text{}); err != nil {
		t.Fatal(err)
	}
	if n := len(doc.ElementByID("wrap-tipo").FindAll(dom.ByClass(tooltip.Class))); n != 1 {
		t.Errorf("found %d overlays, want 1", n)
	}
	first.Destroy()
}

func TestRenderFailureCleansUp(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{failRender: true}
	data := dataset.NewCategorical([]string{"A"}, []float64{1})

	h, err := CategoricalBar(newEnv(lib), doc.ElementByID("chart-tipo"), data, testPalette, Text{})
	if err == nil || h != nil {
		t.Fatalf("mount = %v, %v; want error", h, err)
	}
	if lib.destroys != 1 {
		t.Errorf("destroys = %d, want 1", lib.destroys)
	}
	if doc.ElementByID("wrap-tipo").Find(dom.ByClass(tooltip.Class)) != nil {
		t.Error("overlay left after failed render")
	}
}

func TestHoverShowsAndHidesOverlay(t *testing.T) {
	doc := newDoc(t)
	data := dataset.NewCategorical([]string{"A", "B", "C"}, []float64{10, 30, 10})
	h, err := CategoricalBar(newEnv(&fakeLibrary{}), doc.ElementByID("chart-tipo"), data, testPalette, Text{})
	if err != nil {
		t.Fatal(err)
	}

	if err := h.Hover(tooltip.HoverEvent{Active: true, Point: 0, Value: 10, X: 40, Y: 80}); err != nil {
		t.Fatal(err)
	}
	o := h.Overlay()
	if !o.Visible() || !strings.Contains(o.Element().InnerHTML(), "A") {
		t.Errorf("overlay not shown: %s", o.Element().InnerHTML())
	}
	_ = h.Hover(tooltip.HoverEvent{})
	if o.Visible() {
		t.Error("overlay still visible after hover ended")
	}
}

func TestAnimationPlan(t *testing.T) {
	if AnimationPlan(1, 600, 5*time.Second) != nil {
		t.Error("single point should not animate")
	}
	if AnimationPlan(601, 600, 5*time.Second) != nil {
		t.Error("series above the ceiling should not animate")
	}

	a := AnimationPlan(4, 600, 5*time.Second)
	if a == nil {
		t.Fatal("expected a plan")
	}
	wantDelays := []float64{0, 2188, 3750, 4688}
	wantDurations := []float64{0, 547, 938, 1172}
	for i := range wantDelays {
		if a.Delays[i] != wantDelays[i] {
			t.Errorf("delay[%d] = %v, want %v", i, a.Delays[i], wantDelays[i])
		}
		if a.Durations[i] != wantDurations[i] {
			t.Errorf("duration[%d] = %v, want %v", i, a.Durations[i], wantDurations[i])
		}
	}
}

func TestPointStylesGrowTowardLatest(t *testing.T) {
	styles := PointStyles(3, 1, "#3498db", "#fbbf24")

	wantRadius := []float64{3.5, 7, 6}
	wantHover := []float64{6, 8.5, 8}
	for i, ps := range styles {
		if ps.Radius != wantRadius[i] || ps.HoverRadius != wantHover[i] {
			t.Errorf("point %d = %+v", i, ps)
		}
	}
	if styles[1].Color != "#fbbf24" || !styles[1].Highlight {
		t.Errorf("max point not highlighted: %+v", styles[1])
	}
	if styles[0].Color == styles[2].Color {
		t.Error("first and last points share a color")
	}
}

func TestTimeSeriesAreaSpec(t *testing.T) {
	doc := newDoc(t)
	lib := &fakeLibrary{}
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	ts := dataset.TimeSeries{Points: []dataset.Point{
		{At: base, Value: 5},
		{At: base.Add(time.Hour), Value: 5},
		{At: base.Add(2 * time.Hour), Value: 9},
	}}

	if _, err := TimeSeriesArea(newEnv(lib), doc.ElementByID("chart-timeline"), ts, testPalette); err != nil {
		t.Fatal(err)
	}
	if !lib.last.AxisTooltip {
		t.Error("timeline should track the axis")
	}
	if lib.last.Animation == nil || len(lib.last.Animation.Delays) != 3 {
		t.Errorf("animation = %+v", lib.last.Animation)
	}
	pointer := lib.last.Option["xAxis"].(map[string]interface{})["axisPointer"].(map[string]interface{})
	dash := pointer["lineStyle"].(map[string]interface{})["type"].([]int)
	if len(dash) != 2 || dash[0] != 6 || dash[1] != 4 {
		t.Errorf("crosshair dash = %v", dash)
	}
	if !strings.Contains(lib.last.Tooltips[0][2], "Crescimento") {
		t.Errorf("third point tooltip = %s", lib.last.Tooltips[0][2])
	}
}

func TestTruncateAndWrap(t *testing.T) {
	if got := Truncate("curto", 16, 14); got != "curto" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("abcdefghijklmnopq", 16, 14); got != "abcdefghijklmn…" {
		t.Errorf("Truncate long = %q", got)
	}
	if got := Wrap("Com execução por Voz", 14); got != "Com execução\npor Voz" {
		t.Errorf("Wrap = %q", got)
	}
}

func TestMergeColors(t *testing.T) {
	for _, m := range []theme.Mode{theme.Light, theme.Dark} {
		c := NewMergeColors(testPalette, m)
		if len(c.Fill) != 2 || len(c.Hover) != 2 || len(c.Border) != 2 {
			t.Fatalf("%s: colors = %+v", m, c)
		}
		if c.Fill[0] == c.Fill[1] {
			t.Errorf("%s: buckets share a fill", m)
		}
	}
	short := NewMergeColors(theme.Palette{"#3498db"}, theme.Light)
	if short.Border[0] == short.Border[1] {
		t.Error("single color palette should still give distinct buckets")
	}
}

func TestEChartsWritesAndRemovesScript(t *testing.T) {
	doc := newDoc(t)
	data := dataset.NewCategorical([]string{"A", "B"}, []float64{1, 2})

	h, err := CategoricalBar(newEnv(NewECharts(nil)), doc.ElementByID("chart-tipo"), data, testPalette, Text{})
	if err != nil {
		t.Fatal(err)
	}
	scripts := doc.FindAll(dom.HasAttr(ScriptAttr))
	if len(scripts) != 1 {
		t.Fatalf("found %d init scripts", len(scripts))
	}
	js := scripts[0].Text()
	for _, want := range []string{`"chart-tipo"`, "echarts.init", "dispose", "mouseover"} {
		if !strings.Contains(js, want) {
			t.Errorf("script missing %q", want)
		}
	}

	h.Destroy()
	if len(doc.FindAll(dom.HasAttr(ScriptAttr))) != 0 {
		t.Error("init script left after destroy")
	}
}
