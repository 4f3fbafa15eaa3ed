package panel

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"painel/internal/charts"
	"painel/internal/dom"
	"painel/internal/tooltip"
)

type fakeLibrary struct {
	inits       int
	destroys    int
	failDestroy bool
	ids         []string
}

type fakeInstance struct{ lib *fakeLibrary }

func (l *fakeLibrary) Init(target dom.Element, spec charts.Spec) (charts.Instance, error) {
	l.inits++
	l.ids = append(l.ids, spec.ID)
	return &fakeInstance{lib: l}, nil
}

func (i *fakeInstance) Render() error                { return nil }
func (i *fakeInstance) Update(spec charts.Spec) error { return nil }

func (i *fakeInstance) Destroy() error {
	i.lib.destroys++
	if i.lib.failDestroy {
		return errors.New("instance already disposed")
	}
	return nil
}

const payloads = `
<script type="application/json" id="data-tipo-labels">["Manual","Voz","Coletor"]</script>
<script type="application/json" id="data-tipo-series">[12, 30, 8]</script>
<script type="application/json" id="data-turno-labels">["Manhã","Tarde"]</script>
<script type="application/json" id="data-turno-series">[20, 15]</script>
<script type="application/json" id="data-setor-labels">["Mercearia","Bebidas"]</script>
<script type="application/json" id="data-setor-series">[40, 22]</script>
<script type="application/json" id="data-timeline">[[1709251200000, 10], [1709337600000, 14], [1709424000000, 9]]</script>
<script type="application/json" id="data-available-setores">["Mercearia","Bebidas"]</script>
<script type="application/json" id="data-available-tipos">["Manual","Voz"]</script>
<script type="application/json" id="data-available-supervisores">["Ana","Bruno"]</script>
<script type="application/json" id="data-selected-setor">"Bebidas"</script>
<script type="application/json" id="data-selected-tipo">""</script>
<script type="application/json" id="data-selected-supervisor">"all"</script>
`

const mergePayload = `<script type="application/json" id="data-merge-colab-percent">{"labels":["Com execução por Voz","Sem execução por Voz"],"values":[18, 6]}</script>`

const shell = `<html data-bs-theme="light"><body>
<div class="card"><div class="card-header">
  <span id="dataset-label"></span>
  <div class="btn-group">
    <a class="btn active" data-target="#tab-registros">Registros</a>
    <a class="btn" data-target="#tab-input">Input</a>
    <button class="btn" data-target="#tab-merge">Merge</button>
  </div>
</div></div>
<section id="tab-registros"><div id="registros-graficos"></div></section>
<section id="tab-input" class="d-none">
  <button data-input-filter="dia">Dia</button>
  <button data-input-filter="semana" class="active">Semana</button>
  <div data-input-panel="dia"></div>
  <div data-input-panel="semana" class="d-none"></div>
</section>
<section id="tab-merge" class="d-none">
  <div class="chart-wrapper" id="wrap-merge-pie"><div id="chart-merge-colab-percent"></div></div>
  <div class="chart-wrapper" id="wrap-merge-bar"><div id="chart-merge-colab"></div></div>
</section>
<input id="min_data" name="min_data" value="2024-03-01">
<input id="max_data" value="">
%PAYLOADS%
</body></html>`

func newPage(t *testing.T, withMerge bool) *dom.HTMLDocument {
	t.Helper()
	p := payloads
	if withMerge {
		p += mergePayload
	}
	doc, err := dom.ParseString(strings.Replace(shell, "%PAYLOADS%", p, 1))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func newController(t *testing.T, doc dom.Document, raw string) (*Controller, *fakeLibrary, *StaticLocation) {
	t.Helper()
	loc, err := NewStaticLocation(raw)
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	lib := &fakeLibrary{}
	c, err := New(Deps{Document: doc, Location: loc, Library: lib})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, lib, loc
}

func TestNewRequiresDocument(t *testing.T) {
	if _, err := New(Deps{}); !errors.Is(err, ErrNoDocument) {
		t.Errorf("err = %v, want ErrNoDocument", err)
	}
}

func TestStartMountsRecords(t *testing.T) {
	doc := newPage(t, true)
	c, lib, _ := newController(t, doc, "/painel")
	c.Start()

	if !c.Mounted() {
		t.Fatal("records not mounted")
	}
	want := []Slot{SlotSetor, SlotTimeline, SlotTipo, SlotTurno}
	got := c.Slots()
	if len(got) != len(want) {
		t.Fatalf("slots = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %s, want %s", i, got[i], want[i])
		}
	}
	if lib.inits != 4 {
		t.Errorf("inits = %d, want 4", lib.inits)
	}
	if c.MergeMounted() {
		t.Error("merge charts mounted on the records tab")
	}
	if c.Tab() != TabRecords {
		t.Errorf("tab = %s", c.Tab())
	}
	if got := doc.ElementByID(IDDatasetLabel).Text(); got != "Registros" {
		t.Errorf("label = %q", got)
	}
}

func TestSwitchToMergeMountsOnce(t *testing.T) {
	doc := newPage(t, true)
	c, lib, loc := newController(t, doc, "/painel?setor=Bebidas#tab-registros")
	c.Start()
	before := lib.inits

	c.SwitchTab(TabMerged, true)
	c.SwitchTab(TabMerged, true)

	if lib.inits-before != 2 {
		t.Errorf("merge inits = %d, want 2", lib.inits-before)
	}
	if c.Handle(SlotMergePercent) == nil || c.Handle(SlotMergeBar) == nil {
		t.Fatal("merge slots empty")
	}
	if got := loc.Current.Query().Get("tab"); got != "merge" {
		t.Errorf("tab param = %q", got)
	}
	if loc.Current.Query().Get("setor") != "Bebidas" {
		t.Error("foreign param dropped")
	}
	if loc.Current.Fragment != "tab-merge" {
		t.Errorf("fragment = %q", loc.Current.Fragment)
	}
	if loc.Navigated != nil {
		t.Error("tab switch must not navigate")
	}
	if doc.ElementByID("tab-merge").HasClass(ClassHidden) {
		t.Error("merge section still hidden")
	}
	if !doc.ElementByID("tab-registros").HasClass(ClassHidden) {
		t.Error("records section still visible")
	}

	c.MountMerge(true)
	if lib.inits-before != 4 {
		t.Errorf("forced remount inits = %d, want 4", lib.inits-before)
	}
	if len(c.Slots()) != 6 {
		t.Errorf("slots = %v", c.Slots())
	}
}

func TestStartOnMergeTab(t *testing.T) {
	doc := newPage(t, true)
	c, _, loc := newController(t, doc, "/painel?tab=merge")
	c.Start()

	if c.Tab() != TabMerged || !c.MergeMounted() {
		t.Fatalf("tab = %s merge mounted = %v", c.Tab(), c.MergeMounted())
	}
	if loc.Replaced != 0 {
		t.Errorf("initial activation replaced the URL %d times", loc.Replaced)
	}
	if got := doc.ElementByID(IDDatasetLabel).Text(); got != "Registros x Input*Dados" {
		t.Errorf("label = %q", got)
	}
}

func TestMergeEmptyStates(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		pie     string
		bar     string
	}{
		{"no payload", "", "Nenhum dado disponível para calcular percentual de treinamento.", "Nenhum dado disponível para calcular colaboradores treinados."},
		{"zero total", `<script type="application/json" id="data-merge-colab-percent">{"values":[0,0]}</script>`, "Nenhum colaborador treinado encontrado na planilha recente.", "Nenhum colaborador treinado encontrado na planilha recente."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := dom.ParseString(strings.Replace(shell, "%PAYLOADS%", tt.payload, 1))
			if err != nil {
				t.Fatal(err)
			}
			c, lib, _ := newController(t, doc, "/")
			c.MountMerge(false)

			if lib.inits != 0 {
				t.Errorf("inits = %d", lib.inits)
			}
			if len(c.Slots()) != 0 {
				t.Errorf("placeholder filled a slot: %v", c.Slots())
			}
			pie := doc.ElementByID("wrap-merge-pie").Text()
			bar := doc.ElementByID("wrap-merge-bar").Text()
			if !strings.Contains(pie, tt.pie) {
				t.Errorf("pie placeholder = %q", pie)
			}
			if !strings.Contains(bar, tt.bar) {
				t.Errorf("bar placeholder = %q", bar)
			}
		})
	}
}

func TestRemountKeepsOneHandlePerSlot(t *testing.T) {
	doc := newPage(t, true)
	c, lib, _ := newController(t, doc, "/painel")
	c.Start()
	first := c.Handle(SlotTipo)

	c.MountRecords()

	if !first.Destroyed() {
		t.Error("previous handle not destroyed")
	}
	if c.Handle(SlotTipo) == first {
		t.Error("slot still holds the old handle")
	}
	if len(c.Slots()) != 4 {
		t.Errorf("slots = %v", c.Slots())
	}
	if lib.destroys != 4 {
		t.Errorf("destroys = %d, want 4", lib.destroys)
	}
	if n := len(doc.FindAll(dom.ByClass(tooltip.Class))); n != 4 {
		t.Errorf("overlays = %d, want 4", n)
	}
}

func TestRemountDropsMergeCharts(t *testing.T) {
	doc := newPage(t, true)
	c, lib, _ := newController(t, doc, "/painel")
	c.Start()
	c.SwitchTab(TabMerged, false)
	c.MountRecords()

	if c.MergeMounted() || c.Handle(SlotMergeBar) != nil {
		t.Fatal("merge charts survived a records remount")
	}
	before := lib.inits
	c.SwitchTab(TabMerged, false)
	if lib.inits-before != 2 {
		t.Errorf("merge did not mount again: %d inits", lib.inits-before)
	}
}

func TestDestroyFailureDoesNotBlockSiblings(t *testing.T) {
	doc := newPage(t, false)
	c, lib, _ := newController(t, doc, "/painel")
	c.Start()
	lib.failDestroy = true

	c.MountRecords()

	if len(c.Slots()) != 4 {
		t.Errorf("slots after failed destroys = %v", c.Slots())
	}
	c.Teardown()
	if len(c.Slots()) != 0 || c.Mounted() {
		t.Errorf("teardown left %v mounted=%v", c.Slots(), c.Mounted())
	}
}

func TestMissingTargetIsNoop(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><p>sem painel</p></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	c, lib, loc := newController(t, doc, "/")
	c.Start()
	c.MountMerge(true)

	if lib.inits != 0 || c.Mounted() || loc.Replaced != 0 {
		t.Errorf("side effects on an empty page: inits=%d mounted=%v replaced=%d", lib.inits, c.Mounted(), loc.Replaced)
	}
}

func TestFilterSelectsPopulated(t *testing.T) {
	doc := newPage(t, false)
	c, _, _ := newController(t, doc, "/painel")
	c.Start()

	setor := doc.ElementByID(IDFilterSetor)
	if setor == nil {
		t.Fatal("setor select missing")
	}
	if got := setor.Value(); got != "Bebidas" {
		t.Errorf("setor = %q", got)
	}
	if got := doc.ElementByID(IDFilterTipo).Value(); got != "all" {
		t.Errorf("tipo = %q", got)
	}
	opts := doc.ElementByID(IDFilterSupervisor).FindAll(dom.ByTag("option"))
	if len(opts) != 3 || opts[1].Text() != "Supervisor: Ana" {
		t.Errorf("supervisor options = %d", len(opts))
	}

	// A remount must not duplicate options.
	c.MountRecords()
	if n := len(doc.ElementByID(IDFilterSupervisor).FindAll(dom.ByTag("option"))); n != 3 {
		t.Errorf("options after remount = %d", n)
	}
}

func TestFilterFormCarriesForeignParams(t *testing.T) {
	doc := newPage(t, false)
	c, _, _ := newController(t, doc, "/painel?tab=input&origem=email&setor=Bebidas&min_data=2024-01-01")
	c.Start()

	form := doc.ElementByID(IDFilterForm)
	if action, _ := form.Attr("action"); action != "/painel" {
		t.Errorf("action = %q", action)
	}
	hidden := map[string]string{}
	for _, in := range form.FindAll(dom.ByAttr("type", "hidden")) {
		name, _ := in.Attr("name")
		v, _ := in.Attr("value")
		hidden[name] = v
	}
	if hidden["tab"] != "input" || hidden["origem"] != "email" {
		t.Errorf("hidden = %v", hidden)
	}
	if _, ok := hidden["setor"]; ok {
		t.Error("owned param duplicated as hidden input")
	}
	if _, ok := hidden["min_data"]; ok {
		t.Error("linked input duplicated as hidden input")
	}
	maxData := doc.ElementByID(IDMaxData)
	if f, _ := maxData.Attr("form"); f != IDFilterForm {
		t.Errorf("max_data form = %q", f)
	}
	if n, _ := maxData.Attr("name"); n != "max_data" {
		t.Errorf("max_data name = %q", n)
	}
}

func TestApplyFilters(t *testing.T) {
	doc := newPage(t, false)
	c, _, loc := newController(t, doc, "/painel?tab=merge&origem=email&turno=Noite#tab-merge")
	c.Start()
	doc.ElementByID(IDFilterSetor).SetValue("Mercearia")

	u := c.ApplyFilters()

	if loc.Navigated == nil {
		t.Fatal("no navigation")
	}
	q := loc.Navigated.Query()
	want := url.Values{
		"tab":        {"merge"},
		"origem":     {"email"},
		"turno":      {"Noite"},
		"min_data":   {"2024-03-01"},
		"setor":      {"Mercearia"},
		"tipo":       {"all"},
		"supervisor": {"all"},
	}
	for k, v := range want {
		if q.Get(k) != v[0] {
			t.Errorf("%s = %q, want %q", k, q.Get(k), v[0])
		}
	}
	if q.Has("max_data") {
		t.Error("empty max_data written")
	}
	if u.Fragment != "tab-merge" {
		t.Errorf("fragment = %q", u.Fragment)
	}
}

func TestInputFilters(t *testing.T) {
	doc := newPage(t, false)
	c, _, _ := newController(t, doc, "/")
	c.SetupInputFilters()

	panels := doc.FindAll(dom.HasAttr(AttrInputPanel))
	if !panels[0].HasClass(ClassHidden) || panels[1].HasClass(ClassHidden) {
		t.Error("active button's panel not shown")
	}

	c.SelectInputFilter("dia")
	if panels[0].HasClass(ClassHidden) || !panels[1].HasClass(ClassHidden) {
		t.Error("dia panel not selected")
	}
	buttons := doc.FindAll(dom.HasAttr(AttrInputFilter))
	if !buttons[0].HasClass(ClassActive) || buttons[1].HasClass(ClassActive) {
		t.Error("button state not updated")
	}
}

func TestBindTabsSetsAnchorHrefs(t *testing.T) {
	doc := newPage(t, false)
	c, _, _ := newController(t, doc, "/painel?setor=Bebidas")
	c.BindTabs()
	c.BindTabs()

	var hrefs []string
	for _, a := range doc.FindAll(dom.ByTag("a")) {
		h, _ := a.Attr("href")
		hrefs = append(hrefs, h)
	}
	if len(hrefs) != 2 || hrefs[0] != "/painel?setor=Bebidas" || hrefs[1] != "/painel?setor=Bebidas&tab=input#tab-input" {
		t.Errorf("hrefs = %v", hrefs)
	}
}

func TestHoverForwardsToSlot(t *testing.T) {
	doc := newPage(t, false)
	c, _, _ := newController(t, doc, "/")
	c.Start()

	if err := c.Hover(SlotTipo, tooltip.HoverEvent{Active: true, Point: 1, Value: 30, X: 10, Y: 20}); err != nil {
		t.Fatalf("hover: %v", err)
	}
	if !c.Handle(SlotTipo).Overlay().Visible() {
		t.Error("overlay hidden after hover")
	}
	if err := c.Hover(SlotMergeBar, tooltip.HoverEvent{Active: true}); err != nil {
		t.Errorf("hover on empty slot: %v", err)
	}
}
