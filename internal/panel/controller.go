// Package panel drives the dashboard page: tab state, the chart registry,
// filter controls and the address bar. A Controller owns every chart it
// mounts and is not safe for concurrent use; build one per page.
package panel

import (
	"errors"
	"html"
	"net/url"
	"sort"
	"time"

	"painel/internal/charts"
	"painel/internal/dataset"
	"painel/internal/dom"
	"painel/internal/locale"
	"painel/internal/logger"
	"painel/internal/theme"
	"painel/internal/tooltip"
)

// Slot names a chart position in the registry.
type Slot string

const (
	SlotTipo         Slot = "tipo"
	SlotTurno        Slot = "turno"
	SlotSetor        Slot = "setor"
	SlotTimeline     Slot = "timeline"
	SlotMergePercent Slot = "mergeColabPercent"
	SlotMergeBar     Slot = "mergeColabBar"
)

// Options tune the charts.
type Options struct {
	AnimationCeiling int
	AnimationTotal   time.Duration
}

// Deps are the collaborators of a Controller.
type Deps struct {
	Document dom.Document
	Location Location
	Library  charts.Library
	Locale   *locale.Formatter
	Logger   *logger.Logger
	Options  Options
}

// ErrNoDocument is returned by New without a document.
var ErrNoDocument = errors.New("panel: no document")

// Controller is the tab state machine and chart registry of one page.
type Controller struct {
	doc  dom.Document
	loc  Location
	lib  charts.Library
	f    *locale.Formatter
	log  *logger.Logger
	opts Options

	registry map[Slot]*charts.Handle
	tab      Tab

	tabsBound     bool
	mounted       bool
	mergeMounted  bool
	mounting      bool
	mountingMerge bool
}

// New builds a controller. Location defaults to a StaticLocation at "/" and
// Library to the ECharts backend.
func New(d Deps) (*Controller, error) {
	if d.Document == nil {
		return nil, ErrNoDocument
	}
	log := d.Logger
	if log == nil {
		log = logger.Discard()
	}
	log = log.WithComponent("panel")
	if d.Location == nil {
		d.Location = &StaticLocation{Current: &url.URL{Path: "/"}}
	}
	if d.Library == nil {
		d.Library = charts.NewECharts(log)
	}
	if d.Locale == nil {
		d.Locale = locale.New(locale.DefaultTag.String())
	}
	return &Controller{
		doc:      d.Document,
		loc:      d.Location,
		lib:      d.Library,
		f:        d.Locale,
		log:      log,
		opts:     d.Options,
		registry: make(map[Slot]*charts.Handle),
		tab:      TabRecords,
	}, nil
}

// Tab is the active tab.
func (c *Controller) Tab() Tab { return c.tab }

// Mounted reports whether the records charts are mounted.
func (c *Controller) Mounted() bool { return c.mounted }

// MergeMounted reports whether the merge charts are mounted.
func (c *Controller) MergeMounted() bool { return c.mergeMounted }

// Handle returns the chart in slot, or nil.
func (c *Controller) Handle(slot Slot) *charts.Handle { return c.registry[slot] }

// Slots lists the occupied slots in name order.
func (c *Controller) Slots() []Slot {
	out := make([]Slot, 0, len(c.registry))
	for s := range c.registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Hover forwards a hover event to the chart in slot.
func (c *Controller) Hover(slot Slot, ev tooltip.HoverEvent) error {
	h := c.registry[slot]
	if h == nil {
		return nil
	}
	return h.Hover(ev)
}

// Start runs the page load sequence: bind the tabs, mount the records
// charts, set up the input filters and mount the merge charts when the page
// opens on that tab.
func (c *Controller) Start() {
	c.BindTabs()
	c.MountRecords()
	c.SetupInputFilters()
	if InitialTab(c.loc.URL()) == TabMerged {
		c.MountMerge(false)
	}
}

func (c *Controller) mode() theme.Mode {
	attr, _ := c.doc.Root().Attr(dom.ThemeAttr)
	return theme.ResolveMode(attr)
}

func (c *Controller) env() charts.Env {
	m := c.mode()
	return charts.Env{
		Library:          c.lib,
		Mode:             m,
		Config:           theme.ResolveConfig(c.doc, m),
		Locale:           c.f,
		Logger:           c.log,
		AnimationCeiling: c.opts.AnimationCeiling,
		AnimationTotal:   c.opts.AnimationTotal,
	}
}

// mountSlot destroys whatever occupies slot before mounting a replacement.
func (c *Controller) mountSlot(slot Slot, mount func() (*charts.Handle, error)) {
	c.destroySlot(slot)
	h, err := mount()
	if err != nil {
		c.log.Warn("failed to mount chart", logger.Fields{"slot": string(slot), "error": err.Error()})
		return
	}
	if h == nil {
		return
	}
	c.registry[slot] = h
	c.log.Debug("chart slot filled", logger.Fields{"slot": string(slot), "chart": h.ID()})
}

func (c *Controller) destroySlot(slot Slot) {
	if h := c.registry[slot]; h != nil {
		h.Destroy()
		delete(c.registry, slot)
	}
}

// destroyAll releases every chart. The merge charts go with them, so the
// merge tab mounts again on its next visit.
func (c *Controller) destroyAll() {
	for slot := range c.registry {
		c.destroySlot(slot)
	}
	c.mergeMounted = false
}

// Teardown destroys every chart and clears the mount flags.
func (c *Controller) Teardown() {
	c.destroyAll()
	c.mounted = false
	c.log.Debug("panel torn down")
}

// MountRecords injects the records cards into #registros-graficos and
// mounts the tipo, turno, setor and timeline charts. Without the target it
// does nothing. Re-entrant calls return immediately.
func (c *Controller) MountRecords() {
	if c.mounting {
		return
	}
	target := c.doc.ElementByID(IDRecordsTarget)
	if target == nil {
		return
	}
	c.mounting = true
	defer func() { c.mounting = false }()

	c.destroyAll()
	if err := target.SetInnerHTML(recordsMarkup); err != nil {
		c.log.Error("failed to inject records markup", err)
		return
	}

	bundle := dataset.Load(dataset.DocumentSource{Doc: c.doc}, c.log)
	env := c.env()
	palette := theme.Resolve(c.doc, theme.RecordsBase, bundle.PaletteSize(), env.Mode)

	c.mountSlot(SlotTipo, func() (*charts.Handle, error) {
		return charts.CategoricalBar(env, c.doc.ElementByID(IDChartTipo), bundle.Tipo, palette, charts.Text{
			Subtitle:   "Tipos • Matrículas",
			ValueLabel: "Volume",
			Unit:       "matrículas",
			LeaderText: "Líder da categoria",
			AxisName:   "Matrículas",
			Empty:      "Nenhum tipo de matrícula encontrado.",
		})
	})
	c.mountSlot(SlotTurno, func() (*charts.Handle, error) {
		return charts.Donut(env, c.doc.ElementByID(IDChartTurno), bundle.Turno, palette, charts.DonutShare, charts.Text{
			Subtitle:   "Turnos • Distribuição",
			ValueLabel: "Volume",
			Unit:       "matrículas",
			Empty:      "Nenhum turno encontrado.",
		})
	})
	c.mountSlot(SlotSetor, func() (*charts.Handle, error) {
		return charts.HorizontalBar(env, c.doc.ElementByID(IDChartSetor), bundle.Setor, palette, charts.HBarRanking, charts.Text{
			Subtitle:   "Setores • Volume total",
			ValueLabel: "Registros",
			Unit:       "registros",
			LeaderText: "Líder absoluto",
			Empty:      "Nenhum setor encontrado.",
		})
	})
	c.mountSlot(SlotTimeline, func() (*charts.Handle, error) {
		return charts.TimeSeriesArea(env, c.doc.ElementByID(IDChartTimeline), bundle.Timeline, palette)
	})

	c.populateFilters(bundle.Filters)
	c.bindFilterForm()
	c.mounted = true
	c.log.Info("records charts mounted", logger.Fields{"charts": len(c.registry), "palette": len(palette), "mode": string(env.Mode)})
}

// MountMerge mounts the merge pie and bar. Once mounted, later calls are
// no-ops unless force is set.
func (c *Controller) MountMerge(force bool) {
	pie := c.doc.ElementByID(IDChartMergePie)
	bar := c.doc.ElementByID(IDChartMergeBar)
	if pie == nil && bar == nil {
		return
	}
	if (c.mergeMounted && !force) || c.mountingMerge {
		return
	}
	c.mountingMerge = true
	defer func() { c.mountingMerge = false }()

	env := c.env()
	palette := theme.Resolve(c.doc, theme.MergeBase, 4, env.Mode)
	merge := dataset.LoadBreakdown(dataset.DocumentSource{Doc: c.doc}, dataset.IDMergeColabPercent)
	if merge.Status != dataset.Loaded {
		c.log.Debug("merge dataset not loaded", logger.Fields{"status": merge.Status.String()})
	}
	b := merge.Value

	pieEmpty, barEmpty := charts.MergeEmptyPie, charts.MergeEmptyBar
	if b.Present {
		pieEmpty, barEmpty = charts.MergeEmptyTotal, charts.MergeEmptyTotal
	}
	text := charts.Text{ValueLabel: "Colaboradores", Unit: "colaboradores"}

	c.mountSlot(SlotMergePercent, func() (*charts.Handle, error) {
		t := text
		t.Empty = pieEmpty
		return charts.Donut(env, pie, dataset.NewCategorical(b.Labels, b.Values), palette, charts.DonutBreakdown, t)
	})
	c.mountSlot(SlotMergeBar, func() (*charts.Handle, error) {
		t := text
		t.Empty = barEmpty
		grouped := dataset.NewGrouped(b.Labels, []dataset.NamedSeries{{Name: "Colaboradores Treinados", Data: b.Values}})
		return charts.HorizontalBar(env, bar, grouped, palette, charts.HBarBreakdown, t)
	})

	c.mergeMounted = true
	c.log.Info("merge charts mounted", logger.Fields{"forced": force})
}

// populateFilters fills the timeline selects from the available lists.
func (c *Controller) populateFilters(f dataset.Filters) {
	populateSelect(c.doc.ElementByID(IDFilterSetor), f.Setores, f.SelectedSetor, "Setor")
	populateSelect(c.doc.ElementByID(IDFilterTipo), f.Tipos, f.SelectedTipo, "Tipo")
	populateSelect(c.doc.ElementByID(IDFilterSupervisor), f.Supervisores, f.SelectedSupervisor, "Supervisor")
}

// bindFilterForm makes the timeline filter form submit the same query
// ApplyFilters would build: the page's date and shift inputs join the form
// and every other current parameter rides along as a hidden input.
func (c *Controller) bindFilterForm() {
	form := c.doc.ElementByID(IDFilterForm)
	if form == nil {
		return
	}
	u := c.loc.URL()
	form.SetAttr("action", u.Path)

	carried := map[string]bool{"setor": true, "tipo": true, "supervisor": true}
	for _, id := range []string{IDMinData, IDMaxData, IDTurno} {
		el := c.doc.ElementByID(id)
		if el == nil {
			continue
		}
		el.SetAttr("form", IDFilterForm)
		if _, ok := el.Attr("name"); !ok {
			el.SetAttr("name", id)
		}
		carried[id] = true
	}

	q := u.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		if !carried[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range q[k] {
			_, _ = form.AppendHTML(`<input type="hidden" name="` + html.EscapeString(k) + `" value="` + html.EscapeString(v) + `">`)
		}
	}
}

// CurrentFilters reads the filter controls.
func (c *Controller) CurrentFilters() FilterState {
	return FilterState{
		MinData:    valueOf(c.doc, IDMinData),
		MaxData:    valueOf(c.doc, IDMaxData),
		Turno:      valueOf(c.doc, IDTurno),
		Setor:      valueOf(c.doc, IDFilterSetor),
		Tipo:       valueOf(c.doc, IDFilterTipo),
		Supervisor: valueOf(c.doc, IDFilterSupervisor),
	}
}

// ApplyFilters navigates to the current address with the filter state
// merged into its query. Data is never fetched in place; the server renders
// the filtered page.
func (c *Controller) ApplyFilters() *url.URL {
	u := c.loc.URL()
	u.RawQuery = c.CurrentFilters().Encode(u.Query()).Encode()
	c.loc.Assign(u)
	c.log.Info("filters applied", logger.Fields{"query": u.RawQuery})
	return u
}

// tabButtons are the [data-target] controls inside a card header button
// group.
func (c *Controller) tabButtons() []dom.Element {
	var out []dom.Element
	for _, el := range c.doc.FindAll(dom.HasAttr(AttrTarget)) {
		group := el.Parent()
		for group != nil && !group.HasClass("btn-group") {
			group = group.Parent()
		}
		if group == nil {
			continue
		}
		header := group.Parent()
		for header != nil && !header.HasClass("card-header") {
			header = header.Parent()
		}
		if header != nil {
			out = append(out, el)
		}
	}
	return out
}

// BindTabs wires the tab buttons once and activates the tab encoded in the
// address without touching the history. Anchor buttons get an href to
// their tab so the page also works as plain links.
func (c *Controller) BindTabs() {
	if c.tabsBound {
		return
	}
	buttons := c.tabButtons()
	if len(buttons) == 0 {
		return
	}
	u := c.loc.URL()
	for _, btn := range buttons {
		if btn.Tag() != "a" {
			continue
		}
		sel, _ := btn.Attr(AttrTarget)
		if tab, ok := TabForSelector(sel); ok {
			btn.SetAttr("href", TabURL(u, tab).String())
		}
	}
	c.tabsBound = true
	c.SwitchTab(InitialTab(u), false)
}

// SwitchTab activates tab. Unknown tabs fall back to records. With
// updateHistory the address is replaced to point at the tab.
func (c *Controller) SwitchTab(tab Tab, updateHistory bool) {
	if !tab.Valid() {
		tab = TabRecords
	}
	selector := tab.Selector()
	for _, btn := range c.tabButtons() {
		target, _ := btn.Attr(AttrTarget)
		active := target == selector
		btn.SetClass(ClassActive, active)
		if t, ok := TabForSelector(target); ok {
			if section := c.doc.ElementByID(t.Selector()[1:]); section != nil {
				section.SetClass(ClassHidden, !active)
			}
		}
	}
	if label := c.doc.ElementByID(IDDatasetLabel); label != nil {
		label.SetText(tab.Label())
	}
	if updateHistory {
		c.loc.Replace(TabURL(c.loc.URL(), tab))
	}
	c.tab = tab
	c.log.Debug("tab switched", logger.Fields{"tab": string(tab), "history": updateHistory})

	if tab == TabMerged {
		c.MountMerge(false)
	}
}

// SetupInputFilters shows the input panel of the active [data-input-filter]
// button, or of the first one when none is active.
func (c *Controller) SetupInputFilters() {
	buttons := c.doc.FindAll(dom.HasAttr(AttrInputFilter))
	if len(buttons) == 0 || len(c.doc.FindAll(dom.HasAttr(AttrInputPanel))) == 0 {
		return
	}
	initial := buttons[0]
	for _, btn := range buttons {
		if btn.HasClass(ClassActive) {
			initial = btn
			break
		}
	}
	key, _ := initial.Attr(AttrInputFilter)
	c.SelectInputFilter(key)
}

// SelectInputFilter activates the input filter button named key and shows
// only its panel. Unknown keys hide every panel.
func (c *Controller) SelectInputFilter(key string) {
	for _, btn := range c.doc.FindAll(dom.HasAttr(AttrInputFilter)) {
		v, _ := btn.Attr(AttrInputFilter)
		btn.SetClass(ClassActive, v == key)
	}
	for _, p := range c.doc.FindAll(dom.HasAttr(AttrInputPanel)) {
		v, _ := p.Attr(AttrInputPanel)
		p.SetClass(ClassHidden, v != key)
	}
}
