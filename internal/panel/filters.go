package panel

import (
	"html"
	"net/url"

	"painel/internal/dataset"
	"painel/internal/dom"
)

// Filter control ids.
const (
	IDFilterSetor      = "flt-setor"
	IDFilterTipo       = "flt-tipo"
	IDFilterSupervisor = "flt-supervisor"
	IDApply            = "apply-timeline"
	IDFilterForm       = "timeline-filters"
	IDMinData          = "min_data"
	IDMaxData          = "max_data"
	IDTurno            = "turno"
)

// FilterState is what the filter controls currently hold.
type FilterState struct {
	MinData    string
	MaxData    string
	Turno      string
	Setor      string
	Tipo       string
	Supervisor string
}

// OwnedParams are the query parameters the filters write.
var OwnedParams = []string{"min_data", "max_data", "turno", "setor", "tipo", "supervisor"}

// Encode merges the state into a copy of existing. Parameters the panel
// does not own are kept. Date range and shift are written only when set;
// the categorical filters are always written, "all" when empty.
func (s FilterState) Encode(existing url.Values) url.Values {
	out := url.Values{}
	for k, v := range existing {
		out[k] = append([]string(nil), v...)
	}
	setIf := func(k, v string) {
		if v != "" {
			out.Set(k, v)
		}
	}
	setIf("min_data", s.MinData)
	setIf("max_data", s.MaxData)
	setIf("turno", s.Turno)
	out.Set("setor", orAll(s.Setor))
	out.Set("tipo", orAll(s.Tipo))
	out.Set("supervisor", orAll(s.Supervisor))
	return out
}

func orAll(v string) string {
	if v == "" {
		return dataset.AllValue
	}
	return v
}

// populateSelect replaces the non-wildcard options of sel with "prefix:
// item" options and applies the selection.
func populateSelect(sel dom.Element, items []string, selected, prefix string) {
	if sel == nil {
		return
	}
	for _, opt := range sel.FindAll(dom.ByTag("option")) {
		if v, _ := opt.Attr("value"); v != dataset.AllValue {
			opt.Remove()
		}
	}
	for _, item := range items {
		opt, err := sel.AppendHTML(`<option value="` + html.EscapeString(item) + `">` + html.EscapeString(prefix+": "+item) + `</option>`)
		if err != nil || opt == nil {
			continue
		}
		if selected != dataset.AllValue && item == selected {
			sel.SetValue(item)
		}
	}
	if selected == dataset.AllValue {
		sel.SetValue(dataset.AllValue)
	}
}

func valueOf(doc dom.Document, id string) string {
	if el := doc.ElementByID(id); el != nil {
		return el.Value()
	}
	return ""
}
