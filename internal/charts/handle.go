package charts

import (
	"painel/internal/logger"
	"painel/internal/tooltip"
)

// Handle owns one mounted chart: the library instance and its tooltip
// overlay. Destroy releases both and may be called any number of times.
type Handle struct {
	id        string
	kind      Kind
	spec      Spec
	inst      Instance
	presenter *tooltip.Presenter
	log       *logger.Logger
	destroyed bool
}

func newHandle(spec Spec, inst Instance, p *tooltip.Presenter, log *logger.Logger) *Handle {
	return &Handle{id: spec.ID, kind: spec.Kind, spec: spec, inst: inst, presenter: p, log: log}
}

// ID is the chart element id.
func (h *Handle) ID() string { return h.id }

// Kind is the mounter that produced the chart.
func (h *Handle) Kind() Kind { return h.kind }

// Spec is the spec the chart was last rendered with.
func (h *Handle) Spec() Spec { return h.spec }

// Instance exposes the library instance.
func (h *Handle) Instance() Instance { return h.inst }

// Overlay returns the tooltip overlay, nil once destroyed.
func (h *Handle) Overlay() *tooltip.Overlay {
	if h.destroyed || h.presenter == nil {
		return nil
	}
	return h.presenter.Overlay()
}

// Destroyed reports whether Destroy ran.
func (h *Handle) Destroyed() bool { return h.destroyed }

// Hover forwards a library hover event to the tooltip presenter.
func (h *Handle) Hover(ev tooltip.HoverEvent) error {
	if h.destroyed {
		return ErrDestroyed
	}
	if h.presenter == nil {
		return nil
	}
	return h.presenter.Handle(ev)
}

// Update re-renders the chart with a new spec.
func (h *Handle) Update(spec Spec) error {
	if h.destroyed {
		return ErrDestroyed
	}
	if err := h.inst.Update(spec); err != nil {
		return err
	}
	h.spec = spec
	return nil
}

// Destroy tears the chart down. Library failures are logged and swallowed
// so one broken chart cannot block the teardown of its siblings.
func (h *Handle) Destroy() {
	if h.destroyed {
		return
	}
	h.destroyed = true
	if h.inst != nil {
		if err := h.inst.Destroy(); err != nil {
			h.log.Warn("failed to destroy chart", logger.Fields{"chart": h.id, "error": err.Error()})
		}
	}
	if h.presenter != nil {
		if o := h.presenter.Overlay(); o != nil {
			o.Remove()
		}
	}
}
