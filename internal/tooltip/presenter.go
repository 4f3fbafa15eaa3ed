package tooltip

// Builder produces the content for one point. ok is false when the point
// has nothing to show.
type Builder func(series, point int, value float64) (c Content, ok bool)

// HoverEvent is the chart library's report of the active point.
type HoverEvent struct {
	Active bool
	Series int
	Point  int
	Value  float64
	X, Y   float64
}

// Presenter drives an Overlay from hover events.
type Presenter struct {
	overlay *Overlay
	build   Builder
	style   Style
}

// NewPresenter binds a builder to an overlay. overlay may be nil when only
// Precompute is needed.
func NewPresenter(overlay *Overlay, build Builder, st Style) *Presenter {
	return &Presenter{overlay: overlay, build: build, style: st}
}

// Overlay returns the bound overlay, or nil.
func (p *Presenter) Overlay() *Overlay { return p.overlay }

// Handle shows the tooltip for an active event and hides it otherwise.
func (p *Presenter) Handle(ev HoverEvent) error {
	if p.overlay == nil {
		return nil
	}
	if !ev.Active {
		p.overlay.Hide()
		return nil
	}
	c, ok := p.build(ev.Series, ev.Point, ev.Value)
	if !ok {
		p.overlay.Hide()
		return nil
	}
	return p.overlay.Show(c, ev.X, ev.Y)
}

// Precompute renders the tooltip of every point of one series so a browser
// backend can swap them in without calling back into Go.
func (p *Presenter) Precompute(series int, values []float64) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		c, ok := p.build(series, i, v)
		if !ok {
			continue
		}
		markup, err := c.HTML(p.style)
		if err != nil {
			return nil, err
		}
		out[i] = markup
	}
	return out, nil
}
