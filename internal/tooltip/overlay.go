package tooltip

import (
	"fmt"
	"strconv"

	"painel/internal/colormath"
	"painel/internal/dom"
)

// Class is the overlay element's class name.
const Class = "chart-tooltip"

// Anchor is the transform that puts the overlay above the active point.
const Anchor = "translate(-50%, calc(-100% - 18px))"

// Overlay is the single tooltip element of one chart.
type Overlay struct {
	el      dom.Element
	chartID string
	style   Style
	removed bool
}

func ring(color string) string {
	return colormath.ToRGBA(color, 0.18)
}

// Ensure returns the overlay for chartID inside container, creating it on
// first use. Calling it again for the same chart reuses the element.
func Ensure(container dom.Element, chartID string, st Style) (*Overlay, error) {
	if container == nil {
		return nil, fmt.Errorf("tooltip %s: %w", chartID, dom.ErrNoParent)
	}
	if container.Style("position") == "" {
		container.SetStyle("position", "relative")
	}

	el := container.Find(dom.All(dom.ByClass(Class), dom.ByAttr("data-chart", chartID)))
	if el == nil {
		created, err := container.AppendHTML(`<div class="` + Class + `" role="tooltip"></div>`)
		if err != nil {
			return nil, fmt.Errorf("failed to create tooltip for %s: %w", chartID, err)
		}
		if created == nil {
			return nil, fmt.Errorf("failed to create tooltip for %s", chartID)
		}
		created.SetAttr("data-chart", chartID)
		el = created
	}

	el.SetStyle("position", "absolute")
	el.SetStyle("pointer-events", "none")
	el.SetStyle("opacity", "0")
	el.SetStyle("transform", Anchor)
	el.SetStyle("transition", "opacity 120ms ease, transform 120ms ease")
	el.SetStyle("border-radius", "12px")
	el.SetStyle("padding", "14px 16px")
	el.SetStyle("z-index", "20")
	el.SetStyle("background", st.Background)
	el.SetStyle("border", st.Border)
	el.SetStyle("box-shadow", st.Shadow)
	el.SetStyle("color", st.Text)
	if st.MinWidth > 0 {
		el.SetStyle("min-width", strconv.Itoa(st.MinWidth)+"px")
	}

	return &Overlay{el: el, chartID: chartID, style: st}, nil
}

// Element exposes the underlying node.
func (o *Overlay) Element() dom.Element { return o.el }

// ChartID is the id of the chart the overlay belongs to.
func (o *Overlay) ChartID() string { return o.chartID }

// Show replaces the overlay content and positions it at (x, y) relative to
// the chart wrapper.
func (o *Overlay) Show(c Content, x, y float64) error {
	if o.removed {
		return nil
	}
	markup, err := c.HTML(o.style)
	if err != nil {
		return err
	}
	if err := o.el.SetInnerHTML(markup); err != nil {
		return err
	}
	o.el.SetStyle("opacity", "1")
	o.el.SetStyle("left", px(x))
	o.el.SetStyle("top", px(y))
	o.el.SetStyle("transform", Anchor)
	return nil
}

// Hide makes the overlay transparent without removing it.
func (o *Overlay) Hide() {
	if o.removed {
		return
	}
	o.el.SetStyle("opacity", "0")
}

// Visible reports whether the overlay is showing.
func (o *Overlay) Visible() bool {
	return !o.removed && o.el.Style("opacity") == "1"
}

// Remove detaches the overlay. Safe to call more than once.
func (o *Overlay) Remove() {
	if o.removed {
		return
	}
	o.removed = true
	o.el.Remove()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
