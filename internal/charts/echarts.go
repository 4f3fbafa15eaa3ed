package charts

import (
	"encoding/json"
	"fmt"

	"painel/internal/dom"
	"painel/internal/logger"
)

// DefaultEChartsURL is the script the page loads ECharts from.
const DefaultEChartsURL = "https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"

// ScriptAttr marks the init script emitted next to a chart element.
const ScriptAttr = "data-chart-script"

// ECharts is a Library that wires ECharts into the document: Render writes
// an init script after the target that disposes any earlier instance with
// the same id, applies the option and connects hover to the tooltip
// overlay.
type ECharts struct {
	log *logger.Logger
}

// NewECharts returns the ECharts library.
func NewECharts(log *logger.Logger) *ECharts {
	if log == nil {
		log = logger.Discard()
	}
	return &ECharts{log: log.WithComponent("echarts")}
}

// Init implements Library.
func (e *ECharts) Init(target dom.Element, spec Spec) (Instance, error) {
	if target == nil {
		return nil, fmt.Errorf("echarts %s: no target element", spec.ID)
	}
	if spec.ID == "" {
		spec.ID = target.ID()
	}
	if spec.ID == "" {
		return nil, fmt.Errorf("echarts: target element has no id")
	}
	return &echartsInstance{lib: e, target: target, spec: spec}, nil
}

type echartsInstance struct {
	lib       *ECharts
	target    dom.Element
	spec      Spec
	script    dom.Element
	destroyed bool
}

func (i *echartsInstance) Render() error {
	if i.destroyed {
		return ErrDestroyed
	}
	js, err := Script(i.spec)
	if err != nil {
		return err
	}

	i.target.SetAttr("data-chart-kind", string(i.spec.Kind))
	i.target.SetStyle("width", "100%")
	i.target.SetStyle("height", "100%")

	if i.script == nil || !i.script.Attached() {
		if parent := i.target.Parent(); parent != nil {
			i.script = parent.Find(dom.All(dom.ByTag("script"), dom.ByAttr(ScriptAttr, i.spec.ID)))
		}
	}
	if i.script == nil {
		el, err := i.target.InsertAfterHTML(`<script></script>`)
		if err != nil {
			return fmt.Errorf("failed to insert init script for %s: %w", i.spec.ID, err)
		}
		if el == nil {
			return fmt.Errorf("failed to insert init script for %s", i.spec.ID)
		}
		el.SetAttr(ScriptAttr, i.spec.ID)
		i.script = el
	}
	i.script.SetText(js)
	i.lib.log.Debug("chart rendered", logger.Fields{"chart": i.spec.ID, "kind": string(i.spec.Kind)})
	return nil
}

func (i *echartsInstance) Update(spec Spec) error {
	if i.destroyed {
		return ErrDestroyed
	}
	spec.ID = i.spec.ID
	i.spec = spec
	return i.Render()
}

func (i *echartsInstance) Destroy() error {
	if i.destroyed {
		return nil
	}
	i.destroyed = true
	if i.script != nil {
		i.script.Remove()
		i.script = nil
	}
	i.target.RemoveAttr("data-chart-kind")
	return i.target.SetInnerHTML("")
}

const scriptTemplate = `(function(){var id=%q;var el=document.getElementById(id);if(!el||typeof echarts==='undefined')return;` +
	`var reg=window.__painelCharts=window.__painelCharts||{};` +
	`if(reg[id]){try{reg[id].dispose();}catch(e){console.warn('falha ao descartar gráfico',id,e);}}` +
	`var c=echarts.init(el,null,{renderer:'canvas'});reg[id]=c;` +
	`var option=%s;var tips=%s;var anim=%s;` +
	`if(anim&&option.series){option.series.forEach(function(s){s.animationDelay=function(i){return anim.delays[i]||0;};s.animationDuration=function(i){return anim.durations[i]||0;};s.animationEasing=anim.easing;});}` +
	`c.setOption(option);` +
	`var tip=el.parentNode?el.parentNode.querySelector('.chart-tooltip[data-chart="'+id+'"]'):null;` +
	`function hide(){if(tip){tip.style.opacity='0';}}` +
	`function show(si,di,x,y){var h=tips&&tips[si]&&tips[si][di];if(!tip||!h){hide();return;}tip.innerHTML=h;tip.style.opacity='1';tip.style.left=(el.offsetLeft+x)+'px';tip.style.top=(el.offsetTop+y)+'px';}` +
	`if(%t){c.on('updateAxisPointer',function(e){var di=e.dataIndex;if(di==null){hide();return;}var d=option.series[0].data[di];if(!d){hide();return;}var p=c.convertToPixel({seriesIndex:0},d.value||d);show(0,di,p[0],p[1]);});}` +
	`else{c.on('mouseover',function(e){show(e.seriesIndex,e.dataIndex,e.event.offsetX,e.event.offsetY);});c.on('mouseout',hide);}` +
	`c.on('globalout',hide);` +
	`window.addEventListener('resize',function(){c.resize();});})();`

// Script renders the browser init code for spec.
func Script(spec Spec) (string, error) {
	optJSON, err := json.Marshal(spec.Option)
	if err != nil {
		return "", fmt.Errorf("failed to encode option for %s: %w", spec.ID, err)
	}
	tipsJSON, err := json.Marshal(spec.Tooltips)
	if err != nil {
		return "", fmt.Errorf("failed to encode tooltips for %s: %w", spec.ID, err)
	}
	animJSON, err := json.Marshal(spec.Animation)
	if err != nil {
		return "", fmt.Errorf("failed to encode animation for %s: %w", spec.ID, err)
	}
	return fmt.Sprintf(scriptTemplate, spec.ID, optJSON, tipsJSON, animJSON, spec.AxisTooltip), nil
}
