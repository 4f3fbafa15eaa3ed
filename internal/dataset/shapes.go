package dataset

import (
	"encoding/json"
	"time"

	"painel/internal/stats"
)

// DefaultBreakdownLabels name the two merge buckets when the payload omits
// labels.
var DefaultBreakdownLabels = []string{"Com execução por Voz", "Sem execução por Voz"}

// Categorical pairs labels with one value each.
type Categorical struct {
	Labels []string
	Series stats.Series
}

// Len is the number of aligned items.
func (c Categorical) Len() int { return len(c.Series) }

// Empty reports whether there is nothing worth drawing.
func (c Categorical) Empty() bool { return len(c.Series) == 0 || c.Series.Total() <= 0 }

// NewCategorical aligns labels and values to the shorter of the two.
func NewCategorical(labels []string, values []float64) Categorical {
	n := min(len(labels), len(values))
	return Categorical{
		Labels: append([]string(nil), labels[:n]...),
		Series: append(stats.Series(nil), values[:n]...),
	}
}

// LoadCategorical reads a labels payload and a series payload.
func LoadCategorical(src Source, labelsID, seriesID string) Result[Categorical] {
	labels := Read(src, labelsID, []string{})
	series := Read(src, seriesID, []Number{})
	return Result[Categorical]{
		Value:  NewCategorical(labels.Value, floats(series.Value)),
		Status: worst(labels.Status, series.Status),
		Err:    firstErr(labels.Err, series.Err),
	}
}

// NamedSeries is one group of a Grouped dataset.
type NamedSeries struct {
	Name string
	Data stats.Series
}

// Grouped holds one or more series over shared categories.
type Grouped struct {
	Categories []string
	Series     []NamedSeries
}

// Totals sums every series per category.
func (g Grouped) Totals() stats.Series {
	out := make(stats.Series, len(g.Categories))
	for _, s := range g.Series {
		for i := range out {
			if i < len(s.Data) {
				out[i] += s.Data[i]
			}
		}
	}
	return out
}

// Empty reports whether there is nothing worth drawing.
func (g Grouped) Empty() bool {
	return len(g.Categories) == 0 || g.Totals().Total() <= 0
}

// Stacked reports whether there is more than one group.
func (g Grouped) Stacked() bool { return len(g.Series) > 1 }

// DefaultSeriesName labels a flat series payload.
const DefaultSeriesName = "Registros"

type namedPayload struct {
	Name string   `json:"name"`
	Data []Number `json:"data"`
}

// groupedPayload accepts either a flat number list or a list of
// {name, data} objects.
type groupedPayload []NamedSeries

func (g *groupedPayload) UnmarshalJSON(b []byte) error {
	var flat []Number
	if err := json.Unmarshal(b, &flat); err == nil {
		*g = groupedPayload{{Name: DefaultSeriesName, Data: floats(flat)}}
		return nil
	}
	var named []namedPayload
	if err := json.Unmarshal(b, &named); err != nil {
		return err
	}
	out := make(groupedPayload, 0, len(named))
	for _, n := range named {
		out = append(out, NamedSeries{Name: n.Name, Data: floats(n.Data)})
	}
	*g = out
	return nil
}

// NewGrouped pads or truncates every series to the category count.
func NewGrouped(categories []string, series []NamedSeries) Grouped {
	g := Grouped{Categories: append([]string(nil), categories...)}
	for _, s := range series {
		data := make(stats.Series, len(categories))
		copy(data, s.Data)
		g.Series = append(g.Series, NamedSeries{Name: s.Name, Data: data})
	}
	return g
}

// LoadGrouped reads a categories payload and a flat or named series payload.
func LoadGrouped(src Source, categoriesID, seriesID string) Result[Grouped] {
	cats := Read(src, categoriesID, []string{})
	series := Read(src, seriesID, groupedPayload{})
	return Result[Grouped]{
		Value:  NewGrouped(cats.Value, series.Value),
		Status: worst(cats.Status, series.Status),
		Err:    firstErr(cats.Err, series.Err),
	}
}

// Point is one timeline sample.
type Point struct {
	At    time.Time
	Value float64
}

// TimeSeries is an ordered list of samples.
type TimeSeries struct {
	Points []Point
}

// Values returns the sample values in order.
func (t TimeSeries) Values() stats.Series {
	out := make(stats.Series, len(t.Points))
	for i, p := range t.Points {
		out[i] = p.Value
	}
	return out
}

// Empty reports whether there are no samples or they sum to zero.
func (t TimeSeries) Empty() bool { return len(t.Points) == 0 || t.Values().Total() <= 0 }

// LoadTimeline reads [[epochMillis, value], ...]. Entries that are not
// two-element numeric pairs are skipped.
func LoadTimeline(src Source, id string) Result[TimeSeries] {
	raw := Read(src, id, [][]Number{})
	ts := TimeSeries{}
	for _, pair := range raw.Value {
		if len(pair) < 2 {
			continue
		}
		ts.Points = append(ts.Points, Point{
			At:    time.UnixMilli(int64(pair[0])),
			Value: float64(pair[1]),
		})
	}
	return Result[TimeSeries]{Value: ts, Status: raw.Status, Err: raw.Err}
}

// Breakdown is a small labelled share split (merge tab).
type Breakdown struct {
	Labels []string
	Values stats.Series
	// Present is set when the payload carried a values list, even an
	// empty one.
	Present bool
}

// Empty reports whether the total is not positive.
func (b Breakdown) Empty() bool { return len(b.Values) == 0 || b.Values.Total() <= 0 }

type breakdownPayload struct {
	Labels []string `json:"labels"`
	Values []Number `json:"values"`
}

// LoadBreakdown reads {labels, values}. Negative values count as 0; missing
// labels fall back to DefaultBreakdownLabels and then to "".
func LoadBreakdown(src Source, id string) Result[Breakdown] {
	raw := Read[*breakdownPayload](src, id, nil)
	if raw.Value == nil || raw.Value.Values == nil {
		st := raw.Status
		if st == Loaded {
			st = Missing
		}
		return Result[Breakdown]{Status: st, Err: raw.Err}
	}

	labels := raw.Value.Labels
	if len(labels) == 0 {
		labels = DefaultBreakdownLabels
	}
	b := Breakdown{Present: true}
	for i, v := range floats(raw.Value.Values) {
		if v < 0 {
			v = 0
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		b.Labels = append(b.Labels, label)
		b.Values = append(b.Values, v)
	}
	return Result[Breakdown]{Value: b, Status: Loaded}
}
