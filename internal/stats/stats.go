// Package stats derives the per-point figures shown in chart tooltips:
// totals, averages, ranks, shares and deltas against leader, average and
// previous point.
package stats

import (
	"math"
	"sort"
)

// Trend classifies the short-term direction of a sequential series.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Series is an ordered list of numeric values. Zero-length is valid.
type Series []float64

// Row is the derived view of one point of a series.
type Row struct {
	Index            int
	Value            float64
	Rank             int
	PercentOfTotal   float64
	DeltaFromAverage float64
	DeltaFromLeader  float64

	// Set only by DeriveSequential and only when a previous point exists.
	DeltaFromPrevious float64
	HasPrevious       bool

	// Set only by DeriveSequential and only from the third point on.
	Trend    Trend
	HasTrend bool
}

// Total is the sum of the series, 0 when empty.
func (s Series) Total() float64 {
	var t float64
	for _, v := range s {
		t += v
	}
	return t
}

// Average is Total/len, 0 when empty.
func (s Series) Average() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Total() / float64(len(s))
}

// Max returns the largest value and its first index, or (0, -1) when empty.
func (s Series) Max() (float64, int) {
	if len(s) == 0 {
		return 0, -1
	}
	best, at := s[0], 0
	for i, v := range s[1:] {
		if v > best {
			best, at = v, i+1
		}
	}
	return best, at
}

// Min returns the smallest value and its first index, or (0, -1) when empty.
func (s Series) Min() (float64, int) {
	if len(s) == 0 {
		return 0, -1
	}
	best, at := s[0], 0
	for i, v := range s[1:] {
		if v < best {
			best, at = v, i+1
		}
	}
	return best, at
}

// Ranks returns 1-based ranks by value descending. Ties keep input order,
// so equal values get consecutive ranks.
func (s Series) Ranks() []int {
	order := make([]int, len(s))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s[order[a]] > s[order[b]]
	})
	ranks := make([]int, len(s))
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}
	return ranks
}

// PercentOfTotal is value[i]/total*100, 0 when the total is 0.
func (s Series) PercentOfTotal(i int) float64 {
	if !s.valid(i) {
		return 0
	}
	total := s.Total()
	if total == 0 {
		return 0
	}
	return s[i] / total * 100
}

// DeltaToLeader is max - value[i]; never negative.
func (s Series) DeltaToLeader(i int) float64 {
	if !s.valid(i) {
		return 0
	}
	leader, _ := s.Max()
	return leader - s[i]
}

// DeltaToAverage is value[i] - average.
func (s Series) DeltaToAverage(i int) float64 {
	if !s.valid(i) {
		return 0
	}
	return s[i] - s.Average()
}

// DeltaToPrevious is value[i] - value[i-1]; ok is false for the first point.
func (s Series) DeltaToPrevious(i int) (float64, bool) {
	if !s.valid(i) || i == 0 {
		return 0, false
	}
	return s[i] - s[i-1], true
}

// TrendAt looks at the three most recent points ending at i. It is up when
// they never fall and the last is above the first, down in the mirrored
// case, stable otherwise. ok is false before the third point.
func (s Series) TrendAt(i int) (Trend, bool) {
	if !s.valid(i) || i < 2 {
		return TrendStable, false
	}
	a, b, c := s[i-2], s[i-1], s[i]
	switch {
	case a <= b && b <= c && c > a:
		return TrendUp, true
	case a >= b && b >= c && c < a:
		return TrendDown, true
	default:
		return TrendStable, true
	}
}

func (s Series) valid(i int) bool {
	return i >= 0 && i < len(s) && !math.IsNaN(s[i])
}

// Derive computes the categorical row for point i. Out-of-range indexes give
// the zero Row with Index set.
func Derive(s Series, i int) Row {
	row := Row{Index: i, Trend: TrendStable}
	if !s.valid(i) {
		return row
	}
	row.Value = s[i]
	row.Rank = s.Ranks()[i]
	row.PercentOfTotal = s.PercentOfTotal(i)
	row.DeltaFromAverage = s.DeltaToAverage(i)
	row.DeltaFromLeader = s.DeltaToLeader(i)
	return row
}

// DeriveSequential is Derive plus the previous-point delta and trend used
// by time series.
func DeriveSequential(s Series, i int) Row {
	row := Derive(s, i)
	row.DeltaFromPrevious, row.HasPrevious = s.DeltaToPrevious(i)
	row.Trend, row.HasTrend = s.TrendAt(i)
	return row
}
