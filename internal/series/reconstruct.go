package series

import (
	"sort"
	"time"
)

// Reconstruct fills calendar-day gaps in an observation log by linear
// interpolation and returns the union of the original observations and the
// purely interpolated daily points, sorted ascending by timestamp.
//
// The interpolation substrate is a daily backbone spanning the first to the
// last observed day. Observed days are seeded with the mean of their samples;
// interior gaps are filled linearly, indexed by elapsed calendar days. The
// backbone mean only seeds interpolation: observed days always emit their
// original samples untouched. Days outside the observed span are never
// synthesized.
func Reconstruct(obs []Observation) []Point {
	if len(obs) == 0 {
		return nil
	}

	type acc struct {
		sum float64
		n   int
	}
	means := make(map[time.Time]*acc)
	first := Day(obs[0].TS)
	last := first
	for _, o := range obs {
		d := Day(o.TS)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
		a, ok := means[d]
		if !ok {
			a = &acc{}
			means[d] = a
		}
		a.sum += o.Count
		a.n++
	}

	// Daily backbone: one slot per day, defined on observed days.
	var days []time.Time
	var values []*float64
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		if a, ok := means[d]; ok {
			v := a.sum / float64(a.n)
			values = append(values, &v)
		} else {
			values = append(values, nil)
		}
	}

	// The span endpoints are observed days, so every undefined slot sits
	// between two defined neighbours.
	prev := 0
	for i := 1; i < len(values); i++ {
		if values[i] == nil {
			continue
		}
		if i > prev+1 {
			v0, v1 := *values[prev], *values[i]
			span := float64(i - prev)
			for j := prev + 1; j < i; j++ {
				v := v0 + (v1-v0)*float64(j-prev)/span
				values[j] = &v
			}
		}
		prev = i
	}

	points := make([]Point, 0, len(obs)+len(days)-len(means))
	for _, o := range obs {
		points = append(points, Point{TS: o.TS, Count: o.Count})
	}
	for i, d := range days {
		if _, observed := means[d]; observed {
			continue
		}
		points = append(points, Point{TS: d, Count: *values[i], Interpolated: true})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].TS.Before(points[j].TS)
	})
	return points
}
