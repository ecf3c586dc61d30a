package series

import "time"

// Result bundles the outputs of one aggregation pass.
type Result struct {
	Summaries []DailySummary
	Rows      []Row
	Stats     PeriodStats
}

// Aggregate derives daily summaries, display rows and period statistics from
// a reconstructed series. Summaries are always computed over the unfiltered
// series so that a day's net change reflects the true previous-day closing
// value even when that day falls outside the requested window. Rows and
// stats cover only the filtered window.
//
// Returns ErrInvalidRange when rng.Start is after rng.End and ErrEmptySeries
// when no points exist (or none survive the filter).
func Aggregate(points []Point, rng *Range) (*Result, error) {
	if rng != nil && rng.Start.After(rng.End) {
		return nil, ErrInvalidRange
	}
	if len(points) == 0 {
		return nil, ErrEmptySeries
	}

	summaries := Summaries(points)

	filtered := points
	if rng != nil {
		filtered = filterRange(points, *rng)
	}
	if len(filtered) == 0 {
		return nil, ErrEmptySeries
	}

	byDay := make(map[time.Time]DailySummary, len(summaries))
	for _, s := range summaries {
		byDay[s.Day] = s
	}

	rows := make([]Row, 0, len(filtered))
	for _, p := range filtered {
		row := Row{Point: p}
		// Default (0, false) only applies to days absent from the summary,
		// which cannot happen for a consistent input.
		if s, ok := byDay[Day(p.TS)]; ok {
			row.NetChange = s.NetChange
			row.LastInterpolated = s.LastInterpolated
		}
		rows = append(rows, row)
	}

	return &Result{
		Summaries: summaries,
		Rows:      rows,
		Stats:     periodStats(filtered),
	}, nil
}

// Summaries groups a reconstructed series by calendar day, takes the
// chronologically last point per day as that day's closing value and computes
// net change as the first difference of consecutive closing values.
func Summaries(points []Point) []DailySummary {
	last := make(map[time.Time]Point, len(points))
	var days []time.Time
	for _, p := range points {
		d := Day(p.TS)
		if _, seen := last[d]; !seen {
			days = append(days, d)
		}
		last[d] = p
	}

	// The reconstructed series is gap-free, so iterating points in order
	// already yields strictly increasing days.
	summaries := make([]DailySummary, 0, len(days))
	for i, d := range days {
		p := last[d]
		s := DailySummary{
			Day:              d,
			LastCount:        p.Count,
			LastInterpolated: p.Interpolated,
		}
		if i > 0 {
			// Net change differences the rounded closing values so it always
			// matches the published last_count figures.
			prev := last[days[i-1]]
			s.NetChange = Round(p.Count) - Round(prev.Count)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func filterRange(points []Point, rng Range) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.TS.Before(rng.Start) || !p.TS.Before(rng.End) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func periodStats(filtered []Point) PeriodStats {
	initial := filtered[0]
	latest := filtered[len(filtered)-1]

	stats := PeriodStats{
		InitialCount: initial.Count,
		LatestCount:  latest.Count,
		Growth:       latest.Count - initial.Count,
	}
	if initial.Count != 0 {
		stats.GrowthPct = stats.Growth / initial.Count * 100
	}

	stats.ElapsedDays = int(latest.TS.Sub(initial.TS).Hours() / 24)
	if stats.ElapsedDays > 0 {
		stats.AvgDailyGrowth = stats.Growth / float64(stats.ElapsedDays)
	}
	if stats.ElapsedDays >= 7 {
		weekly := stats.Growth / (float64(stats.ElapsedDays) / 7)
		stats.AvgWeeklyGrowth = &weekly
	}
	return stats
}
