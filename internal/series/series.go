package series

import (
	"errors"
	"math"
	"time"
)

// RawObservation is a row as read from the observation log. Count is nil
// when the stored value is missing.
type RawObservation struct {
	TS    time.Time
	Count *float64
}

// Observation is a validated (timestamp, member count) sample.
type Observation struct {
	TS    time.Time
	Count float64
}

// Point is one entry of the reconstructed series. Count stays real-valued
// until the output boundary rounds it.
type Point struct {
	TS           time.Time
	Count        float64
	Interpolated bool
}

// DailySummary holds the closing value and net change for one calendar day.
type DailySummary struct {
	Day              time.Time
	LastCount        float64
	LastInterpolated bool
	NetChange        int64
}

// Row is a reconstructed point joined with its day's summary fields.
type Row struct {
	Point
	NetChange        int64
	LastInterpolated bool
}

// PeriodStats summarizes growth over the (possibly range-filtered) series.
// AvgWeeklyGrowth is nil when the period spans fewer than seven days.
type PeriodStats struct {
	InitialCount    float64
	LatestCount     float64
	Growth          float64
	GrowthPct       float64
	ElapsedDays     int
	AvgDailyGrowth  float64
	AvgWeeklyGrowth *float64
}

// Range is a half-open [Start, End) instant window.
type Range struct {
	Start time.Time
	End   time.Time
}

var (
	// ErrEmptySeries signals that no points remain to aggregate. Callers
	// should treat it as "no data", not a failure.
	ErrEmptySeries = errors.New("series: no data points")
	// ErrInvalidRange signals a range whose start falls after its end.
	ErrInvalidRange = errors.New("series: start date after end date")
)

// Sanitize drops rows whose count is missing, non-finite or negative and
// reports how many were excluded. Excluded rows never feed interpolation
// or aggregation.
func Sanitize(rows []RawObservation) ([]Observation, int) {
	obs := make([]Observation, 0, len(rows))
	dropped := 0
	for _, r := range rows {
		if r.Count == nil || math.IsNaN(*r.Count) || math.IsInf(*r.Count, 0) || *r.Count < 0 {
			dropped++
			continue
		}
		obs = append(obs, Observation{TS: r.TS, Count: *r.Count})
	}
	return obs, dropped
}

// Day truncates ts to its UTC calendar day.
func Day(ts time.Time) time.Time {
	u := ts.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Round converts an internal real-valued count to its display integer.
// It must be applied exactly once, at the output boundary.
func Round(count float64) int64 {
	return int64(math.Round(count))
}
