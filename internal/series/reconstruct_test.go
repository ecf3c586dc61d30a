package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour int) time.Time {
	return time.Date(2024, time.March, d, hour, 0, 0, 0, time.UTC)
}

func TestReconstructFillsInteriorGap(t *testing.T) {
	obs := []Observation{
		{TS: day(1), Count: 100},
		{TS: day(3), Count: 120},
	}

	points := Reconstruct(obs)
	require.Len(t, points, 3)

	require.Equal(t, day(2), points[1].TS)
	require.InDelta(t, 110, points[1].Count, 1e-9)
	require.True(t, points[1].Interpolated)
	require.False(t, points[0].Interpolated)
	require.False(t, points[2].Interpolated)
}

func TestReconstructSingleObservation(t *testing.T) {
	points := Reconstruct([]Observation{{TS: at(1, 12), Count: 50}})
	require.Len(t, points, 1)
	require.False(t, points[0].Interpolated)
	require.InDelta(t, 50, points[0].Count, 1e-9)
}

func TestReconstructConsecutiveDaysProduceNoInterpolation(t *testing.T) {
	obs := []Observation{
		{TS: day(1), Count: 100},
		{TS: day(2), Count: 105},
	}
	points := Reconstruct(obs)
	require.Len(t, points, 2)
	for _, p := range points {
		require.False(t, p.Interpolated)
	}
}

func TestReconstructEmpty(t *testing.T) {
	require.Empty(t, Reconstruct(nil))
}

func TestReconstructKeepsOriginalSamples(t *testing.T) {
	// Two same-day samples: the daily mean (105) seeds interpolation but the
	// emitted points for the observed day are the original observations.
	obs := []Observation{
		{TS: at(1, 8), Count: 100},
		{TS: at(1, 20), Count: 110},
		{TS: day(3), Count: 130},
	}

	points := Reconstruct(obs)
	require.Len(t, points, 4)

	require.InDelta(t, 100, points[0].Count, 1e-9)
	require.InDelta(t, 110, points[1].Count, 1e-9)

	// Interpolation runs from the day-1 mean (105) to day-3 (130).
	require.Equal(t, day(2), points[2].TS)
	require.True(t, points[2].Interpolated)
	require.InDelta(t, 117.5, points[2].Count, 1e-9)
}

func TestReconstructCoversEveryDayWithoutExtrapolation(t *testing.T) {
	obs := []Observation{
		{TS: at(2, 9), Count: 100},
		{TS: at(5, 21), Count: 160},
	}

	points := Reconstruct(obs)

	seen := make(map[time.Time]bool)
	for _, p := range points {
		d := Day(p.TS)
		require.False(t, d.Before(day(2)), "point before first observed day")
		require.False(t, d.After(day(5)), "point after last observed day")
		seen[d] = true
	}
	for d := day(2); !d.After(day(5)); d = d.AddDate(0, 0, 1) {
		require.True(t, seen[d], "missing day %s", d.Format("2006-01-02"))
	}
}

func TestReconstructSortedAscending(t *testing.T) {
	obs := []Observation{
		{TS: at(1, 23), Count: 100},
		{TS: at(4, 1), Count: 130},
	}
	points := Reconstruct(obs)
	for i := 1; i < len(points); i++ {
		require.False(t, points[i].TS.Before(points[i-1].TS))
	}
}

func TestReconstructIdempotent(t *testing.T) {
	obs := []Observation{
		{TS: at(1, 10), Count: 100},
		{TS: at(4, 10), Count: 160},
		{TS: at(7, 10), Count: 100},
	}

	first := Reconstruct(obs)

	// Re-run on the observed-day subset of the first pass output.
	var again []Observation
	for _, p := range first {
		if !p.Interpolated {
			again = append(again, Observation{TS: p.TS, Count: p.Count})
		}
	}
	second := Reconstruct(again)

	require.Equal(t, first, second)
}

func TestSanitizeExcludesMalformedRows(t *testing.T) {
	valid := 100.0
	nan := math.NaN()
	inf := math.Inf(1)
	negative := -3.0

	obs, dropped := Sanitize([]RawObservation{
		{TS: day(1), Count: &valid},
		{TS: day(2), Count: nil},
		{TS: day(3), Count: &nan},
		{TS: day(4), Count: &inf},
		{TS: day(5), Count: &negative},
	})

	require.Equal(t, 4, dropped)
	require.Len(t, obs, 1)
	require.InDelta(t, 100, obs[0].Count, 1e-9)
}
