package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/halvty/groupmeter/internal/store"
)

func TestNormalizeCount(t *testing.T) {
	require.Nil(t, NormalizeCount(-1))

	zero := NormalizeCount(0)
	require.NotNil(t, zero)
	require.EqualValues(t, 0, *zero)

	v := NormalizeCount(1500)
	require.NotNil(t, v)
	require.EqualValues(t, 1500, *v)
}

func TestShouldRecord(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	minInterval := 5 * time.Minute
	count := 100.0

	// Nothing stored yet.
	require.True(t, ShouldRecord(nil, 100, now, minInterval))

	recent := &store.Observation{TS: now.Add(-time.Minute), Count: &count}
	stale := &store.Observation{TS: now.Add(-10 * time.Minute), Count: &count}

	// Recent and unchanged: skip.
	require.False(t, ShouldRecord(recent, 100, now, minInterval))

	// Interval elapsed: record even when unchanged.
	require.True(t, ShouldRecord(stale, 100, now, minInterval))

	// Value changed within the interval: record.
	require.True(t, ShouldRecord(recent, 101, now, minInterval))

	// Previous sample has no usable count: record.
	require.True(t, ShouldRecord(&store.Observation{TS: now.Add(-time.Minute)}, 100, now, minInterval))
}
