package monitor

import (
	"math"
	"time"

	"github.com/halvty/groupmeter/internal/store"
)

// NormalizeCount cleans a fetched member count; negative values -> nil.
func NormalizeCount(count int64) *int64 {
	if count < 0 {
		return nil
	}
	return &count
}

// ShouldRecord reports whether a freshly fetched count needs to be appended.
// A sample is recorded when nothing is stored yet, when the newest stored
// sample is older than minInterval, or when the count changed.
func ShouldRecord(prev *store.Observation, count int64, ts time.Time, minInterval time.Duration) bool {
	if prev == nil {
		return true
	}
	if ts.Sub(prev.TS) >= minInterval {
		return true
	}
	if prev.Count == nil {
		return true
	}
	return int64(math.Round(*prev.Count)) != count
}
