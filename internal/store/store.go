package store

import (
	"context"
	"strings"
	"time"

	"github.com/halvty/groupmeter/internal/series"
)

// Observation is one appended (timestamp, member count) sample. Count is a
// pointer: legacy rows may carry NULL and the pipeline decides what to drop.
type Observation struct {
	ID    int64     `json:"id"`
	TS    time.Time `json:"ts"`
	Count *float64  `json:"member_count"`
}

// Store is the append-only observation log shared by the watcher and the API.
type Store interface {
	// EnsureSchema creates the member_stats table when it does not exist.
	EnsureSchema(ctx context.Context) error
	// InsertObservation appends one sample.
	InsertObservation(ctx context.Context, ts time.Time, count int64) error
	// Observations returns the full log ordered by timestamp ascending.
	Observations(ctx context.Context) ([]Observation, error)
	// LatestObservation returns the newest sample, or nil on an empty log.
	LatestObservation(ctx context.Context) (*Observation, error)
	// Fingerprint summarizes the log content for cache invalidation.
	Fingerprint(ctx context.Context) (series.Fingerprint, error)
	Close()
}

// Open selects a backend from the connection string: postgres URLs get a pgx
// pool, anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return OpenPostgres(ctx, dsn)
	}
	return OpenSQLite(dsn)
}
