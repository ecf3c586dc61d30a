package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halvty/groupmeter/internal/series"
)

// PostgresStore keeps the observation log in a PostgreSQL table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a store backed by a pgx pool.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool resources.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Statements are issued one by one: the extended protocol rejects
// multi-statement strings.
var pgSchemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS member_stats (
    id BIGSERIAL PRIMARY KEY,
    ts TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    member_count BIGINT
)`,
	`CREATE INDEX IF NOT EXISTS idx_member_stats_ts ON member_stats (ts)`,
}

// EnsureSchema creates the member_stats table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range pgSchemaSQL {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertObservation appends one sample.
func (s *PostgresStore) InsertObservation(ctx context.Context, ts time.Time, count int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO member_stats (ts, member_count) VALUES ($1, $2)`, ts, count)
	return err
}

const pgObservationsSQL = `
    SELECT id, ts, member_count
    FROM member_stats
    ORDER BY ts ASC, id ASC
`

// Observations returns the full log ordered by timestamp ascending.
func (s *PostgresStore) Observations(ctx context.Context) ([]Observation, error) {
	rows, err := s.pool.Query(ctx, pgObservationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	observations := make([]Observation, 0)
	for rows.Next() {
		var o Observation
		if err := rows.Scan(&o.ID, &o.TS, &o.Count); err != nil {
			return nil, err
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

const pgLatestSQL = `
    SELECT id, ts, member_count
    FROM member_stats
    ORDER BY ts DESC, id DESC
    LIMIT 1
`

// LatestObservation returns the newest sample, or nil on an empty log.
func (s *PostgresStore) LatestObservation(ctx context.Context) (*Observation, error) {
	rows, err := s.pool.Query(ctx, pgLatestSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var o Observation
	if err := rows.Scan(&o.ID, &o.TS, &o.Count); err != nil {
		return nil, err
	}
	return &o, rows.Err()
}

// Fingerprint summarizes the log content for cache invalidation.
func (s *PostgresStore) Fingerprint(ctx context.Context) (series.Fingerprint, error) {
	var fp series.Fingerprint
	var maxTS *time.Time
	row := s.pool.QueryRow(ctx, `SELECT COUNT(*), MAX(ts) FROM member_stats`)
	if err := row.Scan(&fp.Rows, &maxTS); err != nil {
		return fp, err
	}
	if maxTS != nil {
		fp.MaxTS = maxTS.UTC()
	}
	return fp, nil
}
