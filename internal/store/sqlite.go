package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/halvty/groupmeter/internal/series"
)

// SQLiteStore keeps the observation log in a local SQLite file. It serves
// single-host deployments and tests; the schema matches the Postgres backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) a SQLite database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS member_stats (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ts TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    member_count INTEGER
);
CREATE INDEX IF NOT EXISTS idx_member_stats_ts ON member_stats (ts)`

// EnsureSchema creates the member_stats table when missing.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchemaSQL); err != nil {
		return fmt.Errorf("create member_stats table: %w", err)
	}
	return nil
}

// InsertObservation appends one sample.
func (s *SQLiteStore) InsertObservation(ctx context.Context, ts time.Time, count int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO member_stats (ts, member_count) VALUES (?, ?)`, ts.UTC(), count)
	if err != nil {
		return fmt.Errorf("insert member count: %w", err)
	}
	return nil
}

// Observations returns the full log ordered by timestamp ascending.
func (s *SQLiteStore) Observations(ctx context.Context) ([]Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, member_count FROM member_stats ORDER BY ts ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	observations := make([]Observation, 0)
	for rows.Next() {
		var o Observation
		var count sql.NullFloat64
		if err := rows.Scan(&o.ID, &o.TS, &count); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		if count.Valid {
			o.Count = &count.Float64
		}
		observations = append(observations, o)
	}
	return observations, rows.Err()
}

// LatestObservation returns the newest sample, or nil on an empty log.
func (s *SQLiteStore) LatestObservation(ctx context.Context) (*Observation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, ts, member_count FROM member_stats ORDER BY ts DESC, id DESC LIMIT 1`)

	var o Observation
	var count sql.NullFloat64
	if err := row.Scan(&o.ID, &o.TS, &count); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan latest observation: %w", err)
	}
	if count.Valid {
		o.Count = &count.Float64
	}
	return &o, nil
}

// Fingerprint summarizes the log content for cache invalidation. The newest
// timestamp is selected as a plain column: SQLite drops the declared column
// type on MAX(ts), which breaks time.Time conversion.
func (s *SQLiteStore) Fingerprint(ctx context.Context) (series.Fingerprint, error) {
	var fp series.Fingerprint
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM member_stats`)
	if err := row.Scan(&fp.Rows); err != nil {
		return fp, fmt.Errorf("scan fingerprint rows: %w", err)
	}
	if fp.Rows == 0 {
		return fp, nil
	}

	var maxTS time.Time
	row = s.db.QueryRowContext(ctx, `SELECT ts FROM member_stats ORDER BY ts DESC, id DESC LIMIT 1`)
	if err := row.Scan(&maxTS); err != nil {
		return fp, fmt.Errorf("scan fingerprint max ts: %w", err)
	}
	fp.MaxTS = maxTS.UTC()
	return fp, nil
}
