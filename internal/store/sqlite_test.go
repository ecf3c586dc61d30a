package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(st.Close)
	require.NoError(t, st.EnsureSchema(context.Background()))
	return st
}

func TestSQLiteStoreEmptyLog(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	obs, err := st.Observations(ctx)
	require.NoError(t, err)
	require.Empty(t, obs)

	latest, err := st.LatestObservation(ctx)
	require.NoError(t, err)
	require.Nil(t, latest)

	fp, err := st.Fingerprint(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, fp.Rows)
	require.True(t, fp.MaxTS.IsZero())
}

func TestSQLiteStoreInsertAndRead(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ts1 := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	ts2 := time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, st.InsertObservation(ctx, ts2, 120))
	require.NoError(t, st.InsertObservation(ctx, ts1, 100))

	obs, err := st.Observations(ctx)
	require.NoError(t, err)
	require.Len(t, obs, 2)

	// Ordered by timestamp ascending regardless of insertion order.
	require.True(t, obs[0].TS.UTC().Equal(ts1))
	require.NotNil(t, obs[0].Count)
	require.InDelta(t, 100, *obs[0].Count, 1e-9)
	require.True(t, obs[1].TS.UTC().Equal(ts2))

	latest, err := st.LatestObservation(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.True(t, latest.TS.UTC().Equal(ts2))
	require.InDelta(t, 120, *latest.Count, 1e-9)
}

func TestSQLiteStoreFingerprintTracksLog(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	ts1 := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, st.InsertObservation(ctx, ts1, 100))

	fp1, err := st.Fingerprint(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, fp1.Rows)
	require.True(t, fp1.MaxTS.Equal(ts1))

	ts2 := ts1.Add(6 * time.Hour)
	require.NoError(t, st.InsertObservation(ctx, ts2, 105))

	fp2, err := st.Fingerprint(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, fp2.Rows)
	require.True(t, fp2.MaxTS.Equal(ts2))
}

func TestOpenSelectsSQLiteForFilePaths(t *testing.T) {
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "open.db"))
	require.NoError(t, err)
	t.Cleanup(st.Close)

	_, isSQLite := st.(*SQLiteStore)
	require.True(t, isSQLite)
}
