package series

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{
			Point:            Point{TS: at(1, 12), Count: 100},
			NetChange:        0,
			LastInterpolated: false,
		},
		{
			Point:            Point{TS: day(2), Count: 117.5, Interpolated: true},
			NetChange:        18,
			LastInterpolated: true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "timestamp,count,is_interpolated,net_daily_change,is_last_interpolated", lines[0])
	require.Equal(t, "2024-03-01T12:00:00Z,100,false,0,false", lines[1])
	// Counts are rounded exactly once, at this formatting step.
	require.Equal(t, "2024-03-02T00:00:00Z,118,true,18,true", lines[2])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	require.Equal(t, "timestamp,count,is_interpolated,net_daily_change,is_last_interpolated\n", buf.String())
}
