package series

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{"timestamp", "count", "is_interpolated", "net_daily_change", "is_last_interpolated"}

// WriteCSV renders display rows in the export format. Counts are rounded
// here, at the formatting step, and nowhere earlier.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.TS.UTC().Format(time.RFC3339),
			strconv.FormatInt(Round(r.Count), 10),
			strconv.FormatBool(r.Interpolated),
			strconv.FormatInt(r.NetChange, 10),
			strconv.FormatBool(r.LastInterpolated),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
