package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/halvty/groupmeter/internal/series"
)

// seriesRow is one display-ready entry of the reconstructed series. The count
// is rounded here, at the response boundary, and nowhere earlier.
type seriesRow struct {
	Timestamp          time.Time `json:"timestamp"`
	Count              int64     `json:"count"`
	IsInterpolated     bool      `json:"is_interpolated"`
	NetDailyChange     int64     `json:"net_daily_change"`
	IsLastInterpolated bool      `json:"is_last_interpolated"`
}

// handleV1Series returns the reconstructed series joined with daily changes
// GET /api/v1/series?start=2024-01-01&end=2024-01-31&ma7=true&ma30=true
func (s *Server) handleV1Series(c *gin.Context) {
	rng, ok := parseDateRange(c)
	if !ok {
		return
	}

	ma7, ok := parseBoolQuery(c, "ma7")
	if !ok {
		return
	}
	ma30, ok := parseBoolQuery(c, "ma30")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	points, dropped, err := s.loadPoints(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.aggregate(c, points, rng)
	if result == nil {
		if err == nil {
			emptySeriesResponse(c, dropped)
		}
		return
	}

	rows := make([]seriesRow, 0, len(result.Rows))
	interpolated := 0
	for _, r := range result.Rows {
		if r.Interpolated {
			interpolated++
		}
		rows = append(rows, seriesRow{
			Timestamp:          r.TS.UTC(),
			Count:              series.Round(r.Count),
			IsInterpolated:     r.Interpolated,
			NetDailyChange:     r.NetChange,
			IsLastInterpolated: r.LastInterpolated,
		})
	}

	data := gin.H{"rows": rows}
	if ma7 && len(result.Rows) >= 7 {
		data["ma_7"] = series.RollingMean(result.Rows, 7)
	}
	if ma30 && len(result.Rows) >= 30 {
		data["ma_30"] = series.RollingMean(result.Rows, 30)
	}

	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"meta": gin.H{
			"count":        len(rows),
			"interpolated": interpolated,
			"dropped":      dropped,
		},
	})
}

// handleV1SeriesCSV streams the filtered series in the export format
// GET /api/v1/series/export.csv?start=2024-01-01&end=2024-01-31
func (s *Server) handleV1SeriesCSV(c *gin.Context) {
	rng, ok := parseDateRange(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	points, _, err := s.loadPoints(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.aggregate(c, points, rng)
	if result == nil && err != nil {
		return
	}

	var rows []series.Row
	if result != nil {
		rows = result.Rows
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="member_stats.csv"`)
	c.Status(http.StatusOK)
	if err := series.WriteCSV(c.Writer, rows); err != nil {
		_ = c.Error(err)
	}
}

// loadPoints runs the reader and reconstruction stages, memoized on the log
// fingerprint so repeated dashboard requests skip recomputation until a new
// observation lands.
func (s *Server) loadPoints(ctx context.Context) ([]series.Point, int, error) {
	fp, err := s.store.Fingerprint(ctx)
	if err != nil {
		return nil, 0, err
	}

	if points, dropped, ok := s.cache.Get(fp); ok {
		return points, dropped, nil
	}

	raw, err := s.store.Observations(ctx)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]series.RawObservation, 0, len(raw))
	for _, o := range raw {
		rows = append(rows, series.RawObservation{TS: o.TS, Count: o.Count})
	}

	obs, dropped := series.Sanitize(rows)
	points := series.Reconstruct(obs)
	s.cache.Put(fp, points, dropped)
	return points, dropped, nil
}

// aggregate wraps series.Aggregate with the shared HTTP error mapping.
// A nil result with a nil error means the series is empty; the caller decides
// how to render that state.
func (s *Server) aggregate(c *gin.Context, points []series.Point, rng *series.Range) (*series.Result, error) {
	result, err := series.Aggregate(points, rng)
	if err != nil {
		if errors.Is(err, series.ErrEmptySeries) {
			return nil, nil
		}
		if errors.Is(err, series.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end date must fall after start date"})
			return nil, err
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, err
	}
	return result, nil
}

func emptySeriesResponse(c *gin.Context, dropped int) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"rows": []seriesRow{}},
		"meta": gin.H{
			"count":        0,
			"interpolated": 0,
			"dropped":      dropped,
			"status":       "no data",
		},
	})
}

// parseDateRange reads the optional inclusive start/end calendar dates and
// converts them to a half-open instant window (end is end_date + 1 day).
// Returns ok=false after writing the error response.
func parseDateRange(c *gin.Context) (*series.Range, bool) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" && endStr == "" {
		return nil, true
	}

	rng := &series.Range{
		Start: time.Time{},
		End:   time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}

	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
			return nil, false
		}
		rng.Start = t.UTC()
	}

	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
			return nil, false
		}
		rng.End = t.UTC().AddDate(0, 0, 1)
	}

	return rng, true
}

func parseBoolQuery(c *gin.Context, name string) (bool, bool) {
	str := c.Query(name)
	if str == "" {
		return false, true
	}
	val, err := strconv.ParseBool(str)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return false, false
	}
	return val, true
}
