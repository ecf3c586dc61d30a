package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/halvty/groupmeter/internal/series"
)

// statsResponse carries the headline growth metrics for the selected period.
// AvgWeeklyGrowth is null when the period spans fewer than seven days.
type statsResponse struct {
	InitialCount    int64    `json:"initial_count"`
	LatestCount     int64    `json:"latest_count"`
	Growth          int64    `json:"growth"`
	GrowthPct       float64  `json:"growth_percentage"`
	ElapsedDays     int      `json:"elapsed_days"`
	AvgDailyGrowth  float64  `json:"avg_daily_growth"`
	AvgWeeklyGrowth *float64 `json:"avg_weekly_growth"`
}

// dailySummaryRow is one calendar day's closing value and net change.
type dailySummaryRow struct {
	Day                string `json:"day"`
	LastCount          int64  `json:"last_count"`
	IsLastInterpolated bool   `json:"is_last_interpolated"`
	NetChange          int64  `json:"net_change"`
}

// handleV1Stats returns period growth statistics
// GET /api/v1/stats?start=2024-01-01&end=2024-01-31
func (s *Server) handleV1Stats(c *gin.Context) {
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
	if result == nil {
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"data": nil, "meta": gin.H{"status": "no data"}})
		}
		return
	}

	st := result.Stats
	c.JSON(http.StatusOK, gin.H{
		"data": statsResponse{
			InitialCount:    series.Round(st.InitialCount),
			LatestCount:     series.Round(st.LatestCount),
			Growth:          series.Round(st.Growth),
			GrowthPct:       st.GrowthPct,
			ElapsedDays:     st.ElapsedDays,
			AvgDailyGrowth:  st.AvgDailyGrowth,
			AvgWeeklyGrowth: st.AvgWeeklyGrowth,
		},
	})
}

// handleV1DailySummary returns per-day closing values and net changes
// GET /api/v1/summary/daily?start=2024-01-01&end=2024-01-31
func (s *Server) handleV1DailySummary(c *gin.Context) {
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
	if result == nil {
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"data": []dailySummaryRow{}, "meta": gin.H{"status": "no data"}})
		}
		return
	}

	// Summaries are derived over the unfiltered series; only the displayed
	// window is narrowed here.
	rows := make([]dailySummaryRow, 0, len(result.Summaries))
	for _, sum := range result.Summaries {
		if rng != nil && (sum.Day.Before(rng.Start) || !sum.Day.Before(rng.End)) {
			continue
		}
		rows = append(rows, dailySummaryRow{
			Day:                sum.Day.Format("2006-01-02"),
			LastCount:          series.Round(sum.LastCount),
			IsLastInterpolated: sum.LastInterpolated,
			NetChange:          sum.NetChange,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
		"meta": gin.H{"count": len(rows)},
	})
}
