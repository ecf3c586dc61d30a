package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/series, /api/v1/stats, /api/v1/summary
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Series endpoints - reconstructed time series and export
	seriesGroup := v1.Group("/series")
	{
		seriesGroup.GET("", s.handleV1Series)
		seriesGroup.GET("/export.csv", s.handleV1SeriesCSV)
	}

	// Stats endpoint - headline growth metrics for the period
	v1.GET("/stats", s.handleV1Stats)

	// Summary endpoints - per-day closing values and net changes
	summary := v1.Group("/summary")
	{
		summary.GET("/daily", s.handleV1DailySummary)
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
