package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"echo_campus/internal/config"
	"echo_campus/internal/dashboard"
	"echo_campus/internal/models"
)

// dbDashboardSource feeds the dashboard aggregator from the database and
// the prediction cache.
type dbDashboardSource struct{}

func (dbDashboardSource) RecentCrimes(ctx context.Context, limit int) ([]models.CrimeReport, error) {
	var reports []models.CrimeReport
	err := config.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&reports).Error
	return sanitizeReports(reports), err
}

func (dbDashboardSource) AllCrimes(ctx context.Context) ([]models.CrimeReport, error) {
	var reports []models.CrimeReport
	err := config.DB.WithContext(ctx).Order("created_at DESC").Find(&reports).Error
	return sanitizeReports(reports), err
}

func (dbDashboardSource) CurrentPredictions(ctx context.Context) ([]models.Prediction, error) {
	preds, _, _ := crimeAI.Current()
	return preds, nil
}

// GetDashboard assembles the dashboard in one round trip: recent reports,
// per-category stats and current predictions, each slice degrading
// independently.
func GetDashboard(c *gin.Context) {
	limit := dashboard.DefaultRecentLimit
	if raw := c.Query("recent_limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	snapshot := dashboard.Load(c.Request.Context(), dbDashboardSource{}, limit)
	c.JSON(http.StatusOK, gin.H{
		"recent_reports": snapshot.Recent,
		"stats":          snapshot.Stats,
		"predictions":    snapshot.Predictions,
		"warnings":       snapshot.Warnings,
	})
}
