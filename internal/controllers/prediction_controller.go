package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"echo_campus/internal/config"
	"echo_campus/internal/models"
)

// GetPredictions serves the current AI prediction set with trend analysis
// and safety tips. Public; the panel renders before login.
func GetPredictions(c *gin.Context) {
	predictions, trend, tips := crimeAI.Current()
	c.JSON(http.StatusOK, gin.H{
		"predictions": predictions,
		"trend":       trend,
		"safety_tips": tips,
	})
}

// RefreshPredictions forces a rebuild from fresh news. Normally the cron
// schedule handles this; the endpoint exists for operators.
func RefreshPredictions(c *gin.Context) {
	RefreshAndStorePredictions(c.Request.Context())
	predictions, trend, tips := crimeAI.Current()
	c.JSON(http.StatusOK, gin.H{
		"predictions": predictions,
		"trend":       trend,
		"safety_tips": tips,
	})
}

// RefreshAndStorePredictions rebuilds the prediction set and writes it
// through to the predictions table, replacing the previous set. The table is
// the durable record for audits; serving stays in-memory. A failed write is
// logged, not fatal.
func RefreshAndStorePredictions(ctx context.Context) {
	crimeAI.Refresh(ctx)

	current, _, _ := crimeAI.Current()
	if err := replacePredictions(ctx, current); err != nil {
		logrus.WithError(err).Warn("could not persist prediction set")
	}
}

func replacePredictions(ctx context.Context, predictions []models.Prediction) error {
	// copy before Create so gorm's assigned IDs never leak into the
	// predictor's served slice
	rows := make([]models.Prediction, len(predictions))
	copy(rows, predictions)

	tx := config.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Unscoped().Where("1 = 1").Delete(&models.Prediction{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	for i := range rows {
		if err := tx.Create(&rows[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}
