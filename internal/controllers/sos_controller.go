package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"echo_campus/internal/config"
	"echo_campus/internal/models"
	"echo_campus/internal/sos"
)

var validEmergencyTypes = map[string]bool{
	"general": true, "medical": true, "security": true, "fire": true,
}

type sosInput struct {
	EmergencyType string   `json:"emergency_type"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Address       string   `json:"address"`
}

// TriggerSOS runs the full SOS flow: persist the alert, notify the live
// stream, and build the staggered messaging links for the user's trusted
// contacts.
func TriggerSOS(c *gin.Context) {
	userID := currentUserID(c)

	var input sosInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.EmergencyType != "" && !validEmergencyTypes[input.EmergencyType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency_type"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var loc *models.Location
	if input.Lat != nil && input.Lng != nil {
		loc = &models.Location{Lat: *input.Lat, Lng: *input.Lng, Address: input.Address, Source: "current"}
	}

	result, err := sosFlow.Trigger(c.Request.Context(), user, loc, input.EmergencyType)
	if err != nil {
		if errors.Is(err, sos.ErrLocationRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location is required to send an SOS alert"})
			return
		}
		logrus.WithError(err).Error("sos flow failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	alertHub.Publish(AlertEvent{Kind: "sos_alert", Payload: result.Alert})

	c.JSON(http.StatusCreated, gin.H{
		"alert":  result.Alert,
		"links":  result.Links,
		"opened": result.Opened,
	})
}

// ListSOSAlerts returns the caller's alerts, newest first.
func ListSOSAlerts(c *gin.Context) {
	userID := currentUserID(c)

	var alerts []models.SOSAlert
	if err := config.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// ResolveSOSAlert marks one of the caller's alerts resolved.
func ResolveSOSAlert(c *gin.Context) {
	userID := currentUserID(c)
	publicID := c.Param("id")

	res := config.DB.Model(&models.SOSAlert{}).
		Where("public_id = ? AND user_id = ?", publicID, userID).
		Update("status", "resolved")
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "alert resolved"})
}
