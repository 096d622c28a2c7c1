package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"echo_campus/internal/config"
	"echo_campus/internal/location"
	"echo_campus/internal/mapview"
	"echo_campus/internal/models"
)

type reportCrimeInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	CrimeType   string `json:"crime_type" binding:"required"`
	Severity    string `json:"severity" binding:"required"`
	IsAnonymous bool   `json:"is_anonymous"`

	// Exactly one location method applies, checked in this order:
	// device coordinates, address search, campus fallback.
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	AddressQuery string   `json:"address_query"`
	UseCampus    bool     `json:"use_campus_fallback"`
}

// ReportCrime files an incident report. The location is resolved server-side
// from whichever method the client supplied.
func ReportCrime(c *gin.Context) {
	userID := currentUserID(c)

	var input reportCrimeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolver := location.NewResolver(geocoder)
	var loc *models.Location
	switch {
	case input.Lat != nil && input.Lng != nil:
		loc = resolver.UseDevice(c.Request.Context(), *input.Lat, *input.Lng)
	case input.AddressQuery != "":
		var err error
		loc, err = resolver.UseSearch(c.Request.Context(), input.AddressQuery)
		if err != nil {
			if errors.Is(err, location.ErrNotFound) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Location not found. Please try a different address."})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed: " + err.Error()})
			return
		}
	case input.UseCampus:
		loc = resolver.UseFallback()
	}

	if err := location.ValidateReport(location.ReportInput{
		Title:       input.Title,
		Description: input.Description,
		CrimeType:   input.CrimeType,
		Severity:    input.Severity,
		Location:    loc,
	}); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := models.CrimeReport{
		PublicID:    uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		CrimeType:   input.CrimeType,
		Severity:    input.Severity,
		Status:      "pending",
		IsAnonymous: input.IsAnonymous,
		Location:    *loc,
	}
	if err := config.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save report: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"report_id":  report.PublicID,
		"crime_type": report.CrimeType,
		"severity":   report.Severity,
		"anonymous":  report.IsAnonymous,
	}).Info("crime report filed")

	alertHub.Publish(AlertEvent{Kind: "crime_report", Payload: sanitizeReport(report)})

	c.JSON(http.StatusCreated, gin.H{"report": sanitizeReport(report)})
}

// GetCrimes lists all reports, newest first.
func GetCrimes(c *gin.Context) {
	var reports []models.CrimeReport
	if err := config.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": sanitizeReports(reports), "count": len(reports)})
}

// GetRecentCrimes returns the newest reports for the dashboard feed.
func GetRecentCrimes(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	var reports []models.CrimeReport
	if err := config.DB.Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": sanitizeReports(reports)})
}

// GetMapData returns the marker layer, severity-weighted heat layer and
// per-category counts for the crime map. Accepts an optional category
// filter and viewport bounds.
func GetMapData(c *gin.Context) {
	var reports []models.CrimeReport
	if err := config.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}

	composer := mapview.NewComposer()
	composer.SetIncidents(sanitizeReports(reports))

	if filter := c.Query("filter"); filter != "" {
		composer.SetFilter(filter)
	}
	if bounds, ok := boundsFromQuery(c); ok {
		composer.SetViewport(bounds)
	}

	c.JSON(http.StatusOK, gin.H{
		"markers":  composer.Markers(),
		"heatmap":  composer.HeatLayer(),
		"counts":   composer.Counts(),
		"filter":   composer.Filter(),
		"viewport": composer.Viewport(),
	})
}

// boundsFromQuery parses south/north/west/east query parameters. All four
// must be present and numeric; otherwise the default viewport stays.
func boundsFromQuery(c *gin.Context) (mapview.Bounds, bool) {
	var b mapview.Bounds
	parts := []struct {
		key string
		dst *float64
	}{
		{"south", &b.South}, {"north", &b.North}, {"west", &b.West}, {"east", &b.East},
	}
	for _, part := range parts {
		raw := c.Query(part.key)
		if raw == "" {
			return mapview.Bounds{}, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return mapview.Bounds{}, false
		}
		*part.dst = v
	}
	return b, true
}

// sanitizeReport hides the reporter's identity on anonymous reports.
func sanitizeReport(r models.CrimeReport) models.CrimeReport {
	if r.IsAnonymous {
		r.UserID = 0
	}
	return r
}

func sanitizeReports(reports []models.CrimeReport) []models.CrimeReport {
	out := make([]models.CrimeReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, sanitizeReport(r))
	}
	return out
}
