package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"echo_campus/internal/geocode"
)

// GeocodeForward proxies a campus-biased address search so the Mapbox token
// never ships to the browser.
func GeocodeForward(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	match, err := geocoder.Forward(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, geocode.ErrNoMatch) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no match for address"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"match": match})
}

// GeocodeReverse resolves coordinates to a display address.
func GeocodeReverse(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng parameters are required"})
		return
	}

	address, err := geocoder.Reverse(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "reverse geocoding failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address})
}
