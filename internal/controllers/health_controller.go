package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIRoot is the banner endpoint clients use as a reachability check.
func APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Echo Campus Safety API",
		"status":  "ok",
	})
}
