package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"echo_campus/internal/assistant"
)

// HandleVoiceTurn processes one assistant turn. Public; the widget is
// available on every page, logged in or not.
func HandleVoiceTurn(c *gin.Context) {
	var req assistant.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	resp := voiceBot.Respond(c.Request.Context(), req)
	c.JSON(http.StatusOK, resp)
}
