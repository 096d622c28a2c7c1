package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
)

func VoiceRoutes(r *gin.Engine) {
	r.POST("/api/voice", controllers.HandleVoiceTurn)
}
