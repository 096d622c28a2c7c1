package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
)

func WebSocketRoutes(r *gin.Engine) {
	r.GET("/ws/alerts", controllers.HandleAlertStream)
}
