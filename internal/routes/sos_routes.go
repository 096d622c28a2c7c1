package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
	"echo_campus/internal/middleware"
)

func SOSRoutes(r *gin.Engine) {
	sos := r.Group("/api/sos", middleware.RequireAuth())
	{
		sos.POST("/alert", controllers.TriggerSOS)
		sos.GET("/alerts", controllers.ListSOSAlerts)
		sos.POST("/alerts/:id/resolve", controllers.ResolveSOSAlert)
	}
}
