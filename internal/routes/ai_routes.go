package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
	"echo_campus/internal/middleware"
)

func AIRoutes(r *gin.Engine) {
	ai := r.Group("/api/ai")
	{
		ai.GET("/predictions", controllers.GetPredictions)
		ai.POST("/predictions/refresh", middleware.RequireAuth(), controllers.RefreshPredictions)
	}
}
