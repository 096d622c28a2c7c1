package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
	"echo_campus/internal/middleware"
)

func CrimeRoutes(r *gin.Engine) {
	crimes := r.Group("/api/crimes")
	{
		crimes.POST("/report", middleware.RequireAuth(), controllers.ReportCrime)
		crimes.GET("", controllers.GetCrimes)
		crimes.GET("/recent", middleware.RequireAuth(), controllers.GetRecentCrimes)
		crimes.GET("/map-data", middleware.OptionalAuth(), controllers.GetMapData)
	}
}
