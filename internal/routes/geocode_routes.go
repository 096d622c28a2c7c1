package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
)

func GeocodeRoutes(r *gin.Engine) {
	geo := r.Group("/api/geocode")
	{
		geo.GET("/forward", controllers.GeocodeForward)
		geo.GET("/reverse", controllers.GeocodeReverse)
	}
}
