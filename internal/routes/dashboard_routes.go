package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
	"echo_campus/internal/middleware"
)

func DashboardRoutes(r *gin.Engine) {
	r.GET("/api/dashboard", middleware.RequireAuth(), controllers.GetDashboard)
}
