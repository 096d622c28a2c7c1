package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
	"echo_campus/internal/middleware"
)

func UserRoutes(r *gin.Engine) {
	user := r.Group("/api/user", middleware.RequireAuth())
	{
		user.GET("/profile", controllers.GetProfile)
		user.GET("/trusted-contacts", controllers.GetTrustedContacts)
		user.PUT("/trusted-contacts", controllers.UpdateTrustedContacts)
	}
}
