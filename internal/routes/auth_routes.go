package routes

import (
	"github.com/gin-gonic/gin"

	"echo_campus/internal/controllers"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", controllers.SignupUser)
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/validate-reset-token", controllers.ValidateResetToken)
		auth.POST("/reset-password", controllers.ResetPassword)
	}
}
