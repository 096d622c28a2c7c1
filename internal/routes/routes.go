package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"echo_campus/internal/controllers"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger(ginlog.WithDefaultLevel(zerolog.InfoLevel)))

	r.GET("/api/", controllers.APIRoot)

	AuthRoutes(r)
	CrimeRoutes(r)
	SOSRoutes(r)
	UserRoutes(r)
	AIRoutes(r)
	VoiceRoutes(r)
	GeocodeRoutes(r)
	DashboardRoutes(r)
	WebSocketRoutes(r)

	return r
}
