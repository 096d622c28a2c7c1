package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"echo_campus/internal/config"
	"echo_campus/internal/controllers"
	"echo_campus/internal/logger"
	"echo_campus/internal/middleware"
	"echo_campus/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Build the service layer (geocoder, predictor, assistant, SOS flow)
	controllers.InitServices()

	// Warm the prediction cache, then keep it fresh on a schedule
	go refreshPredictions()
	schedule := cron.New()
	if _, err := schedule.AddFunc(config.GetEnv("PREDICTION_REFRESH_CRON", "0 */6 * * *"), refreshPredictions); err != nil {
		logrus.WithError(err).Fatal("invalid prediction refresh schedule")
	}
	schedule.Start()
	defer schedule.Stop()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func refreshPredictions() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	controllers.RefreshAndStorePredictions(ctx)
}
