// api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"chunkmetrics/api/database"
	"chunkmetrics/api/handlers"
	"chunkmetrics/api/middleware"
	"chunkmetrics/api/store"
)

// newEventSource wires up the configured event backend. EVENT_SOURCE picks
// between the export API (default) and a ClickHouse replica of the event
// stream; either way the source is wrapped in the shared TTL cache.
func newEventSource() (store.EventSource, func(), error) {
	cache := store.NewCache(store.CacheTTLFromEnv())

	switch os.Getenv("EVENT_SOURCE") {
	case "clickhouse":
		chClient, err := database.NewClickHouseDB()
		if err != nil {
			return nil, nil, err
		}
		source := store.NewClickHouseSource(chClient)
		return store.NewCachedSource(source, cache), chClient.Close, nil
	default:
		client, err := store.NewExportClient()
		if err != nil {
			return nil, nil, err
		}
		return store.NewCachedSource(client, cache), func() {}, nil
	}
}

func main() {
	// Load .env file at the very start
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Info("No .env file found")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	source, closeSource, err := newEventSource()
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize event source")
	}
	defer closeSource()

	// The email stats client is optional; without a token the route reports
	// it unconfigured instead of blocking startup.
	emails, err := store.NewEmailStatsClient()
	if err != nil {
		log.WithError(err).Warn("Email stats client not configured")
	}

	metricsHandlers := handlers.NewMetricsHandlers(source, emails)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		api.GET("/events", metricsHandlers.GetEvents)

		metricsGroup := api.Group("/metrics")
		{
			metricsGroup.GET("/overview", metricsHandlers.GetOverview)
			metricsGroup.GET("/acquisition", metricsHandlers.GetAcquisition)
			metricsGroup.GET("/subscriptions", metricsHandlers.GetSubscriptions)
			metricsGroup.GET("/notes", metricsHandlers.GetNotes)
			metricsGroup.GET("/collections", metricsHandlers.GetCollections)
			metricsGroup.GET("/research", metricsHandlers.GetResearch)
			metricsGroup.GET("/sharing", metricsHandlers.GetSharing)
			metricsGroup.GET("/marketing", metricsHandlers.GetMarketing)
			metricsGroup.GET("/push", metricsHandlers.GetPush)
			metricsGroup.GET("/onboarding", metricsHandlers.GetOnboarding)
			metricsGroup.GET("/users", metricsHandlers.GetUsers)
			metricsGroup.GET("/features", metricsHandlers.GetFeatures)
			metricsGroup.GET("/searches", metricsHandlers.GetSearches)
			metricsGroup.GET("/engagement", metricsHandlers.GetEngagement)
			metricsGroup.GET("/emails", metricsHandlers.GetEmails)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Infof("Metrics API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Metrics API server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}
