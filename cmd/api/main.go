package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fiscal-score/internal/api/handlers"
	"fiscal-score/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Note: statistical-data API keys are passed through from client
	// requests; the server holds no key of its own.

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	scoreHandler := handlers.NewScoreHandler()
	baselineHandler := handlers.NewBaselineHandler()
	uncertaintyHandler := handlers.NewUncertaintyHandler()
	presetHandler := handlers.NewPresetHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/score", scoreHandler.ScorePolicy)
		api.POST("/score/package", scoreHandler.ScorePackage)
		api.POST("/score/compare", scoreHandler.CompareScores)

		api.GET("/baseline", baselineHandler.GetBaseline)

		api.POST("/uncertainty/montecarlo", uncertaintyHandler.MonteCarlo)
		api.POST("/uncertainty/sensitivity", uncertaintyHandler.Sensitivity)

		api.GET("/conditions/presets", presetHandler.ListConditionPresets)
	}

	// CORS wraps the whole router so preflight requests never reach gin
	handler := cors.Default().Handler(router)

	// Start server
	addr := fmt.Sprintf(":%s", port)
	slog.Info("starting API server", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
