package main

import (
	"log"
	"os"
	"strings"
	"time"

	"wayplan/config"
	"wayplan/database"
	"wayplan/handlers"
	"wayplan/planner"
	"wayplan/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	database.InitDB()

	agg := planner.NewAggregator(services.NewExchangeClient())
	agg.Weather.Timeout = cfg.ProviderTimeout
	agg.Hotels.Timeout = cfg.ProviderTimeout
	agg.Restaurants.Timeout = cfg.ProviderTimeout
	agg.Itinerary.Timeout = cfg.ProviderTimeout
	agg.Insights.Timeout = cfg.ProviderTimeout

	// A provider without its key stays nil and the adapter serves fallback data.
	if cfg.OpenWeatherKey != "" {
		agg.Weather.Provider = services.NewWeatherClient(cfg.OpenWeatherKey)
	}
	if cfg.RapidAPIKey != "" {
		agg.Hotels.Provider = services.NewHotelsClient(cfg.RapidAPIKey)
	}
	if cfg.GooglePlacesKey != "" {
		agg.Restaurants.Provider = services.NewPlacesClient(cfg.GooglePlacesKey)
	}
	if cfg.HuggingFaceKey != "" {
		agg.Itinerary.Provider = services.NewItineraryClient(cfg.HuggingFaceKey, cfg.ItineraryModel)
	}
	agg.Insights.Provider = services.NewInsightsClient()

	handlers.Planner = agg

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// Trusted proxies (Railway sits behind a proxy)
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	// CORS, allow configured frontend origins
	frontendURLs := os.Getenv("FRONTEND_URL")
	allowedOrigins := []string{"http://localhost:5173", "http://localhost:3000"}
	if frontendURLs != "" {
		for _, u := range strings.Split(frontendURLs, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthHandler)
		api.POST("/plan", handlers.PlanHandler)
		api.GET("/plans/:id/markdown", handlers.MarkdownHandler)
		api.GET("/plans/:id/csv", handlers.CSVHandler)
		api.GET("/plans/:id/pdf", handlers.PDFHandler)
	}

	log.Printf("🚀 WayPlan backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
