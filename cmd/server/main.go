package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"quantos/internal/config"
	backtestEngine "quantos/internal/engines/backtest"
	marketEngine "quantos/internal/engines/market"
	"quantos/internal/handlers"
	wshandler "quantos/internal/handlers/websocket"
	"quantos/internal/models"
	"quantos/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// CORS middleware for development
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// WebSocket push channel
	wsHandler := wshandler.NewWebSocketHandler()
	hub := wsHandler.GetHub()

	// Quote seed list: YAML override or built-in defaults
	seeds, err := cfg.LoadQuoteSeeds()
	if err != nil {
		log.Fatalf("Failed to load quote seeds: %v", err)
	}
	if seeds == nil {
		seeds = marketEngine.DefaultQuotes()
	}

	// Each concurrent component owns its own rand source.
	newRng := func() *rand.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Initialize services
	geminiService := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	strategyService := services.NewStrategyService(geminiService)
	analysisService := services.NewAnalysisService(geminiService, cfg.AnalysisTimeout, hub)
	notificationService := services.NewNotificationService(hub)

	riskService, err := services.NewRiskService(newRng(), services.DefaultRiskAssets)
	if err != nil {
		log.Fatalf("Failed to initialize risk service: %v", err)
	}

	// Initialize engines
	market := marketEngine.NewEngine(seeds, cfg.TickInterval, newRng(), hub)
	backtest := backtestEngine.NewEngine(cfg.BacktestLatency, newRng(), hub)

	// A completed backtest triggers the analysis cycle and a notification.
	backtest.SetOnComplete(func(result *models.BacktestResult) {
		notificationService.Add("Backtest Complete",
			fmt.Sprintf("Sharpe %.2f, Return %.2f%%, MaxDD %.2f%%",
				result.SharpeRatio, result.TotalReturn, result.MaxDrawdown),
			models.NotificationSuccess)
		analysisService.OnResult(result, strategyService.Strategy().Code)
	})
	analysisService.SetOnReady(func(text string) {
		notificationService.Add("Analysis Ready", "Risk commentary updated", models.NotificationInfo)
	})

	// Start the market tick loop; it runs for the process lifetime.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := market.Start(ctx); err != nil {
		log.Fatalf("Failed to start market engine: %v", err)
	}
	defer market.Stop()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	marketHandler := handlers.NewMarketHandler(market)
	riskHandler := handlers.NewRiskHandler(riskService)
	strategyHandler := handlers.NewStrategyHandler(strategyService)
	backtestHandler := handlers.NewBacktestHandler(backtest, strategyService, analysisService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Health check endpoint
	r.GET("/health", healthHandler.Health)

	// WebSocket endpoint
	r.GET("/ws", wsHandler.HandleWebSocket)

	// API routes group
	api := r.Group("/api/v1")
	{
		api.GET("/health", healthHandler.Health)

		handlers.RegisterMarketRoutes(api, marketHandler)
		handlers.RegisterRiskRoutes(api, riskHandler)
		handlers.RegisterStrategyRoutes(api, strategyHandler)
		handlers.RegisterBacktestRoutes(api, backtestHandler)
		handlers.RegisterNotificationRoutes(api, notificationHandler)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
