package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quantos/internal/engines/backtest"
	"quantos/internal/services"
)

type BacktestHandler struct {
	engine          *backtest.Engine
	strategyService *services.StrategyService
	analysisService *services.AnalysisService
}

func NewBacktestHandler(engine *backtest.Engine, strategyService *services.StrategyService, analysisService *services.AnalysisService) *BacktestHandler {
	return &BacktestHandler{
		engine:          engine,
		strategyService: strategyService,
		analysisService: analysisService,
	}
}

// RunBacktest handles POST /api/v1/backtest/run requests. The run is
// asynchronous; the result arrives over the websocket channel and through
// GET /backtest/result once the simulated processing time elapses.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	strategy := h.strategyService.Strategy()

	if err := h.engine.Run(strategy.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":    "Backtest started",
		"strategyId": strategy.ID,
	})
}

// GetResult handles GET /api/v1/backtest/result requests. Result and
// analysis are both nullable until their producers finish.
func (h *BacktestHandler) GetResult(c *gin.Context) {
	analysis := h.analysisService.Snapshot()

	c.JSON(http.StatusOK, gin.H{
		"result":          h.engine.Result(),
		"analysis":        analysis.Text,
		"analysisLoading": analysis.Loading,
	})
}

// RegisterBacktestRoutes registers all backtest routes
func RegisterBacktestRoutes(router *gin.RouterGroup, handler *BacktestHandler) {
	group := router.Group("/backtest")
	{
		group.POST("/run", handler.RunBacktest)
		group.GET("/result", handler.GetResult)
	}
}
