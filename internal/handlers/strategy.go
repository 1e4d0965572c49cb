package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quantos/internal/services"
)

type StrategyHandler struct {
	strategyService *services.StrategyService
}

func NewStrategyHandler(strategyService *services.StrategyService) *StrategyHandler {
	return &StrategyHandler{
		strategyService: strategyService,
	}
}

type UpdateStrategyRequest struct {
	Code string `json:"code" binding:"required"`
}

type GenerateStrategyRequest struct {
	Description string `json:"description" binding:"required"`
}

// GetStrategy handles GET /api/v1/strategy requests.
func (h *StrategyHandler) GetStrategy(c *gin.Context) {
	c.JSON(http.StatusOK, h.strategyService.Strategy())
}

// UpdateStrategy handles PUT /api/v1/strategy requests, replacing the
// strategy source.
func (h *StrategyHandler) UpdateStrategy(c *gin.Context) {
	var req UpdateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.strategyService.UpdateCode(req.Code))
}

// GenerateStrategy handles POST /api/v1/strategy/generate requests. A
// missing credential is reported distinctly from a failed generation so the
// UI can show an actionable message.
func (h *StrategyHandler) GenerateStrategy(c *gin.Context) {
	var req GenerateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := h.strategyService.GenerateCode(c.Request.Context(), req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "GEMINI_API_KEY is not set. Add it to your environment to enable code generation.",
			})
		case errors.Is(err, services.ErrGenerationFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate strategy."})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// RegisterStrategyRoutes registers all strategy routes
func RegisterStrategyRoutes(router *gin.RouterGroup, handler *StrategyHandler) {
	group := router.Group("/strategy")
	{
		group.GET("", handler.GetStrategy)
		group.PUT("", handler.UpdateStrategy)
		group.POST("/generate", handler.GenerateStrategy)
	}
}
