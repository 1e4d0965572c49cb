package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quantos/internal/engines/market"
	"quantos/internal/models"
)

type MarketHandler struct {
	engine *market.Engine
}

func NewMarketHandler(engine *market.Engine) *MarketHandler {
	return &MarketHandler{
		engine: engine,
	}
}

// GetQuotes handles GET /api/v1/market/quotes requests. The optional `q`
// parameter filters symbols by case-insensitive substring.
func (h *MarketHandler) GetQuotes(c *gin.Context) {
	filter := c.Query("q")
	quotes := h.engine.Quotes(filter)

	c.JSON(http.StatusOK, models.QuotesResponse{
		Quotes: quotes,
	})
}

// RegisterMarketRoutes registers all market data routes
func RegisterMarketRoutes(router *gin.RouterGroup, handler *MarketHandler) {
	group := router.Group("/market")
	{
		group.GET("/quotes", handler.GetQuotes)
	}
}
