package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quantos/internal/services"
)

type RiskHandler struct {
	riskService *services.RiskService
}

func NewRiskHandler(riskService *services.RiskService) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
	}
}

// GetCorrelations handles GET /api/v1/risk/correlations requests.
func (h *RiskHandler) GetCorrelations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rows": h.riskService.Correlations(),
	})
}

// RegisterRiskRoutes registers all risk routes
func RegisterRiskRoutes(router *gin.RouterGroup, handler *RiskHandler) {
	group := router.Group("/risk")
	{
		group.GET("/correlations", handler.GetCorrelations)
	}
}
