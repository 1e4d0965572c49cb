package services

import (
	"fmt"
	"math/rand"

	"quantos/internal/models"
	"quantos/internal/series"
)

// DefaultRiskAssets is the asset universe shown in the dashboard correlation
// panel.
var DefaultRiskAssets = []string{"AAPL", "TSLA", "GOOGL", "NVDA", "BTC"}

// RiskService serves the correlation matrix computed once at startup.
type RiskService struct {
	rows []models.CorrelationRow
}

func NewRiskService(rng *rand.Rand, assets []string) (*RiskService, error) {
	rows, err := series.GenerateCorrelationMatrix(rng, assets)
	if err != nil {
		return nil, fmt.Errorf("generate correlation matrix: %w", err)
	}
	return &RiskService{rows: rows}, nil
}

// Correlations returns the matrix rows. Rows are read-only after startup.
func (s *RiskService) Correlations() []models.CorrelationRow {
	return s.rows
}
