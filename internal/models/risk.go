package models

// CorrelationRow is one row of the asset correlation matrix shown on the
// dashboard. Correlations maps asset name to a coefficient. The values are
// synthetic display data sampled from [-0.5, 1.5), so callers must not
// assume they fall inside the mathematically valid [-1, 1] band, and the
// matrix is not guaranteed symmetric. The diagonal entry is always 1.0.
type CorrelationRow struct {
	Asset        string             `json:"asset"`
	Correlations map[string]float64 `json:"correlations"`
}
