package series

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"quantos/internal/models"
)

// Input validation errors for the generators.
var (
	ErrInvalidDayCount   = errors.New("day count must be non-negative")
	ErrInvalidStartValue = errors.New("start value must be positive")
	ErrNoAssets          = errors.New("asset list must not be empty")
)

const (
	// driftHalfWidth bounds the per-day multiplicative step of the equity
	// curve; driftBias shifts the distribution slightly above zero so the
	// curve trends gently upward.
	driftHalfWidth = 0.03
	driftBias      = 0.48

	// Off-diagonal correlation coefficients are sampled uniformly from
	// [correlationMin, correlationMin+correlationSpan). The range exceeds
	// [-1, 1] on purpose: these are synthetic display values, not
	// statistically valid correlations.
	correlationMin  = -0.5
	correlationSpan = 2.0
)

// GenerateEquityCurve produces days+1 equity points ending today, walking a
// multiplicative random drift from startValue. Every value is rounded to 2
// decimal places. The rng is injected so tests can seed it; production
// callers pass a shared unseeded source.
func GenerateEquityCurve(rng *rand.Rand, days int, startValue float64) ([]models.EquityPoint, error) {
	if days < 0 {
		return nil, ErrInvalidDayCount
	}
	if startValue <= 0 {
		return nil, ErrInvalidStartValue
	}

	now := time.Now()
	if days == 0 {
		return []models.EquityPoint{{
			Date:  now.Format("2006-01-02"),
			Value: round2(startValue),
		}}, nil
	}

	value := startValue
	points := make([]models.EquityPoint, 0, days+1)
	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		drift := (rng.Float64() - driftBias) * driftHalfWidth
		value = value * (1 + drift)
		points = append(points, models.EquityPoint{
			Date:  date.Format("2006-01-02"),
			Value: round2(value),
		})
	}

	return points, nil
}

// GenerateCorrelationMatrix produces one row per asset, in input order. The
// self-correlation is exactly 1.0; every other entry is sampled
// independently, so row[a][b] and row[b][a] will usually differ.
func GenerateCorrelationMatrix(rng *rand.Rand, assets []string) ([]models.CorrelationRow, error) {
	if len(assets) == 0 {
		return nil, ErrNoAssets
	}

	rows := make([]models.CorrelationRow, 0, len(assets))
	for _, asset := range assets {
		correlations := make(map[string]float64, len(assets))
		for _, other := range assets {
			if asset == other {
				correlations[other] = 1.0
			} else {
				correlations[other] = round2(rng.Float64()*correlationSpan + correlationMin)
			}
		}
		rows = append(rows, models.CorrelationRow{
			Asset:        asset,
			Correlations: correlations,
		})
	}

	return rows, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round2 rounds to 2 decimal places; exported for the metric synthesizer.
func Round2(v float64) float64 {
	return round2(v)
}

// Round1 rounds to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
