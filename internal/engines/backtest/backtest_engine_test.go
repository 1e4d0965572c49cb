package backtest

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantos/internal/models"
)

// waitForResult polls until the engine publishes a result or the deadline
// passes.
func waitForResult(t *testing.T, e *Engine, deadline time.Duration) *models.BacktestResult {
	t.Helper()

	timeout := time.After(deadline)
	for {
		if r := e.Result(); r != nil {
			return r
		}
		select {
		case <-timeout:
			t.Fatal("no backtest result before deadline")
			return nil
		case <-time.After(2 * time.Millisecond):
		}
	}
}

func TestRun_MetricRanges(t *testing.T) {
	t.Parallel()

	e := NewEngine(10*time.Millisecond, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, e.Run("strat-1"))

	result := waitForResult(t, e, time.Second)
	assert.Equal(t, "strat-1", result.StrategyID)
	assert.GreaterOrEqual(t, result.SharpeRatio, 1.2)
	assert.Less(t, result.SharpeRatio, 2.21)
	assert.GreaterOrEqual(t, result.TotalReturn, 15.0)
	assert.Less(t, result.TotalReturn, 35.01)
	assert.LessOrEqual(t, result.MaxDrawdown, -5.0)
	assert.GreaterOrEqual(t, result.MaxDrawdown, -15.01)
	assert.GreaterOrEqual(t, result.WinRate, 0.0)
	assert.LessOrEqual(t, result.WinRate, 100.0)
	assert.Len(t, result.EquityCurve, 91)
	assert.Empty(t, result.Trades)
	assert.NotNil(t, result.Trades)
}

func TestRun_RequiresStrategyID(t *testing.T) {
	t.Parallel()

	e := NewEngine(time.Millisecond, rand.New(rand.NewSource(1)), nil)
	assert.Error(t, e.Run(""))
}

func TestRun_LatencyElapsesBeforeResult(t *testing.T) {
	t.Parallel()

	latency := 80 * time.Millisecond
	e := NewEngine(latency, rand.New(rand.NewSource(1)), nil)

	start := time.Now()
	require.NoError(t, e.Run("strat-1"))
	assert.Nil(t, e.Result(), "result must not be available immediately")

	waitForResult(t, e, time.Second)
	assert.GreaterOrEqual(t, time.Since(start), latency)
}

func TestRun_NewerRunSupersedesInFlight(t *testing.T) {
	t.Parallel()

	e := NewEngine(150*time.Millisecond, rand.New(rand.NewSource(1)), nil)

	var mu sync.Mutex
	var completed []string
	e.SetOnComplete(func(r *models.BacktestResult) {
		mu.Lock()
		completed = append(completed, r.StrategyID)
		mu.Unlock()
	})

	// Slow run for A, then a fast run for B that finishes first. When A's
	// latency finally elapses it must notice it was superseded.
	require.NoError(t, e.Run("A"))
	e.setLatency(10 * time.Millisecond)
	require.NoError(t, e.Run("B"))

	result := waitForResult(t, e, time.Second)
	assert.Equal(t, "B", result.StrategyID)

	// Give A's goroutine time to wake up and (correctly) discard itself.
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, "B", e.Result().StrategyID, "stale run must not overwrite the newest result")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"B"}, completed, "superseded runs must not reach the completion callback")
}
