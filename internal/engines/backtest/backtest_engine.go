package backtest

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"quantos/internal/models"
	"quantos/internal/series"
	"quantos/internal/types"
)

// Engine synthesizes backtest reports on demand. Each run simulates a fixed
// processing latency before the result becomes available. Overlapping runs
// are resolved by a generation counter: a run that was superseded while
// sleeping discards its result, so the newest requested run always wins.
type Engine struct {
	mu      sync.Mutex
	latency time.Duration
	rng     *rand.Rand
	hub     types.Broadcaster

	generation uint64
	result     *models.BacktestResult

	// onComplete receives every non-stale result, after it has been stored.
	onComplete func(*models.BacktestResult)
}

func NewEngine(latency time.Duration, rng *rand.Rand, hub types.Broadcaster) *Engine {
	return &Engine{
		latency: latency,
		rng:     rng,
		hub:     hub,
	}
}

// SetOnComplete registers the callback invoked with each fresh result.
// Must be called before the first Run.
func (e *Engine) SetOnComplete(fn func(*models.BacktestResult)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onComplete = fn
}

// Run starts a backtest for the given strategy. It returns immediately; the
// result is published after the configured latency unless a newer run has
// started in the meantime.
func (e *Engine) Run(strategyID string) error {
	if strategyID == "" {
		return fmt.Errorf("strategy id is required")
	}

	e.mu.Lock()
	e.generation++
	gen := e.generation
	latency := e.latency
	e.mu.Unlock()

	log.Printf("Backtest started for strategy %s (run %d)", strategyID, gen)

	go func() {
		time.Sleep(latency)

		result, err := e.synthesize(strategyID, gen)
		if err != nil {
			log.Printf("Backtest run %d discarded: %v", gen, err)
			return
		}

		if e.hub != nil {
			e.hub.BroadcastMessage(types.BacktestResult, result)
		}
		if fn := e.complete(); fn != nil {
			fn(result)
		}
		log.Printf("Backtest completed for strategy %s (run %d)", strategyID, gen)
	}()

	return nil
}

// synthesize draws the metrics and stores the result, unless a newer run
// superseded this one while it was sleeping.
func (e *Engine) synthesize(strategyID string, gen uint64) (*models.BacktestResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		return nil, fmt.Errorf("superseded by run %d", e.generation)
	}

	curve, err := series.GenerateEquityCurve(e.rng, 90, 10000)
	if err != nil {
		return nil, fmt.Errorf("generate equity curve: %w", err)
	}

	result := &models.BacktestResult{
		StrategyID:  strategyID,
		SharpeRatio: series.Round2(1.2 + e.rng.Float64()),
		TotalReturn: series.Round2(15 + e.rng.Float64()*20),
		MaxDrawdown: series.Round2(-5 - e.rng.Float64()*10),
		WinRate:     series.Round1(45 + e.rng.Float64()*20),
		EquityCurve: curve,
		Trades:      []models.Trade{},
	}

	e.result = result
	return result, nil
}

func (e *Engine) complete() func(*models.BacktestResult) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onComplete
}

// Result returns the most recently completed report, or nil if no run has
// finished yet. Results are treated as immutable once published.
func (e *Engine) Result() *models.BacktestResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// setLatency adjusts the simulated processing time. Used by tests to model
// a slow run racing a fast one.
func (e *Engine) setLatency(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latency = d
}
