package market

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"quantos/internal/models"
	"quantos/internal/types"
)

// tickDelta bounds the per-tick price perturbation: price moves by a uniform
// amount in [-tickDelta, +tickDelta). Only price and the observation time
// move on a tick; percent change and volume keep their seeded values.
const tickDelta = 0.25

// DefaultQuotes is the built-in instrument seed list, used when no quotes
// file is configured.
func DefaultQuotes() []models.Quote {
	now := time.Now()
	return []models.Quote{
		{Symbol: "AAPL", Price: 175.43, PercentChange: 1.25, Volume: 45000000, ObservedAt: now},
		{Symbol: "TSLA", Price: 242.10, PercentChange: -3.40, Volume: 89000000, ObservedAt: now},
		{Symbol: "GOOGL", Price: 138.90, PercentChange: 0.55, Volume: 21000000, ObservedAt: now},
		{Symbol: "NVDA", Price: 460.15, PercentChange: 8.90, Volume: 55000000, ObservedAt: now},
		{Symbol: "AMZN", Price: 129.30, PercentChange: -0.20, Volume: 32000000, ObservedAt: now},
		{Symbol: "MSFT", Price: 335.60, PercentChange: 2.10, Volume: 28000000, ObservedAt: now},
	}
}

// Engine perturbs a fixed list of instrument quotes on a wall-clock cadence
// and broadcasts each new snapshot to connected clients.
type Engine struct {
	mu       sync.RWMutex
	quotes   []models.Quote
	interval time.Duration
	rng      *rand.Rand
	hub      types.Broadcaster

	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewEngine creates a market engine over the given seed quotes. hub may be
// nil when no push channel is attached (tests, CLI inspection).
func NewEngine(seed []models.Quote, interval time.Duration, rng *rand.Rand, hub types.Broadcaster) *Engine {
	quotes := make([]models.Quote, len(seed))
	copy(quotes, seed)

	return &Engine{
		quotes:   quotes,
		interval: interval,
		rng:      rng,
		hub:      hub,
	}
}

// Start launches the tick loop. It stops when the parent context is
// cancelled or Stop is called; no tick fires after that.
func (e *Engine) Start(parent context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return fmt.Errorf("market engine already running")
	}

	e.ctx, e.cancel = context.WithCancel(parent)
	e.done = make(chan struct{})
	e.running = true

	go e.run()

	log.Printf("Market engine started with %d quotes, tick interval %v", len(e.quotes), e.interval)
	return nil
}

// Stop tears down the tick loop and waits for it to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	cancel := e.cancel
	done := e.done
	e.running = false
	e.mu.Unlock()

	cancel()
	<-done
	log.Printf("Market engine stopped")
}

func (e *Engine) run() {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	defer close(e.done)

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick applies one in-place perturbation pass over the quote list.
func (e *Engine) tick() {
	now := time.Now()

	e.mu.Lock()
	for i := range e.quotes {
		e.quotes[i].Price += e.rng.Float64()*2*tickDelta - tickDelta
		e.quotes[i].ObservedAt = now
	}
	snapshot := make([]models.Quote, len(e.quotes))
	copy(snapshot, e.quotes)
	e.mu.Unlock()

	if e.hub != nil {
		e.hub.BroadcastMessage(types.MarketUpdate, models.QuotesResponse{Quotes: snapshot})
	}
}

// Quotes returns a snapshot of the quote list, optionally filtered by a
// case-insensitive substring match on the symbol. The underlying list is
// never mutated by filtering.
func (e *Engine) Quotes(filter string) []models.Quote {
	e.mu.RLock()
	defer e.mu.RUnlock()

	needle := strings.ToLower(filter)
	result := make([]models.Quote, 0, len(e.quotes))
	for _, q := range e.quotes {
		if needle == "" || strings.Contains(strings.ToLower(q.Symbol), needle) {
			result = append(result, q)
		}
	}
	return result
}
