package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"quantos/internal/models"
	"quantos/internal/types"
)

// FallbackAnalysis is shown when the collaborator fails or times out. The
// dashboard stays usable with degraded commentary instead of an error.
const FallbackAnalysis = "Could not perform AI analysis at this time."

// codePrefixLimit bounds how much strategy source is sent with each request.
const codePrefixLimit = 500

// Analyzer is the external-collaborator contract the orchestrator consumes.
type Analyzer interface {
	AnalyzeBacktestResults(ctx context.Context, metricsSummary, codeSnippet string) (string, error)
}

// AnalysisSnapshot is the read-only view state: nil Text plus Loading=true
// means a request is in flight, nil Text plus Loading=false means no
// analysis has been requested yet.
type AnalysisSnapshot struct {
	Text    *string `json:"text"`
	Loading bool    `json:"loading"`
}

// AnalysisService attaches a textual risk commentary to the latest backtest
// result. Requests may overlap when backtests are re-run quickly; a
// generation counter ensures only the response for the newest result is ever
// applied, whatever order responses arrive in.
type AnalysisService struct {
	mu       sync.Mutex
	analyzer Analyzer
	timeout  time.Duration
	hub      types.Broadcaster

	generation uint64
	text       string
	ready      bool
	loading    bool

	// onReady, if set, observes every applied analysis text.
	onReady func(text string)
}

func NewAnalysisService(analyzer Analyzer, timeout time.Duration, hub types.Broadcaster) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		timeout:  timeout,
		hub:      hub,
	}
}

// SetOnReady registers an observer for applied analysis texts. Must be
// called before the first OnResult.
func (s *AnalysisService) SetOnReady(fn func(text string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReady = fn
}

// OnResult reacts to a freshly completed backtest: it supersedes any
// in-flight request and issues a new one for this result.
func (s *AnalysisService) OnResult(result *models.BacktestResult, strategyCode string) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.text = ""
	s.ready = false
	s.loading = true
	s.mu.Unlock()

	s.broadcast()

	summary := fmt.Sprintf("Sharpe: %s, MaxDD: %s%%, Return: %s%%",
		formatMetric(result.SharpeRatio),
		formatMetric(result.MaxDrawdown),
		formatMetric(result.TotalReturn))
	snippet := truncate(strategyCode, codePrefixLimit)

	go s.request(gen, summary, snippet)
}

func (s *AnalysisService) request(gen uint64, summary, snippet string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	text, err := s.analyzer.AnalyzeBacktestResults(ctx, summary, snippet)
	if err != nil {
		log.Printf("Analysis request failed, using fallback: %v", err)
		text = FallbackAnalysis
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		log.Printf("Dropping stale analysis response (run %d, current %d)", gen, s.generation)
		return
	}
	s.text = text
	s.ready = true
	s.loading = false
	onReady := s.onReady
	s.mu.Unlock()

	s.broadcast()
	if onReady != nil {
		onReady(text)
	}
}

// Snapshot returns the current view state.
func (s *AnalysisService) Snapshot() AnalysisSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := AnalysisSnapshot{Loading: s.loading}
	if s.ready {
		text := s.text
		snap.Text = &text
	}
	return snap
}

func (s *AnalysisService) broadcast() {
	if s.hub != nil {
		s.hub.BroadcastMessage(types.AnalysisUpdate, s.Snapshot())
	}
}

// formatMetric renders a float the way the dashboard displays it: no
// trailing zeros, no exponent.
func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
