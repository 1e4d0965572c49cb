package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantos/internal/models"
)

// scriptedAnalyzer returns canned responses keyed by the code snippet it
// receives, optionally blocking until released.
type scriptedAnalyzer struct {
	mu       sync.Mutex
	requests []string

	respond func(ctx context.Context, summary, snippet string) (string, error)
}

func (a *scriptedAnalyzer) AnalyzeBacktestResults(ctx context.Context, summary, snippet string) (string, error) {
	a.mu.Lock()
	a.requests = append(a.requests, summary)
	a.mu.Unlock()
	return a.respond(ctx, summary, snippet)
}

func sampleResult(strategyID string) *models.BacktestResult {
	return &models.BacktestResult{
		StrategyID:  strategyID,
		SharpeRatio: 1.85,
		TotalReturn: 22.5,
		MaxDrawdown: -9.33,
		WinRate:     55.1,
	}
}

func waitForSnapshot(t *testing.T, s *AnalysisService, pred func(AnalysisSnapshot) bool) AnalysisSnapshot {
	t.Helper()

	deadline := time.After(time.Second)
	for {
		snap := s.Snapshot()
		if pred(snap) {
			return snap
		}
		select {
		case <-deadline:
			t.Fatalf("snapshot condition not reached, last: %+v", snap)
		case <-time.After(2 * time.Millisecond):
		}
	}
}

func TestOnResult_Success(t *testing.T) {
	t.Parallel()

	analyzer := &scriptedAnalyzer{
		respond: func(ctx context.Context, summary, snippet string) (string, error) {
			return "Drawdown risk is moderate.", nil
		},
	}
	s := NewAnalysisService(analyzer, time.Second, nil)

	assert.Nil(t, s.Snapshot().Text)
	assert.False(t, s.Snapshot().Loading)

	s.OnResult(sampleResult("strat-1"), "print('hello')")

	snap := waitForSnapshot(t, s, func(snap AnalysisSnapshot) bool { return snap.Text != nil })
	assert.Equal(t, "Drawdown risk is moderate.", *snap.Text)
	assert.False(t, snap.Loading)

	analyzer.mu.Lock()
	defer analyzer.mu.Unlock()
	require.Len(t, analyzer.requests, 1)
	assert.Equal(t, "Sharpe: 1.85, MaxDD: -9.33%, Return: 22.5%", analyzer.requests[0])
}

func TestOnResult_FailureFallsBack(t *testing.T) {
	t.Parallel()

	analyzer := &scriptedAnalyzer{
		respond: func(ctx context.Context, summary, snippet string) (string, error) {
			return "", errors.New("service unavailable")
		},
	}
	s := NewAnalysisService(analyzer, time.Second, nil)

	s.OnResult(sampleResult("strat-1"), "code")

	snap := waitForSnapshot(t, s, func(snap AnalysisSnapshot) bool { return snap.Text != nil })
	assert.Equal(t, FallbackAnalysis, *snap.Text)
	assert.False(t, snap.Loading, "failure must still end in the ready state")
}

func TestOnResult_TimeoutFallsBack(t *testing.T) {
	t.Parallel()

	analyzer := &scriptedAnalyzer{
		respond: func(ctx context.Context, summary, snippet string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	s := NewAnalysisService(analyzer, 20*time.Millisecond, nil)

	s.OnResult(sampleResult("strat-1"), "code")

	snap := waitForSnapshot(t, s, func(snap AnalysisSnapshot) bool { return snap.Text != nil })
	assert.Equal(t, FallbackAnalysis, *snap.Text)
}

func TestOnResult_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	releaseFirst := make(chan struct{})
	firstStarted := make(chan struct{})
	var calls int
	var mu sync.Mutex

	analyzer := &scriptedAnalyzer{
		respond: func(ctx context.Context, summary, snippet string) (string, error) {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()

			if n == 1 {
				close(firstStarted)
				<-releaseFirst
				return "analysis for A", nil
			}
			return "analysis for B", nil
		},
	}
	s := NewAnalysisService(analyzer, time.Second, nil)

	s.OnResult(sampleResult("A"), "code A")
	<-firstStarted
	s.OnResult(sampleResult("B"), "code B")

	snap := waitForSnapshot(t, s, func(snap AnalysisSnapshot) bool { return snap.Text != nil })
	assert.Equal(t, "analysis for B", *snap.Text)

	// Now let the stale request complete; its response must be ignored.
	close(releaseFirst)
	time.Sleep(50 * time.Millisecond)

	snap = s.Snapshot()
	require.NotNil(t, snap.Text)
	assert.Equal(t, "analysis for B", *snap.Text, "late response for the old result must not win")
}

func TestOnResult_LoadingWhileRequesting(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	analyzer := &scriptedAnalyzer{
		respond: func(ctx context.Context, summary, snippet string) (string, error) {
			close(started)
			<-release
			return "done", nil
		},
	}
	s := NewAnalysisService(analyzer, time.Second, nil)

	s.OnResult(sampleResult("strat-1"), "code")
	<-started

	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.Nil(t, snap.Text)

	close(release)
	waitForSnapshot(t, s, func(snap AnalysisSnapshot) bool { return snap.Text != nil })
}

func TestOnResult_CodeSnippetTruncated(t *testing.T) {
	t.Parallel()

	snippets := make(chan string, 1)
	analyzer := &scriptedAnalyzer{
		respond: func(ctx context.Context, summary, snippet string) (string, error) {
			snippets <- snippet
			return "ok", nil
		},
	}
	s := NewAnalysisService(analyzer, time.Second, nil)

	long := strings.Repeat("x", 800)
	s.OnResult(sampleResult("strat-1"), long)

	waitForSnapshot(t, s, func(snap AnalysisSnapshot) bool { return snap.Text != nil })
	assert.Len(t, <-snippets, codePrefixLimit)
}

func TestOnResult_OnReadyObserver(t *testing.T) {
	t.Parallel()

	analyzer := &scriptedAnalyzer{
		respond: func(ctx context.Context, summary, snippet string) (string, error) {
			return "observed", nil
		},
	}
	s := NewAnalysisService(analyzer, time.Second, nil)

	texts := make(chan string, 1)
	s.SetOnReady(func(text string) { texts <- text })

	s.OnResult(sampleResult("strat-1"), "code")

	select {
	case text := <-texts:
		assert.Equal(t, "observed", text)
	case <-time.After(time.Second):
		t.Fatal("onReady was not invoked")
	}
}
