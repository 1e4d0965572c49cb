package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 2*time.Second, cfg.TickInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.BacktestLatency)
	assert.Equal(t, 10*time.Second, cfg.AnalysisTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GEMINI_API_KEY", "abc123")
	t.Setenv("TICK_INTERVAL", "500ms")
	t.Setenv("BACKTEST_LATENCY", "2s")

	cfg := Load()
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "abc123", cfg.GeminiAPIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 2*time.Second, cfg.BacktestLatency)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 2*time.Second, cfg.TickInterval)
}

func TestLoadQuoteSeeds_NoFile(t *testing.T) {
	cfg := &Config{}
	seeds, err := cfg.LoadQuoteSeeds()
	require.NoError(t, err)
	assert.Nil(t, seeds)
}

func TestLoadQuoteSeeds_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.yaml")
	content := `quotes:
  - symbol: BTCUSDT
    price: 64250.10
    percentChange: 2.4
    volume: 1200000
  - symbol: ETHUSDT
    price: 3150.55
    percentChange: -0.8
    volume: 800000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := &Config{QuotesFile: path}
	seeds, err := cfg.LoadQuoteSeeds()
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, "BTCUSDT", seeds[0].Symbol)
	assert.Equal(t, 64250.10, seeds[0].Price)
	assert.Equal(t, int64(800000), seeds[1].Volume)
}

func TestLoadQuoteSeeds_Errors(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		cfg := &Config{QuotesFile: "/nonexistent/quotes.yaml"}
		_, err := cfg.LoadQuoteSeeds()
		assert.Error(t, err)
	})

	t.Run("empty_list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quotes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("quotes: []\n"), 0644))

		cfg := &Config{QuotesFile: path}
		_, err := cfg.LoadQuoteSeeds()
		assert.Error(t, err)
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quotes.yaml")
		require.NoError(t, os.WriteFile(path, []byte("quotes: [broken"), 0644))

		cfg := &Config{QuotesFile: path}
		_, err := cfg.LoadQuoteSeeds()
		assert.Error(t, err)
	})
}
