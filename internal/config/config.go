package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"quantos/internal/models"
)

type Config struct {
	Port        string
	Environment string

	// Gemini collaborator settings
	GeminiAPIKey string
	GeminiModel  string

	// Simulation timings
	TickInterval    time.Duration
	BacktestLatency time.Duration
	AnalysisTimeout time.Duration

	// Optional YAML file overriding the built-in quote seed list
	QuotesFile string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		TickInterval:    getDurationEnv("TICK_INTERVAL", 2*time.Second),
		BacktestLatency: getDurationEnv("BACKTEST_LATENCY", 1500*time.Millisecond),
		AnalysisTimeout: getDurationEnv("ANALYSIS_TIMEOUT", 10*time.Second),
		QuotesFile:      getEnv("QUOTES_FILE", ""),
	}

	return config
}

// LoadQuoteSeeds reads the quote seed list from the configured YAML file.
// Returns (nil, nil) when no file is configured so callers fall back to the
// built-in seed list.
func (c *Config) LoadQuoteSeeds() ([]models.Quote, error) {
	if c.QuotesFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(c.QuotesFile)
	if err != nil {
		return nil, fmt.Errorf("read quotes file: %w", err)
	}

	var seeds struct {
		Quotes []models.Quote `yaml:"quotes"`
	}
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse quotes file: %w", err)
	}
	if len(seeds.Quotes) == 0 {
		return nil, fmt.Errorf("quotes file %s contains no quotes", c.QuotesFile)
	}

	return seeds.Quotes, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}
