package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds surfaced by the Gemini client. Callers distinguish a missing
// credential (actionable by the user) from a transport or service failure.
var (
	ErrNotConfigured    = errors.New("GEMINI_API_KEY is not set")
	ErrGenerationFailed = errors.New("generation failed")
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiService wraps the Google Generative Language REST API.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiService creates a new Gemini client. An empty apiKey is allowed;
// calls will fail with ErrNotConfigured until one is provided.
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiBaseURL,
		client:  &http.Client{},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateStrategyCode asks the model for runnable backtrader Python source
// implementing the described strategy. The returned text is raw code with no
// markdown fencing.
func (g *GeminiService) GenerateStrategyCode(ctx context.Context, description string) (string, error) {
	if description == "" {
		return "", fmt.Errorf("description is required")
	}

	prompt := fmt.Sprintf(`You are a quantitative finance expert. Write a Python script using the 'backtrader' library for the following trading strategy: %q.
Return ONLY the Python code. Do not include markdown formatting (like `+"```python"+`), just the raw code.`, description)

	return g.generateContent(ctx, prompt)
}

// AnalyzeBacktestResults asks the model for a short risk commentary on the
// given metrics summary and strategy code snippet. Errors are returned as-is;
// the analysis orchestrator owns the fallback policy.
func (g *GeminiService) AnalyzeBacktestResults(ctx context.Context, metricsSummary, codeSnippet string) (string, error) {
	prompt := fmt.Sprintf(`Analyze the following backtest metrics and strategy code for a quantitative trading strategy.
Provide a concise risk assessment (max 100 words) and one suggestion for improvement.

Metrics: %s

Strategy Code Snippet:
%s...`, metricsSummary, codeSnippet)

	return g.generateContent(ctx, prompt)
}

func (g *GeminiService) generateContent(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrGenerationFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}
