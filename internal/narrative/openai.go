package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/ohare93/onboard/internal/roster"
)

// OpenAIOpts configures an OpenAI-compatible chat completions backend
type OpenAIOpts struct {
	BaseURL string // e.g. https://api.openai.com
	APIKey  string
	Model   string // e.g. gpt-4o-mini
	Client  *http.Client
}

// OpenAIClient talks to /v1/chat/completions
type OpenAIClient struct {
	baseURL string
	model   string
	client  *http.Client

	mu     sync.RWMutex
	apiKey string
}

// NewOpenAIClient creates a client; the key may be supplied later with SetAPIKey
func NewOpenAIClient(opts OpenAIOpts) *OpenAIClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com"
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	return &OpenAIClient{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		model:   opts.Model,
		client:  opts.Client,
		apiKey:  opts.APIKey,
	}
}

// SetAPIKey replaces the credential
func (c *OpenAIClient) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

// HasAPIKey reports whether a credential is present
func (c *OpenAIClient) HasAPIKey() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey != ""
}

// Analyze requests a JSON insight for one record
func (c *OpenAIClient) Analyze(ctx context.Context, e roster.Employee) (Insight, error) {
	text, err := c.complete(ctx, analysisSystemPrompt, AnalysisPrompt(e), true)
	if err != nil {
		return Insight{}, err
	}
	return parseInsight(text)
}

// SummarizeMarket requests a free-text roster summary
func (c *OpenAIClient) SummarizeMarket(ctx context.Context, employees []roster.Employee) (string, error) {
	text, err := c.complete(ctx, marketSystemPrompt, MarketPrompt(employees), false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *OpenAIClient) complete(ctx context.Context, system, prompt string, jsonMode bool) (string, error) {
	c.mu.RLock()
	key := c.apiKey
	c.mu.RUnlock()
	if key == "" {
		return "", fmt.Errorf("%w: no API key", ErrUnavailable)
	}

	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": prompt},
		},
	}
	if jsonMode {
		reqBody["response_format"] = map[string]any{"type": "json_object"}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}
	return apiResp.Choices[0].Message.Content, nil
}
