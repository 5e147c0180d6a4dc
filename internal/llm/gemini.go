package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Params  Params
}

// GeminiProvider talks to the Gemini API directly with an API key.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	params  Params
	client  *http.Client
}

func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimRight(baseURL, "/"),
		params:  cfg.Params,
		client:  &http.Client{Timeout: 35 * time.Second},
	}
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY for generation provider")
	}
	if p.model == "" {
		return "", errors.New("missing model for generation provider")
	}

	body, err := json.Marshal(newGenerateRequest(prompt, p.params))
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("generation request failed: %s", resp.Status)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", GenerationError{Reason: "malformed provider response"}
	}
	return extractText(parsed).unwrap()
}
