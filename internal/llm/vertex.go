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

	"golang.org/x/oauth2"

	"github.com/lowentech/assistant-api/internal/credentials"
)

type VertexConfig struct {
	Credential *credentials.Credential
	Model      string
	Location   string
	BaseURL    string
	Params     Params
}

// VertexProvider calls the same generateContent protocol through the Vertex
// endpoint, authenticating with the normalized service-account credential.
type VertexProvider struct {
	cred     *credentials.Credential
	model    string
	location string
	baseURL  string
	params   Params
	client   *http.Client
	tokens   oauth2.TokenSource
}

func NewVertexProvider(cfg VertexConfig) *VertexProvider {
	location := cfg.Location
	if location == "" {
		location = "us-central1"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s-aiplatform.googleapis.com", location)
	}
	return &VertexProvider{
		cred:     cfg.Credential,
		model:    cfg.Model,
		location: location,
		baseURL:  strings.TrimRight(baseURL, "/"),
		params:   cfg.Params,
		client:   &http.Client{Timeout: 35 * time.Second},
	}
}

func (p *VertexProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.cred == nil {
		return "", errors.New("missing GCP_SERVICE_ACCOUNT_JSON for generation provider")
	}
	if p.model == "" {
		return "", errors.New("missing model for generation provider")
	}

	tokens := p.tokens
	if tokens == nil {
		tokens = p.cred.TokenSource(ctx)
	}
	token, err := tokens.Token()
	if err != nil {
		return "", fmt.Errorf("mint access token: %w", err)
	}

	body, err := json.Marshal(newGenerateRequest(prompt, p.params))
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/v1/projects/%s/locations/%s/publishers/google/models/%s:generateContent",
		p.baseURL, p.cred.ProjectID(), p.location, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

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
