package api

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lowentech/assistant-api/internal/config"
	"github.com/lowentech/assistant-api/internal/search"
	"github.com/lowentech/assistant-api/internal/tts"
	"github.com/lowentech/assistant-api/internal/weather"
)

type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Current(ctx context.Context, city string) (*weather.Snapshot, error) {
	args := m.Called(ctx, city)
	var snapshot *weather.Snapshot
	if value := args.Get(0); value != nil {
		snapshot = value.(*weather.Snapshot)
	}
	return snapshot, args.Error(1)
}

type MockSearch struct {
	mock.Mock
}

func (m *MockSearch) Search(ctx context.Context, query string) ([]search.Result, error) {
	args := m.Called(ctx, query)
	var results []search.Result
	if value := args.Get(0); value != nil {
		results = value.([]search.Result)
	}
	return results, args.Error(1)
}

type MockSpeech struct {
	mock.Mock
}

func (m *MockSpeech) Synthesize(ctx context.Context, text string) (*tts.Result, error) {
	args := m.Called(ctx, text)
	var result *tts.Result
	if value := args.Get(0); value != nil {
		result = value.(*tts.Result)
	}
	return result, args.Error(1)
}

// captureProvider records the prompt handed to the generation stage.
type captureProvider struct {
	prompt string
	text   string
	err    error
}

func (p *captureProvider) Generate(ctx context.Context, prompt string) (string, error) {
	p.prompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

func testConfig() config.Config {
	return config.Config{
		Port:                 "8080",
		GenProvider:          "gemini",
		GeminiAPIKey:         "test-key",
		LocationLabel:        "Türkiye/Almanya",
		DefaultCity:          "erfurt",
		EnrichTimeoutSeconds: 5,
	}
}

func fixedNow() time.Time {
	return time.Date(2026, time.August, 31, 14, 30, 0, 0, time.UTC)
}
