package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lowentech/assistant-api/internal/api"
	"github.com/lowentech/assistant-api/internal/config"
	"github.com/lowentech/assistant-api/internal/credentials"
	"github.com/lowentech/assistant-api/internal/llm"
	"github.com/lowentech/assistant-api/internal/search"
	"github.com/lowentech/assistant-api/internal/tts"
	"github.com/lowentech/assistant-api/internal/weather"
)

type server interface {
	Start(ctx context.Context, addr string) error
}

var (
	loadConfig = func() config.Config {
		_ = godotenv.Load()
		return config.Load()
	}
	newServer = func(cfg config.Config, generator llm.Provider, weatherSvc api.WeatherService, searchSvc api.SearchService, speech api.SpeechService) server {
		return api.NewServer(cfg, generator, weatherSvc, searchSvc, speech)
	}
	notifyContext = signal.NotifyContext
)

// siteSearcher adapts the search client to the weather fallback dependency.
type siteSearcher struct {
	client *search.Client
}

func (s siteSearcher) SearchSites(ctx context.Context, query string, sites []string) ([]weather.SearchHit, error) {
	results, err := s.client.SearchSites(ctx, query, sites)
	if err != nil {
		return nil, err
	}
	hits := make([]weather.SearchHit, 0, len(results))
	for _, result := range results {
		hits = append(hits, weather.SearchHit{Title: result.Title, Snippet: result.Snippet})
	}
	return hits, nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := loadConfig()
	ctx, cancel := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Credential material is normalized once here, never per request.
	var cred *credentials.Credential
	if cfg.GenProvider == "vertex" {
		if cfg.ServiceAccountJSON == "" {
			log.Printf("warning: GCP_SERVICE_ACCOUNT_JSON is not set; generation requests will fail")
		} else {
			parsed, err := credentials.New(cfg.ServiceAccountJSON)
			if err != nil {
				return fmt.Errorf("service account credential: %w", err)
			}
			cred = parsed
		}
	}

	generator, err := llm.NewProvider(llm.Config{
		Provider:   cfg.GenProvider,
		Model:      cfg.GenModel,
		APIKey:     cfg.GeminiAPIKey,
		Credential: cred,
		Location:   cfg.GCPLocation,
		Params: llm.Params{
			MaxOutputTokens: cfg.GenMaxOutputTokens,
			Temperature:     cfg.GenTemperature,
			TopP:            cfg.GenTopP,
		},
	})
	if err != nil {
		return err
	}

	searchClient := search.NewClient(cfg.SearchAPIKey, cfg.SearchEngineID, cfg.SearchMaxResults)
	weatherClient := weather.NewClient(cfg.OpenWeatherAPIKey)
	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		weatherClient = weatherClient.WithFallback(siteSearcher{client: searchClient})
	}
	synthesizer := tts.NewSynthesizer(cfg.TTSAPIKey)

	srv := newServer(cfg, generator, weatherClient, searchClient, synthesizer)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("assistant API listening on %s", addr)
	if err := srv.Start(ctx, addr); err != nil {
		return err
	}
	return nil
}
