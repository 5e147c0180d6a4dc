package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/lowentech/assistant-api/internal/classify"
	"github.com/lowentech/assistant-api/internal/prompt"
	"github.com/lowentech/assistant-api/internal/search"
	"github.com/lowentech/assistant-api/internal/weather"
)

type askRequest struct {
	Prompt string `json:"prompt"`
}

type askResponse struct {
	Text string `json:"text"`
}

// ask runs the whole pipeline: classify, enrich, assemble, generate.
// Enrichment failures degrade to an unenriched prompt; only the generation
// call failing aborts the request.
func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	userPrompt := strings.TrimSpace(req.Prompt)
	if userPrompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required", "")
		return
	}
	if s.generator == nil {
		writeError(w, http.StatusInternalServerError, "generation provider is not configured", "")
		return
	}

	intent := classify.Classify(userPrompt)
	if intent == classify.IntentNone && s.cfg.SearchAlways {
		intent = classify.IntentSearch
	}

	pctx := prompt.Context{
		GeneratedAt:     s.now(),
		LocationLabel:   s.cfg.LocationLabel,
		EnrichmentTried: intent != classify.IntentNone,
	}
	switch intent {
	case classify.IntentWeather:
		pctx.Weather = s.lookupWeather(r.Context(), userPrompt)
	case classify.IntentSearch:
		pctx.SearchResults = s.lookupSearch(r.Context(), userPrompt)
	}

	text, err := s.generator.Generate(r.Context(), prompt.Compose(pctx, userPrompt))
	if err != nil {
		log.Printf("ask: generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "text generation failed", err.Error())
		return
	}

	writeJSONStatus(w, askResponse{Text: text}, http.StatusOK)
}

func (s *Server) lookupWeather(ctx context.Context, userPrompt string) *weather.Snapshot {
	if s.weather == nil {
		return nil
	}
	ctx, cancel := s.enrichContext(ctx)
	defer cancel()

	city := weather.DetectCity(userPrompt, s.cfg.DefaultCity)
	snapshot, err := s.weather.Current(ctx, city)
	if err != nil {
		if errors.Is(err, weather.ErrMissingAPIKey) {
			log.Printf("ask: weather skipped, no API key")
		} else {
			log.Printf("ask: weather lookup failed: %v", err)
		}
		return nil
	}
	return snapshot
}

func (s *Server) lookupSearch(ctx context.Context, userPrompt string) []search.Result {
	if s.search == nil {
		return nil
	}
	ctx, cancel := s.enrichContext(ctx)
	defer cancel()

	results, err := s.search.Search(ctx, userPrompt)
	if err != nil {
		if errors.Is(err, search.ErrMissingCredentials) {
			log.Printf("ask: search skipped, no credentials")
		} else {
			log.Printf("ask: search failed: %v", err)
		}
		return nil
	}
	return results
}

func (s *Server) enrichContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.cfg.EnrichTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
