package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/lowentech/assistant-api/internal/config"
	"github.com/lowentech/assistant-api/internal/llm"
	"github.com/lowentech/assistant-api/internal/search"
	"github.com/lowentech/assistant-api/internal/tts"
	"github.com/lowentech/assistant-api/internal/weather"
)

type WeatherService interface {
	Current(ctx context.Context, city string) (*weather.Snapshot, error)
}

type SearchService interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

type SpeechService interface {
	Synthesize(ctx context.Context, text string) (*tts.Result, error)
}

type Server struct {
	cfg       config.Config
	generator llm.Provider
	weather   WeatherService
	search    SearchService
	speech    SpeechService
	now       func() time.Time
}

func NewServer(cfg config.Config, generator llm.Provider, weatherSvc WeatherService, searchSvc SearchService, speech SpeechService) *Server {
	return &Server{
		cfg:       cfg,
		generator: generator,
		weather:   weatherSvc,
		search:    searchSvc,
		speech:    speech,
		now:       time.Now,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Post("/api/ask", s.ask)
	r.Post("/api/speech", s.speak)
	r.Get("/health", s.health)
	r.Get("/ready", s.ready)
	r.MethodNotAllowed(methodNotAllowed)

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		requestID := uuid.New().String()
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s (%s)", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

type subsystemStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status     string                     `json:"status"`
	Subsystems map[string]subsystemStatus `json:"subsystems"`
}

// ready reports which pipeline stages have credentials. Optional enrichment
// being unconfigured degrades the answer quality, not the service, so only a
// missing generation credential turns the overall status.
func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	subsystems := map[string]subsystemStatus{}
	overall := http.StatusOK

	if s.generationConfigured() {
		subsystems["generation"] = subsystemStatus{Status: "ok"}
	} else {
		subsystems["generation"] = subsystemStatus{Status: "missing credential"}
		overall = http.StatusServiceUnavailable
	}
	subsystems["weather"] = optionalStatus(s.cfg.OpenWeatherAPIKey != "")
	subsystems["search"] = optionalStatus(s.cfg.SearchAPIKey != "" && s.cfg.SearchEngineID != "")
	subsystems["speech"] = optionalStatus(s.cfg.TTSAPIKey != "")

	status := "ok"
	if overall != http.StatusOK {
		status = "degraded"
	}
	writeJSONStatus(w, readinessResponse{Status: status, Subsystems: subsystems}, overall)
}

func (s *Server) generationConfigured() bool {
	switch s.cfg.GenProvider {
	case "vertex":
		return s.cfg.ServiceAccountJSON != ""
	default:
		return s.cfg.GeminiAPIKey != ""
	}
}

func optionalStatus(configured bool) subsystemStatus {
	if configured {
		return subsystemStatus{Status: "ok"}
	}
	return subsystemStatus{Status: "skipped"}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSONStatus(w http.ResponseWriter, value any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, statusCode int, message, details string) {
	writeJSONStatus(w, errorResponse{Error: message, Details: details}, statusCode)
}

func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	return server.ListenAndServe()
}
