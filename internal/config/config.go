package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                 string
	GenProvider          string
	GenModel             string
	GeminiAPIKey         string
	ServiceAccountJSON   string
	GCPLocation          string
	GenMaxOutputTokens   int
	GenTemperature       float64
	GenTopP              float64
	SearchAPIKey         string
	SearchEngineID       string
	SearchMaxResults     int
	SearchAlways         bool
	OpenWeatherAPIKey    string
	TTSAPIKey            string
	DefaultCity          string
	LocationLabel        string
	EnrichTimeoutSeconds int
}

func Load() Config {
	return Config{
		Port:                 getEnv("PORT", "8080"),
		GenProvider:          getEnv("GEN_PROVIDER", "gemini"),
		GenModel:             getEnv("GEN_MODEL", "gemini-2.0-flash"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		ServiceAccountJSON:   getEnv("GCP_SERVICE_ACCOUNT_JSON", ""),
		GCPLocation:          getEnv("GCP_LOCATION", "us-central1"),
		GenMaxOutputTokens:   getEnvInt("GEN_MAX_TOKENS", 1024),
		GenTemperature:       getEnvFloat("GEN_TEMPERATURE", 0.7),
		GenTopP:              getEnvFloat("GEN_TOP_P", 0.95),
		SearchAPIKey:         getEnv("SEARCH_API_KEY", ""),
		SearchEngineID:       getEnv("SEARCH_ENGINE_ID", ""),
		SearchMaxResults:     getEnvInt("SEARCH_MAX_RESULTS", 8),
		SearchAlways:         getEnvBool("SEARCH_ALWAYS", false),
		OpenWeatherAPIKey:    getEnv("OPENWEATHER_API_KEY", ""),
		TTSAPIKey:            getEnv("TTS_API_KEY", ""),
		DefaultCity:          getEnv("DEFAULT_CITY", "erfurt"),
		LocationLabel:        getEnv("LOCATION_LABEL", "Türkiye/Almanya"),
		EnrichTimeoutSeconds: getEnvInt("ENRICH_TIMEOUT_SECONDS", 10),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
