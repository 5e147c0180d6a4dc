package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrMissingAPIKey = errors.New("weather API key is not configured")

type Source int

const (
	SourceProvider Source = iota
	SourceSearch
)

func (s Source) String() string {
	if s == SourceSearch {
		return "arama"
	}
	return "sağlayıcı"
}

// Snapshot is one observation of current conditions, already converted to
// the units the context block renders (integer Celsius, km/h, hPa).
type Snapshot struct {
	City         string
	Country      string
	TemperatureC int
	FeelsLikeC   int
	HumidityPct  int
	Description  string
	WindKph      int
	PressureHpa  int
	Source       Source
}

// SearchHit is the slice of a web search result the fallback path needs.
type SearchHit struct {
	Title   string
	Snippet string
}

// Searcher is the site-restricted search dependency for the fallback path.
type Searcher interface {
	SearchSites(ctx context.Context, query string, sites []string) ([]SearchHit, error)
}

// Meteorological domains the search fallback is restricted to.
var meteoSites = []string{"mgm.gov.tr", "dwd.de", "wetter.com", "accuweather.com"}

var cityAliases = map[string]string{
	"istanbul":  "Istanbul,TR",
	"ankara":    "Ankara,TR",
	"izmir":     "Izmir,TR",
	"bursa":     "Bursa,TR",
	"antalya":   "Antalya,TR",
	"erfurt":    "Erfurt,DE",
	"berlin":    "Berlin,DE",
	"hamburg":   "Hamburg,DE",
	"frankfurt": "Frankfurt,DE",
	"münih":     "Munich,DE",
	"munich":    "Munich,DE",
	"köln":      "Cologne,DE",
}

var turkishLower = cases.Lower(language.Turkish)

// NormalizeCity maps a free-text city token to a disambiguated
// "City,CountryCode" form. Unknown tokens pass through unchanged.
func NormalizeCity(token string) string {
	key := turkishLower.String(strings.TrimSpace(token))
	if normalized, ok := cityAliases[key]; ok {
		return normalized
	}
	return strings.TrimSpace(token)
}

// DetectCity scans prompt text for a known city token and returns it, or the
// configured fallback city when none is mentioned.
func DetectCity(promptText, fallback string) string {
	lowered := turkishLower.String(promptText)
	for alias := range cityAliases {
		if strings.Contains(lowered, alias) {
			return alias
		}
	}
	return fallback
}

type Client struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	fallback Searcher
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the provider endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// WithFallback enables the search-based fallback when the primary provider
// has no answer.
func (c *Client) WithFallback(searcher Searcher) *Client {
	c.fallback = searcher
	return c
}

type providerResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Current looks up conditions for a free-text city. Provider trouble of any
// kind degrades to (nil, nil): the caller treats weather as an optional
// garnish, not a request dependency. Only absent configuration is an error.
func (c *Client) Current(ctx context.Context, city string) (*Snapshot, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	normalized := NormalizeCity(city)
	query := url.Values{}
	query.Set("q", normalized)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	query.Set("lang", "tr")

	snapshot := c.fetch(ctx, query)
	if snapshot == nil && c.fallback != nil {
		snapshot = c.searchFallback(ctx, normalized)
	}
	return snapshot, nil
}

func (c *Client) fetch(ctx context.Context, query url.Values) *Snapshot {
	endpoint := c.baseURL + "/data/2.5/weather?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}
	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("weather: provider request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("weather: provider returned %s", resp.Status)
		return nil
	}

	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("weather: malformed provider response: %v", err)
		return nil
	}

	description := ""
	if len(parsed.Weather) > 0 {
		description = parsed.Weather[0].Description
	}
	country := parsed.Sys.Country
	return &Snapshot{
		City:         parsed.Name,
		Country:      country,
		TemperatureC: roundInt(parsed.Main.Temp),
		FeelsLikeC:   roundInt(parsed.Main.FeelsLike),
		HumidityPct:  parsed.Main.Humidity,
		Description:  description,
		WindKph:      roundInt(parsed.Wind.Speed * 3.6),
		PressureHpa:  roundInt(parsed.Main.Pressure),
		Source:       SourceProvider,
	}
}

var temperaturePattern = regexp.MustCompile(`(-?\d+)\s*°`)

// searchFallback asks the web search for current conditions restricted to
// meteorological sites and only accepts snippets that actually carry a
// temperature figure.
func (c *Client) searchFallback(ctx context.Context, city string) *Snapshot {
	plainCity := city
	if idx := strings.Index(plainCity, ","); idx > 0 {
		plainCity = plainCity[:idx]
	}
	hits, err := c.fallback.SearchSites(ctx, fmt.Sprintf("%s hava durumu sıcaklık", plainCity), meteoSites)
	if err != nil {
		log.Printf("weather: search fallback failed: %v", err)
		return nil
	}
	for _, hit := range hits {
		text := hit.Title + " " + hit.Snippet
		match := temperaturePattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		temp, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return &Snapshot{
			City:         plainCity,
			TemperatureC: temp,
			FeelsLikeC:   temp,
			Description:  strings.TrimSpace(hit.Snippet),
			Source:       SourceSearch,
		}
	}
	return nil
}

func roundInt(value float64) int {
	return int(math.Round(value))
}
