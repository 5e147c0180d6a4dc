package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrMissingCredentials = errors.New("search API key or engine ID is not configured")

type Result struct {
	Title   string
	Snippet string
	Link    string
}

type Client struct {
	apiKey     string
	engineID   string
	baseURL    string
	maxResults int
	pacing     time.Duration
	client     *http.Client
}

func NewClient(apiKey, engineID string, maxResults int) *Client {
	if maxResults <= 0 {
		maxResults = 8
	}
	return &Client{
		apiKey:     apiKey,
		engineID:   engineID,
		baseURL:    "https://www.googleapis.com/customsearch/v1",
		maxResults: maxResults,
		pacing:     250 * time.Millisecond,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the provider endpoint. Used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// WithPacing overrides the delay between variant queries.
func (c *Client) WithPacing(pacing time.Duration) *Client {
	c.pacing = pacing
	return c
}

// variants broadens the original query for recall; the provider's ranking
// handles precision, the title dedupe handles the overlap.
func variants(query string) []string {
	return []string{
		query,
		query + " company information",
		query + " firma şirket",
		`"` + query + `" official website`,
		query + " hakkında",
	}
}

type providerResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"items"`
}

// Search runs every query variant sequentially with pacing between calls,
// merges the items, dedupes by title, and caps the list. A single failed
// variant contributes nothing; the whole operation fails only when no
// variant succeeds.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, ErrMissingCredentials
	}

	var collected []Result
	succeeded := 0
	var lastErr error

	for i, variant := range variants(query) {
		if i > 0 {
			if err := pause(ctx, c.pacing); err != nil {
				return nil, err
			}
		}
		items, err := c.fetch(ctx, variant, "")
		if err != nil {
			log.Printf("search: variant %q failed: %v", variant, err)
			lastErr = err
			continue
		}
		succeeded++
		collected = append(collected, items...)
	}

	if succeeded == 0 {
		return nil, fmt.Errorf("all search variants failed: %w", lastErr)
	}
	return capResults(dedupeByTitle(collected), c.maxResults), nil
}

// SearchSites issues one query per listed site with the provider's site
// restriction. Individual site failures are swallowed.
func (c *Client) SearchSites(ctx context.Context, query string, sites []string) ([]Result, error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, ErrMissingCredentials
	}

	var collected []Result
	for i, site := range sites {
		if i > 0 {
			if err := pause(ctx, c.pacing); err != nil {
				return nil, err
			}
		}
		items, err := c.fetch(ctx, query, site)
		if err != nil {
			log.Printf("search: site %q failed: %v", site, err)
			continue
		}
		collected = append(collected, items...)
	}
	return capResults(dedupeByTitle(collected), c.maxResults), nil
}

func (c *Client) fetch(ctx context.Context, query, site string) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("hl", "tr-TR")
	params.Set("num", "3")
	if site != "" {
		params.Set("siteSearch", site)
		params.Set("siteSearchFilter", "i")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed: %s", resp.Status)
	}

	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		results = append(results, Result{Title: item.Title, Snippet: item.Snippet, Link: item.Link})
	}
	return results, nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func dedupeByTitle(results []Result) []Result {
	seen := make(map[string]struct{}, len(results))
	deduped := results[:0]
	for _, result := range results {
		key := strings.TrimSpace(result.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, result)
	}
	return deduped
}

func capResults(results []Result, limit int) []Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
