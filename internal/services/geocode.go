package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// GeocodeMinQueryLength keeps trivial queries off the rate-sensitive
	// endpoint entirely.
	GeocodeMinQueryLength = 3
	// GeocodeDebounce is how long the suggester waits for typing to settle.
	GeocodeDebounce = 400 * time.Millisecond
)

// GeocodeResult is one ranked candidate for a free-text location query.
type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

// GeocodeClient queries Nominatim. It degrades to an empty result on any
// failure, like every other read in this system.
type GeocodeClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewGeocodeClient(baseURL, userAgent string) *GeocodeClient {
	return &GeocodeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Search returns up to limit candidates for a query. Queries shorter than
// GeocodeMinQueryLength return nothing without touching the network.
func (c *GeocodeClient) Search(ctx context.Context, query string, limit int) []GeocodeResult {
	query = strings.TrimSpace(query)
	if len(query) < GeocodeMinQueryLength {
		return []GeocodeResult{}
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return []GeocodeResult{}
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return []GeocodeResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []GeocodeResult{}
	}

	var raw []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return []GeocodeResult{}
	}

	results := make([]GeocodeResult, 0, len(raw))
	for _, item := range raw {
		lat, latErr := strconv.ParseFloat(item.Lat, 64)
		lng, lngErr := strconv.ParseFloat(item.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		results = append(results, GeocodeResult{Lat: lat, Lng: lng, DisplayName: item.DisplayName})
	}
	return results
}

// Geocode returns the top candidate for an address, or nil.
func (c *GeocodeClient) Geocode(ctx context.Context, address string) *GeocodeResult {
	results := c.Search(ctx, address, 1)
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

// GeocodeSuggester debounces interactive lookups: rapid queries collapse
// into one Search of the latest text after GeocodeDebounce of quiet.
type GeocodeSuggester struct {
	client *GeocodeClient
	delay  time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewGeocodeSuggester(client *GeocodeClient) *GeocodeSuggester {
	return &GeocodeSuggester{client: client, delay: GeocodeDebounce}
}

// Query schedules a suggestion lookup for query, superseding any pending
// one. deliver runs with the results once the debounce window passes.
func (s *GeocodeSuggester) Query(query string, limit int, deliver func([]GeocodeResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		deliver(s.client.Search(context.Background(), query, limit))
	})
}

// Stop cancels any pending lookup.
func (s *GeocodeSuggester) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
