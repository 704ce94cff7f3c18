package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/litmap/litmap/internal/cache"
	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/worker"
)

// Doer abstracts the HTTP client so the external service can be faked in tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIResult is one hit from the external geocoding service.
type APIResult struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

// APIClient queries a Nominatim-compatible geocoding endpoint. Responses are
// cached and requests go through the shared service quota.
type APIClient struct {
	endpoint string
	region   string
	client   Doer
	limiter  *worker.Limiter
	cache    cache.Cache
}

// NewAPIClient creates a client for the configured endpoint. A nil cache
// disables caching; a nil limiter disables throttling.
func NewAPIClient(cfg model.GeocodingConfig, limiter *worker.Limiter, c cache.Cache) *APIClient {
	return &APIClient{
		endpoint: cfg.APIEndpoint,
		region:   cfg.Region,
		client:   &http.Client{Timeout: 15 * time.Second},
		limiter:  limiter,
		cache:    c,
	}
}

// nominatimPlace mirrors the wire format; coordinates arrive as strings.
type nominatimPlace struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

// Lookup resolves a place name through the external service. A nil result
// with a nil error means the service found nothing.
func (c *APIClient) Lookup(ctx context.Context, name string) (*APIResult, error) {
	key := cache.Key("geocode", c.region+":"+name)
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			var cached APIResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, worker.ServiceGeocode); err != nil {
			return nil, err
		}
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", "ja")
	if c.region != "" {
		params.Set("countrycodes", c.region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "litmap/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var hits []nominatimPlace
	if err := json.Unmarshal(data, &hits); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", hits[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", hits[0].Lon, err)
	}

	result := &APIResult{
		Latitude:    lat,
		Longitude:   lng,
		DisplayName: hits[0].DisplayName,
		Importance:  hits[0].Importance,
	}

	if c.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = c.cache.Set(key, data, 0)
		}
	}
	return result, nil
}
