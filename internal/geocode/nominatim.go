package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yokomichi/chintaiscan/internal/model"
	"golang.org/x/time/rate"
)

// Result is a resolved coordinate pair.
type Result struct {
	Latitude  float64
	Longitude float64
}

// Resolver resolves a free-text address. A nil result with a nil error
// is a definitive "address not found"; an error is transient and worth
// retrying.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*Result, error)
}

// Nominatim talks to a Nominatim-compatible search endpoint. Requests
// are paced through a rate limiter because the public instance allows
// one request per second; the pipeline is sequential on top of that by
// design.
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewNominatim creates a paced Nominatim client from config.
func NewNominatim(cfg model.GeocodeConfig) *Nominatim {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Nominatim{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Resolve implements Resolver.
func (n *Nominatim) Resolve(ctx context.Context, address string) (*Result, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode %q: unexpected status %d", address, resp.StatusCode)
	}

	var places []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("geocode %q: decode: %w", address, err)
	}

	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: bad latitude %q", address, places[0].Lat)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: bad longitude %q", address, places[0].Lon)
	}

	return &Result{Latitude: lat, Longitude: lon}, nil
}
