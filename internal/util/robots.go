package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers whether a listing page may be fetched under
// the host's robots.txt. Both sources live on a single host each, so a
// per-host cache means one robots.txt fetch per source per run.
type RobotsChecker struct {
	cache      map[string]*robotstxt.RobotsData
	httpClient *http.Client
}

// NewRobotsChecker creates a checker with the given fetch timeout.
func NewRobotsChecker(timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		cache:      make(map[string]*robotstxt.RobotsData),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Allowed reports whether userAgent may fetch rawURL. An unreachable
// or unparseable robots.txt allows by default; only an explicit
// disallow blocks.
func (r *RobotsChecker) Allowed(ctx context.Context, rawURL, userAgent string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	data, ok := r.cache[parsed.Host]
	if !ok {
		data = r.fetch(ctx, parsed.Scheme+"://"+parsed.Host+"/robots.txt", userAgent)
		r.cache[parsed.Host] = data
	}
	if data == nil {
		return true, nil
	}

	return data.TestAgent(parsed.Path, userAgent), nil
}

// fetch returns nil when robots.txt could not be retrieved or parsed,
// which Allowed treats as permissive.
func (r *RobotsChecker) fetch(ctx context.Context, robotsURL, userAgent string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}
