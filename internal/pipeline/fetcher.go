package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/yokomichi/chintaiscan/internal/model"
	"github.com/yokomichi/chintaiscan/internal/util"
)

// Fetcher pages through a listing source. A page that fails to fetch
// aborts the whole run: listing pages are cheap to re-run, unlike the
// rate-sensitive geocoder, so there is no retry here.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	robots     *util.RobotsChecker // nil when politeness checks are off
}

// NewFetcher creates a fetcher from the shared HTTP config.
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxBytes: cfg.MaxBodyBytes,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.Timeout)
	}
	return f
}

// FetchPages retrieves pages 1..MaxPages for one source, in order.
// The source's user agent policy applies to every request: a spoofed
// browser string where the site blocks default clients, nothing
// otherwise.
func (f *Fetcher) FetchPages(ctx context.Context, src model.SourceConfig) ([]string, error) {
	pages := make([]string, 0, src.MaxPages)
	for page := 1; page <= src.MaxPages; page++ {
		pageURL := fmt.Sprintf(src.BaseURL, page)

		if f.robots != nil {
			allowed, err := f.robots.Allowed(ctx, pageURL, src.UserAgent)
			if err != nil {
				return nil, fmt.Errorf("%s page %d: robots check: %w", src.Name, page, err)
			}
			if !allowed {
				return nil, fmt.Errorf("%s page %d: disallowed by robots.txt", src.Name, page)
			}
		}

		body, err := f.fetch(ctx, pageURL, src.UserAgent)
		if err != nil {
			return nil, fmt.Errorf("%s page %d: %w", src.Name, page, err)
		}
		pages = append(pages, body)
	}
	return pages, nil
}

func (f *Fetcher) fetch(ctx context.Context, pageURL, userAgent string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
