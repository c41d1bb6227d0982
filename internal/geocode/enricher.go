package geocode

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yokomichi/chintaiscan/internal/model"
)

// Enricher resolves record addresses to coordinates, strictly one at a
// time: the geocoder is the pipeline's rate bottleneck and parallel
// lookups would blow its usage limit. Units in the same building share
// an address, so results (including definitive not-founds) are cached
// in memory for the run.
type Enricher struct {
	resolver   Resolver
	retries    int
	retryDelay time.Duration
	cache      *gocache.Cache
	progress   Progress
}

// NewEnricher wires a resolver with the retry policy from config.
func NewEnricher(resolver Resolver, cfg model.GeocodeConfig, progress Progress) *Enricher {
	retries := cfg.Retries
	if retries <= 0 {
		retries = 3
	}
	if progress == nil {
		progress = NopProgress{}
	}
	return &Enricher{
		resolver:   resolver,
		retries:    retries,
		retryDelay: cfg.RetryDelay,
		cache:      gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		progress:   progress,
	}
}

// Enrich fills Latitude/Longitude on each record in place. An address
// that stays unresolved after all attempts yields null coordinates and
// an issue; it never aborts the batch.
func (e *Enricher) Enrich(ctx context.Context, records []model.Record) []model.Issue {
	var issues []model.Issue
	total := len(records)

	for i := range records {
		rec := &records[i]
		res, err := e.lookup(ctx, rec.Address)
		done := i + 1

		switch {
		case err != nil:
			e.progress.Failed(done, total, rec.Address, err)
			issues = append(issues, model.Issue{
				Kind:   model.IssueGeocodeFailed,
				Field:  "address",
				Detail: fmt.Sprintf("%s: %v", rec.Address, err),
			})
		case res == nil:
			e.progress.NotFound(done, total)
		default:
			rec.Latitude = sql.NullFloat64{Float64: res.Latitude, Valid: true}
			rec.Longitude = sql.NullFloat64{Float64: res.Longitude, Valid: true}
			e.progress.Resolved(done, total, res.Latitude, res.Longitude)
		}
	}

	return issues
}

// lookup resolves one address with up to retries attempts, pausing
// retryDelay after each transient failure. A successful call with an
// empty result set is definitive and is not retried.
func (e *Enricher) lookup(ctx context.Context, address string) (*Result, error) {
	if v, hit := e.cache.Get(address); hit {
		return v.(*Result), nil
	}

	var lastErr error
	for attempt := 1; attempt <= e.retries; attempt++ {
		res, err := e.resolver.Resolve(ctx, address)
		if err == nil {
			e.cache.Set(address, res, gocache.DefaultExpiration)
			return res, nil
		}
		lastErr = err

		if attempt < e.retries && e.retryDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", e.retries, lastErr)
}
