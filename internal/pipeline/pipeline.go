package pipeline

import (
	"context"
	"fmt"

	"github.com/yokomichi/chintaiscan/internal/dedupe"
	"github.com/yokomichi/chintaiscan/internal/extract"
	"github.com/yokomichi/chintaiscan/internal/geocode"
	"github.com/yokomichi/chintaiscan/internal/model"
	"github.com/yokomichi/chintaiscan/internal/normalize"
	"github.com/yokomichi/chintaiscan/internal/store"
)

// Pipeline runs the full consolidation:
// fetch -> extract -> normalize -> dedup -> persist -> enrich -> persist.
// Everything is synchronous; each stage finishes before the next
// starts. The table is written twice per run, so a crash between the
// writes leaves a valid table that merely lacks coordinates.
type Pipeline struct {
	cfg      *model.Config
	fetcher  *Fetcher
	enricher *geocode.Enricher
	store    *store.Store
}

// New assembles a pipeline from config. The progress collaborator
// receives per-address geocode updates; pass nil to discard them.
func New(cfg *model.Config, progress geocode.Progress) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetcher:  NewFetcher(cfg.HTTP),
		enricher: geocode.NewEnricher(geocode.NewNominatim(cfg.Geocode), cfg.Geocode, progress),
		store:    store.New(cfg.Store),
	}
}

// NewWithResolver is New with the geocoder swapped out, for tests and
// alternative resolution services.
func NewWithResolver(cfg *model.Config, resolver geocode.Resolver, progress geocode.Progress) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetcher:  NewFetcher(cfg.HTTP),
		enricher: geocode.NewEnricher(resolver, cfg.Geocode, progress),
		store:    store.New(cfg.Store),
	}
}

// RunResult summarizes one pipeline invocation.
type RunResult struct {
	PagesFetched      int
	RawRecords        int
	Normalized        int
	Consolidated      int
	DuplicatesRemoved int
	Geocoded          int
	Issues            []model.Issue
}

// Run executes the pipeline to completion. Fetch and parse failures
// abort; everything recoverable degrades to null fields and lands in
// the result's issue list.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}

	// Source order is fixed by the config: on a cross-source
	// duplicate, the earlier source's record survives dedup.
	var raws []model.RawRecord
	for _, src := range p.cfg.Sources {
		extractor, ok := extract.ForSource(src.Name)
		if !ok {
			return nil, fmt.Errorf("unknown source %q", src.Name)
		}

		pages, err := p.fetcher.FetchPages(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("fetch: %w", err)
		}
		result.PagesFetched += len(pages)

		for i, page := range pages {
			records, issues, err := extractor.Extract(page)
			if err != nil {
				return nil, fmt.Errorf("extract %s page %d: %w", src.Name, i+1, err)
			}
			result.Issues = append(result.Issues, issues...)
			raws = append(raws, records...)
		}
	}
	result.RawRecords = len(raws)

	records, issues, err := normalize.ConvertAll(raws)
	if err != nil {
		return nil, err
	}
	result.Issues = append(result.Issues, issues...)
	result.Normalized = len(records)

	consolidated := dedupe.Collapse(records)
	result.Consolidated = len(consolidated)
	result.DuplicatesRemoved = len(records) - len(consolidated)

	// Phase one: persist without coordinates, so a geocode crash
	// still leaves a queryable table.
	if err := p.store.Replace(consolidated); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	// Enrichment works from what phase one persisted, not from the
	// in-memory set.
	loaded, err := p.store.Load()
	if err != nil {
		return nil, fmt.Errorf("reload: %w", err)
	}

	result.Issues = append(result.Issues, p.enricher.Enrich(ctx, loaded)...)
	for i := range loaded {
		if loaded[i].Latitude.Valid {
			result.Geocoded++
		}
	}

	// Phase two: rewrite the same table with coordinates added.
	if err := p.store.Replace(loaded); err != nil {
		return nil, fmt.Errorf("persist enriched: %w", err)
	}

	return result, nil
}
