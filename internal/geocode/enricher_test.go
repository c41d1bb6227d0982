package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yokomichi/chintaiscan/internal/model"
)

// stubResolver scripts a sequence of outcomes per address.
type stubResolver struct {
	calls   int
	outcome func(call int) (*Result, error)
}

func (s *stubResolver) Resolve(ctx context.Context, address string) (*Result, error) {
	s.calls++
	return s.outcome(s.calls)
}

func testGeocodeConfig() model.GeocodeConfig {
	return model.GeocodeConfig{
		Retries:    3,
		RetryDelay: time.Millisecond,
		CacheTTL:   time.Minute,
	}
}

func testRecords(addresses ...string) []model.Record {
	records := make([]model.Record, len(addresses))
	for i, addr := range addresses {
		records[i] = model.Record{Address: addr}
	}
	return records
}

func TestEnrich_TransientThenSuccess(t *testing.T) {
	resolver := &stubResolver{outcome: func(call int) (*Result, error) {
		if call <= 2 {
			return nil, errors.New("service timed out")
		}
		return &Result{Latitude: 35.6581, Longitude: 139.7516}, nil
	}}

	e := NewEnricher(resolver, testGeocodeConfig(), nil)
	records := testRecords("東京都港区芝浦２")

	issues := e.Enrich(context.Background(), records)
	if len(issues) != 0 {
		t.Errorf("unexpected issues: %+v", issues)
	}
	if resolver.calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", resolver.calls)
	}
	if !records[0].Latitude.Valid || records[0].Latitude.Float64 != 35.6581 {
		t.Errorf("latitude = %+v", records[0].Latitude)
	}
	if !records[0].Longitude.Valid || records[0].Longitude.Float64 != 139.7516 {
		t.Errorf("longitude = %+v", records[0].Longitude)
	}
}

func TestEnrich_RetriesExhausted(t *testing.T) {
	resolver := &stubResolver{outcome: func(call int) (*Result, error) {
		return nil, errors.New("503")
	}}

	e := NewEnricher(resolver, testGeocodeConfig(), nil)
	records := testRecords("東京都港区芝浦２", "東京都港区三田１")

	issues := e.Enrich(context.Background(), records)

	// Both addresses stay null and the batch ran to completion.
	for i := range records {
		if records[i].Latitude.Valid || records[i].Longitude.Valid {
			t.Errorf("record %d coordinates should be null, got %+v/%+v",
				i, records[i].Latitude, records[i].Longitude)
		}
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	for _, issue := range issues {
		if issue.Kind != model.IssueGeocodeFailed {
			t.Errorf("issue kind = %s", issue.Kind)
		}
	}
	if resolver.calls != 6 {
		t.Errorf("expected 3 attempts per address, got %d total", resolver.calls)
	}
}

func TestEnrich_NotFoundIsNotRetried(t *testing.T) {
	resolver := &stubResolver{outcome: func(call int) (*Result, error) {
		return nil, nil
	}}

	e := NewEnricher(resolver, testGeocodeConfig(), nil)
	records := testRecords("存在しない住所")

	issues := e.Enrich(context.Background(), records)
	if len(issues) != 0 {
		t.Errorf("not found is not an issue, got %+v", issues)
	}
	if resolver.calls != 1 {
		t.Errorf("definitive not-found must not retry, got %d calls", resolver.calls)
	}
	if records[0].Latitude.Valid {
		t.Error("latitude should stay null for not-found")
	}
}

func TestEnrich_SharedAddressHitsCache(t *testing.T) {
	resolver := &stubResolver{outcome: func(call int) (*Result, error) {
		return &Result{Latitude: 1, Longitude: 2}, nil
	}}

	e := NewEnricher(resolver, testGeocodeConfig(), nil)
	// Three units in the same building share one address.
	records := testRecords("東京都港区芝浦２", "東京都港区芝浦２", "東京都港区芝浦２")

	e.Enrich(context.Background(), records)
	if resolver.calls != 1 {
		t.Errorf("expected a single resolver call for a shared address, got %d", resolver.calls)
	}
	for i := range records {
		if !records[i].Latitude.Valid {
			t.Errorf("record %d missing cached coordinates", i)
		}
	}
}

type countingProgress struct {
	resolved, notFound, failed int
}

func (c *countingProgress) Resolved(done, total int, lat, lon float64) { c.resolved++ }

func (c *countingProgress) NotFound(done, total int) { c.notFound++ }

func (c *countingProgress) Failed(done, total int, addr string, err error) { c.failed++ }

func TestEnrich_ProgressPerAddress(t *testing.T) {
	resolver := &stubResolver{outcome: func(call int) (*Result, error) {
		switch call {
		case 1:
			return &Result{Latitude: 1, Longitude: 2}, nil
		case 2:
			return nil, nil
		default:
			return nil, errors.New("boom")
		}
	}}

	progress := &countingProgress{}
	e := NewEnricher(resolver, testGeocodeConfig(), progress)
	e.Enrich(context.Background(), testRecords("a", "b", "c"))

	if progress.resolved != 1 || progress.notFound != 1 || progress.failed != 1 {
		t.Errorf("progress counts = %+v", progress)
	}
}
