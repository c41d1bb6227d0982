// Package dedupe collapses records describing the same physical unit
// scraped from both sources.
package dedupe

import "github.com/yokomichi/chintaiscan/internal/model"

// Collapse keeps exactly one record per fingerprint, the first in
// input order, so with HOMES records ahead of SUUMO records a
// cross-source collision retains the HOMES row. Matching is
// exact-value only; a one-character address variant or a rounding
// difference keeps both records.
func Collapse(records []model.Record) []model.Record {
	seen := make(map[model.Fingerprint]struct{}, len(records))
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		fp := r.Fingerprint()
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, r)
	}
	return out
}
