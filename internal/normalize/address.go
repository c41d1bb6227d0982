package normalize

import (
	"strings"

	"golang.org/x/text/width"
)

// StandardizeAddress widens ASCII digits to their full-width forms and
// truncates at the first block-number marker (丁目 or a hyphen), so the
// same building listed as "芝浦2丁目3-4" and "芝浦２" collapses to one
// spelling.
func StandardizeAddress(addr string) string {
	addr = widenDigits(addr)
	if i := strings.Index(addr, "丁目"); i >= 0 {
		addr = addr[:i]
	}
	if i := strings.Index(addr, "-"); i >= 0 {
		addr = addr[:i]
	}
	return addr
}

// StripDigits removes every ASCII and full-width digit, leaving the
// purely textual part of the address for dedup bucketing.
func StripDigits(addr string) string {
	var b strings.Builder
	for _, r := range addr {
		if (r >= '0' && r <= '9') || (r >= '０' && r <= '９') {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitWardCity cuts a Tokyo address at the 都 and 区 markers: ward is
// the run between them inclusive of 区, city the run after 区 minus the
// trailing block character. A fixed-offset heuristic over the observed
// address grammar, not a general parser; addresses missing either
// marker mis-split.
func SplitWardCity(addr string) (ward, city string) {
	r := []rune(addr)
	to := runeIndex(r, '都')
	ku := runeIndex(r, '区')
	ward = sliceRunes(r, to+1, ku+1)
	city = sliceRunes(r, ku+1, len(r)-1)
	return ward, city
}

func widenDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return []rune(width.Widen.String(string(r)))[0]
		}
		return r
	}, s)
}

func runeIndex(r []rune, target rune) int {
	for i, c := range r {
		if c == target {
			return i
		}
	}
	return -1
}

// sliceRunes clamps like a Python slice: out-of-range bounds shrink to
// the valid window and an inverted window is empty.
func sliceRunes(r []rune, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to < 0 {
		to = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}
