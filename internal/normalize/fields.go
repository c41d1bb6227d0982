package normalize

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Conversions from the sites' free-text fields into typed values. Each
// function is total over its documented grammar: text outside it
// degrades to null or a lenient default, never to a panic. The one
// exception is Area, whose parse failure propagates (the unit suffix
// has been fixed on both sources for years and silently zeroing an
// area would poison the fingerprint).

var (
	digitsRe = regexp.MustCompile(`\d+`)
	storyRe  = regexp.MustCompile(`(\d+)階建`)
	floorRe  = regexp.MustCompile(`(\d+)階`)
	monthsRe = regexp.MustCompile(`^(\d+)ヶ月`)
)

// AgeYears parses 築年数 text. 新築 is zero years; otherwise the first
// integer substring wins; no integer means unknown.
func AgeYears(s string) sql.NullInt64 {
	if s == "新築" {
		return sql.NullInt64{Int64: 0, Valid: true}
	}
	m := digitsRe.FindString(s)
	if m == "" {
		return sql.NullInt64{}
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

// StructureFloors parses 構造 text like "5階建" or "5階建/10階建". Ranged
// listings keep the minimum story count. No 階建 marker means unknown.
func StructureFloors(s string) sql.NullInt64 {
	if !strings.Contains(s, "階建") {
		return sql.NullInt64{}
	}
	matches := storyRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return sql.NullInt64{}
	}
	min := int64(0)
	for i, m := range matches {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if i == 0 || n < min {
			min = n
		}
	}
	return sql.NullInt64{Int64: min, Valid: true}
}

// UnitFloor parses 階数 text like "3階", "2-3階" or "B1階". No 階 marker
// means ground-ambiguous and maps to 0. A B marker flips the sign, so
// basements sort below ground floors.
func UnitFloor(s string) int64 {
	if !strings.Contains(s, "階") {
		return 0
	}
	matches := floorRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return 0
	}
	min := int64(0)
	for i, m := range matches {
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		if i == 0 || n < min {
			min = n
		}
	}
	if strings.Contains(s, "B") {
		return -min
	}
	return min
}

// Rent parses 家賃 text like "12.5万円" into 万円 units. A missing 万円
// suffix marks the listing malformed, not free, so the result is null.
func Rent(s string) sql.NullFloat64 {
	i := strings.Index(s, "万円")
	if i < 0 {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// AdminFee parses 管理費 text like "10000円" into yen. Absent suffix
// means null.
func AdminFee(s string) sql.NullFloat64 {
	i := strings.Index(s, "円")
	if i < 0 {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s[:i]), 64)
	if err != nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// FeeMonths parses 敷金/礼金 text into a month count. 無 and anything
// unparseable both mean zero months; the lenient default keeps the
// downstream months-times-rent product at 0 instead of null.
func FeeMonths(s string) float64 {
	if s == "" || strings.Contains(s, "無") {
		return 0
	}
	m := monthsRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return n
}

// MonthsTimesRent converts a month count into a money amount in the
// rent's 万円 units. With no parseable rent there is nothing to
// multiply by and the amount stays null.
func MonthsTimesRent(months float64, rent sql.NullFloat64) sql.NullFloat64 {
	if !rent.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: months * rent.Float64, Valid: true}
}

// AreaSqm parses 面積 text like "25.3m2" by stripping the fixed
// two-character unit suffix. Input outside that shape is an error the
// caller must surface.
func AreaSqm(s string) (float64, error) {
	r := []rune(s)
	if len(r) < 2 {
		return 0, fmt.Errorf("area %q: too short for unit suffix", s)
	}
	f, err := strconv.ParseFloat(string(r[:len(r)-2]), 64)
	if err != nil {
		return 0, fmt.Errorf("area %q: %w", s, err)
	}
	return f, nil
}
