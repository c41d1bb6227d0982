package normalize

import (
	"database/sql"
	"fmt"

	"github.com/yokomichi/chintaiscan/internal/model"
)

// Convert maps one RawRecord onto the canonical typed schema. Field
// conversions never fail: text outside a field's grammar becomes a
// null or a lenient default and is reported as an issue. The single
// hard failure is an unparseable area, which would silently corrupt
// the dedup fingerprint if defaulted.
func Convert(raw model.RawRecord) (model.Record, []model.Issue, error) {
	var issues []model.Issue
	report := func(field, detail string) {
		issues = append(issues, model.Issue{
			Kind:   model.IssueUnparsableText,
			Source: raw.Source,
			Field:  field,
			Detail: detail,
		})
	}

	area, err := AreaSqm(raw.AreaText)
	if err != nil {
		return model.Record{}, issues, fmt.Errorf("normalize %s record %q: %w", raw.Source, raw.Name, err)
	}

	rec := model.Record{
		Source:  raw.Source,
		Name:    raw.Name,
		Address: StandardizeAddress(raw.Address),
		Access:  raw.Access,
		AreaSqm: area,
	}
	rec.AddressNoDigits = StripDigits(rec.Address)
	rec.Ward, rec.City = SplitWardCity(rec.Address)

	rec.AgeYears = AgeYears(raw.AgeText)
	if !rec.AgeYears.Valid && raw.AgeText != "" {
		report("age", raw.AgeText)
	}

	rec.StructureFloors = StructureFloors(raw.StructureText)
	if !rec.StructureFloors.Valid && raw.StructureText != "" {
		report("structure", raw.StructureText)
	}

	rec.UnitFloor = UnitFloor(raw.FloorText)

	rec.Rent = Rent(raw.RentText)
	if !rec.Rent.Valid {
		report("rent", raw.RentText)
	}

	rec.AdminFee = AdminFee(raw.AdminFeeText)
	if !rec.AdminFee.Valid && raw.AdminFeeText != "" {
		report("admin_fee", raw.AdminFeeText)
	}

	rec.Deposit = MonthsTimesRent(FeeMonths(raw.DepositText), rec.Rent)
	rec.KeyMoney = MonthsTimesRent(FeeMonths(raw.KeyMoneyText), rec.Rent)

	if raw.LayoutText != "" {
		rec.Layout = sql.NullString{String: raw.LayoutText, Valid: true}
	}
	if raw.ImageURL != "" {
		rec.ImageURL = sql.NullString{String: raw.ImageURL, Valid: true}
	}
	if raw.FloorPlanURL != "" {
		rec.FloorPlanURL = sql.NullString{String: raw.FloorPlanURL, Valid: true}
	}
	if raw.DetailURL != "" {
		rec.DetailURL = sql.NullString{String: raw.DetailURL, Valid: true}
	}

	rec.AccessLegs = ParseAccess(raw.Access)

	return rec, issues, nil
}

// ConvertAll converts raw records in order, aggregating issues. The
// first area failure aborts, matching the fail-fast contract of the
// normalization stage.
func ConvertAll(raws []model.RawRecord) ([]model.Record, []model.Issue, error) {
	records := make([]model.Record, 0, len(raws))
	var issues []model.Issue
	for _, raw := range raws {
		rec, recIssues, err := Convert(raw)
		if err != nil {
			return nil, issues, err
		}
		issues = append(issues, recIssues...)
		records = append(records, rec)
	}
	return records, issues, nil
}
