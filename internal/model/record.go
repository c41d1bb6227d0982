package model

import "database/sql"

// Source identifies which listing site a record came from.
type Source string

const (
	SourceHomes Source = "homes"
	SourceSuumo Source = "suumo"
)

// BuildingFields are scraped once per listing card and shared by every
// unit row inside it. An empty string means the element was absent.
type BuildingFields struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Access        string `json:"access"`
	AgeText       string `json:"age_text"`
	StructureText string `json:"structure_text"`
}

// UnitFields are scraped per unit row within a card.
type UnitFields struct {
	FloorText    string `json:"floor_text"`
	RentText     string `json:"rent_text"`
	AdminFeeText string `json:"admin_fee_text"`
	DepositText  string `json:"deposit_text"`
	KeyMoneyText string `json:"key_money_text"`
	LayoutText   string `json:"layout_text"`
	AreaText     string `json:"area_text"`
	ImageURL     string `json:"image_url"`
	FloorPlanURL string `json:"floor_plan_url"`
	DetailURL    string `json:"detail_url"`
}

// RawRecord is one rentable unit as extracted from a page: the card's
// building fields composed with one unit row. Both extractors emit this
// exact field set regardless of their selector strategy. Immutable after
// extraction.
type RawRecord struct {
	Source Source `json:"source"`
	BuildingFields
	UnitFields
}

// AccessLeg is one parsed transit option: line text, station name and
// walking minutes. A leg beyond the number present in the source is all
// nulls.
type AccessLeg struct {
	Line        sql.NullString
	Station     sql.NullString
	WalkMinutes sql.NullInt64
}

// Record is the canonical typed schema derived from one RawRecord.
// Monetary fields are yen except Rent, which is in units of 10,000 yen
// as listed. Latitude/Longitude stay null until enrichment.
type Record struct {
	Source Source

	Name    string
	Address string
	// AddressNoDigits buckets near-identical addresses for
	// deduplication. In-memory only, never persisted.
	AddressNoDigits string
	Access          string

	AgeYears        sql.NullInt64
	StructureFloors sql.NullInt64
	UnitFloor       int64
	Rent            sql.NullFloat64
	AdminFee        sql.NullFloat64
	Deposit         sql.NullFloat64
	KeyMoney        sql.NullFloat64
	Layout          sql.NullString
	AreaSqm         float64

	Ward string
	City string

	AccessLegs [3]AccessLeg

	ImageURL     sql.NullString
	FloorPlanURL sql.NullString
	DetailURL    sql.NullString

	Latitude  sql.NullFloat64
	Longitude sql.NullFloat64
}

// Fingerprint is the composite identity of a physical unit across
// sources. Equality is exact-value: two records fingerprint equal only
// when every component, including nullness, matches.
type Fingerprint struct {
	AgeYears        sql.NullInt64
	StructureFloors sql.NullInt64
	UnitFloor       int64
	Rent            sql.NullFloat64
	AreaSqm         float64
	AddressNoDigits string
}

// Fingerprint returns the cross-source identity key for the record.
func (r *Record) Fingerprint() Fingerprint {
	return Fingerprint{
		AgeYears:        r.AgeYears,
		StructureFloors: r.StructureFloors,
		UnitFloor:       r.UnitFloor,
		Rent:            r.Rent,
		AreaSqm:         r.AreaSqm,
		AddressNoDigits: r.AddressNoDigits,
	}
}

// IssueKind classifies a recoverable problem encountered mid-run.
type IssueKind string

const (
	IssueMissingField   IssueKind = "missing_field"   // expected element absent, field left null
	IssueUnparsableText IssueKind = "unparsable_text" // text outside the field grammar, default applied
	IssueGeocodeFailed  IssueKind = "geocode_failed"  // retries exhausted, coordinates left null
)

// Issue records a recoverable problem a stage degraded into a null or
// default value. Stages return issues instead of logging them.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Source Source    `json:"source,omitempty"`
	Field  string    `json:"field,omitempty"`
	Detail string    `json:"detail"`
}
