package model

// The output table is a shared contract: the browsing app reads these
// exact column names. Keep the Japanese names the readers already
// depend on and change SchemaVersion when the set changes.

// SchemaVersion identifies the output column set.
const SchemaVersion = 1

// Column is one output table column.
type Column struct {
	Name    string
	SQLType string
}

// Columns is the output table definition, in insert order.
var Columns = []Column{
	{"名称", "TEXT"},
	{"アドレス", "TEXT"},
	{"アクセス", "TEXT"},
	{"築年数", "INTEGER"},
	{"構造", "INTEGER"},
	{"階数", "INTEGER"},
	{"家賃", "REAL"},
	{"管理費", "REAL"},
	{"敷金", "REAL"},
	{"礼金", "REAL"},
	{"間取り", "TEXT"},
	{"面積", "REAL"},
	{"物件画像URL", "TEXT"},
	{"間取画像URL", "TEXT"},
	{"物件詳細URL", "TEXT"},
	{"区", "TEXT"},
	{"市町", "TEXT"},
	{"アクセス1線路名", "TEXT"},
	{"アクセス1駅名", "TEXT"},
	{"アクセス1徒歩(分)", "INTEGER"},
	{"アクセス2線路名", "TEXT"},
	{"アクセス2駅名", "TEXT"},
	{"アクセス2徒歩(分)", "INTEGER"},
	{"アクセス3線路名", "TEXT"},
	{"アクセス3駅名", "TEXT"},
	{"アクセス3徒歩(分)", "INTEGER"},
	{"緯度", "REAL"},
	{"経度", "REAL"},
}

// RowValues returns the record's values in Columns order, ready to bind
// as insert parameters.
func (r *Record) RowValues() []any {
	return []any{
		r.Name,
		r.Address,
		r.Access,
		r.AgeYears,
		r.StructureFloors,
		r.UnitFloor,
		r.Rent,
		r.AdminFee,
		r.Deposit,
		r.KeyMoney,
		r.Layout,
		r.AreaSqm,
		r.ImageURL,
		r.FloorPlanURL,
		r.DetailURL,
		r.Ward,
		r.City,
		r.AccessLegs[0].Line,
		r.AccessLegs[0].Station,
		r.AccessLegs[0].WalkMinutes,
		r.AccessLegs[1].Line,
		r.AccessLegs[1].Station,
		r.AccessLegs[1].WalkMinutes,
		r.AccessLegs[2].Line,
		r.AccessLegs[2].Station,
		r.AccessLegs[2].WalkMinutes,
		r.Latitude,
		r.Longitude,
	}
}

// ScanDests returns pointers to the record's fields in Columns order,
// the mirror of RowValues for reading rows back.
func (r *Record) ScanDests() []any {
	return []any{
		&r.Name,
		&r.Address,
		&r.Access,
		&r.AgeYears,
		&r.StructureFloors,
		&r.UnitFloor,
		&r.Rent,
		&r.AdminFee,
		&r.Deposit,
		&r.KeyMoney,
		&r.Layout,
		&r.AreaSqm,
		&r.ImageURL,
		&r.FloorPlanURL,
		&r.DetailURL,
		&r.Ward,
		&r.City,
		&r.AccessLegs[0].Line,
		&r.AccessLegs[0].Station,
		&r.AccessLegs[0].WalkMinutes,
		&r.AccessLegs[1].Line,
		&r.AccessLegs[1].Station,
		&r.AccessLegs[1].WalkMinutes,
		&r.AccessLegs[2].Line,
		&r.AccessLegs[2].Station,
		&r.AccessLegs[2].WalkMinutes,
		&r.Latitude,
		&r.Longitude,
	}
}
