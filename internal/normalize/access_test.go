package normalize

import "testing"

func TestParseAccess_BothConventions(t *testing.T) {
	// Slash-delimited with 歩 and space-delimited with 徒歩 are the two
	// sites' renderings of the same leg; both must parse identically.
	slash := ParseAccess("西武新宿線/鷺ノ宮駅 歩9分")
	spaced := ParseAccess("西武新宿線 鷺ノ宮駅 徒歩9分")

	if slash != spaced {
		t.Fatalf("conventions diverged:\n slash: %+v\n spaced: %+v", slash, spaced)
	}

	leg := slash[0]
	if !leg.WalkMinutes.Valid || leg.WalkMinutes.Int64 != 9 {
		t.Errorf("walk minutes = %+v, want 9", leg.WalkMinutes)
	}
	if !leg.Station.Valid || leg.Station.String == "" {
		t.Errorf("station = %+v, want non-null", leg.Station)
	}
	if !leg.Line.Valid || leg.Line.String != "西武新宿線" {
		t.Errorf("line = %+v, want 西武新宿線", leg.Line)
	}
}

func TestParseAccess_LegLimits(t *testing.T) {
	legs := ParseAccess("線A/駅A 歩1分, 線B/駅B 歩2分, 線C/駅C 歩3分, 線D/駅D 歩4分")

	for i, want := range []int64{1, 2, 3} {
		if !legs[i].WalkMinutes.Valid || legs[i].WalkMinutes.Int64 != want {
			t.Errorf("leg %d walk = %+v, want %d", i+1, legs[i].WalkMinutes, want)
		}
	}
	// The fourth leg was discarded, not shifted in.
	if legs[2].Line.String != "線C" {
		t.Errorf("leg 3 line = %q, want 線C", legs[2].Line.String)
	}
}

func TestParseAccess_PartialLegs(t *testing.T) {
	legs := ParseAccess("都営バス 芝浦三丁目")

	if !legs[0].Line.Valid {
		t.Error("leg 1 line should record the raw text")
	}
	if legs[0].Station.Valid || legs[0].WalkMinutes.Valid {
		t.Errorf("leg 1 without walk pattern should have null station and minutes, got %+v", legs[0])
	}

	// Wholly absent legs are all null.
	for i := 1; i < 3; i++ {
		if legs[i].Line.Valid || legs[i].Station.Valid || legs[i].WalkMinutes.Valid {
			t.Errorf("absent leg %d should be all null, got %+v", i+1, legs[i])
		}
	}
}

func TestParseAccess_Empty(t *testing.T) {
	legs := ParseAccess("")
	for i := range legs {
		if legs[i].Line.Valid || legs[i].Station.Valid || legs[i].WalkMinutes.Valid {
			t.Errorf("leg %d should be all null for empty input", i+1)
		}
	}
}

func TestStationName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"鷺ノ宮駅", "鷺ノ宮駅"},
		{"鷺ノ宮駅(南口)", "鷺ノ宮駅"},
		{"西武新宿線", "西武新宿線駅"},
	}
	for _, tt := range tests {
		if got := stationName(tt.in); got != tt.want {
			t.Errorf("stationName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
