package normalize

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"github.com/yokomichi/chintaiscan/internal/model"
)

// The two sites write transit legs differently: "西武新宿線/鷺ノ宮駅 歩9分"
// versus "西武新宿線 鷺ノ宮駅 徒歩9分". Splitting once on the first space
// or slash handles both, and the walk pattern accepts 徒歩 and 歩.

var walkRe = regexp.MustCompile(`(徒歩|歩)(\d+)分`)

// ParseAccess splits a raw access string on ", " into at most three
// legs; legs past the third are discarded, absent legs stay all-null.
func ParseAccess(s string) [3]model.AccessLeg {
	var legs [3]model.AccessLeg
	if s == "" {
		return legs
	}
	for i, leg := range strings.Split(s, ", ") {
		if i >= len(legs) {
			break
		}
		legs[i] = parseLeg(leg)
	}
	return legs
}

func parseLeg(leg string) model.AccessLeg {
	idx := strings.IndexAny(leg, " /")
	if idx < 0 {
		// No walk description at all; keep the raw text as the line.
		return model.AccessLeg{Line: sql.NullString{String: strings.TrimSpace(leg), Valid: true}}
	}

	lineStation := strings.TrimSpace(leg[:idx])
	walk := strings.TrimSpace(leg[idx+1:])

	out := model.AccessLeg{Line: sql.NullString{String: lineStation, Valid: true}}
	m := walkRe.FindStringSubmatch(walk)
	if m == nil {
		return out
	}

	out.Station = sql.NullString{String: stationName(lineStation), Valid: true}
	if n, err := strconv.ParseInt(m[2], 10, 64); err == nil {
		out.WalkMinutes = sql.NullInt64{Int64: n, Valid: true}
	}
	return out
}

// stationName truncates at the 駅 marker and re-appends it, turning
// "鷺ノ宮駅(南口)" into "鷺ノ宮駅".
func stationName(lineStation string) string {
	if i := strings.Index(lineStation, "駅"); i >= 0 {
		lineStation = lineStation[:i]
	}
	return strings.TrimSpace(lineStation) + "駅"
}
