package sqlgen

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/zeptools/myq/record"
)

// LiteralTimeLayout is the layout of datetime literals
const LiteralTimeLayout = record.TimeLayout

// ParseTime reports whether s reads as a point in time.
// Only strings starting with four ASCII digits are tried; times before the
// Unix epoch are rejected. Strings without a zone are read in loc.
// All-digit strings count only as YYYY, YYYYMMDD or YYYYMMDDhhmmss, so phone
// numbers and epoch counters stay strings.
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	if !hasYearPrefix(s) {
		return time.Time{}, false
	}
	if allDigits(s) && len(s) != 4 && len(s) != 8 && len(s) != 14 {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil || t.Unix() < 0 {
		return time.Time{}, false
	}
	return t.In(loc), true
}

func hasYearPrefix(s string) bool {
	if len(s) < 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
