package snapshot

import (
	"time"

	"github.com/pelletier/go-toml"
)

var dateKeys = map[string]bool{
	"startDate": true,
	"endDate":   true,
	"createdAt": true,
	"updatedAt": true,
	"date":      true,
}

// Layouts accepted for date strings without an offset.
var localLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// normalizeDates walks a decoded tree and rewrites the values of date keys
// to RFC 3339 strings. Values without an offset are placed in loc.
func normalizeDates(v any, key string, loc *time.Location) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = normalizeDates(child, k, loc)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = normalizeDates(child, "", loc)
		}
		return val
	}

	if !dateKeys[key] {
		return v
	}
	if t, ok := toTime(v, loc); ok {
		return t.Format(time.RFC3339Nano)
	}
	return v
}

func toTime(v any, loc *time.Location) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case toml.LocalDate:
		return val.In(loc), true
	case toml.LocalDateTime:
		return val.In(loc), true
	case string:
		if t, err := time.Parse(time.RFC3339Nano, val); err == nil {
			return t, true
		}
		for _, layout := range localLayouts {
			if t, err := time.ParseInLocation(layout, val, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
