package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// secondsThreshold separates epoch seconds from epoch milliseconds.
// Second values below it stay valid until the year 2286.
const secondsThreshold = 10_000_000_000

// isoLayouts are the ISO-8601 shapes found in V1 documents.
// Layouts without a zone are read as local time.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

// NormalizeTimestamp converts a loosely typed timestamp to epoch milliseconds.
// Integers are read as seconds or milliseconds depending on magnitude, strings
// as ISO-8601. Anything else, including unparseable strings, yields now.
func NormalizeTimestamp(raw any, now time.Time) int64 {
	switch v := raw.(type) {
	case int64:
		return fromEpoch(v)
	case int:
		return fromEpoch(int64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return fromEpoch(n)
		}
	case string:
		if t, ok := parseISO(v); ok {
			return t.UnixMilli()
		}
	}
	return now.UnixMilli()
}

func fromEpoch(n int64) int64 {
	if n < secondsThreshold {
		return n * 1000
	}
	return n
}

func parseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
