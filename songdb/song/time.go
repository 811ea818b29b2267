package song

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order; zone-less layouts are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO 8601 date or date-time. A date without a
// time component means midnight UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp: %s", s)
}

// FormatTimestamp renders t the way ParseTimestamp reads it back.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
