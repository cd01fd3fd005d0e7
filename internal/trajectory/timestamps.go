package trajectory

import (
	"fmt"
	"math"
	"time"
)

// Timestamp layouts accepted from event records, tried in order. Event
// producers emit ISO-8601 with varying precision: full RFC 3339 with an
// offset or trailing Z, offset-less date-times, and bare dates. Fractional
// seconds are accepted on any layout that carries seconds.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the tolerant ISO-8601 forms found in event records.
// A trailing Z is treated as a +00:00 offset; offset-less values are read
// as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// round1 rounds to one decimal place, halves away from zero.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
