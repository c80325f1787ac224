package domain

import (
	"fmt"
	"strings"
	"time"
)

// EpochTimestamp is used for messages that carry no Timestamp field
const EpochTimestamp = "1970-01-01T00:00:00"

// timestampLayouts lists the ISO-8601 shapes found in exports, most specific first.
// Dates arrive here in extended form with a space before the time; the time part may
// still be basic (150405) and the offset may lack its colon.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04Z0700",
	"2006-01-02 15:04",
	"2006-01-02 150405.999999999Z07:00",
	"2006-01-02 150405.999999999Z0700",
	"2006-01-02 150405.999999999",
	"2006-01-02 1504Z07:00",
	"2006-01-02 1504Z0700",
	"2006-01-02 1504",
	"2006-01-02 15Z07:00",
	"2006-01-02 15Z0700",
	"2006-01-02 15",
	"2006-01-02",
}

// ParseTimestamp parses an export timestamp. A trailing "Z" is read as +00:00.
// The returned time keeps the offset it was written with.
func ParseTimestamp(raw string) (time.Time, error) {
	s := raw
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	s = extendDate(s)
	if len(s) > 10 && (s[10] == 'T' || s[10] == 't') {
		s = s[:10] + " " + s[11:]
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}

// extendDate rewrites a basic-format date (20240301) to 2024-03-01. Anything else is
// returned unchanged.
func extendDate(s string) string {
	if len(s) < 8 {
		return s
	}
	for i := 0; i < 8; i++ {
		if s[i] < '0' || s[i] > '9' {
			return s
		}
	}
	if len(s) > 8 && s[8] != 'T' && s[8] != 't' && s[8] != ' ' {
		return s
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:8] + s[8:]
}

// ParseYear returns the calendar year of an export timestamp as written,
// without converting it to another time zone.
func ParseYear(raw string) (int, error) {
	t, err := ParseTimestamp(raw)
	if err != nil {
		return 0, err
	}
	return t.Year(), nil
}
