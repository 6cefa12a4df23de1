package transform

import (
	"strings"
	"time"
)

// ISOLayout matches JavaScript's Date.prototype.toISOString.
const ISOLayout = "2006-01-02T15:04:05.000Z"

var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// Timestamp normalizes any timestamp-like value to an ISO-8601 string.
// Unparseable or missing values become the transformer's current time.
func (t *Transformer) Timestamp(v any) string {
	if parsed, ok := ParseTimestamp(v); ok {
		return FormatISO(parsed)
	}
	return FormatISO(t.now())
}

// FormatISO renders tm in UTC with millisecond precision.
func FormatISO(tm time.Time) string {
	return tm.UTC().Format(ISOLayout)
}

// ParseTimestamp understands store timestamps (time.Time), ISO and common
// date strings, unix milliseconds and exported {seconds, nanoseconds} maps.
// Values outside years 1..9999 are rejected since they cannot be rendered
// back in ISOLayout.
func ParseTimestamp(v any) (time.Time, bool) {
	tm, ok := parseTimestamp(v)
	if !ok || tm.IsZero() {
		return time.Time{}, false
	}
	if year := tm.UTC().Year(); year < 1 || year > 9999 {
		return time.Time{}, false
	}
	return tm, true
}

func parseTimestamp(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range stringLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	case int64:
		return fromMillis(x)
	case int:
		return fromMillis(int64(x))
	case float64:
		return fromMillis(int64(x))
	case map[string]any:
		return fromSecondsMap(x)
	}
	return time.Time{}, false
}

func fromMillis(ms int64) (time.Time, bool) {
	if ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func fromSecondsMap(m map[string]any) (time.Time, bool) {
	seconds, ok := wholeNumber(m, "seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}
	nanos, _ := wholeNumber(m, "nanoseconds", "_nanoseconds")
	return time.Unix(seconds, nanos), true
}

func wholeNumber(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		switch n := m[k].(type) {
		case int64:
			return n, true
		case int:
			return int64(n), true
		case float64:
			return int64(n), true
		}
	}
	return 0, false
}
