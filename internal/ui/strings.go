package ui

import (
	"strings"
	"time"
)

const lastUpdatedLayout = "02/01/2006, 3:04:05 pm"

// FormatLastUpdated renders t as the dashboard footer line, in loc when given.
// The zero time renders as "never".
func FormatLastUpdated(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "*Last updated : never"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return "*Last updated : " + t.Format(lastUpdatedLayout)
}

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps both ends of value, which suits session ids and URLs.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// singleLine collapses newlines so a suggestion fits one list row.
func singleLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
