package validation

import (
	"strings"
	"time"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
)

// Naive layouts carry no offset and are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 timestamp. It never panics; an unreadable
// value comes back as an InvalidInput rejection.
func ParseTimestamp(raw string) (time.Time, *apperrors.Rejection) {
	s := strings.TrimSpace(raw)
	// a single space may stand in for the date/time separator
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.InvalidInput("Invalid send time format. ISO 8601 format expected")
}
