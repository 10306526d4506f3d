package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/unclebandit/campaign-scheduler/internal/errors"
)

func TestParseTimestampAccepted(t *testing.T) {
	cases := map[string]time.Time{
		"2030-05-01T10:30:00Z":       time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC),
		"2030-05-01T10:30:00.250Z":   time.Date(2030, 5, 1, 10, 30, 0, 250_000_000, time.UTC),
		"2030-05-01T12:30:00+02:00":  time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC),
		"2030-05-01T10:30:00":        time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC),
		"2030-05-01T10:30:00.123456": time.Date(2030, 5, 1, 10, 30, 0, 123_456_000, time.UTC),
		"2030-05-01 10:30:00":        time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC),
		"2030-05-01T10:30":           time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC),
		"2030-05-01":                 time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		"  2030-05-01T10:30:00Z  ":   time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC),
	}
	for raw, want := range cases {
		got, rej := ParseTimestamp(raw)
		require.Nil(t, rej, raw)
		assert.True(t, want.Equal(got), "%q: want %s got %s", raw, want, got)
	}
}

func TestParseTimestampRejected(t *testing.T) {
	for _, raw := range []string{"", "tomorrow", "2030-13-01T00:00:00", "01/05/2030", "2030-05-01T25:00"} {
		_, rej := ParseTimestamp(raw)
		require.NotNil(t, rej, raw)
		assert.Equal(t, apperrors.ReasonInvalidInput, rej.Reason)
	}
}
