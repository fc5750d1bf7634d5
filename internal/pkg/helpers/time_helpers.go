package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		log.Warn().Str("value", value).Dur("default", defaultValue).Msg("Invalid duration format, using default")
		return defaultValue
	}

	return duration
}

// DaysSince returns the number of whole days elapsed since t, never negative.
// Used for the reviewer dashboard's daysPending column.
func DaysSince(t time.Time, now time.Time) int {
	if t.IsZero() || now.Before(t) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
