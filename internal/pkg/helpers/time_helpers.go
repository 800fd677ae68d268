package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DateLayout is the wire format for calendar dates
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for times of day
	ClockLayout = "15:04"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// CombineDateTime builds a wall-clock instant from a "2006-01-02" date and a
// "15:04" (or "15:04:05") time of day, interpreted in the server's location.
func CombineDateTime(date, clock string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	c, err := time.ParseInLocation(ClockLayout, clock, time.Local)
	if err != nil {
		c, err = time.ParseInLocation("15:04:05", clock, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
		}
	}

	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.Local), nil
}

// DayBounds returns the half-open interval [start, end) covering the
// calendar day that contains t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// FormatDate renders t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock renders the time-of-day component of t.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}
