package utils

import (
	"fmt"
	"time"
)

func FormatTime(t time.Time, timezone string) string {
	if timezone == "" {
		timezone = DefaultTimeZone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	return t.In(loc).Format("2006-01-02 15:04:05")
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// WholeDaysBetween returns the number of whole calendar days from
// "from" to "to", ignoring the time of day on both ends. Negative when
// "to" precedes "from". Both dates are re-anchored in UTC so a DST
// transition (a 23- or 25-hour day) cannot shift the count.
func WholeDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(from.Location()).Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}

// ValidateClockTime reports whether s is a valid "HH:MM" time of day.
func ValidateClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// ValidateClockRange checks a pair of "HH:MM" local time-of-day
// strings and requires start to precede end.
func ValidateClockRange(start, end string) error {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("invalid time_start %q: %w", start, err)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("invalid time_end %q: %w", end, err)
	}
	if !s.Before(e) {
		return fmt.Errorf("time_start %q must be before time_end %q", start, end)
	}
	return nil
}
