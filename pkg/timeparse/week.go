package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekID returns the ISO-8601 week identifier ("YYYY-Www") for d. The ISO
// year may differ from the calendar year near January 1 / December 31.
// Identifiers sort lexicographically in chronological order.
func WeekID(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeekIDPtr is WeekID for optional dates; nil in, empty string out.
func WeekIDPtr(d *time.Time) string {
	if d == nil {
		return ""
	}
	return WeekID(*d)
}

// WeekIDMonday returns the Monday (UTC midnight) of the identified ISO
// week: the first Monday on or before January 4 of the ISO year, offset by
// (week−1)*7 days. Used for display formatting only, never for bucketing.
// Returns nil for malformed identifiers.
func WeekIDMonday(weekID string) *time.Time {
	yearPart, weekPart, ok := strings.Cut(weekID, "-W")
	if !ok {
		return nil
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return nil
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil || week < 1 || week > 53 {
		return nil
	}

	// January 4 is always inside ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := jan4.AddDate(0, 0, -(weekday-1)+(week-1)*7)
	return &monday
}

// FormatWeekID renders a week identifier as "dd/mm" of its Monday, or the
// identifier itself when it cannot be resolved.
func FormatWeekID(weekID string) string {
	monday := WeekIDMonday(weekID)
	if monday == nil {
		return weekID
	}
	return fmt.Sprintf("%02d/%02d", monday.Day(), int(monday.Month()))
}

// WeekBounds returns the Sunday-start week containing ref in local time:
// Sunday 00:00:00 through Saturday 23:59:59.999. This is the
// "completed this week" KPI convention and is intentionally distinct from
// the Monday-start ISO weeks used by WeekID.
func WeekBounds(ref time.Time) (start, end time.Time) {
	start = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	end = start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond)
	return start, end
}

// TruncateDay strips the time-of-day, keeping the location.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
