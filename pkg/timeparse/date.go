// Package timeparse parses the locale-formatted dates and tracking
// durations found in task exports, and converts between dates and
// ISO-8601 week identifiers.
package timeparse

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// isoFallbackLayouts are tried in order when the input is not dd/mm/yyyy.
var isoFallbackLayouts = []string{
	"2006-01-02T15:04:05.999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ParseDate parses dd/mm/yyyy or dd/mm/yy (two-digit years become
// 2000+yy), falling back to ISO-ish layouts when the input does not split
// into exactly three slash-separated parts. Returns nil on anything it
// cannot parse; it never panics. Calendar overflow (31/02/...) is
// rejected, not rolled over.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return parseGeneric(s)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil
	}

	if year >= 0 && year <= 99 {
		year += 2000
	}
	if year < 1000 || year > 3000 {
		return nil
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes out-of-range components, so a mismatch here
	// means the calendar date did not exist.
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return nil
	}
	return &d
}

func parseGeneric(s string) *time.Time {
	for _, layout := range isoFallbackLayouts {
		d, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		if d.Year() <= 1900 || d.Year() >= 3000 {
			return nil
		}
		return &d
	}
	return nil
}

// DurationToHours converts a tracked-time string to decimal hours.
// Accepted forms: "H:MM:SS", "MM:SS", or a bare decimal number of hours
// (comma decimal separator accepted). Empty, "-", malformed, or negative
// input degrades to 0 with a logged warning rather than an error.
func DurationToHours(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}

	parts := strings.Split(s, ":")
	var hours, minutes, seconds int
	var err error
	switch len(parts) {
	case 3:
		hours, err = strconv.Atoi(parts[0])
		if err == nil {
			minutes, err = strconv.Atoi(parts[1])
		}
		if err == nil {
			seconds, err = strconv.Atoi(parts[2])
		}
	case 2:
		minutes, err = strconv.Atoi(parts[0])
		if err == nil {
			seconds, err = strconv.Atoi(parts[1])
		}
	case 1:
		v, ferr := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if ferr != nil {
			slog.Warn("unrecognized tracking time format, treated as 0", "value", s)
			return 0
		}
		if v < 0 {
			slog.Warn("negative decimal tracking time, treated as 0", "value", s)
			return 0
		}
		return v
	default:
		slog.Warn("unrecognized tracking time format, treated as 0", "value", s)
		return 0
	}

	if err != nil || hours < 0 || minutes < 0 || seconds < 0 || minutes >= 60 || seconds >= 60 {
		slog.Warn("invalid tracking time components, treated as 0", "value", s)
		return 0
	}
	return float64(hours) + float64(minutes)/60 + float64(seconds)/3600
}
