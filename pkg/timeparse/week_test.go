package timeparse

import (
	"testing"
	"time"
)

func TestWeekIDKnownDates(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-W01"}, // a Monday
		{"2023-12-31", "2023-W52"}, // a Sunday
		{"2021-01-01", "2020-W53"}, // ISO year differs from calendar year
		{"2024-12-30", "2025-W01"},
	}
	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := WeekID(d); got != c.want {
			t.Errorf("WeekID(%s) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestWeekIDPtr(t *testing.T) {
	if got := WeekIDPtr(nil); got != "" {
		t.Errorf("WeekIDPtr(nil) = %q, want empty", got)
	}
}

func TestWeekIDMonday(t *testing.T) {
	monday := WeekIDMonday("2024-W01")
	if monday == nil {
		t.Fatal("expected a Monday, got nil")
	}
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !monday.Equal(want) {
		t.Errorf("Monday of 2024-W01 = %v, want %v", monday, want)
	}

	// Round trip: the Monday of a week maps back to that week.
	id := "2020-W53"
	m := WeekIDMonday(id)
	if m == nil {
		t.Fatalf("WeekIDMonday(%q) = nil", id)
	}
	if got := WeekID(*m); got != id {
		t.Errorf("round trip of %q gave %q", id, got)
	}
}

func TestWeekIDMondayMalformed(t *testing.T) {
	for _, in := range []string{"", "2024", "2024-W00", "2024-W54", "xxxx-Wyy"} {
		if m := WeekIDMonday(in); m != nil {
			t.Errorf("WeekIDMonday(%q) = %v, want nil", in, m)
		}
	}
}

func TestFormatWeekID(t *testing.T) {
	if got := FormatWeekID("2024-W01"); got != "01/01" {
		t.Errorf("FormatWeekID(2024-W01) = %q, want 01/01", got)
	}
	if got := FormatWeekID("bogus"); got != "bogus" {
		t.Errorf("unresolvable identifiers pass through, got %q", got)
	}
}

func TestWeekBoundsSundayStart(t *testing.T) {
	// 2024-06-12 is a Wednesday; its Sunday-start week is June 9–15.
	ref := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.Local)
	start, end := WeekBounds(ref)
	if start.Weekday() != time.Sunday {
		t.Errorf("week start weekday = %v, want Sunday", start.Weekday())
	}
	if start.Day() != 9 || end.Day() != 15 {
		t.Errorf("week bounds = %v .. %v, want June 9 .. June 15", start, end)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("week end is not end-of-day: %v", end)
	}
}

func TestTruncateDay(t *testing.T) {
	in := time.Date(2024, time.March, 5, 17, 45, 12, 999, time.Local)
	got := TruncateDay(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("TruncateDay left time-of-day: %v", got)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 {
		t.Errorf("TruncateDay changed the date: %v", got)
	}
}
