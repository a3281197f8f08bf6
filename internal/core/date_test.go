package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2023-10-15", true},
		{"2023-01-01", true},
		{"2023-1-5", false}, // not zero-padded
		{"15/10/2023", false},
		{"2023-13-01", false},
		{"", false},
	}
	for _, tc := range cases {
		_, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Errorf("ParseDate(%q) unexpected error %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseDate(%q) expected error", tc.in)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	// Lexicographic comparison must equal chronological ordering.
	if !NewDate(2023, 9, 30).Before(NewDate(2023, 10, 1)) {
		t.Fatal("2023-09-30 should sort before 2023-10-01")
	}
	if NewDate(2024, 1, 1).Before(NewDate(2023, 12, 31)) {
		t.Fatal("2024-01-01 should not sort before 2023-12-31")
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		from, to Date
		want     int
	}{
		{"2023-11-01", "2024-01-01", 61},
		{"2023-10-15", "2023-10-15", 0},
		{"2023-10-15", "2023-10-16", 1},
		{"2023-02-28", "2023-03-01", 1}, // month boundary, non-leap
		{"2024-02-28", "2024-03-01", 2}, // leap year
	}
	for _, tc := range cases {
		if got := DaysBetween(tc.from, tc.to); got != tc.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	if got := Today(now); got != "2024-01-01" {
		t.Fatalf("Today = %s", got)
	}
}

func TestFormatDisplay(t *testing.T) {
	if got := Date("2023-10-15").FormatDisplay(); got != "15/10/2023" {
		t.Fatalf("FormatDisplay = %q", got)
	}
	if got := Date("").FormatDisplay(); got != "" {
		t.Fatalf("empty date FormatDisplay = %q", got)
	}
}
