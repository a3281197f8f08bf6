package core

import (
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
// Zero-padded ISO dates sort lexicographically in chronological order,
// which the filter and overdue engines rely on.
const dateLayout = "2006-01-02"

// Date is a calendar date in ISO form (YYYY-MM-DD), with no time component.
type Date string

// NewDate builds a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(dateLayout))
}

// Today returns the date of the supplied instant. Callers inject the clock
// so that overdue detection and date defaulting stay testable.
func Today(now time.Time) Date {
	return Date(now.Format(dateLayout))
}

// ParseDate validates an ISO date string and returns it as a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	// Round-trip to reject non-canonical spellings such as 2024-1-5.
	if t.Format(dateLayout) != s {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

func (d Date) IsZero() bool {
	return d == ""
}

// Before reports whether d is strictly earlier than other.
// Lexicographic comparison is chronological for canonical ISO dates.
func (d Date) Before(other Date) bool {
	return d < other
}

func (d Date) Year() int {
	return d.time().Year()
}

// Month returns the calendar month, 1-12.
func (d Date) Month() int {
	return int(d.time().Month())
}

func (d Date) time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// DaysBetween returns the number of calendar days from one date to another.
// Both dates resolve to UTC midnight, so the difference is a whole number of
// days regardless of local timezone or DST transitions.
func DaysBetween(from, to Date) int {
	return int(to.time().Sub(from.time()).Hours() / 24)
}

// FormatDisplay renders the date in the dd/mm/yyyy form used by the PDF and
// spreadsheet exports. CSV and XML keep the raw ISO form.
func (d Date) FormatDisplay() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format("02/01/2006")
}
