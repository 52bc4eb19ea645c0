package models

import "time"

// DateLayout is the calendar-date format used in records and on the command line.
const DateLayout = "2006-01-02"

type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// calendarDate drops the time of day so comparisons only see the date.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate reports an ErrInvalidRange unless CheckOut falls on a later
// calendar day than CheckIn.
func (r DateRange) Validate() error {
	if !calendarDate(r.CheckOut).After(calendarDate(r.CheckIn)) {
		return NewRangeError(FormatDate(r.CheckIn), FormatDate(r.CheckOut))
	}
	return nil
}

// Nights returns the number of nights covered by a valid range, or 0.
func (r DateRange) Nights() int {
	if r.Validate() != nil {
		return 0
	}
	return int(calendarDate(r.CheckOut).Sub(calendarDate(r.CheckIn)).Hours() / 24)
}
