package orders

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used by the date control and the API.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days.
// Start and End are civil dates (see Day); a range with Start after End is empty.
// Location decides which calendar day an instant falls on; nil means UTC, or the table
// location when the range is passed to Table.Filter.
type DateRange struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// Day returns the calendar date of t in its own location as midnight UTC.
// Local midnight does not exist on DST switch days in some zones, so days are never
// built in the local location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange builds a range from two instants, keeping only their calendar days in the
// location of start.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end.In(start.Location())), Location: start.Location()}
}

// ParseDateRange parses YYYY-MM-DD bounds in loc.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return DateRange{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return DateRange{}, fmt.Errorf("parse end date %q: %w", end, err)
	}
	return DateRange{Start: s, End: e, Location: loc}, nil
}

// Empty reports whether no day can fall inside the range.
func (r DateRange) Empty() bool { return r.Start.After(r.End) }

// Contains reports whether the calendar day of t lies within the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}
	d := Day(t.In(loc))
	return !d.Before(r.Start) && !d.After(r.End)
}

// Key identifies the range for caching.
func (r DateRange) Key() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

func (r DateRange) String() string { return r.Key() }
