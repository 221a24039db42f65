package orders

import (
	"slices"
	"time"
)

// Table is the in-memory order dataset.
// Records are kept sorted by approval time with missing timestamps last.
type Table struct {
	Records []Record
	// Location is the zone timestamps were parsed in.
	Location *time.Location

	HasCustomerGeo bool
	HasSellerGeo   bool
	// Warnings lists non-fatal load problems meant for the user (e.g. missing geolocation).
	Warnings []string
}

// NewTable sorts records by approval time and wraps them.
// The records slice is owned by the returned table.
func NewTable(records []Record, loc *time.Location) *Table {
	if loc == nil {
		loc = time.UTC
	}
	SortByApproval(records)
	return &Table{Records: records, Location: loc, HasCustomerGeo: true, HasSellerGeo: true}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// SortByApproval stable-sorts records ascending by approval time.
// Missing timestamps sort last and keep their input order.
func SortByApproval(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		switch {
		case a.ApprovedAt == nil && b.ApprovedAt == nil:
			return 0
		case a.ApprovedAt == nil:
			return 1
		case b.ApprovedAt == nil:
			return -1
		}
		return a.ApprovedAt.Compare(*b.ApprovedAt)
	})
}

// ApprovalBounds returns the earliest and latest approval timestamps.
// ok is false when no record has a valid approval timestamp.
func (t *Table) ApprovalBounds() (first, last time.Time, ok bool) {
	if t == nil {
		return time.Time{}, time.Time{}, false
	}
	for _, r := range t.Records {
		if r.ApprovedAt == nil {
			continue
		}
		if !ok {
			first, last, ok = *r.ApprovedAt, *r.ApprovedAt, true
			continue
		}
		if r.ApprovedAt.Before(first) {
			first = *r.ApprovedAt
		}
		if r.ApprovedAt.After(last) {
			last = *r.ApprovedAt
		}
	}
	return first, last, ok
}

// ReferenceDate is the latest approval timestamp of the table.
// Recency is measured against the reference date of the full, unfiltered table so that it
// does not move when the date filter narrows.
func (t *Table) ReferenceDate() (time.Time, bool) {
	_, last, ok := t.ApprovalBounds()
	return last, ok
}

// Bounds returns the calendar-day range spanned by approval timestamps.
func (t *Table) Bounds() (DateRange, bool) {
	first, last, ok := t.ApprovalBounds()
	if !ok {
		return DateRange{}, false
	}
	return NewDateRange(first.In(t.Location), last.In(t.Location)), true
}

// Filter returns a new table holding the records approved within r.
// Records without an approval timestamp never match. The input table is not modified and
// the result does not share its backing array.
func (t *Table) Filter(r DateRange) *Table {
	out := &Table{
		Records:        []Record{},
		Location:       time.UTC,
		HasCustomerGeo: true,
		HasSellerGeo:   true,
	}
	if t == nil {
		return out
	}
	out.Location = t.Location
	out.HasCustomerGeo = t.HasCustomerGeo
	out.HasSellerGeo = t.HasSellerGeo
	out.Warnings = slices.Clone(t.Warnings)
	if r.Empty() {
		return out
	}
	if r.Location == nil {
		r.Location = t.Location
	}
	for _, rec := range t.Records {
		if rec.ApprovedAt != nil && r.Contains(*rec.ApprovedAt) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}
