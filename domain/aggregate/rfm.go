package aggregate

import (
	"cmp"
	"math"
	"slices"
	"time"

	"ecommerce-stats/domain/orders"

	lo "github.com/samber/lo"
)

// CustomerRFM scores one customer.
type CustomerRFM struct {
	CustomerID string `json:"customer_id"`
	// Recency is the number of whole days between the reference date and the customer's
	// latest approved order.
	Recency   int     `json:"recency"`
	Frequency int     `json:"frequency"`
	Monetary  float64 `json:"monetary"`
}

// ShortID is the customer id cut to 8 characters for chart labels.
func (c CustomerRFM) ShortID() string {
	if len(c.CustomerID) <= 8 {
		return c.CustomerID
	}
	return c.CustomerID[:8]
}

// RFM scores every customer of the table against reference, ascending by customer id.
// reference must come from the full dataset, not the filtered one, so recency stays
// comparable between filter windows. Customers with no approved order cannot be scored and
// are left out.
func RFM(t *orders.Table, reference time.Time) []CustomerRFM {
	res := []CustomerRFM{}
	if t.Len() == 0 {
		return res
	}
	keys, groups := groupSorted(t.Records, func(r orders.Record) string { return r.CustomerID })
	for _, id := range keys {
		rows := groups[id]
		approved := lo.FilterMap(rows, func(r orders.Record, _ int) (time.Time, bool) {
			if r.ApprovedAt == nil {
				return time.Time{}, false
			}
			return *r.ApprovedAt, true
		})
		if len(approved) == 0 {
			continue
		}
		latest := lo.MaxBy(approved, func(a, b time.Time) bool { return a.After(b) })
		res = append(res, CustomerRFM{
			CustomerID: id,
			Recency:    daysBetween(latest, reference),
			Frequency:  distinctOrders(rows),
			Monetary:   sumPayments(rows),
		})
	}
	return res
}

// daysBetween returns floor((to - from) / 24h).
func daysBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(24*time.Hour)))
}

// RFMAverages are the means of the three scores; NaN when there are no customers.
type RFMAverages struct {
	Recency   float64
	Frequency float64
	Monetary  float64
}

// AverageRFM averages the scores.
func AverageRFM(rows []CustomerRFM) RFMAverages {
	if len(rows) == 0 {
		return RFMAverages{Recency: math.NaN(), Frequency: math.NaN(), Monetary: math.NaN()}
	}
	n := float64(len(rows))
	return RFMAverages{
		Recency:   float64(lo.SumBy(rows, func(r CustomerRFM) int { return r.Recency })) / n,
		Frequency: float64(lo.SumBy(rows, func(r CustomerRFM) int { return r.Frequency })) / n,
		Monetary:  lo.SumBy(rows, func(r CustomerRFM) float64 { return r.Monetary }) / n,
	}
}

// TopByRecency returns the n most recent customers (smallest recency first).
func TopByRecency(rows []CustomerRFM, n int) []CustomerRFM {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b CustomerRFM) int { return cmp.Compare(a.Recency, b.Recency) })
	return head(out, n)
}

// TopByFrequency returns the n customers with the most orders.
func TopByFrequency(rows []CustomerRFM, n int) []CustomerRFM {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b CustomerRFM) int { return cmp.Compare(b.Frequency, a.Frequency) })
	return head(out, n)
}

// TopByMonetary returns the n customers who spent the most.
func TopByMonetary(rows []CustomerRFM, n int) []CustomerRFM {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b CustomerRFM) int { return cmp.Compare(b.Monetary, a.Monetary) })
	return head(out, n)
}
