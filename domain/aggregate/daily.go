package aggregate

import (
	"time"

	"ecommerce-stats/domain/orders"

	lo "github.com/samber/lo"
)

// DailyOrders is one calendar day of orders. Day is the civil date as midnight UTC.
type DailyOrders struct {
	Day        time.Time `json:"day"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}

// Daily buckets records by the calendar day of their approval timestamp.
// OrderCount counts distinct orders of the day; Revenue sums every line item.
// Days between the first and last bucket with no orders are reported with zero values.
func Daily(t *orders.Table) []DailyOrders {
	res := []DailyOrders{}
	if t.Len() == 0 {
		return res
	}
	byDay := lo.GroupBy(lo.Filter(t.Records, func(r orders.Record, _ int) bool {
		return r.ApprovedAt != nil
	}), func(r orders.Record) time.Time {
		return orders.Day(r.ApprovedAt.In(t.Location))
	})
	if len(byDay) == 0 {
		return res
	}
	days := lo.Keys(byDay)
	first := lo.MinBy(days, func(a, b time.Time) bool { return a.Before(b) })
	last := lo.MaxBy(days, func(a, b time.Time) bool { return a.After(b) })

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		rows := byDay[d]
		res = append(res, DailyOrders{
			Day:        d,
			OrderCount: distinctOrders(rows),
			Revenue:    sumPayments(rows),
		})
	}
	return res
}

// Totals sums order counts and revenue across days.
func Totals(days []DailyOrders) (orderCount int, revenue float64) {
	orderCount = lo.SumBy(days, func(d DailyOrders) int { return d.OrderCount })
	revenue = lo.SumBy(days, func(d DailyOrders) float64 { return d.Revenue })
	return orderCount, revenue
}
