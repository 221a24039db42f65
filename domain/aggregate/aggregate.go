// Package aggregate holds the dashboard summaries.
//
// Every function takes the filtered table by read-only reference and returns freshly
// allocated rows. None of them mutate their input, and an empty table always yields an
// empty, non-nil slice.
package aggregate

import (
	"slices"

	"ecommerce-stats/domain/orders"

	lo "github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// sumPayments adds payment values exactly and returns the nearest float.
func sumPayments(records []orders.Record) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.PaymentValue))
	}
	return total.InexactFloat64()
}

// distinctOrders counts the distinct non-empty order ids.
func distinctOrders(records []orders.Record) int {
	return distinct(records, func(r orders.Record) string { return r.OrderID })
}

func distinct(records []orders.Record, field func(orders.Record) string) int {
	values := lo.FilterMap(records, func(r orders.Record, _ int) (string, bool) {
		v := field(r)
		return v, v != ""
	})
	return len(lo.Uniq(values))
}

// groupSorted groups records by key, skipping empty keys, and returns the keys ascending.
func groupSorted(records []orders.Record, key func(orders.Record) string) ([]string, map[string][]orders.Record) {
	groups := lo.GroupBy(lo.Filter(records, func(r orders.Record, _ int) bool {
		return key(r) != ""
	}), key)
	keys := lo.Keys(groups)
	slices.Sort(keys)
	return keys, groups
}
