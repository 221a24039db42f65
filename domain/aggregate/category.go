package aggregate

import (
	"cmp"
	"slices"

	"ecommerce-stats/domain/orders"
)

// CategoryRevenue is the payment total of one product category.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CategoryOrders is the distinct order count of one product category.
type CategoryOrders struct {
	Category    string `json:"category"`
	TotalOrders int    `json:"total_orders"`
}

func byCategory(r orders.Record) string { return r.Category }

// CategoriesByRevenue sums payment value per category, highest first.
// Ties keep ascending category order. Records without a category are skipped.
func CategoriesByRevenue(t *orders.Table) []CategoryRevenue {
	res := []CategoryRevenue{}
	if t.Len() == 0 {
		return res
	}
	keys, groups := groupSorted(t.Records, byCategory)
	for _, k := range keys {
		res = append(res, CategoryRevenue{Category: k, Revenue: sumPayments(groups[k])})
	}
	slices.SortStableFunc(res, func(a, b CategoryRevenue) int { return cmp.Compare(b.Revenue, a.Revenue) })
	return res
}

// CategoriesByOrders counts distinct orders per category, highest first.
// Ties keep ascending category order. Records without a category are skipped.
func CategoriesByOrders(t *orders.Table) []CategoryOrders {
	res := []CategoryOrders{}
	if t.Len() == 0 {
		return res
	}
	keys, groups := groupSorted(t.Records, byCategory)
	for _, k := range keys {
		res = append(res, CategoryOrders{Category: k, TotalOrders: distinctOrders(groups[k])})
	}
	slices.SortStableFunc(res, func(a, b CategoryOrders) int { return cmp.Compare(b.TotalOrders, a.TotalOrders) })
	return res
}

// WorstCategories returns the n categories with the fewest orders, fewest first.
// Ties keep their order in the descending summary.
func WorstCategories(rows []CategoryOrders, n int) []CategoryOrders {
	asc := slices.Clone(rows)
	slices.SortStableFunc(asc, func(a, b CategoryOrders) int { return cmp.Compare(a.TotalOrders, b.TotalOrders) })
	return head(asc, n)
}

// BestCategories returns the first n rows of the descending summary.
func BestCategories(rows []CategoryOrders, n int) []CategoryOrders {
	return head(slices.Clone(rows), n)
}

func head[T any](rows []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	if rows == nil {
		return []T{}
	}
	return rows
}
