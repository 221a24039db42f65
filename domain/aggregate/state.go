package aggregate

import (
	"cmp"
	"slices"

	"ecommerce-stats/domain/orders"

	lo "github.com/samber/lo"
)

// StateCount holds the distinct customers living in a state and the distinct sellers
// based in it. The two counts come from different columns and need not describe the same
// orders.
type StateCount struct {
	State         string `json:"state"`
	CustomerCount int    `json:"customer_count"`
	SellerCount   int    `json:"seller_count"`
}

// States counts distinct customers per customer_state and distinct sellers per
// seller_state. The result covers every state seen in either column, ascending by code.
func States(t *orders.Table) []StateCount {
	res := []StateCount{}
	if t.Len() == 0 {
		return res
	}
	custKeys, custGroups := groupSorted(t.Records, func(r orders.Record) string { return r.CustomerState })
	sellKeys, sellGroups := groupSorted(t.Records, func(r orders.Record) string { return r.SellerState })

	states := lo.Uniq(append(slices.Clone(custKeys), sellKeys...))
	slices.Sort(states)
	for _, s := range states {
		res = append(res, StateCount{
			State:         s,
			CustomerCount: distinct(custGroups[s], func(r orders.Record) string { return r.CustomerID }),
			SellerCount:   distinct(sellGroups[s], func(r orders.Record) string { return r.SellerID }),
		})
	}
	return res
}

// StatesByCustomers returns the n states with most customers.
func StatesByCustomers(rows []StateCount, n int) []StateCount {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b StateCount) int { return cmp.Compare(b.CustomerCount, a.CustomerCount) })
	return head(out, n)
}

// StatesBySellers returns the n states with most sellers.
func StatesBySellers(rows []StateCount, n int) []StateCount {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b StateCount) int { return cmp.Compare(b.SellerCount, a.SellerCount) })
	return head(out, n)
}
