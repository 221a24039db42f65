package aggregate

import (
	"cmp"
	"slices"

	"ecommerce-stats/domain/orders"

	lo "github.com/samber/lo"
)

// ReviewScoreCount is the number of line items carrying a review score.
type ReviewScoreCount struct {
	Score   int     `json:"score"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ReviewScores counts rows per review score, most frequent first; ties keep ascending
// score order. Rows with no score are skipped and do not count toward the percentages.
func ReviewScores(t *orders.Table) []ReviewScoreCount {
	res := []ReviewScoreCount{}
	if t.Len() == 0 {
		return res
	}
	counts := lo.CountValuesBy(lo.Filter(t.Records, func(r orders.Record, _ int) bool {
		return r.ReviewScore > 0
	}), func(r orders.Record) int { return r.ReviewScore })
	total := lo.Sum(lo.Values(counts))
	scores := lo.Keys(counts)
	slices.Sort(scores)
	for _, s := range scores {
		res = append(res, ReviewScoreCount{
			Score:   s,
			Count:   counts[s],
			Percent: float64(counts[s]) * 100 / float64(total),
		})
	}
	slices.SortStableFunc(res, func(a, b ReviewScoreCount) int { return cmp.Compare(b.Count, a.Count) })
	return res
}
