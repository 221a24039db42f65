package dashboard

import (
	"context"
	"time"

	"ecommerce-stats/domain/aggregate"
	"ecommerce-stats/domain/orders"

	"golang.org/x/sync/errgroup"
)

// Report is every summary of one date range. It is built from a single filtered snapshot
// so all charts agree with each other. A Report is shared between callers once cached and
// must be treated as read-only.
type Report struct {
	Start         string    `json:"start"`
	End           string    `json:"end"`
	ReferenceDate time.Time `json:"reference_date"`
	Rows          int       `json:"rows"`
	Headline      Headline  `json:"headline"`

	DailyOrders     []aggregate.DailyOrders      `json:"daily_orders"`
	CategoryRevenue []aggregate.CategoryRevenue  `json:"category_revenue"`
	CategoryOrders  []aggregate.CategoryOrders   `json:"category_orders"`
	States          []aggregate.StateCount       `json:"states"`
	RFM             []aggregate.CustomerRFM      `json:"rfm"`
	ReviewScores    []aggregate.ReviewScoreCount `json:"review_scores"`
	Geo             *aggregate.GeoSummary        `json:"geo"`

	Warnings []string `json:"warnings,omitempty"`
}

// Headline holds the metric tiles shown above the charts.
type Headline struct {
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalRevenueText string  `json:"total_revenue_text"`
	Customers        int     `json:"customers"`
	AvgRecency       Metric  `json:"avg_recency"`
	AvgFrequency     Metric  `json:"avg_frequency"`
	AvgMonetary      Metric  `json:"avg_monetary"`
	AvgMonetaryText  string  `json:"avg_monetary_text"`
}

// Rankings are the top/bottom lists drawn as bar charts.
type Rankings struct {
	BestCategories    []aggregate.CategoryOrders `json:"best_categories"`
	WorstCategories   []aggregate.CategoryOrders `json:"worst_categories"`
	StatesByCustomers []aggregate.StateCount     `json:"states_by_customers"`
	StatesBySellers   []aggregate.StateCount     `json:"states_by_sellers"`
	TopByRecency      []aggregate.CustomerRFM    `json:"top_by_recency"`
	TopByFrequency    []aggregate.CustomerRFM    `json:"top_by_frequency"`
	TopByMonetary     []aggregate.CustomerRFM    `json:"top_by_monetary"`
}

// Rankings cuts the report's summaries to n entries each.
func (r *Report) Rankings(n int) Rankings {
	return Rankings{
		BestCategories:    aggregate.BestCategories(r.CategoryOrders, n),
		WorstCategories:   aggregate.WorstCategories(r.CategoryOrders, n),
		StatesByCustomers: aggregate.StatesByCustomers(r.States, n),
		StatesBySellers:   aggregate.StatesBySellers(r.States, n),
		TopByRecency:      aggregate.TopByRecency(r.RFM, n),
		TopByFrequency:    aggregate.TopByFrequency(r.RFM, n),
		TopByMonetary:     aggregate.TopByMonetary(r.RFM, n),
	}
}

// Build runs every aggregation over filtered. reference is the latest approval timestamp of
// the unfiltered dataset. With parallel set the aggregations run concurrently; they only
// read filtered, so the result is the same either way.
func Build(ctx context.Context, filtered *orders.Table, rng orders.DateRange, reference time.Time, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	rep := &Report{
		Start:         rng.Start.Format(orders.DateLayout),
		End:           rng.End.Format(orders.DateLayout),
		ReferenceDate: reference,
		Rows:          filtered.Len(),
		Warnings:      filtered.Warnings,
	}

	steps := []func(){
		func() { rep.DailyOrders = aggregate.Daily(filtered) },
		func() { rep.CategoryRevenue = aggregate.CategoriesByRevenue(filtered) },
		func() { rep.CategoryOrders = aggregate.CategoriesByOrders(filtered) },
		func() { rep.States = aggregate.States(filtered) },
		func() { rep.RFM = aggregate.RFM(filtered, reference) },
		func() { rep.ReviewScores = aggregate.ReviewScores(filtered) },
		func() { rep.Geo = aggregate.Geolocation(filtered, opts.GeoCellDegrees) },
	}

	if opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for _, step := range steps {
			step := step
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				step()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			step()
		}
	}

	rep.Headline = headline(rep, opts)
	return rep, nil
}

func headline(rep *Report, opts Options) Headline {
	orderCount, revenue := aggregate.Totals(rep.DailyOrders)
	avg := aggregate.AverageRFM(rep.RFM)
	return Headline{
		TotalOrders:      orderCount,
		TotalRevenue:     revenue,
		TotalRevenueText: FormatCurrency(revenue, opts.Currency, opts.Locale),
		Customers:        len(rep.RFM),
		AvgRecency:       Metric(avg.Recency).Round(1),
		AvgFrequency:     Metric(avg.Frequency).Round(2),
		AvgMonetary:      Metric(avg.Monetary),
		AvgMonetaryText:  FormatCurrency(avg.Monetary, opts.Currency, opts.Locale),
	}
}
