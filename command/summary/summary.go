package summary

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"ecommerce-stats/command/app"
	"ecommerce-stats/domain/dashboard"
)

// Run prints the headline metrics and rankings of a date range to stdout.
func Run(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := app.Register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	_, p, err := app.Setup(common)
	if err != nil {
		return err
	}
	rng, err := app.Range(p, *common.Start, *common.End)
	if err != nil {
		return err
	}
	rep, err := p.Render(context.Background(), rng)
	if err != nil {
		return err
	}
	return Print(os.Stdout, rep, p.Options())
}

func metric(m dashboard.Metric, decimals int) string {
	if !m.Valid() {
		return "-"
	}
	return fmt.Sprintf("%.*f", decimals, float64(m))
}

// Print writes rep as aligned text.
func Print(w io.Writer, rep *dashboard.Report, opts dashboard.Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	h := rep.Headline
	fmt.Fprintf(tw, "Range\t%s .. %s\n", rep.Start, rep.End)
	fmt.Fprintf(tw, "Rows\t%d\n", rep.Rows)
	fmt.Fprintf(tw, "Total orders\t%d\n", h.TotalOrders)
	fmt.Fprintf(tw, "Total revenue\t%s\n", h.TotalRevenueText)
	fmt.Fprintf(tw, "Customers\t%d\n", h.Customers)
	fmt.Fprintf(tw, "Average recency (days)\t%s\n", metric(h.AvgRecency, 1))
	fmt.Fprintf(tw, "Average frequency\t%s\n", metric(h.AvgFrequency, 2))
	fmt.Fprintf(tw, "Average monetary\t%s\n", h.AvgMonetaryText)
	for _, warn := range rep.Warnings {
		fmt.Fprintf(tw, "Warning\t%s\n", warn)
	}

	ranks := rep.Rankings(opts.TopN)
	fmt.Fprintln(tw, "\nBest categories\torders")
	for _, c := range ranks.BestCategories {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Category, c.TotalOrders)
	}
	fmt.Fprintln(tw, "Worst categories\torders")
	for _, c := range ranks.WorstCategories {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Category, c.TotalOrders)
	}
	fmt.Fprintln(tw, "Top customers\trecency (days)")
	for _, c := range ranks.TopByRecency {
		fmt.Fprintf(tw, "  %s\t%d\n", c.ShortID(), c.Recency)
	}
	fmt.Fprintln(tw, "Top customers\tfrequency")
	for _, c := range ranks.TopByFrequency {
		fmt.Fprintf(tw, "  %s\t%d\n", c.ShortID(), c.Frequency)
	}
	fmt.Fprintln(tw, "Top customers\tmonetary")
	for _, c := range ranks.TopByMonetary {
		fmt.Fprintf(tw, "  %s\t%s\n", c.ShortID(), dashboard.FormatCurrency(c.Monetary, opts.Currency, opts.Locale))
	}
	return tw.Flush()
}
