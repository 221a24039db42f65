package chart

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"ecommerce-stats/command/app"
	cchart "ecommerce-stats/connectors/chart"
)

// Run renders the dashboard charts as PNG files.
//
// Usage:
//
//	ecommerce-stats chart [-data main_data.csv] [-start ...] [-end ...] [-out charts] [-top 5]
func Run(args []string) error {
	fs := flag.NewFlagSet("chart", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := app.Register(fs)
	out := fs.String("out", "charts", "output directory")
	top := fs.Int("top", 0, "bars per ranking chart (default from config dashboard.top_n)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, p, err := app.Setup(common)
	if err != nil {
		return err
	}
	if *top <= 0 {
		*top = p.Options().TopN
	}
	rng, err := app.Range(p, *common.Start, *common.End)
	if err != nil {
		return err
	}
	rep, err := p.Render(context.Background(), rng)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}
	files, err := cchart.RenderAll(*out, rep, *top)
	if err != nil {
		return err
	}
	slog.Info("chart.done", "range", rng.Key(), "files", len(files), "out", *out)
	return nil
}
