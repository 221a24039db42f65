package calculate

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ecommerce-stats/command/app"
	ccsv "ecommerce-stats/connectors/csv"
	"ecommerce-stats/connectors/xlsx"
	"ecommerce-stats/domain/dashboard"
)

// Run executes the calculate command: it builds the report for the requested range and
// writes every summary as CSV files (default) or as one xlsx workbook.
//
// Usage:
//
//	ecommerce-stats calculate [-data main_data.csv] [-start 2017-01-01] [-end 2018-08-31] [-out data] [-format csv|xlsx]
func Run(args []string) error {
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := app.Register(fs)
	out := fs.String("out", "data", "output directory")
	format := fs.String("format", "csv", "output format: csv or xlsx")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "csv" && *format != "xlsx" {
		return fmt.Errorf("calculate: unknown format %q", *format)
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
	if err := Write(*out, *format, rep); err != nil {
		slog.Error("calculate.write.error", "out", *out, "error", err)
		return err
	}
	slog.Info("calculate.done", "range", rng.Key(), "rows", rep.Rows, "format", *format, "out", *out)
	return nil
}

// Write stores rep under dir in the given format.
func Write(dir, format string, rep *dashboard.Report) error {
	switch format {
	case "xlsx":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return xlsx.WriteReport(filepath.Join(dir, "report.xlsx"), rep)
	case "csv":
		return ccsv.WriteAllCSVs(dir, rep)
	}
	return fmt.Errorf("unknown format %q", format)
}
