// Package app wires configuration, the order file and the report pipeline for the commands.
package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	cfgloader "ecommerce-stats/connectors/config"
	ccsv "ecommerce-stats/connectors/csv"
	"ecommerce-stats/domain/config"
	"ecommerce-stats/domain/dashboard"
	"ecommerce-stats/domain/orders"
)

// Flags are the options every subcommand accepts.
type Flags struct {
	Data  *string
	Start *string
	End   *string
}

// Register adds -data, -start and -end to fs.
func Register(fs *flag.FlagSet) Flags {
	return Flags{
		Data:  fs.String("data", "", "order file (default from config data.path)"),
		Start: fs.String("start", "", "first day YYYY-MM-DD (default: first approved order)"),
		End:   fs.String("end", "", "last day YYYY-MM-DD (default: last approved order)"),
	}
}

// Setup loads the config, applies the log level, loads the order file and builds the pipeline.
func Setup(f Flags) (*config.Config, *dashboard.Pipeline, error) {
	cfg, err := cfgloader.Load(cfgloader.Path())
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfgloader.LogLevel(cfg)})
	slog.SetDefault(slog.New(h))

	if f.Data != nil && *f.Data != "" {
		cfg.Data.Path = *f.Data
	}
	table, err := ccsv.LoadOrders(cfg.Data.Path, cfgloader.Location(cfg))
	if err != nil {
		slog.Error("orders.load.error", "path", cfg.Data.Path, "error", err)
		return nil, nil, err
	}
	for _, w := range table.Warnings {
		slog.Warn("orders.warning", "message", w)
	}
	return cfg, dashboard.New(table, Options(cfg), slog.Default()), nil
}

// Options maps the dashboard section of the config.
func Options(cfg *config.Config) dashboard.Options {
	return dashboard.Options{
		TopN:           cfg.Dashboard.TopN,
		Currency:       cfg.Dashboard.Currency,
		Locale:         cfg.Dashboard.Locale,
		GeoCellDegrees: cfg.Dashboard.GeoCellDegrees,
		Parallel:       cfg.Dashboard.Parallel,
	}
}

// Range resolves start/end strings against the pipeline bounds; an empty side takes the bound.
func Range(p *dashboard.Pipeline, start, end string) (orders.DateRange, error) {
	bounds, ok := p.Bounds()
	if !ok && (start == "" || end == "") {
		return orders.DateRange{}, fmt.Errorf("no approved orders to derive a date range from")
	}
	if start == "" {
		start = bounds.Start.Format(orders.DateLayout)
	}
	if end == "" {
		end = bounds.End.Format(orders.DateLayout)
	}
	return orders.ParseDateRange(start, end, p.Location())
}
