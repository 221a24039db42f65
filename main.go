package main

import (
	"fmt"
	"log/slog"
	"os"

	cmdcalculate "ecommerce-stats/command/calculate"
	cmdchart "ecommerce-stats/command/chart"
	cmdsummary "ecommerce-stats/command/summary"
	cmdweb "ecommerce-stats/command/web"
)

// E-commerce order dashboard.
// Usage:
//   go run . web [-addr :8080] [-data main_data.csv]
//   go run . calculate [-start 2017-01-01] [-end 2018-08-31] [-out data] [-format csv|xlsx]
//   go run . chart [-out charts] [-top 5]
//   go run . summary [-start ...] [-end ...]
// Notes:
// - Every subcommand reads the YAML config at CONFIG_PATH (default ./config.yml); ECOMMERCE_* env vars override it.
// - Dates are whole days in the configured timezone, both ends included.

func main() {
	args := os.Args
	// Initialize slog logger; Setup replaces it once the config log level is known
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		var run func([]string) error
		switch sub {
		case "calculate":
			run = cmdcalculate.Run
		case "web":
			run = cmdweb.Run
		case "chart":
			run = cmdchart.Run
		case "summary":
			run = cmdsummary.Run
		}
		if run != nil {
			if err := run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, "usage: ecommerce-stats calculate [-out data] [-format csv|xlsx] | web [-addr :8080] [-ui ./ui/dist] | chart [-out charts] | summary\n  common flags: -data <csv> -start YYYY-MM-DD -end YYYY-MM-DD\nENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml)")
	os.Exit(2)
}
