package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecommerce_stats_report_cache_hits_total",
		Help: "Reports served from the pipeline cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecommerce_stats_report_cache_misses_total",
		Help: "Reports recomputed because the date range changed.",
	})
	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ecommerce_stats_report_render_seconds",
		Help:    "Time spent filtering and aggregating one report.",
		Buckets: prometheus.DefBuckets,
	})
	loadedRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ecommerce_stats_loaded_rows",
		Help: "Rows of the loaded order dataset.",
	})
	filteredRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ecommerce_stats_filtered_rows",
		Help: "Rows inside the last rendered date range.",
	})
)
