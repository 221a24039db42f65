// Package dashboard turns the loaded order table into reports for a date range.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"ecommerce-stats/domain/orders"
)

// Options tunes report building.
type Options struct {
	TopN           int
	Currency       string
	Locale         string
	GeoCellDegrees float64
	Parallel       bool
}

// DefaultOptions mirrors the dashboard defaults.
func DefaultOptions() Options {
	return Options{
		TopN:           5,
		Currency:       "BRL",
		Locale:         "pt-BR",
		GeoCellDegrees: 1,
		Parallel:       true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TopN <= 0 {
		o.TopN = d.TopN
	}
	if o.Currency == "" {
		o.Currency = d.Currency
	}
	if o.Locale == "" {
		o.Locale = d.Locale
	}
	if o.GeoCellDegrees <= 0 {
		o.GeoCellDegrees = d.GeoCellDegrees
	}
	return o
}

// Pipeline owns the loaded table and caches the report of the last requested range.
// Asking for the same range again returns the cached report; any other range replaces it.
type Pipeline struct {
	table     *orders.Table
	reference time.Time
	hasRef    bool
	opts      Options
	logger    *slog.Logger

	mu        sync.Mutex
	cachedKey string
	cached    *Report
}

// New builds a pipeline over table. The reference date for recency is fixed here, from the
// full table.
func New(table *orders.Table, opts Options, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if table == nil {
		table = orders.NewTable(nil, time.UTC)
	}
	ref, ok := table.ReferenceDate()
	loadedRows.Set(float64(table.Len()))
	return &Pipeline{
		table:     table,
		reference: ref,
		hasRef:    ok,
		opts:      opts.withDefaults(),
		logger:    logger,
	}
}

// Options returns the effective options.
func (p *Pipeline) Options() Options { return p.opts }

// Location is the zone dates are interpreted in.
func (p *Pipeline) Location() *time.Location { return p.table.Location }

// Rows is the size of the full table.
func (p *Pipeline) Rows() int { return p.table.Len() }

// Warnings returns the load warnings of the table.
func (p *Pipeline) Warnings() []string { return slices.Clone(p.table.Warnings) }

// Bounds is the range the date control may select from.
func (p *Pipeline) Bounds() (orders.DateRange, bool) { return p.table.Bounds() }

// ReferenceDate is the latest approval timestamp of the full table.
func (p *Pipeline) ReferenceDate() (time.Time, bool) { return p.reference, p.hasRef }

// Render returns the report for rng, from cache when rng is the last range rendered.
func (p *Pipeline) Render(ctx context.Context, rng orders.DateRange) (*Report, error) {
	key := rng.Key()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && p.cachedKey == key {
		cacheHits.Inc()
		p.logger.DebugContext(ctx, "report.cache.hit", "range", key)
		return p.cached, nil
	}
	cacheMisses.Inc()

	start := time.Now()
	filtered := p.table.Filter(rng)
	filteredRows.Set(float64(filtered.Len()))

	rep, err := Build(ctx, filtered, rng, p.reference, p.opts)
	if err != nil {
		return nil, fmt.Errorf("build report %s: %w", key, err)
	}
	elapsed := time.Since(start)
	renderDuration.Observe(elapsed.Seconds())

	p.cachedKey = key
	p.cached = rep
	p.logger.InfoContext(ctx, "report.rendered",
		slog.String("range", key),
		slog.Int("rows", filtered.Len()),
		slog.Duration("elapsed", elapsed))
	return rep, nil
}

// RenderAll renders the full bounds of the table.
func (p *Pipeline) RenderAll(ctx context.Context) (*Report, error) {
	rng, ok := p.Bounds()
	if !ok {
		// No approval timestamps at all: an empty range still yields an empty report.
		epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
		rng = orders.DateRange{Start: epoch.AddDate(0, 0, 1), End: epoch}
	}
	return p.Render(ctx, rng)
}

// Invalidate drops the cached report.
func (p *Pipeline) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cached = nil
	p.cachedKey = ""
}
