// Package chart renders the dashboard charts as PNG files.
package chart

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"strconv"

	"ecommerce-stats/domain/aggregate"
	"ecommerce-stats/domain/dashboard"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	gold  = color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	beige = color.RGBA{R: 0xF5, G: 0xF5, B: 0xDC, A: 0xFF}
)

// File names written by RenderAll.
const (
	DailyOrdersFile     = "daily_orders.png"
	BestCategoriesFile  = "best_categories.png"
	WorstCategoriesFile = "worst_categories.png"
	StateCustomersFile  = "states_customers.png"
	StateSellersFile    = "states_sellers.png"
	ReviewScoresFile    = "review_scores.png"
	TopRecencyFile      = "rfm_recency.png"
	TopFrequencyFile    = "rfm_frequency.png"
	TopMonetaryFile     = "rfm_monetary.png"
)

// RenderAll writes every chart of rep into dir and returns the files created.
// Charts without data are skipped.
func RenderAll(dir string, rep *dashboard.Report, topN int) ([]string, error) {
	ranks := rep.Rankings(topN)
	jobs := []struct {
		file string
		draw func(string) (bool, error)
	}{
		{DailyOrdersFile, func(p string) (bool, error) { return DailyOrders(p, rep.DailyOrders) }},
		{BestCategoriesFile, func(p string) (bool, error) {
			return Bars(p, "Best Performing Product", categoryBars(ranks.BestCategories))
		}},
		{WorstCategoriesFile, func(p string) (bool, error) {
			return Bars(p, "Worst Performing Product", categoryBars(ranks.WorstCategories))
		}},
		{StateCustomersFile, func(p string) (bool, error) {
			return Bars(p, "States with Most Customers", stateBars(ranks.StatesByCustomers, func(s aggregate.StateCount) int { return s.CustomerCount }))
		}},
		{StateSellersFile, func(p string) (bool, error) {
			return Bars(p, "States with Most Sellers", stateBars(ranks.StatesBySellers, func(s aggregate.StateCount) int { return s.SellerCount }))
		}},
		{ReviewScoresFile, func(p string) (bool, error) { return Bars(p, "Our Ratings by Customers", reviewBars(rep.ReviewScores)) }},
		{TopRecencyFile, func(p string) (bool, error) {
			return Bars(p, "By Recency (days)", rfmBars(ranks.TopByRecency, func(c aggregate.CustomerRFM) float64 { return float64(c.Recency) }))
		}},
		{TopFrequencyFile, func(p string) (bool, error) {
			return Bars(p, "By Frequency", rfmBars(ranks.TopByFrequency, func(c aggregate.CustomerRFM) float64 { return float64(c.Frequency) }))
		}},
		{TopMonetaryFile, func(p string) (bool, error) {
			return Bars(p, "By Monetary", rfmBars(ranks.TopByMonetary, func(c aggregate.CustomerRFM) float64 { return c.Monetary }))
		}},
	}

	var written []string
	for _, j := range jobs {
		path := filepath.Join(dir, j.file)
		ok, err := j.draw(path)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", j.file, err)
		}
		if !ok {
			slog.Warn("chart.skipped", "file", j.file, "reason", "no data")
			continue
		}
		written = append(written, path)
	}
	return written, nil
}

// DailyOrders draws order counts per day as a line with markers.
func DailyOrders(path string, days []aggregate.DailyOrders) (bool, error) {
	if len(days) == 0 {
		return false, nil
	}
	p := plot.New()
	p.Title.Text = "Daily Orders"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	points := make(plotter.XYs, len(days))
	for i, d := range days {
		points[i].X = float64(d.Day.Unix())
		points[i].Y = float64(d.OrderCount)
	}
	line, marks, err := plotter.NewLinePoints(points)
	if err != nil {
		return false, err
	}
	line.Color = gold
	line.Width = vg.Points(2)
	marks.Color = gold
	p.Add(plotter.NewGrid(), line, marks)

	if err := p.Save(16*vg.Inch, 8*vg.Inch, path); err != nil {
		return false, err
	}
	return true, nil
}

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
}

// Bars draws horizontal bars, the first one highlighted, top to bottom in input order.
func Bars(path, title string, bars []Bar) (bool, error) {
	if len(bars) == 0 {
		return false, nil
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)

	// Plotted bottom-up, so reverse to keep the first bar on top.
	n := len(bars)
	labels := make([]string, n)
	for i, b := range bars {
		labels[n-1-i] = b.Label
	}
	for i, b := range bars {
		values := make(plotter.Values, n)
		values[n-1-i] = b.Value
		chart, err := plotter.NewBarChart(values, vg.Points(18))
		if err != nil {
			return false, err
		}
		chart.Horizontal = true
		chart.LineStyle.Width = vg.Length(0)
		chart.Color = beige
		if i == 0 {
			chart.Color = gold
		}
		p.Add(chart)
	}
	p.NominalY(labels...)

	height := vg.Length(n)*0.5*vg.Inch + 2*vg.Inch
	if err := p.Save(10*vg.Inch, height, path); err != nil {
		return false, err
	}
	return true, nil
}

func categoryBars(rows []aggregate.CategoryOrders) []Bar {
	res := make([]Bar, 0, len(rows))
	for _, r := range rows {
		res = append(res, Bar{Label: r.Category, Value: float64(r.TotalOrders)})
	}
	return res
}

func stateBars(rows []aggregate.StateCount, value func(aggregate.StateCount) int) []Bar {
	res := make([]Bar, 0, len(rows))
	for _, r := range rows {
		res = append(res, Bar{Label: r.State, Value: float64(value(r))})
	}
	return res
}

func reviewBars(rows []aggregate.ReviewScoreCount) []Bar {
	res := make([]Bar, 0, len(rows))
	for _, r := range rows {
		res = append(res, Bar{Label: "Score " + strconv.Itoa(r.Score) + " (" + strconv.FormatFloat(r.Percent, 'f', 1, 64) + "%)", Value: float64(r.Count)})
	}
	return res
}

func rfmBars(rows []aggregate.CustomerRFM, value func(aggregate.CustomerRFM) float64) []Bar {
	res := make([]Bar, 0, len(rows))
	for _, r := range rows {
		res = append(res, Bar{Label: r.ShortID(), Value: value(r)})
	}
	return res
}
