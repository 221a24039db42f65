package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"ecommerce-stats/domain/aggregate"
	"ecommerce-stats/domain/dashboard"
	"ecommerce-stats/domain/orders"
)

// File names written by WriteAllCSVs.
const (
	DailyOrdersFile     = "daily_orders.csv"
	CategoryRevenueFile = "category_revenue.csv"
	CategoryOrdersFile  = "category_orders.csv"
	StatesFile          = "states.csv"
	RFMFile             = "rfm.csv"
	ReviewScoresFile    = "review_scores.csv"
	CustomerGeoFile     = "geo_customers.csv"
	SellerGeoFile       = "geo_sellers.csv"
)

// WriteAllCSVs writes every summary of rep into dir.
func WriteAllCSVs(dir string, rep *dashboard.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := WriteDailyOrdersCSV(filepath.Join(dir, DailyOrdersFile), rep.DailyOrders); err != nil {
		return err
	}
	if err := WriteCategoryRevenueCSV(filepath.Join(dir, CategoryRevenueFile), rep.CategoryRevenue); err != nil {
		return err
	}
	if err := WriteCategoryOrdersCSV(filepath.Join(dir, CategoryOrdersFile), rep.CategoryOrders); err != nil {
		return err
	}
	if err := WriteStatesCSV(filepath.Join(dir, StatesFile), rep.States); err != nil {
		return err
	}
	if err := WriteRFMCSV(filepath.Join(dir, RFMFile), rep.RFM); err != nil {
		return err
	}
	if err := WriteReviewScoresCSV(filepath.Join(dir, ReviewScoresFile), rep.ReviewScores); err != nil {
		return err
	}
	if rep.Geo != nil && rep.Geo.Customers != nil {
		if err := WriteClustersCSV(filepath.Join(dir, CustomerGeoFile), rep.Geo.Customers.Clusters); err != nil {
			return err
		}
	}
	if rep.Geo != nil && rep.Geo.Sellers != nil {
		if err := WriteClustersCSV(filepath.Join(dir, SellerGeoFile), rep.Geo.Sellers.Clusters); err != nil {
			return err
		}
	}
	return nil
}

// writeRows creates path and writes headers followed by rows.
func writeRows(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func WriteDailyOrdersCSV(path string, days []aggregate.DailyOrders) error {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{d.Day.Format(orders.DateLayout), strconv.Itoa(d.OrderCount), formatFloat(d.Revenue)})
	}
	return writeRows(path, []string{"order_approved_at", "order_count", "revenue"}, rows)
}

func WriteCategoryRevenueCSV(path string, cats []aggregate.CategoryRevenue) error {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.Category, formatFloat(c.Revenue)})
	}
	return writeRows(path, []string{"product_category_name_english", "payment_value"}, rows)
}

func WriteCategoryOrdersCSV(path string, cats []aggregate.CategoryOrders) error {
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.TotalOrders)})
	}
	return writeRows(path, []string{"product_category_name_english", "total_orders"}, rows)
}

func WriteStatesCSV(path string, states []aggregate.StateCount) error {
	rows := make([][]string, 0, len(states))
	for _, s := range states {
		rows = append(rows, []string{s.State, strconv.Itoa(s.CustomerCount), strconv.Itoa(s.SellerCount)})
	}
	return writeRows(path, []string{"state", "customer_count", "seller_count"}, rows)
}

func WriteRFMCSV(path string, customers []aggregate.CustomerRFM) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{c.CustomerID, strconv.Itoa(c.Recency), strconv.Itoa(c.Frequency), formatFloat(c.Monetary)})
	}
	return writeRows(path, []string{"customer_id", "recency", "frequency", "monetary"}, rows)
}

func WriteReviewScoresCSV(path string, scores []aggregate.ReviewScoreCount) error {
	rows := make([][]string, 0, len(scores))
	for _, s := range scores {
		rows = append(rows, []string{strconv.Itoa(s.Score), strconv.Itoa(s.Count), strconv.FormatFloat(s.Percent, 'f', 1, 64)})
	}
	return writeRows(path, []string{"review_score", "count", "percent"}, rows)
}

func WriteClustersCSV(path string, clusters []aggregate.Cluster) error {
	rows := make([][]string, 0, len(clusters))
	for _, c := range clusters {
		rows = append(rows, []string{c.Cell, formatFloat(c.Center.Lat), formatFloat(c.Center.Lng), strconv.Itoa(c.Count)})
	}
	return writeRows(path, []string{"cell", "lat", "lng", "count"}, rows)
}
