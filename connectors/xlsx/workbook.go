// Package xlsx exports a dashboard report as an Excel workbook, one sheet per summary.
package xlsx

import (
	"fmt"
	"log/slog"

	"ecommerce-stats/domain/dashboard"
	"ecommerce-stats/domain/orders"

	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetHeadline        = "headline"
	SheetDailyOrders     = "daily_orders"
	SheetCategoryRevenue = "category_revenue"
	SheetCategoryOrders  = "category_orders"
	SheetStates          = "states"
	SheetRFM             = "rfm"
	SheetReviewScores    = "review_scores"
)

type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

func sheets(rep *dashboard.Report) []sheet {
	h := rep.Headline
	res := []sheet{
		{
			name:    SheetHeadline,
			headers: []string{"metric", "value"},
			rows: [][]any{
				{"start", rep.Start},
				{"end", rep.End},
				{"reference_date", rep.ReferenceDate.Format(orders.DateLayout)},
				{"rows", rep.Rows},
				{"total_orders", h.TotalOrders},
				{"total_revenue", h.TotalRevenue},
				{"customers", h.Customers},
				{"avg_recency", metricCell(h.AvgRecency)},
				{"avg_frequency", metricCell(h.AvgFrequency)},
				{"avg_monetary", metricCell(h.AvgMonetary)},
			},
		},
		{name: SheetDailyOrders, headers: []string{"order_approved_at", "order_count", "revenue"}},
		{name: SheetCategoryRevenue, headers: []string{"product_category_name_english", "payment_value"}},
		{name: SheetCategoryOrders, headers: []string{"product_category_name_english", "total_orders"}},
		{name: SheetStates, headers: []string{"state", "customer_count", "seller_count"}},
		{name: SheetRFM, headers: []string{"customer_id", "recency", "frequency", "monetary"}},
		{name: SheetReviewScores, headers: []string{"review_score", "count", "percent"}},
	}
	for _, d := range rep.DailyOrders {
		res[1].rows = append(res[1].rows, []any{d.Day.Format(orders.DateLayout), d.OrderCount, d.Revenue})
	}
	for _, c := range rep.CategoryRevenue {
		res[2].rows = append(res[2].rows, []any{c.Category, c.Revenue})
	}
	for _, c := range rep.CategoryOrders {
		res[3].rows = append(res[3].rows, []any{c.Category, c.TotalOrders})
	}
	for _, s := range rep.States {
		res[4].rows = append(res[4].rows, []any{s.State, s.CustomerCount, s.SellerCount})
	}
	for _, c := range rep.RFM {
		res[5].rows = append(res[5].rows, []any{c.CustomerID, c.Recency, c.Frequency, c.Monetary})
	}
	for _, s := range rep.ReviewScores {
		res[6].rows = append(res[6].rows, []any{s.Score, s.Count, s.Percent})
	}
	return res
}

// metricCell leaves NaN metrics blank; excelize cannot store NaN.
func metricCell(m dashboard.Metric) any {
	if !m.Valid() {
		return ""
	}
	return float64(m)
}

// WriteReport saves rep as an xlsx workbook at path.
func WriteReport(path string, rep *dashboard.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, sh := range sheets(rep) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh, bold); err != nil {
			return fmt.Errorf("write sheet %s: %w", sh.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	slog.Info("export.xlsx.done", "path", path, "start", rep.Start, "end", rep.End)
	return nil
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	headers := make([]any, len(sh.headers))
	for i, h := range sh.headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &headers); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(sh.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sh.name, "A", "A", 32)
}
