package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"ecommerce-stats/domain/orders"
)

// timestampLayouts are tried in order; the first is the dataset's native format.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	orders.DateLayout,
}

// LoadOrders reads the joined order file at path.
// Missing files and missing required columns are errors; a malformed value only blanks
// that field. Timestamps without a zone are read in loc (UTC when nil).
func LoadOrders(path string, loc *time.Location) (*orders.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders: %w", err)
	}
	defer f.Close()
	t, err := ReadOrders(f, loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("orders.loaded", "path", path, "rows", t.Len(), "warnings", len(t.Warnings))
	return t, nil
}

// ReadOrders parses order rows from r. See LoadOrders.
func ReadOrders(r io.Reader, loc *time.Location) (*orders.Table, error) {
	if loc == nil {
		loc = time.UTC
	}
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	// short or long rows are kept; missing trailing fields read as empty
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, orders.ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := indexMap(head)
	for _, col := range orders.RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &orders.MissingColumnError{Column: col}
		}
	}

	var warnings []string
	hasCustomerGeo := hasAll(idx, orders.CustomerGeoColumns)
	if !hasCustomerGeo {
		warnings = append(warnings, orders.WarnMissingCustomerGeo)
		slog.Warn("orders.geolocation.missing", "kind", "customer")
	}
	hasSellerGeo := hasAll(idx, orders.SellerGeoColumns)
	if !hasSellerGeo {
		warnings = append(warnings, orders.WarnMissingSellerGeo)
		slog.Warn("orders.geolocation.missing", "kind", "seller")
	}

	var records []orders.Record
	width := len(head)
	ragged, badStamps, line := 0, 0, 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if len(rec) != width {
			ragged++
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		stamp := func(col string) *time.Time {
			v := get(col)
			ts := parseTimestamp(v, loc)
			if ts == nil && v != "" {
				badStamps++
			}
			return ts
		}
		records = append(records, orders.Record{
			OrderID:             get(orders.ColOrderID),
			CustomerID:          get(orders.ColCustomerID),
			SellerID:            get(orders.ColSellerID),
			ApprovedAt:          stamp(orders.ColApprovedAt),
			DeliveredCustomerAt: stamp(orders.ColDeliveredCustomerAt),
			DeliveredCarrierAt:  stamp(orders.ColDeliveredCarrierAt),
			EstimatedDeliveryAt: stamp(orders.ColEstimatedDeliveryAt),
			PaymentValue:        parseAmount(get(orders.ColPaymentValue)),
			Category:            get(orders.ColCategory),
			ReviewScore:         parseScore(get(orders.ColReviewScore)),
			CustomerState:       get(orders.ColCustomerState),
			SellerState:         get(orders.ColSellerState),
			CustomerLat:         parseCoordinate(get(orders.ColCustomerLat)),
			CustomerLng:         parseCoordinate(get(orders.ColCustomerLng)),
			SellerLat:           parseCoordinate(get(orders.ColSellerLat)),
			SellerLng:           parseCoordinate(get(orders.ColSellerLng)),
		})
	}
	if ragged > 0 {
		slog.Warn("orders.rows.ragged", "width", width, "count", ragged)
	}
	if badStamps > 0 {
		slog.Warn("orders.timestamps.unparsed", "count", badStamps)
	}

	t := orders.NewTable(records, loc)
	t.HasCustomerGeo = hasCustomerGeo
	t.HasSellerGeo = hasSellerGeo
	t.Warnings = warnings
	return t, nil
}

func indexMap(headers []string) map[string]int {
	m := map[string]int{}
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		m[strings.TrimSpace(strings.ToLower(h))] = i
	}
	return m
}

func hasAll(idx map[string]int, cols []string) bool {
	for _, c := range cols {
		if _, ok := idx[c]; !ok {
			return false
		}
	}
	return true
}

func parseTimestamp(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

// parseAmount returns 0 for empty or malformed values so they add nothing to sums.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// parseScore accepts "5" and "5.0"; anything outside 1..5 counts as missing.
func parseScore(s string) int {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) || v < 1 || v > 5 {
		return 0
	}
	return int(v)
}

func parseCoordinate(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
