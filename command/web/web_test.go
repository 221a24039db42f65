package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ecommerce-stats/domain/dashboard"
	"ecommerce-stats/domain/orders"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeline() *dashboard.Pipeline {
	at := func(s string) *time.Time {
		ts, err := time.Parse("2006-01-02 15:04:05", s)
		if err != nil {
			panic(err)
		}
		return &ts
	}
	table := orders.NewTable([]orders.Record{
		{OrderID: "o1", CustomerID: "c1", SellerID: "s1", ApprovedAt: at("2018-01-01 10:00:00"), PaymentValue: 10, Category: "toys", ReviewScore: 5, CustomerState: "SP", SellerState: "RJ", CustomerLat: -23.5, CustomerLng: -46.6},
		{OrderID: "o2", CustomerID: "c2", SellerID: "s1", ApprovedAt: at("2018-01-02 10:00:00"), PaymentValue: 30, Category: "auto", ReviewScore: 4, CustomerState: "MG", SellerState: "RJ", CustomerLat: -19.9, CustomerLng: -43.9},
		{OrderID: "o3", CustomerID: "c1", SellerID: "s2", ApprovedAt: at("2018-02-01 10:00:00"), PaymentValue: 5, Category: "toys", ReviewScore: 1, CustomerState: "SP", SellerState: "SP", CustomerLat: -23.5, CustomerLng: -46.6},
	}, time.UTC)
	table.HasSellerGeo = false
	table.Warnings = []string{orders.WarnMissingSellerGeo}
	return dashboard.New(table, dashboard.DefaultOptions(), nil)
}

func get(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestBounds(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/bounds")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "2018-01-01", body["start"])
	assert.Equal(t, "2018-02-01", body["end"])
	assert.Equal(t, float64(3), body["rows"])
	assert.Equal(t, []any{orders.WarnMissingSellerGeo}, body["warnings"])
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestDailyOrders_DefaultsToBounds(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/daily_orders")

	require.Equal(t, http.StatusOK, rec.Code)
	days := decode[[]map[string]any](t, rec)
	assert.Len(t, days, 32)
}

func TestCategories_FilteredRange(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/categories/revenue?start=2018-01-01&end=2018-01-31")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"category":"auto","revenue":30},{"category":"toys","revenue":10}]`, rec.Body.String())
}

func TestStates(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/states?start=2018-01-01&end=2018-01-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"state":"RJ","customer_count":0,"seller_count":1},
		{"state":"SP","customer_count":1,"seller_count":0}
	]`, rec.Body.String())
}

func TestEmptyRange(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/headline?start=2018-02-01&end=2018-01-01")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, float64(0), body["total_orders"])
	assert.Nil(t, body["avg_recency"])
	assert.Nil(t, body["avg_monetary"])
}

func TestInvalidRange(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/report?start=yesterday")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "invalid date range", body["message"])
}

func TestRankings(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/rankings?n=1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[dashboard.Rankings](t, rec)
	require.Len(t, body.TopByMonetary, 1)
	assert.Equal(t, "c2", body.TopByMonetary[0].CustomerID)
	require.Len(t, body.BestCategories, 1)
	assert.Equal(t, "toys", body.BestCategories[0].Category)

	rec = get(t, e, "/api/rankings?n=zero")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeo(t *testing.T) {
	e := NewServer(pipeline(), "")

	rec := get(t, e, "/api/geo")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	geo := body["geo"].(map[string]any)
	assert.Contains(t, geo, "customers")
	assert.NotContains(t, geo, "sellers")
	assert.Equal(t, []any{orders.WarnMissingSellerGeo}, body["warnings"])
}

func TestMetrics(t *testing.T) {
	e := NewServer(pipeline(), "")
	get(t, e, "/api/report")

	rec := get(t, e, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ecommerce_stats_report_cache_misses_total")
}

func TestSPAFallback(t *testing.T) {
	ui := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ui, "index.html"), []byte("<html>dashboard</html>"), 0o644))
	e := NewServer(pipeline(), ui)

	rec := get(t, e, "/some/client/route")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dashboard")

	rec = get(t, e, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
