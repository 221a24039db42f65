package web

import (
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ecommerce-stats/command/app"
	"ecommerce-stats/domain/dashboard"
	"ecommerce-stats/domain/orders"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run starts a small Echo web server exposing the dashboard summaries as JSON and an
// optional SPA dashboard.
//
// Usage:
//
//	ecommerce-stats web [-addr :8080] [-data ./main_data.csv] [-ui ./ui/dist]
//
// Endpoints (all summaries accept ?start=YYYY-MM-DD&end=YYYY-MM-DD, defaulting to the
// dataset bounds):
//
//	GET /api/bounds                -> selectable date range and load warnings
//	GET /api/report                -> every summary at once
//	GET /api/headline              -> metric tiles
//	GET /api/daily_orders          -> orders and revenue per day
//	GET /api/categories/revenue    -> revenue per category, highest first
//	GET /api/categories/orders     -> distinct orders per category, highest first
//	GET /api/states                -> customers and sellers per state
//	GET /api/rfm                   -> recency/frequency/monetary per customer
//	GET /api/reviews               -> review score distribution
//	GET /api/geo                   -> customer and seller map layers
//	GET /api/rankings?n=5          -> top/bottom lists
//	GET /metrics                   -> Prometheus metrics
//
// When -ui points to a built Vite app (index.html exists), static files are served at / and
// unknown routes fall back to index.html for SPA routing.
func Run(args []string) error {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	addr := fs.String("addr", "", "http listen address (host:port, default from config web.addr)")
	uiDir := fs.String("ui", "", "directory containing built UI (default from config web.ui_dir)")
	common := app.Register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, p, err := app.Setup(common)
	if err != nil {
		return err
	}
	if *addr == "" {
		*addr = cfg.Web.Addr
	}
	if *uiDir == "" {
		*uiDir = cfg.Web.UIDir
	}

	e := NewServer(p, *uiDir)
	slog.Info("web.start", "addr", *addr, "rows", p.Rows())
	return e.Start(*addr)
}

// NewServer builds the Echo instance serving p.
func NewServer(p *dashboard.Pipeline, uiDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Debug("web.request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID)
			return nil
		},
	}))

	e.GET("/api/bounds", func(c echo.Context) error {
		bounds, ok := p.Bounds()
		res := map[string]any{
			"rows":     p.Rows(),
			"warnings": p.Warnings(),
		}
		if ok {
			ref, _ := p.ReferenceDate()
			res["start"] = bounds.Start.Format(orders.DateLayout)
			res["end"] = bounds.End.Format(orders.DateLayout)
			res["reference_date"] = ref
		}
		return c.JSON(http.StatusOK, res)
	})

	// Helper to register a GET endpoint serving one part of the report for the requested range
	serveReport := func(route string, part func(c echo.Context, rep *dashboard.Report) (any, error)) {
		e.GET(route, func(c echo.Context) error {
			rng, err := app.Range(p, c.QueryParam("start"), c.QueryParam("end"))
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{
					"error":   err.Error(),
					"message": "invalid date range",
				})
			}
			rep, err := p.Render(c.Request().Context(), rng)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]any{
					"error":   err.Error(),
					"range":   rng.Key(),
					"message": "failed to build report",
				})
			}
			body, err := part(c, rep)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{
					"error":   err.Error(),
					"message": "invalid query",
				})
			}
			return c.JSON(http.StatusOK, body)
		})
	}

	whole := func(f func(*dashboard.Report) any) func(echo.Context, *dashboard.Report) (any, error) {
		return func(_ echo.Context, rep *dashboard.Report) (any, error) { return f(rep), nil }
	}

	// APIs
	serveReport("/api/report", whole(func(r *dashboard.Report) any { return r }))
	serveReport("/api/headline", whole(func(r *dashboard.Report) any { return r.Headline }))
	serveReport("/api/daily_orders", whole(func(r *dashboard.Report) any { return r.DailyOrders }))
	serveReport("/api/categories/revenue", whole(func(r *dashboard.Report) any { return r.CategoryRevenue }))
	serveReport("/api/categories/orders", whole(func(r *dashboard.Report) any { return r.CategoryOrders }))
	serveReport("/api/states", whole(func(r *dashboard.Report) any { return r.States }))
	serveReport("/api/rfm", whole(func(r *dashboard.Report) any { return r.RFM }))
	serveReport("/api/reviews", whole(func(r *dashboard.Report) any { return r.ReviewScores }))
	serveReport("/api/geo", whole(func(r *dashboard.Report) any {
		return map[string]any{"geo": r.Geo, "warnings": r.Warnings}
	}))
	serveReport("/api/rankings", func(c echo.Context, rep *dashboard.Report) (any, error) {
		n := p.Options().TopN
		if q := c.QueryParam("n"); q != "" {
			v, err := strconv.Atoi(q)
			if err != nil || v < 1 {
				return nil, errors.New("n must be a positive integer")
			}
			n = v
		}
		return rep.Rankings(n), nil
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Static UI (optional)
	indexPath := filepath.Join(uiDir, "index.html")
	if fi, err := os.Stat(indexPath); uiDir != "" && err == nil && !fi.IsDir() {
		// Serve built assets under /
		e.Static("/", uiDir)
		// Root path -> index.html
		e.GET("/", func(c echo.Context) error { return c.File(indexPath) })

		// Fallback to index.html for non-API 404s (SPA routing) while keeping static assets working
		e.HTTPErrorHandler = func(err error, c echo.Context) {
			if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusNotFound {
				path := c.Request().URL.Path
				if !strings.HasPrefix(path, "/api") && path != "/metrics" {
					_ = c.File(indexPath)
					return
				}
			}
			e.DefaultHTTPErrorHandler(err, c)
		}
	}

	return e
}
