package aggregate

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"ecommerce-stats/domain/orders"

	lo "github.com/samber/lo"
)

// Point is a latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MarshalJSON writes NaN coordinates as null.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}{Lat: finite(p.Lat), Lng: finite(p.Lng)})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Cluster is a group of points sharing one grid cell.
type Cluster struct {
	Cell   string `json:"cell"`
	Center Point  `json:"center"`
	Count  int    `json:"count"`
}

// GeoLayer is the map data of one population (customers or sellers).
type GeoLayer struct {
	// Center is the mean location; NaN coordinates when there are no points.
	Center   Point     `json:"center"`
	Points   []Point   `json:"points"`
	Clusters []Cluster `json:"clusters"`
}

// GeoSummary holds both map layers. A layer is nil when its columns are missing.
type GeoSummary struct {
	Customers *GeoLayer `json:"customers,omitempty"`
	Sellers   *GeoLayer `json:"sellers,omitempty"`
}

// Geolocation builds the customer and seller map layers.
// Each customer and seller is placed once, at the coordinates of its first record in table
// order. cellDegrees sets the grid size used for clustering.
func Geolocation(t *orders.Table, cellDegrees float64) *GeoSummary {
	res := &GeoSummary{}
	if t == nil {
		return res
	}
	if t.HasCustomerGeo {
		customers := lo.UniqBy(t.Records, func(r orders.Record) string { return r.CustomerID })
		res.Customers = newLayer(lo.FilterMap(customers, func(r orders.Record, _ int) (Point, bool) {
			return Point{Lat: r.CustomerLat, Lng: r.CustomerLng}, r.HasCustomerLocation()
		}), cellDegrees)
	}
	if t.HasSellerGeo {
		sellers := lo.UniqBy(t.Records, func(r orders.Record) string { return r.SellerID })
		res.Sellers = newLayer(lo.FilterMap(sellers, func(r orders.Record, _ int) (Point, bool) {
			return Point{Lat: r.SellerLat, Lng: r.SellerLng}, r.HasSellerLocation()
		}), cellDegrees)
	}
	return res
}

func newLayer(points []Point, cellDegrees float64) *GeoLayer {
	if points == nil {
		points = []Point{}
	}
	return &GeoLayer{
		Center:   meanPoint(points),
		Points:   points,
		Clusters: ClusterPoints(points, cellDegrees),
	}
}

func meanPoint(points []Point) Point {
	if len(points) == 0 {
		return Point{Lat: math.NaN(), Lng: math.NaN()}
	}
	n := float64(len(points))
	return Point{
		Lat: lo.SumBy(points, func(p Point) float64 { return p.Lat }) / n,
		Lng: lo.SumBy(points, func(p Point) float64 { return p.Lng }) / n,
	}
}

// ClusterPoints buckets points into square cells of cellDegrees and returns one cluster per
// non-empty cell, largest first, then by cell key. A non-positive cell size yields no clusters.
func ClusterPoints(points []Point, cellDegrees float64) []Cluster {
	res := []Cluster{}
	if cellDegrees <= 0 || len(points) == 0 {
		return res
	}
	cells := lo.GroupBy(points, func(p Point) string {
		return fmt.Sprintf("%d:%d", int(math.Floor(p.Lat/cellDegrees)), int(math.Floor(p.Lng/cellDegrees)))
	})
	keys := lo.Keys(cells)
	slices.Sort(keys)
	for _, k := range keys {
		members := cells[k]
		res = append(res, Cluster{Cell: k, Center: meanPoint(members), Count: len(members)})
	}
	slices.SortStableFunc(res, func(a, b Cluster) int { return cmp.Compare(b.Count, a.Count) })
	return res
}
