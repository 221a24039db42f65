package orders

import (
	"math"
	"time"
)

// Record is one line item of the joined order dataset.
// An order may span several records (one per item), so order counts must be distinct counts.
type Record struct {
	OrderID    string
	CustomerID string
	SellerID   string

	// Timestamps are nil when the source value was empty or could not be parsed.
	ApprovedAt          *time.Time
	DeliveredCustomerAt *time.Time
	DeliveredCarrierAt  *time.Time
	EstimatedDeliveryAt *time.Time

	PaymentValue float64
	Category     string
	ReviewScore  int // 0 when missing; valid scores are 1..5

	CustomerState string
	SellerState   string

	// Coordinates are NaN when missing.
	CustomerLat float64
	CustomerLng float64
	SellerLat   float64
	SellerLng   float64
}

// HasCustomerLocation reports whether both customer coordinates are set.
func (r Record) HasCustomerLocation() bool {
	return !math.IsNaN(r.CustomerLat) && !math.IsNaN(r.CustomerLng)
}

// HasSellerLocation reports whether both seller coordinates are set.
func (r Record) HasSellerLocation() bool {
	return !math.IsNaN(r.SellerLat) && !math.IsNaN(r.SellerLng)
}

// Column names of the source file.
const (
	ColOrderID             = "order_id"
	ColCustomerID          = "customer_id"
	ColSellerID            = "seller_id"
	ColApprovedAt          = "order_approved_at"
	ColDeliveredCustomerAt = "order_delivered_customer_date"
	ColDeliveredCarrierAt  = "order_delivered_carrier_date"
	ColEstimatedDeliveryAt = "order_estimated_delivery_date"
	ColPaymentValue        = "payment_value"
	ColCategory            = "product_category_name_english"
	ColReviewScore         = "review_score"
	ColCustomerState       = "customer_state"
	ColSellerState         = "seller_state"
	ColCustomerLat         = "geolocation_lat_customer"
	ColCustomerLng         = "geolocation_lng_customer"
	ColSellerLat           = "geolocation_lat_seller"
	ColSellerLng           = "geolocation_lng_seller"
)

// RequiredColumns must all be present for a load to succeed.
var RequiredColumns = []string{
	ColOrderID,
	ColCustomerID,
	ColSellerID,
	ColApprovedAt,
	ColDeliveredCustomerAt,
	ColDeliveredCarrierAt,
	ColEstimatedDeliveryAt,
	ColPaymentValue,
	ColCategory,
	ColReviewScore,
	ColCustomerState,
	ColSellerState,
}

// Geolocation columns are optional; their absence only disables the maps.
var (
	CustomerGeoColumns = []string{ColCustomerLat, ColCustomerLng}
	SellerGeoColumns   = []string{ColSellerLat, ColSellerLng}
)

const (
	WarnMissingCustomerGeo = "missing customer geolocation data"
	WarnMissingSellerGeo   = "missing seller geolocation data"
)
