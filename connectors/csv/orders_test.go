package csv

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ecommerce-stats/domain/orders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "order_id,customer_id,seller_id,order_approved_at,order_delivered_customer_date," +
	"order_delivered_carrier_date,order_estimated_delivery_date,payment_value," +
	"product_category_name_english,review_score,customer_state,seller_state," +
	"geolocation_lat_customer,geolocation_lng_customer,geolocation_lat_seller,geolocation_lng_seller\n"

func TestReadOrders(t *testing.T) {
	data := header +
		"o2,c2,s2,2018-01-05 10:00:00,2018-01-10 10:00:00,2018-01-06 10:00:00,2018-01-20 00:00:00,20.5,toys,5.0,RJ,SP,-22.9,-43.2,-23.5,-46.6\n" +
		"o1,c1,s1,2018-01-01 08:30:00,,not a date,2018-01-15,10,auto,4,SP,SP,,,-23.5,-46.6\n" +
		"o3,c3,s1,garbage,,,,oops,,,MG,SP,-19.9,-43.9,-23.5,-46.6\n"

	table, err := ReadOrders(strings.NewReader(data), time.UTC)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Empty(t, table.Warnings)
	assert.True(t, table.HasCustomerGeo)
	assert.True(t, table.HasSellerGeo)

	first := table.Records[0]
	assert.Equal(t, "o1", first.OrderID)
	require.NotNil(t, first.ApprovedAt)
	assert.Equal(t, time.Date(2018, 1, 1, 8, 30, 0, 0, time.UTC), *first.ApprovedAt)
	assert.Nil(t, first.DeliveredCustomerAt)
	assert.Nil(t, first.DeliveredCarrierAt)
	require.NotNil(t, first.EstimatedDeliveryAt)
	assert.Equal(t, 4, first.ReviewScore)
	assert.False(t, first.HasCustomerLocation())
	assert.True(t, first.HasSellerLocation())

	second := table.Records[1]
	assert.Equal(t, "o2", second.OrderID)
	assert.Equal(t, 20.5, second.PaymentValue)
	assert.Equal(t, 5, second.ReviewScore)
	assert.Equal(t, "toys", second.Category)
	assert.Equal(t, "RJ", second.CustomerState)
	assert.Equal(t, "SP", second.SellerState)
	assert.Equal(t, -22.9, second.CustomerLat)

	// Unparseable values are blanked, the row is kept and sorts last.
	last := table.Records[2]
	assert.Equal(t, "o3", last.OrderID)
	assert.Nil(t, last.ApprovedAt)
	assert.Zero(t, last.PaymentValue)
	assert.Zero(t, last.ReviewScore)
	assert.Empty(t, last.Category)
}

func TestReadOrders_Location(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	data := header + "o1,c1,s1,2018-01-01 08:30:00,,,,10,auto,4,SP,SP,1,1,1,1\n"

	table, err := ReadOrders(strings.NewReader(data), loc)
	require.NoError(t, err)

	assert.Equal(t, loc, table.Location)
	assert.Equal(t, time.Date(2018, 1, 1, 11, 30, 0, 0, time.UTC), table.Records[0].ApprovedAt.UTC())
}

func TestReadOrders_MissingRequiredColumn(t *testing.T) {
	data := strings.Replace(header, "seller_id,", "", 1) + "o1,c1,2018-01-01 08:30:00\n"

	_, err := ReadOrders(strings.NewReader(data), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, orders.ErrMissingColumn))
	var mc *orders.MissingColumnError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "seller_id", mc.Column)
}

func TestReadOrders_EmptyInput(t *testing.T) {
	_, err := ReadOrders(strings.NewReader(""), nil)
	assert.ErrorIs(t, err, orders.ErrEmptyFile)
}

func TestReadOrders_MissingGeolocationWarns(t *testing.T) {
	h := strings.Replace(header, ",geolocation_lat_seller,geolocation_lng_seller", "", 1)
	data := h + "o1,c1,s1,2018-01-01 08:30:00,,,,10,auto,4,SP,SP,-23.5,-46.6\n"

	table, err := ReadOrders(strings.NewReader(data), nil)
	require.NoError(t, err)

	assert.True(t, table.HasCustomerGeo)
	assert.False(t, table.HasSellerGeo)
	assert.Equal(t, []string{orders.WarnMissingSellerGeo}, table.Warnings)
	assert.True(t, math.IsNaN(table.Records[0].SellerLat))
}

func TestReadOrders_BOMAndShortRows(t *testing.T) {
	data := "\ufeff" + header +
		"o1,c1,s1,2018-01-01 08:30:00,,,,10,auto,4,SP,SP,1,1,1,1\n" +
		"o2,c2,s2,2018-01-02 09:00:00,,,,20,toys,5,RJ,SP,2,2,2\n" +
		"short,row\n"

	table, err := ReadOrders(strings.NewReader(data), nil)
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, "o1", table.Records[0].OrderID)

	missingLast := table.Records[1]
	assert.Equal(t, "o2", missingLast.OrderID)
	assert.Equal(t, 20.0, missingLast.PaymentValue)
	assert.Equal(t, 2.0, missingLast.SellerLat)
	assert.True(t, math.IsNaN(missingLast.SellerLng))
	assert.False(t, missingLast.HasSellerLocation())

	short := table.Records[2]
	assert.Equal(t, "short", short.OrderID)
	assert.Equal(t, "row", short.CustomerID)
	assert.Nil(t, short.ApprovedAt)
	assert.Zero(t, short.PaymentValue)
}

func TestLoadOrders_MissingFile(t *testing.T) {
	_, err := LoadOrders(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_data.csv")
	data := header + "o1,c1,s1,2018-01-01 08:30:00,,,,10,auto,4,SP,SP,1,1,1,1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	table, err := LoadOrders(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}
