package app

import (
	"testing"
	"time"

	"ecommerce-stats/domain/dashboard"
	"ecommerce-stats/domain/orders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	first := time.Date(2017, 3, 1, 10, 0, 0, 0, time.UTC)
	last := time.Date(2018, 8, 29, 15, 0, 0, 0, time.UTC)
	p := dashboard.New(orders.NewTable([]orders.Record{
		{OrderID: "o1", ApprovedAt: &first},
		{OrderID: "o2", ApprovedAt: &last},
	}, time.UTC), dashboard.DefaultOptions(), nil)

	tests := []struct {
		name       string
		start, end string
		want       string
		wantErr    bool
	}{
		{name: "defaults to bounds", want: "2017-03-01..2018-08-29"},
		{name: "explicit start", start: "2018-01-01", want: "2018-01-01..2018-08-29"},
		{name: "explicit both", start: "2018-01-01", end: "2018-01-31", want: "2018-01-01..2018-01-31"},
		{name: "bad date", start: "01/01/2018", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Range(p, tt.start, tt.end)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Key())
		})
	}
}

func TestRange_NoBounds(t *testing.T) {
	p := dashboard.New(nil, dashboard.Options{}, nil)

	_, err := Range(p, "", "")
	assert.Error(t, err)

	r, err := Range(p, "2018-01-01", "2018-01-02")
	require.NoError(t, err)
	assert.Equal(t, "2018-01-01..2018-01-02", r.Key())
}
