package calculate

import (
	"os"
	"path/filepath"
	"testing"

	ccsv "ecommerce-stats/connectors/csv"
	"ecommerce-stats/domain/dashboard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	rep := &dashboard.Report{Start: "2018-01-01", End: "2018-01-31"}

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "csv", want: ccsv.DailyOrdersFile},
		{format: "xlsx", want: "report.xlsx"},
		{format: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			err := Write(dir, tt.format, rep)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, err = os.Stat(filepath.Join(dir, tt.want))
			assert.NoError(t, err)
		})
	}
}

func TestRun_RejectsUnknownFormat(t *testing.T) {
	err := Run([]string{"-format", "pdf"})
	assert.ErrorContains(t, err, "unknown format")
}
