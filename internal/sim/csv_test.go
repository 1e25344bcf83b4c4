package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLedgerCSV(t *testing.T) {
	ledger := []LedgerRow{
		{Day: 0, Hour: 0, GridPrice: 7.6, Cleared: true, ClearingPrice: 7.6, SupplyBids: 2, DemandBids: 3, GridEnergyKWh: 4, GridCost: -30.4, CumGridCost: -30.4},
		{Day: 0, Hour: 1, GridPrice: 7.6, Cleared: false, SupplyBids: 0, DemandBids: 0},
	}

	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, WriteLedgerCSV(path, ledger))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "day", rows[0][0])
	assert.Equal(t, "clearing_price", rows[0][3])

	assert.Equal(t, "7.600000", rows[1][3])
	// An uncleared hour leaves the price column empty.
	assert.Equal(t, "", rows[2][3])
	assert.Equal(t, "1", rows[2][1])
}
