package participant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-market/internal/model"
)

func weekdayWinterTariff() [model.HoursPerDay]float64 {
	return [model.HoursPerDay]float64{
		7.6, 7.6, 7.6, 7.6, 7.6, 7.6, 7.6, 15.8, 15.8, 15.8, 15.8, 12.2,
		12.2, 12.2, 12.2, 12.2, 12.2, 15.8, 15.8, 7.6, 7.6, 7.6, 7.6, 7.6,
	}
}

func TestTimeOfUseGrid_ReferencePrice(t *testing.T) {
	g := NewTimeOfUseGrid(weekdayWinterTariff())

	assert.Equal(t, 7.6, g.ReferencePrice(0))
	assert.Equal(t, 15.8, g.ReferencePrice(7))
	// Hours wrap around the day.
	assert.Equal(t, 7.6, g.ReferencePrice(24))
}

func TestTimeOfUseGrid_BidsUnboundedSupply(t *testing.T) {
	g := NewTimeOfUseGrid(weekdayWinterTariff())

	bid, err := g.MakeBid(11, 0)
	require.NoError(t, err)
	require.NotNil(t, bid)
	assert.True(t, bid.Supply)
	assert.True(t, bid.Unbounded)
	assert.Equal(t, 12.2, bid.PricePerKWh)
}

func TestTariffFromSlice(t *testing.T) {
	prices := weekdayWinterTariff()

	got, err := TariffFromSlice(prices[:])
	require.NoError(t, err)
	assert.Equal(t, prices, got)

	_, err = TariffFromSlice(prices[:12])
	assert.Error(t, err)
	_, err = TariffFromSlice(nil)
	assert.Error(t, err)
}
