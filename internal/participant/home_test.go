package participant

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-market/internal/model"
)

func flatSchedule(v float64) [model.HoursPerDay]float64 {
	var out [model.HoursPerDay]float64
	for i := range out {
		out[i] = v
	}
	return out
}

func TestHome_BidStaysWithinJitterBounds(t *testing.T) {
	h := NewHome(flatSchedule(2), 0.1, rand.New(rand.NewSource(1)))

	for hour := 0; hour < model.HoursPerDay; hour++ {
		bid, err := h.MakeBid(hour, 7.6)
		require.NoError(t, err)
		require.NotNil(t, bid)
		assert.False(t, bid.Supply)
		// Takes the market price: bids at the reference.
		assert.Equal(t, 7.6, bid.PricePerKWh)
		assert.LessOrEqual(t, math.Abs(bid.AmountKWh-2), 0.2)
	}
}

func TestHome_ZeroRandomnessIsExact(t *testing.T) {
	h := NewHome(flatSchedule(3), 0, rand.New(rand.NewSource(1)))

	bid, err := h.MakeBid(0, 7.6)
	require.NoError(t, err)
	assert.Equal(t, 3.0, bid.AmountKWh)
}

func TestHome_DeterministicUnderSeed(t *testing.T) {
	a := NewHome(flatSchedule(2), 0.5, rand.New(rand.NewSource(42)))
	b := NewHome(flatSchedule(2), 0.5, rand.New(rand.NewSource(42)))

	for hour := 0; hour < model.HoursPerDay; hour++ {
		ba, err := a.MakeBid(hour, 7.6)
		require.NoError(t, err)
		bb, err := b.MakeBid(hour, 7.6)
		require.NoError(t, err)
		assert.Equal(t, ba.AmountKWh, bb.AmountKWh)
	}
}
