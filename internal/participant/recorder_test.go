package participant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-market/internal/model"
)

// mockDER is a minimal participant whose bids and stats are predictable.
type mockDER struct {
	doBid  bool
	supply bool
}

func (m *mockDER) MakeBid(hour int, _ float64) (*model.Bid, error) {
	if !m.doBid {
		return nil, nil
	}
	return &model.Bid{
		PricePerKWh: 3 * float64(hour+1),
		AmountKWh:   3 * float64(hour+2),
		Supply:      m.supply,
		Owner:       m,
	}, nil
}

func (m *mockDER) OnFill(int, float64, float64) {}

func (m *mockDER) Finalize(int, *float64) model.Stats {
	return model.Stats{"multiplier": 3.0}
}

func TestRecorder_ChargeCost(t *testing.T) {
	r := NewRecorder(&mockDER{doBid: true})

	bid, err := r.MakeBid(0, 0)
	require.NoError(t, err)
	require.NotNil(t, bid)
	// The recorder intercepts the fill notification.
	assert.Same(t, r, bid.Owner)

	r.OnFill(0, 2.0, 1.2)
	assert.Equal(t, model.Stats{
		"multiplier":     3.0,
		"cost":           2.4,
		"granted_amount": 1.2,
	}, r.Finalize(0, nil))
}

func TestRecorder_DischargeYieldsRevenue(t *testing.T) {
	r := NewRecorder(&mockDER{doBid: true, supply: true})

	bid, err := r.MakeBid(0, 0)
	require.NoError(t, err)
	require.NotNil(t, bid)

	r.OnFill(0, 2.0, 1.2)
	assert.Equal(t, model.Stats{
		"multiplier":     3.0,
		"cost":           -2.4,
		"granted_amount": 1.2,
	}, r.Finalize(0, nil))
}

func TestRecorder_NoBid(t *testing.T) {
	r := NewRecorder(&mockDER{})

	bid, err := r.MakeBid(0, 0)
	require.NoError(t, err)
	assert.Nil(t, bid)

	assert.Equal(t, model.Stats{
		"multiplier": 3.0,
		"cost":       0.0,
	}, r.Finalize(0, nil))
}

func TestRecorder_ResetsEachHour(t *testing.T) {
	inner := &mockDER{doBid: true}
	r := NewRecorder(inner)

	_, err := r.MakeBid(0, 0)
	require.NoError(t, err)
	r.OnFill(0, 2.0, 1.2)
	r.Finalize(0, nil)

	// The next hour's bid goes unfilled: the stale grant must not leak.
	inner.doBid = false
	_, err = r.MakeBid(1, 0)
	require.NoError(t, err)
	assert.Equal(t, model.Stats{
		"multiplier": 3.0,
		"cost":       0.0,
	}, r.Finalize(1, nil))
}

func TestRecorder_ReferencePricePassthrough(t *testing.T) {
	g := NewRecorder(NewTimeOfUseGrid(weekdayWinterTariff()))
	assert.Equal(t, 15.8, g.ReferencePrice(7))

	bare := NewRecorder(&mockDER{})
	assert.Panics(t, func() { bare.ReferencePrice(0) })
}
