package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ev-market/internal/config"
	"ev-market/internal/model"
)

func testScenario() *config.Scenario {
	sc := &config.Scenario{
		Name: "smoke",
		Days: 1,
		Seed: 7,
		Tariff: []float64{
			7.6, 7.6, 7.6, 7.6, 7.6, 7.6, 7.6, 15.8, 15.8, 15.8, 15.8, 12.2,
			12.2, 12.2, 12.2, 12.2, 12.2, 15.8, 15.8, 7.6, 7.6, 7.6, 7.6, 7.6,
		},
		EV: config.EVConfig{
			CapacityKWh:        40,
			ChargeRateMaxKW:    10,
			DischargeRateMaxKW: 10,
			InitialEnergyKWh:   20,
			OperatingRange:     model.OperatingRange{Min: 0.2, Max: 0.8},
		},
		MDR: []float64{
			6, 6, 6, 6, 6, 6, 15, 20, 20, 15, 15, 15,
			15, 15, 15, 15, 15, 20, 15, 15, 15, 10, 10, 10,
		},
		DrivingSchedule: []float64{
			0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0,
			4, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0,
		},
		Fleet: config.FleetConfig{
			RuleBasedEVs: 1,
			OptimizedEVs: 1,
			Homes:        2,
		},
		Home:    config.HomeConfig{MeanKWh: 2, Randomness: 0.1},
		Planner: config.PlannerConfig{EnergySteps: 100, RateSteps: 5},
	}
	return sc
}

func TestRun_ProducesHourlyLedger(t *testing.T) {
	res, err := New(nil).Run(testScenario())
	require.NoError(t, err)

	assert.Equal(t, "smoke", res.Scenario)
	assert.Equal(t, 1, res.Days)
	require.Len(t, res.Ledger, model.HoursPerDay)

	var totalCost, totalEnergy float64
	for i, row := range res.Ledger {
		assert.Equal(t, 0, row.Day)
		assert.Equal(t, i, row.Hour)
		// The grid always offers, so every hour clears at some price.
		assert.True(t, row.Cleared, "hour %d", i)
		assert.Greater(t, row.SupplyBids, 0, "hour %d", i)
		totalCost += row.GridCost
		totalEnergy += row.GridEnergyKWh
		assert.InDelta(t, totalCost, row.CumGridCost, 1e-9, "hour %d", i)
	}
	assert.InDelta(t, totalCost, res.TotalGridCost, 1e-9)
	assert.InDelta(t, totalEnergy, res.TotalGridEnergyKWh, 1e-9)
	assert.NotZero(t, res.MeanClearingPrice)
}

func TestRun_MultipleDays(t *testing.T) {
	sc := testScenario()
	sc.Days = 3

	res, err := New(nil).Run(sc)
	require.NoError(t, err)
	assert.Len(t, res.Ledger, 3*model.HoursPerDay)
	assert.Equal(t, 2, res.Ledger[len(res.Ledger)-1].Day)
}

func TestRun_DeterministicUnderSeed(t *testing.T) {
	a, err := New(nil).Run(testScenario())
	require.NoError(t, err)
	b, err := New(nil).Run(testScenario())
	require.NoError(t, err)

	assert.Equal(t, a.Ledger, b.Ledger)
	assert.Equal(t, a.TotalGridCost, b.TotalGridCost)
}

func TestRun_RejectsInvalidScenario(t *testing.T) {
	_, err := New(nil).Run(nil)
	assert.Error(t, err)

	sc := testScenario()
	sc.Tariff = sc.Tariff[:3]
	_, err = New(nil).Run(sc)
	assert.Error(t, err)
}

func TestRun_GridOnlyScenario(t *testing.T) {
	sc := testScenario()
	sc.Fleet = config.FleetConfig{}
	sc.MDR = nil
	sc.DrivingSchedule = nil

	res, err := New(nil).Run(sc)
	require.NoError(t, err)
	require.Len(t, res.Ledger, model.HoursPerDay)

	for i, row := range res.Ledger {
		// Only the grid's own offer is in the book: it is denied at its
		// own price, so nothing flows.
		assert.True(t, row.Cleared, "hour %d", i)
		assert.Equal(t, row.GridPrice, row.ClearingPrice, "hour %d", i)
		assert.Zero(t, row.GridEnergyKWh, "hour %d", i)
	}
	assert.Zero(t, res.TotalGridCost)
}
