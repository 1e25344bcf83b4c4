package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func testProfile() ReserveProfile {
	return ReserveProfile{
		MDR: [HoursPerDay]float64{
			10, 10, 10, 10, 10, 10, 15, 20, 20, 15, 15, 15,
			15, 15, 15, 15, 15, 20, 15, 15, 15, 10, 10, 10,
		},
		Driving: [HoursPerDay]float64{
			0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0,
			8, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 0,
		},
	}
}

func TestMinimumCharge_NoneNeeded(t *testing.T) {
	p := testProfile()
	assert.Equal(t, 0.0, p.MinimumCharge(0, 150))
}

func TestMinimumCharge_ForNextHour(t *testing.T) {
	p := testProfile()
	// Deficit of 5 against mdr[1]=10, spread over 2 opportunities.
	assert.Equal(t, 2.5, p.MinimumCharge(0, 5))
}

func TestMinimumCharge_ForLaterHour(t *testing.T) {
	p := testProfile()
	// Deficit of 7 against mdr[6]=15, spread over 4 opportunities.
	assert.Equal(t, 1.75, p.MinimumCharge(3, 8))
}

func TestMinimumCharge_DrivingHoursReduceOpportunities(t *testing.T) {
	p := testProfile()
	// Looking ahead from hour 6: hour 7 is a driving hour (4 kWh), so
	// the deficit grows by the drive and the current hour is the only
	// chance to cover it: mdr[7]+4-10 = 14 over 1 opportunity.
	assert.Equal(t, 14.0, p.MinimumCharge(6, 10))
}

func TestMinimumCharge_WrapsAroundMidnight(t *testing.T) {
	p := testProfile()
	// From hour 23 the window covers hours 0..2 of the next day.
	assert.Equal(t, 2.5, p.MinimumCharge(23, 5))
}

func TestMeetsNext(t *testing.T) {
	p := testProfile()
	assert.True(t, p.MeetsNext(0, 10))
	assert.False(t, p.MeetsNext(0, 9))
	// Hour 23 wraps to hour 0's target.
	assert.True(t, p.MeetsNext(23, 10))
}

func TestMinimumCharge_MonotoneInEnergy(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := testProfile()
		hour := rapid.IntRange(0, HoursPerDay-1).Draw(t, "hour")
		energy := rapid.Float64Range(0, 100).Draw(t, "energy")
		extra := rapid.Float64Range(0, 50).Draw(t, "extra")

		lower := p.MinimumCharge(hour, energy)
		higher := p.MinimumCharge(hour, energy+extra)
		if higher > lower {
			t.Fatalf("more energy raised the requirement: %v -> %v", lower, higher)
		}
	})
}

func TestMinimumCharge_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := testProfile()
		hour := rapid.IntRange(0, HoursPerDay-1).Draw(t, "hour")
		energy := rapid.Float64Range(0, 500).Draw(t, "energy")
		if got := p.MinimumCharge(hour, energy); got < 0 {
			t.Fatalf("negative minimum charge %v", got)
		}
	})
}
