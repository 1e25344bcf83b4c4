package model

import "math"

// HoursPerDay is the length of every per-hour-of-day schedule.
const HoursPerDay = 24

// ReserveProfile holds the per-hour-of-day minimum desired reserve and
// driving (forced consumption) schedules. It is a value type: holders
// each get their own copy of the arrays, so no participant can mutate
// another's schedule.
type ReserveProfile struct {
	MDR     [HoursPerDay]float64
	Driving [HoursPerDay]float64
}

// DrivingAt reports the forced consumption for an hour; non-zero means
// the participant is unavailable to trade that hour.
func (p ReserveProfile) DrivingAt(hour int) float64 {
	return p.Driving[hour%HoursPerDay]
}

// MDRAt reports the minimum desired reserve for an hour.
func (p ReserveProfile) MDRAt(hour int) float64 {
	return p.MDR[hour%HoursPerDay]
}

// MinimumCharge computes the minimum charge a participant must acquire
// this hour to stay on track for its reserve targets over the next
// three hours. For each lookahead depth the deficit against the target
// (plus energy lost to driving on the way there) is spread over the
// remaining chargeable opportunities, counting the current hour. The
// result is the worst case across depths, floored at zero.
func (p ReserveProfile) MinimumCharge(hour int, currentEnergy float64) float64 {
	skips := 0
	lostToDriving := 0.0
	minCharge := 0.0
	for i := 1; i <= 3; i++ {
		target := (hour + i) % HoursPerDay
		if p.Driving[target] != 0 {
			skips++
			lostToDriving += p.Driving[target]
		}
		rem := i - skips
		deficit := p.MDR[target] + lostToDriving - currentEnergy
		minCharge = math.Max(minCharge, deficit/float64(rem+1))
	}
	return minCharge
}

// MeetsNext reports whether currentEnergy already satisfies the next
// hour's reserve target.
func (p ReserveProfile) MeetsNext(hour int, currentEnergy float64) bool {
	return currentEnergy >= p.MDR[(hour+1)%HoursPerDay]
}
