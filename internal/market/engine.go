package market

import (
	"fmt"
	"math"

	"ev-market/internal/model"
)

// Participant is the capability surface the auction drives each hour.
// MakeBid returning (nil, nil) means the participant sits the hour out.
// A non-nil error aborts the hour; it is how a policy surfaces a failed
// day-ahead solve.
type Participant interface {
	MakeBid(hour int, referencePrice float64) (*model.Bid, error)
	OnFill(hour int, price, quantity float64)
	Finalize(hour int, clearingPrice *float64) model.Stats
}

// Backstop is the grid: an always-available, unbounded supply that also
// establishes the reference price for each hour.
type Backstop interface {
	Participant
	ReferencePrice(hour int) float64
}

// Auction collects one bid per participant per hour, clears the books
// and distributes fills. It is single-threaded: one hour is processed
// fully before the next begins.
type Auction struct {
	backstopName string
	backstop     Backstop

	names        []string
	participants []Participant

	hour int
}

func NewAuction(backstopName string, backstop Backstop) *Auction {
	return &Auction{backstopName: backstopName, backstop: backstop}
}

// AddParticipant registers a participant. Registration order fixes the
// bid-collection order, which keeps runs deterministic.
func (a *Auction) AddParticipant(name string, p Participant) {
	a.names = append(a.names, name)
	a.participants = append(a.participants, p)
}

func (a *Auction) Hour() int { return a.hour }

// HourReport is what one cleared hour produces: the clearing result and
// every participant's finalize stats, keyed by registration name.
type HourReport struct {
	Result model.ClearingResult
	Stats  map[string]model.Stats
}

// RunHour processes one full hour: reference price from the backstop,
// bid collection, clearing, fill distribution, then finalize for every
// participant and the backstop. The hour counter advances mod 24.
func (a *Auction) RunHour() (HourReport, error) {
	hour := a.hour
	ref := a.backstop.ReferencePrice(hour)

	var demand, supply []*model.Bid

	gridBid, err := a.backstop.MakeBid(hour, ref)
	if err != nil {
		return HourReport{}, fmt.Errorf("backstop %s hour %d: %w", a.backstopName, hour, err)
	}
	ref = addBid(&demand, &supply, gridBid, ref)

	for i, p := range a.participants {
		bid, err := p.MakeBid(hour, ref)
		if err != nil {
			return HourReport{}, fmt.Errorf("participant %s hour %d: %w", a.names[i], hour, err)
		}
		ref = addBid(&demand, &supply, bid, ref)
	}

	result := Clear(hour, ref, demand, supply)

	stats := make(map[string]model.Stats, len(a.participants)+1)
	for i, p := range a.participants {
		stats[a.names[i]] = p.Finalize(hour, result.Price)
	}
	stats[a.backstopName] = a.backstop.Finalize(hour, result.Price)

	a.hour = (a.hour + 1) % model.HoursPerDay
	return HourReport{Result: result, Stats: stats}, nil
}

// addBid files a bid into the right book and returns the updated
// reference price. A demand bid priced above the reference is clamped
// down to it: demand cannot out-bid the grid's own backstop price.
// Unbounded supply offered strictly below the reference undercuts it,
// so the engine tracks the running minimum among such offers.
func addBid(demand, supply *[]*model.Bid, bid *model.Bid, ref float64) float64 {
	if bid == nil {
		return ref
	}
	if bid.Supply {
		*supply = append(*supply, bid)
		if bid.Unbounded && bid.PricePerKWh < ref {
			return bid.PricePerKWh
		}
		return ref
	}
	if bid.PricePerKWh > ref {
		bid.PricePerKWh = ref
	}
	*demand = append(*demand, bid)
	return ref
}

// Clear runs the double-auction matching algorithm over the two books
// and notifies every bid's owner of its final (price, quantity). The
// books are consumed: they are sorted in place and must not be reused.
//
// The walk keeps a cursor and an already-filled counter per side. While
// the best remaining demand price crosses the best remaining supply
// price, the smaller remaining quantity transacts; whichever side was
// fully consumed advances. The clearing price is the midpoint of the
// price pair at the final crossing (the average mechanism).
func Clear(hour int, referencePrice float64, demand, supply []*model.Bid) model.ClearingResult {
	result := model.ClearingResult{
		ReferencePrice: referencePrice,
		DemandBids:     len(demand),
		SupplyBids:     len(supply),
	}

	if len(demand) == 0 && len(supply) == 0 {
		return result
	}

	sortBooks(demand, supply)

	// A one-sided book cannot cross; deny every bid on the side that
	// has them, at the best price that side offered.
	if len(demand) == 0 {
		price := supply[0].PricePerKWh
		for _, b := range supply {
			b.Owner.OnFill(hour, price, 0)
		}
		result.Price = &price
		return result
	}
	if len(supply) == 0 {
		price := demand[0].PricePerKWh
		for _, b := range demand {
			b.Owner.OnFill(hour, price, 0)
		}
		result.Price = &price
		return result
	}

	di, si := 0, 0
	dTaken, sTaken := 0.0, 0.0
	lastDemandPrice, lastSupplyPrice := 0.0, 0.0
	matched := false

	for di < len(demand) && si < len(supply) &&
		demand[di].PricePerKWh >= supply[si].PricePerKWh {
		dRem := remaining(demand[di], dTaken)
		sRem := remaining(supply[si], sTaken)

		qty := math.Min(dRem, sRem)
		if qty > 0 && !math.IsInf(qty, 1) {
			lastDemandPrice = demand[di].PricePerKWh
			lastSupplyPrice = supply[si].PricePerKWh
			matched = true
		}

		switch {
		case dRem == sRem:
			// Both sides consumed exactly (or both unbounded, with
			// nothing finite to trade): advance both.
			di++
			dTaken = 0
			si++
			sTaken = 0
		case dRem < sRem:
			sTaken += dRem
			di++
			dTaken = 0
		default:
			dTaken += sRem
			si++
			sTaken = 0
		}
	}

	var price float64
	if matched {
		price = (lastDemandPrice + lastSupplyPrice) / 2
	} else {
		// Books never crossed with positive quantity: no trade, settle
		// the denials at the midpoint of the best quotes.
		price = (demand[0].PricePerKWh + supply[0].PricePerKWh) / 2
	}

	distribute(hour, price, demand, di, dTaken)
	distribute(hour, price, supply, si, sTaken)

	result.Price = &price
	return result
}

// remaining is the quantity a bid can still trade at the cursor.
// Unbounded bids have infinite remaining.
func remaining(b *model.Bid, taken float64) float64 {
	if b.Unbounded {
		return math.Inf(1)
	}
	return b.AmountKWh - taken
}

// distribute notifies one book of its fills: everything below the
// cursor is fully filled, the bid at the cursor gets its accumulated
// partial quantity, everything beyond gets zero. All at the clearing
// price.
func distribute(hour int, price float64, book []*model.Bid, cursor int, taken float64) {
	for i, b := range book {
		var qty float64
		switch {
		case i < cursor:
			if !b.Unbounded {
				qty = b.AmountKWh
			}
		case i == cursor && taken > 0:
			qty = taken
		}
		b.Owner.OnFill(hour, price, qty)
	}
}
