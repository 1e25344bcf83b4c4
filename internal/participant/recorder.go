package participant

import (
	"fmt"

	"ev-market/internal/market"
	"ev-market/internal/model"
)

// Recorder wraps a participant and records what the market actually
// granted it each hour: realized cost and filled quantity. The engine
// sees it as just another participant.
type Recorder struct {
	inner market.Participant

	supply bool
	stats  model.Stats
}

func NewRecorder(inner market.Participant) *Recorder {
	return &Recorder{inner: inner, stats: model.Stats{}}
}

// Inner exposes the wrapped participant.
func (r *Recorder) Inner() market.Participant { return r.inner }

func (r *Recorder) MakeBid(hour int, referencePrice float64) (*model.Bid, error) {
	bid, err := r.inner.MakeBid(hour, referencePrice)
	r.stats = model.Stats{"cost": 0.0}
	if err != nil {
		return nil, err
	}
	if bid != nil {
		// Intercept the fill so the result is seen here first.
		r.supply = bid.Supply
		bid.Owner = r
	}
	return bid, nil
}

func (r *Recorder) OnFill(hour int, price, quantity float64) {
	cost := quantity * price
	if r.supply {
		// Supply yields revenue.
		cost = -cost
	}
	r.stats["cost"] = cost
	r.stats["granted_amount"] = quantity
	r.inner.OnFill(hour, price, quantity)
}

func (r *Recorder) Finalize(hour int, clearingPrice *float64) model.Stats {
	for k, v := range r.inner.Finalize(hour, clearingPrice) {
		r.stats[k] = v
	}
	return r.stats
}

// Stats returns the fields accumulated for the most recent hour.
func (r *Recorder) Stats() model.Stats { return r.stats }

// ReferencePrice passes through to the wrapped participant so a
// recorded grid still satisfies market.Backstop. It panics when the
// wrapped participant is not a backstop.
func (r *Recorder) ReferencePrice(hour int) float64 {
	bs, ok := r.inner.(market.Backstop)
	if !ok {
		panic(fmt.Sprintf("participant %T is not a backstop", r.inner))
	}
	return bs.ReferencePrice(hour)
}
