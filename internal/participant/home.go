package participant

import (
	"math/rand"

	"ev-market/internal/model"
)

// Home is an inelastic household load. It bids its scheduled
// consumption for the hour, jittered by bounded uniform noise, at the
// reference price: it takes whatever the market settles on.
type Home struct {
	schedule   [model.HoursPerDay]float64
	randomness float64
	rng        *rand.Rand
}

// NewHome builds a household load. The RNG is injected so simulations
// stay reproducible under a scenario seed.
func NewHome(schedule [model.HoursPerDay]float64, randomness float64, rng *rand.Rand) *Home {
	return &Home{schedule: schedule, randomness: randomness, rng: rng}
}

func (h *Home) MakeBid(hour int, referencePrice float64) (*model.Bid, error) {
	base := h.schedule[hour%model.HoursPerDay]
	offset := base * h.randomness * (h.rng.Float64()*2 - 1)
	return &model.Bid{
		PricePerKWh: referencePrice,
		AmountKWh:   base + offset,
		Supply:      false,
		Owner:       h,
	}, nil
}

func (h *Home) OnFill(int, float64, float64) {}

func (h *Home) Finalize(int, *float64) model.Stats {
	return model.Stats{}
}
