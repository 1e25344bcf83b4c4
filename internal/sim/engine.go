// Package sim assembles a scenario into an auction fleet and runs it
// for a configured number of simulated days.
package sim

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"ev-market/internal/config"
	"ev-market/internal/data"
	"ev-market/internal/market"
	"ev-market/internal/model"
	"ev-market/internal/participant"
	"ev-market/internal/planner"
)

type Engine struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// fleet keeps the recorders grouped by kind so per-hour stats can be
// averaged per policy.
type fleet struct {
	grid  *participant.Recorder
	rules []*participant.Recorder
	opts  []*participant.Recorder
	homes []*participant.Recorder

	ruleNames, optNames, homeNames []string
}

// Run executes a validated scenario and returns the per-hour ledger
// plus run totals. A day-ahead solve failure aborts the run.
func (e *Engine) Run(sc *config.Scenario) (*Result, error) {
	if sc == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario invalid: %w", err)
	}

	auction, fl, err := buildAuction(sc)
	if err != nil {
		return nil, err
	}

	res := &Result{Scenario: sc.Name, Days: sc.Days}
	cumGridCost := 0.0
	priceSum := 0.0
	priced := 0

	for day := 0; day < sc.Days; day++ {
		for hour := 0; hour < model.HoursPerDay; hour++ {
			rep, err := auction.RunHour()
			if err != nil {
				return nil, fmt.Errorf("day %d hour %d: %w", day, hour, err)
			}

			row := LedgerRow{
				Day:        day,
				Hour:       hour,
				GridPrice:  rep.Result.ReferencePrice,
				SupplyBids: rep.Result.SupplyBids,
				DemandBids: rep.Result.DemandBids,
			}
			if rep.Result.Price != nil {
				row.Cleared = true
				row.ClearingPrice = *rep.Result.Price
				priceSum += *rep.Result.Price
				priced++
			}

			gridStats := rep.Stats["grid"]
			row.GridCost = statFloat(gridStats, "cost")
			row.GridEnergyKWh = statFloat(gridStats, "granted_amount")
			cumGridCost += row.GridCost
			row.CumGridCost = cumGridCost

			row.MeanRuleEVCost = meanCost(rep.Stats, fl.ruleNames)
			row.MeanOptEVCost = meanCost(rep.Stats, fl.optNames)
			row.MeanHomeCost = meanCost(rep.Stats, fl.homeNames)

			for _, names := range [][]string{fl.ruleNames, fl.optNames} {
				for _, name := range names {
					st := rep.Stats[name]
					if meets, ok := st["meeting_next_mdr"].(bool); ok && !meets {
						row.ReserveViolations++
						e.logger.Warn("reserve target missed",
							zap.Int("day", day),
							zap.Int("hour", hour),
							zap.String("participant", name),
							zap.Any("last_action", st["last_action"]),
							zap.Any("current_energy", st["current_energy"]),
						)
					}
				}
			}

			res.Ledger = append(res.Ledger, row)
			res.TotalGridCost += row.GridCost
			res.TotalGridEnergyKWh += row.GridEnergyKWh
			res.ReserveViolations += row.ReserveViolations
		}

		e.logger.Info("day complete",
			zap.Int("day", day),
			zap.Float64("cum_grid_cost", cumGridCost),
		)
	}

	if priced > 0 {
		res.MeanClearingPrice = priceSum / float64(priced)
	}
	return res, nil
}

func buildAuction(sc *config.Scenario) (*market.Auction, *fleet, error) {
	tariff := sc.TariffPrices()
	t := data.Tariff{Name: sc.Name, PricesPerKWh: sc.Tariff}
	minPrice, maxPrice := t.Bounds()
	mean := t.Mean()

	maxCharge := sc.RulePolicy.MaxChargePrice
	if maxCharge == 0 {
		maxCharge = (minPrice + mean) / 2
	}
	minDischarge := sc.RulePolicy.MinDischargePrice
	if minDischarge == 0 {
		minDischarge = (maxPrice + mean) / 2
	}

	fl := &fleet{
		grid: participant.NewRecorder(participant.NewTimeOfUseGrid(tariff)),
	}
	auction := market.NewAuction("grid", fl.grid)

	spec := sc.StoreSpec()
	profile := sc.ReserveProfile()
	dayAhead := planner.NewDPPlanner(sc.Planner.EnergySteps, sc.Planner.RateSteps)
	rng := rand.New(rand.NewSource(sc.Seed))

	for i := 0; i < sc.Fleet.RuleBasedEVs; i++ {
		p, err := participant.NewRuleBasedEV(spec, profile, maxCharge, minDischarge)
		if err != nil {
			return nil, nil, fmt.Errorf("rule-based ev %d: %w", i, err)
		}
		name := fmt.Sprintf("rbev_%d", i)
		rec := participant.NewRecorder(p)
		auction.AddParticipant(name, rec)
		fl.rules = append(fl.rules, rec)
		fl.ruleNames = append(fl.ruleNames, name)
	}

	for i := 0; i < sc.Fleet.OptimizedEVs; i++ {
		p, err := participant.NewOptimizedEV(spec, profile, dayAhead, tariff)
		if err != nil {
			return nil, nil, fmt.Errorf("optimized ev %d: %w", i, err)
		}
		name := fmt.Sprintf("loev_%d", i)
		rec := participant.NewRecorder(p)
		auction.AddParticipant(name, rec)
		fl.opts = append(fl.opts, rec)
		fl.optNames = append(fl.optNames, name)
	}

	homeSchedule := data.HomeScheduleFromPrices(tariff, sc.Home.MeanKWh)
	for i := 0; i < sc.Fleet.Homes; i++ {
		name := fmt.Sprintf("home_%d", i)
		rec := participant.NewRecorder(participant.NewHome(homeSchedule, sc.Home.Randomness, rng))
		auction.AddParticipant(name, rec)
		fl.homes = append(fl.homes, rec)
		fl.homeNames = append(fl.homeNames, name)
	}

	return auction, fl, nil
}

func statFloat(st model.Stats, key string) float64 {
	if st == nil {
		return 0
	}
	v, _ := st[key].(float64)
	return v
}

func meanCost(stats map[string]model.Stats, names []string) float64 {
	if len(names) == 0 {
		return 0
	}
	sum := 0.0
	for _, n := range names {
		sum += statFloat(stats[n], "cost")
	}
	return sum / float64(len(names))
}
