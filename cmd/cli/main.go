package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"ev-market/internal/config"
	"ev-market/internal/planner"
	"ev-market/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "plan":
		cmdPlan(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --scenario examples/scenarios/mixed.yaml --out results/ledger.csv")
	fmt.Println("  cli plan --scenario examples/scenarios/mixed.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate runs the hourly double auction for the configured days and writes a per-hour CSV ledger")
	fmt.Println("  - plan prints the 24-hour day-ahead charge schedule an optimized EV would start the run with")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	scPath := fs.String("scenario", "", "Path to scenario YAML")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	days := fs.Int("days", 0, "Optional: override scenario days")
	_ = fs.Parse(args)

	if *scPath == "" {
		fmt.Println("--scenario is required")
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	sc, err := config.Load(*scPath)
	if err != nil {
		logger.Fatal("load scenario", zap.Error(err))
	}
	if *days > 0 {
		sc.Days = *days
	}

	engine := sim.New(logger)
	res, err := engine.Run(sc)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		logger.Fatal("create output dir", zap.Error(err))
	}
	if err := sim.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		logger.Fatal("write ledger", zap.Error(err))
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("Mean clearing price=%.3f Grid energy=%.2f kWh Grid cost=%.2f Reserve violations=%d\n",
		res.MeanClearingPrice, res.TotalGridEnergyKWh, res.TotalGridCost, res.ReserveViolations)
}

func cmdPlan(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	scPath := fs.String("scenario", "", "Path to scenario YAML")
	_ = fs.Parse(args)

	if *scPath == "" {
		fmt.Println("--scenario is required")
		os.Exit(2)
	}

	sc, err := config.Load(*scPath)
	if err != nil {
		panic(err)
	}

	spec := sc.StoreSpec()
	profile := sc.ReserveProfile()
	dayAhead := planner.NewDPPlanner(sc.Planner.EnergySteps, sc.Planner.RateSteps)

	plan, err := dayAhead.Plan(planner.Request{
		CurrentEnergyKWh:   spec.InitialEnergyKWh,
		MinEnergyKWh:       spec.CapacityKWh * spec.OperatingRange.Min,
		MaxEnergyKWh:       spec.CapacityKWh * spec.OperatingRange.Max,
		ChargeRateMaxKW:    spec.ChargeRateMaxKW,
		DischargeRateMaxKW: spec.DischargeRateMaxKW,
		MDR:                profile.MDR,
		Driving:            profile.Driving,
		PriceEstimate:      sc.TariffPrices(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "plan failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("hour  rate_kw")
	for t, rate := range plan {
		fmt.Printf("%4d  %+.3f\n", t, rate)
	}
}
