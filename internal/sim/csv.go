package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteLedgerCSV writes the per-hour ledger to a CSV file.
func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"day",
		"hour",
		"grid_price",
		"clearing_price",
		"supply_bids",
		"demand_bids",
		"grid_energy_kwh",
		"grid_cost",
		"cum_grid_cost",
		"mean_rbev_cost",
		"mean_loev_cost",
		"mean_home_cost",
		"reserve_violations",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		clearing := ""
		if r.Cleared {
			clearing = fmtFloat(r.ClearingPrice)
		}
		row := []string{
			strconv.Itoa(r.Day),
			strconv.Itoa(r.Hour),
			fmtFloat(r.GridPrice),
			clearing,
			strconv.Itoa(r.SupplyBids),
			strconv.Itoa(r.DemandBids),
			fmtFloat(r.GridEnergyKWh),
			fmtFloat(r.GridCost),
			fmtFloat(r.CumGridCost),
			fmtFloat(r.MeanRuleEVCost),
			fmtFloat(r.MeanOptEVCost),
			fmtFloat(r.MeanHomeCost),
			strconv.Itoa(r.ReserveViolations),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
