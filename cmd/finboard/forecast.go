package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/exitcode"
	"github.com/mreyes/finboard/internal/forecast"
	"github.com/mreyes/finboard/internal/logging"
)

var (
	forecastDept    string
	forecastDrivers forecast.Drivers
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Driver-based revenue and cost forecast for one department",
	RunE:  runForecast,
}

func init() {
	f := forecastCmd.Flags()
	f.StringVar(&forecastDept, "department", "", "Department to forecast (required)")
	f.Float64Var(&forecastDrivers.VolumeChange, "volume", 0, "Visit volume change, fraction")
	f.Float64Var(&forecastDrivers.ProductivityChange, "productivity", 0, "Provider productivity change, fraction")
	f.Float64Var(&forecastDrivers.NoShowChangePP, "no-show", 0, "No-show rate change, percentage points as fraction")
	f.Float64Var(&forecastDrivers.PayerMixShiftPP, "payer-mix", 0, "Commercial payer mix shift, percentage points as fraction")
	f.Float64Var(&forecastDrivers.SupplyInflation, "supply-inflation", 0, "Supply cost inflation, fraction")
	f.Float64Var(&forecastDrivers.WageIncrease, "wage-increase", 0, "Wage increase, fraction")
	f.Float64Var(&forecastDrivers.ProviderFTEDelta, "provider-fte", 0, "Provider FTE delta")
	f.Float64Var(&forecastDrivers.RNFTEDelta, "rn-fte", 0, "RN FTE delta")
	f.Float64Var(&forecastDrivers.MAFTEDelta, "ma-fte", 0, "MA FTE delta")
	f.Float64Var(&forecastDrivers.AdminFTEDelta, "admin-fte", 0, "Admin FTE delta")
	_ = forecastCmd.MarkFlagRequired("department")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	initConfig(log)
	bundle := loadBundle(log)

	base, ok := aggregate.BaselineFor(bundle, forecastDept)
	if !ok {
		log.Error().Str("department", forecastDept).Msg("no baseline data for department")
		os.Exit(exitcode.ComputeError)
	}

	r := forecast.Compute(base, forecastDrivers, cfg.Forecast)

	fmt.Printf("=== Forecast: %s ===\n", r.Department)
	fmt.Printf("Effective visits:  %.0f (baseline %.0f)\n", r.EffectiveVisits, base.Visits)
	fmt.Printf("Reimbursement:     $%.2f/visit\n", r.NewReimbursement)
	fmt.Printf("Revenue:           $%.0f (%+.0f, %+.1f%%)\n", r.Revenue, r.RevenueDelta, r.RevenuePct)
	fmt.Printf("Cost:              $%.0f (%+.0f, %+.1f%%)\n", r.Cost, r.CostDelta, r.CostPct)
	fmt.Printf("  Salary:          $%.0f (incl. $%+.0f FTE changes)\n", r.NewSalary, r.FTECostDelta)
	fmt.Printf("  Supplies:        $%.0f\n", r.NewSupplies)
	fmt.Printf("  Other:           $%.0f\n", r.NewOther)
	fmt.Printf("Margin:            $%.0f (%+.0f vs baseline)\n", r.Margin, r.MarginDelta)

	fmt.Println("\nKPIs:")
	fmt.Printf("  Cost/visit:        $%.2f (baseline $%.2f)\n", r.CostPerVisit, r.BaselineCostPerVisit)
	fmt.Printf("  FTE/1000 visits:   %.2f (baseline %.2f)\n", r.FTEPer1000Visits, r.BaselineFTEPer1000)
	fmt.Printf("  Operating margin:  %.1f%% (baseline %.1f%%)\n", r.OperatingMarginPct, r.BaselineMarginPct)
	fmt.Printf("  Revenue/FTE:       $%.0f (baseline $%.0f)\n", r.RevenuePerFTE, r.BaselineRevenuePerFTE)

	start, _ := bundle.LatestMonth()
	fmt.Println("\n12-month projection:")
	for _, p := range forecast.Project(r, start.AddDate(0, 1, 0), cfg.Forecast) {
		fmt.Printf("  %s  revenue $%10.0f  cost $%10.0f  margin $%+10.0f\n",
			p.Month.Format("2006-01"), p.Revenue, p.Cost, p.Margin)
	}
	return nil
}
