package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/exitcode"
	"github.com/mreyes/finboard/internal/logging"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Executive summary for the latest month",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	initConfig(log)
	bundle := loadBundle(log)

	snap, ok := aggregate.Executive(bundle)
	if !ok {
		log.Error().Msg("no budget data loaded")
		os.Exit(exitcode.ComputeError)
	}

	fmt.Println("=== Executive Dashboard ===")
	fmt.Printf("Month:            %s\n", snap.Month.Format("2006-01"))
	fmt.Printf("Budget:           $%.0f\n", snap.TotalBudget)
	fmt.Printf("Actual:           $%.0f (%+.1f%%)\n", snap.TotalActual, snap.VariancePct)
	fmt.Printf("Visits:           %.0f of %.0f (%+.1f%%)\n", snap.VisitsActual, snap.VisitsBudget, snap.VisitVariancePct)
	fmt.Printf("Utilization:      %.1f%%\n", snap.UtilizationPct)
	fmt.Printf("Avg no-show rate: %.1f%%\n", snap.AvgNoShowRate*100)
	fmt.Printf("Satisfaction:     %.1f (%+.1f vs prior month)\n", snap.AvgSatisfaction, snap.SatisfactionDelta)
	fmt.Printf("Avg wait:         %.1f days (%+.1f vs prior month)\n", snap.AvgWaitDays, snap.WaitDelta)
	fmt.Printf("YTD:              $%.0f actual vs $%.0f budget (%+.1f%%)\n", snap.YTDActual, snap.YTDBudget, snap.YTDVariancePct)
	fmt.Printf("Largest variance: %s (%+.1f%%)\n", snap.WorstDepartment, snap.WorstVariancePct)

	fmt.Println("\nDepartments:")
	for _, d := range snap.Departments {
		fmt.Printf("  %-18s $%10.0f budget  $%10.0f actual  %+6.1f%%\n",
			d.Department, d.Budget, d.Actual, d.VariancePct)
	}
	return nil
}
