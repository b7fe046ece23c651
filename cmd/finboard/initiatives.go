package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/initiative"
	"github.com/mreyes/finboard/internal/logging"
)

var initiativesCmd = &cobra.Command{
	Use:   "initiatives",
	Short: "Strategic initiative portfolio and progress",
	RunE:  runInitiatives,
}

func init() {
	rootCmd.AddCommand(initiativesCmd)
}

func runInitiatives(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	initConfig(log)
	bundle := loadBundle(log)

	p := initiative.Track(bundle.Strategic, time.Now().UTC())

	fmt.Println("=== Strategic Initiatives ===")
	fmt.Printf("Active:                   %d/%d\n", p.Active, p.Total)
	fmt.Printf("Total investment:         $%.0f\n", p.TotalInvestment)
	fmt.Printf("Projected annual revenue: $%.0f\n", p.ProjectedAnnualRevenue)
	fmt.Printf("Portfolio ROI:            %.0f%%\n", p.ROIPct)

	for _, d := range p.Initiatives {
		fmt.Printf("\n%s  %s (%s)\n", d.ID, d.Name, d.Department)
		fmt.Printf("  Status: %s / %s   Progress: %.0f%%   Days to target: %d\n",
			d.Status, d.Phase, d.ProgressPct, d.DaysToCompletion)
		fmt.Printf("  Investment: $%.0f   Monthly revenue: $%.0f   Breakeven: ", d.TotalInvestment, d.ProjectedMonthlyRevenue)
		if d.BreakevenMonths == initiative.BreakevenUndefined {
			fmt.Println("N/A")
		} else {
			fmt.Printf("%.0f months\n", d.BreakevenMonths)
		}
	}
	return nil
}
