package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/equity"
	"github.com/mreyes/finboard/internal/exitcode"
	"github.com/mreyes/finboard/internal/logging"
)

var equityDept string

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Tiered equity budget adjustment for one department",
	RunE:  runEquity,
}

func init() {
	equityCmd.Flags().StringVar(&equityDept, "department", "", "Department to assess (required)")
	_ = equityCmd.MarkFlagRequired("department")
	rootCmd.AddCommand(equityCmd)
}

func runEquity(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	initConfig(log)
	bundle := loadBundle(log)

	profile, ok := bundle.EquityFor(equityDept)
	if !ok {
		log.Error().Str("department", equityDept).Msg("no equity profile for department")
		os.Exit(exitcode.ComputeError)
	}

	base := aggregate.BaseMonthlyBudget(bundle, equityDept)
	r := equity.Assess(profile, base, cfg.Equity)

	fmt.Printf("=== Equity Adjustment: %s ===\n", r.Department)
	fmt.Printf("Base monthly budget: $%.0f\n", r.BaseBudget)
	if len(r.Adjustments) == 0 {
		fmt.Println("No indicators above adjustment thresholds.")
	}
	for _, a := range r.Adjustments {
		fmt.Printf("  %-26s %-24s +%.0f%%  $%.0f\n", a.Indicator, a.Reason, a.Pct*100, a.Amount)
	}
	fmt.Printf("Total adjustment:    $%.0f (%.1f%%)\n", r.Total, r.TotalPct*100)
	fmt.Printf("Equity budget:       $%.0f/month, $%.0f/year impact\n", r.EquityBudget, r.AnnualImpact)
	fmt.Printf("\n%s\n", r.Justification)
	return nil
}
