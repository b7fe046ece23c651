package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/exitcode"
	"github.com/mreyes/finboard/internal/logging"
	"github.com/mreyes/finboard/internal/variance"
)

var varianceDept string

var varianceCmd = &cobra.Command{
	Use:   "variance",
	Short: "Per-GL variance drill-down for one department",
	RunE:  runVariance,
}

func init() {
	varianceCmd.Flags().StringVar(&varianceDept, "department", "", "Department to analyze (required)")
	_ = varianceCmd.MarkFlagRequired("department")
	rootCmd.AddCommand(varianceCmd)
}

func runVariance(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	initConfig(log)
	bundle := loadBundle(log)

	analyses := variance.Analyze(bundle, varianceDept, cfg)
	if len(analyses) == 0 {
		log.Error().Str("department", varianceDept).Msg("no budget rows for department")
		os.Exit(exitcode.ComputeError)
	}

	fmt.Printf("=== Variance Analysis: %s (%s) ===\n", varianceDept, analyses[0].Month.Format("2006-01"))
	for _, a := range analyses {
		fmt.Printf("\n[%s] %s: $%.0f budget, $%.0f actual (%+.1f%%)\n",
			a.Severity, a.GLDescription, a.Budget, a.Actual, a.VariancePct)
		fmt.Println(a.Narrative)
		for _, action := range a.Actions {
			fmt.Printf("  - %s\n", action)
		}
	}

	if ind, ok := aggregate.RootCause(bundle, varianceDept, cfg); ok {
		fmt.Println("\nRoot-cause indicators:")
		fmt.Printf("  Overtime ratio:    %.1f%%", ind.OvertimeRatioPct)
		if ind.OvertimeHigh {
			fmt.Print("  [above threshold]")
		}
		fmt.Printf("\n  No-show rate:      %.1f%%", ind.NoShowRate*100)
		if ind.NoShowHigh {
			fmt.Print("  [above threshold]")
		}
		fmt.Printf("\n  Visit achievement: %.1f%%\n", ind.VisitAchievementPct)
		for _, f := range ind.Findings {
			fmt.Printf("  - %s\n", f)
		}
	}
	return nil
}
