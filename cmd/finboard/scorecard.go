package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/exitcode"
	"github.com/mreyes/finboard/internal/logging"
	"github.com/mreyes/finboard/internal/scorecard"
)

var scorecardCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Ranked department performance scorecard",
	RunE:  runScorecard,
}

func init() {
	rootCmd.AddCommand(scorecardCmd)
}

func runScorecard(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	initConfig(log)
	bundle := loadBundle(log)

	cards := scorecard.FromBundle(bundle, cfg.Scorecard)
	if len(cards) == 0 {
		log.Error().Msg("no scoreable departments in the latest month")
		os.Exit(exitcode.ComputeError)
	}

	fmt.Println("=== Performance Scorecard ===")
	fmt.Printf("%-4s %-18s %6s %6s %6s %6s %6s %6s %6s %8s  %s\n",
		"Rank", "Department", "Bdgt", "Vol", "Prod", "Accs", "OT", "Sat", "Strat", "Overall", "Band")
	for _, c := range cards {
		fmt.Printf("%-4d %-18s %6.1f %6.1f %6.1f %6.1f %6.1f %6.1f %6.1f %8.1f  %s\n",
			c.Rank, c.Department, c.Budget, c.Volume, c.Productivity, c.Access,
			c.Overtime, c.Satisfaction, c.Strategic, c.Composite, c.Band)
	}
	return nil
}
