package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/dataset"
	"github.com/mreyes/finboard/internal/exitcode"
	"github.com/mreyes/finboard/internal/model"
)

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "finboard",
	Short: "Healthcare clinic finance dashboard engine",
	Long:  "Loads department budget, clinical, payer, staffing, equity, and strategic datasets and runs the forecast, scorecard, equity, and variance engines over them.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DataDir, "data-dir", os.Getenv("FINBOARD_DATA_DIR"), "Directory holding the dataset CSV/Parquet files (samples are generated for missing slots)")
	pf.StringVar(&cfg.ConfigFile, "config", "", "Optional YAML file overriding thresholds, weights, and equity tiers")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.Int64Var(&cfg.SampleSeed, "sample-seed", 1, "Seed for generated sample datasets")
}

// initConfig applies the optional YAML overlay and validates. Exits on
// a config the engines cannot run with.
func initConfig(log zerolog.Logger) {
	if cfg.ConfigFile != "" {
		if err := cfg.LoadFromFile(cfg.ConfigFile); err != nil {
			log.Error().Err(err).Str("path", cfg.ConfigFile).Msg("config load failed")
			os.Exit(exitcode.UsageError)
		}
		return
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
}

// loadBundle reads the dataset directory, falling back to samples per
// slot. Load never fails; slots report their source.
func loadBundle(log zerolog.Logger) *model.Bundle {
	b := dataset.Load(log, dataset.Options{Dir: cfg.DataDir, Seed: cfg.SampleSeed})
	log.Info().
		Str("run_id", b.Report.RunID).
		Int("files_loaded", b.Report.FilesLoaded()).
		Dur("duration", b.Report.Duration).
		Msg("datasets loaded")
	return b
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
