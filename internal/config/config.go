package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Thresholds are the KPI alert thresholds, expressed as fractions.
type Thresholds struct {
	BudgetVariance float64 `yaml:"budget_variance"` // variance alert, fraction of budget
	Overtime       float64 `yaml:"overtime"`        // overtime hours / regular hours
	NoShow         float64 `yaml:"no_show"`         // no-show rate
}

// FTECosts are the monthly fully-loaded cost per added FTE, by role.
type FTECosts struct {
	Provider float64 `yaml:"provider"`
	RN       float64 `yaml:"rn"`
	MA       float64 `yaml:"ma"`
	Admin    float64 `yaml:"admin"`
}

// CostSplit carves a department's monthly cost into salary, supply, and
// other portions. The three fractions must sum to 1.
type CostSplit struct {
	Salary float64 `yaml:"salary"`
	Supply float64 `yaml:"supply"`
	Other  float64 `yaml:"other"`
}

// Forecast holds the forecast engine's policy constants.
type Forecast struct {
	FTECosts          FTECosts  `yaml:"fte_costs"`
	CostSplit         CostSplit `yaml:"cost_split"`
	PayerMixFactor    float64   `yaml:"payer_mix_factor"`   // reimbursement lift per pp of commercial shift
	SeasonalAmplitude float64   `yaml:"seasonal_amplitude"` // 12-month projection seasonality
}

// Weights are the scorecard composite weights. They must sum to 1.00.
type Weights struct {
	Budget       float64 `yaml:"budget"`
	Volume       float64 `yaml:"volume"`
	Productivity float64 `yaml:"productivity"`
	Access       float64 `yaml:"access"`
	Overtime     float64 `yaml:"overtime"`
	Satisfaction float64 `yaml:"satisfaction"`
	Strategic    float64 `yaml:"strategic"`
}

// Sum returns the total of all seven weights.
func (w Weights) Sum() float64 {
	return w.Budget + w.Volume + w.Productivity + w.Access +
		w.Overtime + w.Satisfaction + w.Strategic
}

// Scorecard holds the scorecard engine's policy constants.
type Scorecard struct {
	Weights               Weights `yaml:"weights"`
	WRVUTarget            float64 `yaml:"wrvu_target"`             // full-credit monthly wRVUs
	HoursPerFTE           float64 `yaml:"hours_per_fte"`           // regular hours per FTE per month
	BudgetPenaltyPerPct   float64 `yaml:"budget_penalty_per_pct"`  // points lost per |variance| pct
	AccessPenaltyPerDay   float64 `yaml:"access_penalty_per_day"`  // points lost per wait day beyond one
	OvertimePenaltyPerPct float64 `yaml:"overtime_penalty_per_pct"`
	StrategicBase         float64 `yaml:"strategic_base"`
	StrategicPerActive    float64 `yaml:"strategic_per_active"`
}

// EquityTier is one adjustment rule: an indicator threshold and the
// budget percentage it adds when matched.
type EquityTier struct {
	Threshold float64 `yaml:"threshold"`
	Pct       float64 `yaml:"pct"`
	Reason    string  `yaml:"reason"`
}

// EquityRules are the tiered adjustment rules, one slice per indicator.
// Within a slice only the first matching tier fires. SVI, Medicaid,
// Complexity, and Language match when the indicator exceeds the
// threshold; Transit matches when the indicator falls below it.
type EquityRules struct {
	SVI        []EquityTier `yaml:"svi"`
	Medicaid   []EquityTier `yaml:"medicaid"`
	Complexity []EquityTier `yaml:"complexity"`
	Language   []EquityTier `yaml:"language"`
	Transit    []EquityTier `yaml:"transit"`
}

// Config holds every policy constant used by the engines, plus the
// runtime options bound to CLI flags. Formula shapes are fixed in code;
// everything a finance office might tune lives here.
type Config struct {
	DataDir    string `yaml:"-"`
	ConfigFile string `yaml:"-"`
	LogFormat  string `yaml:"-"` // "text" or "json"
	SampleSeed int64  `yaml:"-"`

	Thresholds Thresholds  `yaml:"thresholds"`
	Forecast   Forecast    `yaml:"forecast"`
	Scorecard  Scorecard   `yaml:"scorecard"`
	Equity     EquityRules `yaml:"equity"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		LogFormat:  "text",
		SampleSeed: 1,
		Thresholds: Thresholds{
			BudgetVariance: 0.05,
			Overtime:       0.10,
			NoShow:         0.10,
		},
		Forecast: Forecast{
			FTECosts:          FTECosts{Provider: 20000, RN: 8000, MA: 4500, Admin: 4000},
			CostSplit:         CostSplit{Salary: 0.60, Supply: 0.20, Other: 0.20},
			PayerMixFactor:    0.02,
			SeasonalAmplitude: 0.05,
		},
		Scorecard: Scorecard{
			Weights: Weights{
				Budget:       0.15,
				Volume:       0.15,
				Productivity: 0.20,
				Access:       0.10,
				Overtime:     0.10,
				Satisfaction: 0.10,
				Strategic:    0.20,
			},
			WRVUTarget:            4000,
			HoursPerFTE:           160,
			BudgetPenaltyPerPct:   5,
			AccessPenaltyPerDay:   25,
			OvertimePenaltyPerPct: 10,
			StrategicBase:         70,
			StrategicPerActive:    10,
		},
		Equity: EquityRules{
			SVI: []EquityTier{
				{Threshold: 0.75, Pct: 0.08, Reason: "High SVI Population"},
				{Threshold: 0.50, Pct: 0.04, Reason: "Moderate SVI Population"},
			},
			Medicaid: []EquityTier{
				{Threshold: 0.40, Pct: 0.06, Reason: "High Medicaid Mix"},
				{Threshold: 0.30, Pct: 0.03, Reason: "Above-Avg Medicaid"},
			},
			Complexity: []EquityTier{
				{Threshold: 0.30, Pct: 0.10, Reason: "Complex Patient Mix"},
				{Threshold: 0.20, Pct: 0.05, Reason: "Moderate Complexity"},
			},
			Language: []EquityTier{
				{Threshold: 0.15, Pct: 0.03, Reason: "Language Services"},
			},
			Transit: []EquityTier{
				{Threshold: 0.50, Pct: 0.02, Reason: "Transportation Support"},
			},
		},
	}
}

// LoadFromFile overlays values from a YAML config file onto c. Absent
// keys keep their current (default) values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return c.Validate()
}

// Validate checks internal consistency and returns an error if the
// config cannot be used.
func (c *Config) Validate() error {
	if got := c.Scorecard.Weights.Sum(); math.Abs(got-1.0) > 1e-9 {
		return fmt.Errorf("scorecard weights must sum to 1.00, got %.4f", got)
	}
	split := c.Forecast.CostSplit
	if got := split.Salary + split.Supply + split.Other; math.Abs(got-1.0) > 1e-9 {
		return fmt.Errorf("forecast cost split must sum to 1.00, got %.4f", got)
	}
	if c.Thresholds.BudgetVariance < 0 || c.Thresholds.Overtime < 0 || c.Thresholds.NoShow < 0 {
		return fmt.Errorf("thresholds must be non-negative")
	}
	fc := c.Forecast.FTECosts
	if fc.Provider < 0 || fc.RN < 0 || fc.MA < 0 || fc.Admin < 0 {
		return fmt.Errorf("fte costs must be non-negative")
	}
	for name, tiers := range map[string][]EquityTier{
		"svi": c.Equity.SVI, "medicaid": c.Equity.Medicaid,
		"complexity": c.Equity.Complexity, "language": c.Equity.Language,
	} {
		for i := 1; i < len(tiers); i++ {
			if tiers[i].Threshold >= tiers[i-1].Threshold {
				return fmt.Errorf("equity %s tiers must have strictly descending thresholds", name)
			}
		}
	}
	for i := 1; i < len(c.Equity.Transit); i++ {
		if c.Equity.Transit[i].Threshold <= c.Equity.Transit[i-1].Threshold {
			return fmt.Errorf("equity transit tiers must have strictly ascending thresholds")
		}
	}
	return nil
}
