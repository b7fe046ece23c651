// Package forecast turns baseline department aggregates and a set of
// named driver adjustments into projected revenue, cost, and margin.
// All formulas are pure; policy constants come from the injected config.
package forecast

import (
	"math"
	"time"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/normalize"
)

// Documented driver bounds. Out-of-range values are clamped before
// computation; the CLI and HTTP surfaces rely on this rather than
// rejecting requests.
const (
	MinVolumeChange       = -0.20
	MaxVolumeChange       = 0.20
	MinProductivityChange = -0.10
	MaxProductivityChange = 0.10
	MinNoShowChangePP     = -0.05
	MaxNoShowChangePP     = 0.05
	MinPayerMixShiftPP    = -0.10
	MaxPayerMixShiftPP    = 0.10
	MinSupplyInflation    = 0
	MaxSupplyInflation    = 0.15
	MinWageIncrease       = 0
	MaxWageIncrease       = 0.10
	MinFTEDelta           = -2
	MaxFTEDelta           = 5
)

// Drivers are the forecast inputs. Rates are fractions; the PP fields
// are percentage-point deltas expressed as fractions; FTE deltas are in
// whole or half FTE units.
type Drivers struct {
	VolumeChange       float64 `json:"volume_change"`
	ProductivityChange float64 `json:"productivity_change"`
	NoShowChangePP     float64 `json:"no_show_change_pp"`
	PayerMixShiftPP    float64 `json:"payer_mix_shift_pp"`
	SupplyInflation    float64 `json:"supply_inflation"`
	WageIncrease       float64 `json:"wage_increase"`
	ProviderFTEDelta   float64 `json:"provider_fte_delta"`
	RNFTEDelta         float64 `json:"rn_fte_delta"`
	MAFTEDelta         float64 `json:"ma_fte_delta"`
	AdminFTEDelta      float64 `json:"admin_fte_delta"`
}

// Clamp bounds every driver to its documented range.
func (d Drivers) Clamp() Drivers {
	return Drivers{
		VolumeChange:       normalize.Clamp(d.VolumeChange, MinVolumeChange, MaxVolumeChange),
		ProductivityChange: normalize.Clamp(d.ProductivityChange, MinProductivityChange, MaxProductivityChange),
		NoShowChangePP:     normalize.Clamp(d.NoShowChangePP, MinNoShowChangePP, MaxNoShowChangePP),
		PayerMixShiftPP:    normalize.Clamp(d.PayerMixShiftPP, MinPayerMixShiftPP, MaxPayerMixShiftPP),
		SupplyInflation:    normalize.Clamp(d.SupplyInflation, MinSupplyInflation, MaxSupplyInflation),
		WageIncrease:       normalize.Clamp(d.WageIncrease, MinWageIncrease, MaxWageIncrease),
		ProviderFTEDelta:   normalize.Clamp(d.ProviderFTEDelta, MinFTEDelta, MaxFTEDelta),
		RNFTEDelta:         normalize.Clamp(d.RNFTEDelta, MinFTEDelta, MaxFTEDelta),
		MAFTEDelta:         normalize.Clamp(d.MAFTEDelta, MinFTEDelta, MaxFTEDelta),
		AdminFTEDelta:      normalize.Clamp(d.AdminFTEDelta, MinFTEDelta, MaxFTEDelta),
	}
}

// TotalFTEDelta sums the four role deltas.
func (d Drivers) TotalFTEDelta() float64 {
	return d.ProviderFTEDelta + d.RNFTEDelta + d.MAFTEDelta + d.AdminFTEDelta
}

// Result is the single-period forecast with its derived KPIs. Baseline
// comparison fields carry the unadjusted equivalents.
type Result struct {
	Department string `json:"department"`

	EffectiveVisits  float64 `json:"effective_visits"`
	NewReimbursement float64 `json:"new_reimbursement"`
	Revenue          float64 `json:"revenue"`

	NewSalary    float64 `json:"new_salary"`
	NewSupplies  float64 `json:"new_supplies"`
	NewOther     float64 `json:"new_other"`
	FTECostDelta float64 `json:"fte_cost_delta"`
	Cost         float64 `json:"cost"`

	Margin float64 `json:"margin"`

	BaselineRevenue float64 `json:"baseline_revenue"`
	BaselineCost    float64 `json:"baseline_cost"`
	BaselineMargin  float64 `json:"baseline_margin"`

	RevenueDelta float64 `json:"revenue_delta"`
	RevenuePct   float64 `json:"revenue_pct_change"`
	CostDelta    float64 `json:"cost_delta"`
	CostPct      float64 `json:"cost_pct_change"`
	MarginDelta  float64 `json:"margin_delta"`
	NewTotalFTE  float64 `json:"new_total_fte"`

	CostPerVisit          float64 `json:"cost_per_visit"`
	BaselineCostPerVisit  float64 `json:"baseline_cost_per_visit"`
	FTEPer1000Visits      float64 `json:"fte_per_1000_visits"`
	BaselineFTEPer1000    float64 `json:"baseline_fte_per_1000"`
	OperatingMarginPct    float64 `json:"operating_margin_pct"`
	BaselineMarginPct     float64 `json:"baseline_margin_pct"`
	RevenuePerFTE         float64 `json:"revenue_per_fte"`
	BaselineRevenuePerFTE float64 `json:"baseline_revenue_per_fte"`
}

// Compute runs the single-period forecast. Drivers are clamped to their
// documented bounds first; with all drivers neutral the result
// reproduces the baseline exactly.
func Compute(base aggregate.Baseline, d Drivers, cfg config.Forecast) Result {
	d = d.Clamp()

	effectiveVisits := base.Visits *
		(1 + d.VolumeChange) *
		(1 + d.ProductivityChange) *
		(1 - d.NoShowChangePP)
	newReimbursement := base.Reimbursement * (1 + d.PayerMixShiftPP*cfg.PayerMixFactor)
	revenue := effectiveVisits * newReimbursement

	salaryPortion := cfg.CostSplit.Salary * base.MonthlyCost
	supplyPortion := cfg.CostSplit.Supply * base.MonthlyCost
	otherPortion := cfg.CostSplit.Other * base.MonthlyCost

	fteCostDelta := d.ProviderFTEDelta*cfg.FTECosts.Provider +
		d.RNFTEDelta*cfg.FTECosts.RN +
		d.MAFTEDelta*cfg.FTECosts.MA +
		d.AdminFTEDelta*cfg.FTECosts.Admin

	newSalary := salaryPortion*(1+d.WageIncrease) + fteCostDelta
	newSupplies := supplyPortion * (1 + d.SupplyInflation) * (1 + d.VolumeChange)
	newOther := otherPortion * (1 + d.VolumeChange*0.5)
	cost := newSalary + newSupplies + newOther

	margin := revenue - cost
	baselineRevenue := base.Visits * base.Reimbursement
	baselineMargin := baselineRevenue - base.MonthlyCost
	newTotalFTE := base.FTE + d.TotalFTEDelta()

	r := Result{
		Department: base.Department,

		EffectiveVisits:  effectiveVisits,
		NewReimbursement: newReimbursement,
		Revenue:          revenue,

		NewSalary:    newSalary,
		NewSupplies:  newSupplies,
		NewOther:     newOther,
		FTECostDelta: fteCostDelta,
		Cost:         cost,

		Margin: margin,

		BaselineRevenue: baselineRevenue,
		BaselineCost:    base.MonthlyCost,
		BaselineMargin:  baselineMargin,

		RevenueDelta: revenue - baselineRevenue,
		CostDelta:    cost - base.MonthlyCost,
		MarginDelta:  margin - baselineMargin,
		NewTotalFTE:  newTotalFTE,
	}

	r.RevenuePct = aggregate.SafeDiv(r.RevenueDelta, baselineRevenue) * 100
	r.CostPct = aggregate.SafeDiv(r.CostDelta, base.MonthlyCost) * 100

	// Derived KPIs, each guarded against a zero denominator.
	r.CostPerVisit = aggregate.SafeDiv(cost, effectiveVisits)
	r.BaselineCostPerVisit = aggregate.SafeDiv(base.MonthlyCost, base.Visits)
	r.FTEPer1000Visits = aggregate.SafeDiv(newTotalFTE, effectiveVisits) * 1000
	r.BaselineFTEPer1000 = aggregate.SafeDiv(base.FTE, base.Visits) * 1000
	r.OperatingMarginPct = aggregate.SafeDiv(margin, revenue) * 100
	r.BaselineMarginPct = aggregate.SafeDiv(baselineMargin, baselineRevenue) * 100
	r.RevenuePerFTE = aggregate.SafeDiv(revenue, newTotalFTE)
	r.BaselineRevenuePerFTE = aggregate.SafeDiv(baselineRevenue, base.FTE)

	return r
}

// projectionPeriods is the fixed horizon of the seasonal projection.
const projectionPeriods = 12

// Point is one period of the 12-month projection.
type Point struct {
	Period int       `json:"period"`
	Month  time.Time `json:"month"`

	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Margin  float64 `json:"margin"`

	BaselineRevenue float64 `json:"baseline_revenue"`
	BaselineCost    float64 `json:"baseline_cost"`
	BaselineMargin  float64 `json:"baseline_margin"`
}

// Project expands a single-period forecast into a 12-period series. A
// seasonal multiplier 1 + amplitude*sin(i*pi/6) is applied to revenue
// and cost independently; margin is their per-period difference, and
// the baseline lines are carried flat for comparison.
func Project(r Result, start time.Time, cfg config.Forecast) []Point {
	points := make([]Point, projectionPeriods)
	for i := range points {
		seasonal := 1 + cfg.SeasonalAmplitude*math.Sin(float64(i)*math.Pi/6)
		revenue := r.Revenue * seasonal
		cost := r.Cost * seasonal
		points[i] = Point{
			Period:          i,
			Month:           start.AddDate(0, i, 0),
			Revenue:         revenue,
			Cost:            cost,
			Margin:          revenue - cost,
			BaselineRevenue: r.BaselineRevenue,
			BaselineCost:    r.BaselineCost,
			BaselineMargin:  r.BaselineMargin,
		}
	}
	return points
}
