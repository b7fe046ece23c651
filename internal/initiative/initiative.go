// Package initiative links strategic projects to their financial
// impact: portfolio rollups, progress tracking, and breakeven horizons.
package initiative

import (
	"math"
	"time"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/model"
)

// BreakevenUndefined marks an initiative with no projected revenue;
// its breakeven horizon is not a number of months.
const BreakevenUndefined = -1

// Detail is one initiative with its derived tracking metrics, computed
// relative to an as-of date.
type Detail struct {
	model.StrategicInitiative

	TotalInvestment  float64 `json:"total_investment"`
	ProgressPct      float64 `json:"progress_pct"`
	DaysToCompletion int     `json:"days_to_completion"`
	BreakevenMonths  float64 `json:"breakeven_months"` // BreakevenUndefined when revenue is zero
}

// Portfolio is the summary across all initiatives.
type Portfolio struct {
	Total                  int      `json:"total"`
	Active                 int      `json:"active"`
	TotalInvestment        float64  `json:"total_investment"`
	ProjectedAnnualRevenue float64  `json:"projected_annual_revenue"`
	ROIPct                 float64  `json:"roi_pct"`
	Initiatives            []Detail `json:"initiatives"`
}

// Track computes the portfolio view as of the given date. Progress is
// elapsed calendar time between start and target, clamped to [0,100].
func Track(initiatives []model.StrategicInitiative, asOf time.Time) Portfolio {
	p := Portfolio{Total: len(initiatives)}

	var totalOpex float64
	for _, si := range initiatives {
		if si.Status == model.InitiativeActive {
			p.Active++
		}
		p.TotalInvestment += si.TotalInvestment()
		p.ProjectedAnnualRevenue += si.ProjectedMonthlyRevenue * 12
		totalOpex += si.OpexBudget
		p.Initiatives = append(p.Initiatives, detail(si, asOf))
	}

	p.ROIPct = aggregate.SafeDiv(p.ProjectedAnnualRevenue-totalOpex, p.TotalInvestment) * 100
	return p
}

func detail(si model.StrategicInitiative, asOf time.Time) Detail {
	d := Detail{
		StrategicInitiative: si,
		TotalInvestment:     si.TotalInvestment(),
	}

	planned := si.TargetCompletion.Sub(si.StartDate).Hours() / 24
	elapsed := asOf.Sub(si.StartDate).Hours() / 24
	if planned > 0 {
		d.ProgressPct = math.Max(0, math.Min(100, elapsed/planned*100))
	}

	d.DaysToCompletion = int(si.TargetCompletion.Sub(asOf).Hours() / 24)

	if si.ProjectedMonthlyRevenue > 0 {
		d.BreakevenMonths = d.TotalInvestment / si.ProjectedMonthlyRevenue
	} else {
		d.BreakevenMonths = BreakevenUndefined
	}
	return d
}
