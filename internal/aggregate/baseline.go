package aggregate

import (
	"time"

	"github.com/mreyes/finboard/internal/model"
)

// Baseline holds the per-department averages the forecast engine starts
// from.
type Baseline struct {
	Department    string  `json:"department"`
	Visits        float64 `json:"visits"`         // mean monthly actual visits
	Reimbursement float64 `json:"reimbursement"`  // mean per-visit reimbursement
	MonthlyCost   float64 `json:"monthly_cost"`   // mean of monthly actual-cost sums
	FTE           float64 `json:"fte"`            // mean total FTE across roles
}

// BaselineFor derives the forecast baseline for one department. ok=false
// when any of the four tables has no rows for the department.
func BaselineFor(b *model.Bundle, dept string) (Baseline, bool) {
	budget := FilterBudget(b.Budget, dept, time.Time{}, time.Time{})
	clinical := FilterClinical(b.Clinical, dept, time.Time{}, time.Time{})
	payer := FilterPayer(b.Payer, dept, time.Time{}, time.Time{})
	staffing := FilterStaffing(b.Staffing, dept, time.Time{}, time.Time{})

	if len(budget) == 0 || len(clinical) == 0 || len(payer) == 0 || len(staffing) == 0 {
		return Baseline{}, false
	}

	// Monthly cost: mean over months of the month's actual total.
	monthTotals := make(map[time.Time]float64)
	for _, r := range budget {
		monthTotals[r.Month] += r.ActualAmount
	}
	var costSum float64
	for _, v := range monthTotals {
		costSum += v
	}

	var visitSum float64
	for _, r := range clinical {
		visitSum += r.VisitsActual
	}
	var reimbSum float64
	for _, r := range payer {
		reimbSum += r.AvgReimbursement
	}
	var fteSum float64
	for _, r := range staffing {
		fteSum += r.TotalFTE()
	}

	return Baseline{
		Department:    dept,
		Visits:        SafeDiv(visitSum, float64(len(clinical))),
		Reimbursement: SafeDiv(reimbSum, float64(len(payer))),
		MonthlyCost:   SafeDiv(costSum, float64(len(monthTotals))),
		FTE:           SafeDiv(fteSum, float64(len(staffing))),
	}, true
}

// BaseMonthlyBudget is the mean over months of the department's budgeted
// total, used by the equity adjustment engine.
func BaseMonthlyBudget(b *model.Bundle, dept string) float64 {
	monthTotals := make(map[time.Time]float64)
	for _, r := range b.Budget {
		if r.Department == dept {
			monthTotals[r.Month] += r.BudgetAmount
		}
	}
	var sum float64
	for _, v := range monthTotals {
		sum += v
	}
	return SafeDiv(sum, float64(len(monthTotals)))
}
