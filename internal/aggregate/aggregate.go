// Package aggregate computes descriptive summaries over the dataset
// bundle. Every ratio goes through SafeDiv so degenerate inputs produce
// a defined 0 rather than NaN or Inf.
package aggregate

import (
	"sort"
	"time"

	"github.com/mreyes/finboard/internal/model"
)

// SafeDiv divides num by den, returning 0 when the denominator is 0.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// VariancePct returns (actual-budget)/budget as a percentage, 0 when
// budget is 0.
func VariancePct(actual, budget float64) float64 {
	return SafeDiv(actual-budget, budget) * 100
}

// inRange reports whether m falls within [from, to]. Zero bounds are open.
func inRange(m, from, to time.Time) bool {
	if !from.IsZero() && m.Before(from) {
		return false
	}
	if !to.IsZero() && m.After(to) {
		return false
	}
	return true
}

// FilterBudget returns budget rows for a department within a period
// range. Empty dept matches all departments; zero times are unbounded.
func FilterBudget(rows []model.BudgetLine, dept string, from, to time.Time) []model.BudgetLine {
	var out []model.BudgetLine
	for _, r := range rows {
		if (dept == "" || r.Department == dept) && inRange(r.Month, from, to) {
			out = append(out, r)
		}
	}
	return out
}

// FilterClinical returns clinical rows for a department within a period range.
func FilterClinical(rows []model.ClinicalRecord, dept string, from, to time.Time) []model.ClinicalRecord {
	var out []model.ClinicalRecord
	for _, r := range rows {
		if (dept == "" || r.Department == dept) && inRange(r.Month, from, to) {
			out = append(out, r)
		}
	}
	return out
}

// FilterPayer returns payer rows for a department within a period range.
func FilterPayer(rows []model.PayerRecord, dept string, from, to time.Time) []model.PayerRecord {
	var out []model.PayerRecord
	for _, r := range rows {
		if (dept == "" || r.Department == dept) && inRange(r.Month, from, to) {
			out = append(out, r)
		}
	}
	return out
}

// FilterStaffing returns staffing rows for a department within a period range.
func FilterStaffing(rows []model.StaffingRecord, dept string, from, to time.Time) []model.StaffingRecord {
	var out []model.StaffingRecord
	for _, r := range rows {
		if (dept == "" || r.Department == dept) && inRange(r.Month, from, to) {
			out = append(out, r)
		}
	}
	return out
}

// Totals sums budget and actual amounts over a set of budget rows.
func Totals(rows []model.BudgetLine) (budget, actual float64) {
	for _, r := range rows {
		budget += r.BudgetAmount
		actual += r.ActualAmount
	}
	return budget, actual
}

// DeptSummary is one department's budget-vs-actual rollup.
type DeptSummary struct {
	Department  string  `json:"department"`
	Budget      float64 `json:"budget"`
	Actual      float64 `json:"actual"`
	Variance    float64 `json:"variance"`
	VariancePct float64 `json:"variance_pct"`
}

// DeptSummaries groups budget rows by department, sorted by department
// name for deterministic output.
func DeptSummaries(rows []model.BudgetLine) []DeptSummary {
	byDept := make(map[string]*DeptSummary)
	for _, r := range rows {
		s, ok := byDept[r.Department]
		if !ok {
			s = &DeptSummary{Department: r.Department}
			byDept[r.Department] = s
		}
		s.Budget += r.BudgetAmount
		s.Actual += r.ActualAmount
	}

	out := make([]DeptSummary, 0, len(byDept))
	for _, s := range byDept {
		s.Variance = s.Actual - s.Budget
		s.VariancePct = VariancePct(s.Actual, s.Budget)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// TrendPoint is one month's budget-vs-actual total.
type TrendPoint struct {
	Month  time.Time `json:"month"`
	Budget float64   `json:"budget"`
	Actual float64   `json:"actual"`
}

// MonthlyTrend groups budget rows by month in chronological order.
func MonthlyTrend(rows []model.BudgetLine) []TrendPoint {
	byMonth := make(map[time.Time]*TrendPoint)
	for _, r := range rows {
		p, ok := byMonth[r.Month]
		if !ok {
			p = &TrendPoint{Month: r.Month}
			byMonth[r.Month] = p
		}
		p.Budget += r.BudgetAmount
		p.Actual += r.ActualAmount
	}

	out := make([]TrendPoint, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// GLVariance is one GL category's budget-vs-actual rollup.
type GLVariance struct {
	GLDescription string  `json:"gl_description"`
	Budget        float64 `json:"budget"`
	Actual        float64 `json:"actual"`
	Variance      float64 `json:"variance"`
	VariancePct   float64 `json:"variance_pct"`
}

// GLVariances groups budget rows by GL description, sorted by variance
// ascending (largest underruns first, matching the drill-down display).
func GLVariances(rows []model.BudgetLine) []GLVariance {
	byGL := make(map[string]*GLVariance)
	for _, r := range rows {
		g, ok := byGL[r.GLDescription]
		if !ok {
			g = &GLVariance{GLDescription: r.GLDescription}
			byGL[r.GLDescription] = g
		}
		g.Budget += r.BudgetAmount
		g.Actual += r.ActualAmount
	}

	out := make([]GLVariance, 0, len(byGL))
	for _, g := range byGL {
		g.Variance = g.Actual - g.Budget
		g.VariancePct = VariancePct(g.Actual, g.Budget)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Variance != out[j].Variance {
			return out[i].Variance < out[j].Variance
		}
		return out[i].GLDescription < out[j].GLDescription
	})
	return out
}
