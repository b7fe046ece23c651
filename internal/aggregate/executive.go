package aggregate

import (
	"time"

	"github.com/mreyes/finboard/internal/model"
)

// Snapshot is the executive dashboard rollup for the latest month.
type Snapshot struct {
	Month time.Time `json:"month"`

	TotalBudget    float64 `json:"total_budget"`
	TotalActual    float64 `json:"total_actual"`
	VarianceAmount float64 `json:"variance_amount"`
	VariancePct    float64 `json:"variance_pct"`

	VisitsActual     float64 `json:"visits_actual"`
	VisitsBudget     float64 `json:"visits_budget"`
	VisitVariancePct float64 `json:"visit_variance_pct"`
	UtilizationPct   float64 `json:"utilization_pct"`
	AvgNoShowRate    float64 `json:"avg_no_show_rate"`

	AvgSatisfaction   float64 `json:"avg_satisfaction"`
	SatisfactionDelta float64 `json:"satisfaction_delta"`
	AvgWaitDays       float64 `json:"avg_wait_days"`
	WaitDelta         float64 `json:"wait_delta"`

	YTDBudget      float64 `json:"ytd_budget"`
	YTDActual      float64 `json:"ytd_actual"`
	YTDVariancePct float64 `json:"ytd_variance_pct"`

	WorstDepartment  string  `json:"worst_department"`
	WorstVariancePct float64 `json:"worst_variance_pct"`

	Departments []DeptSummary `json:"departments"`
	Trend       []TrendPoint  `json:"trend"`
}

// Executive computes the executive dashboard snapshot from the latest
// month in the bundle. ok=false when the budget table is empty.
func Executive(b *model.Bundle) (Snapshot, bool) {
	latest, ok := b.LatestMonth()
	if !ok {
		return Snapshot{}, false
	}

	currentBudget := FilterBudget(b.Budget, "", latest, latest)
	currentClinical := FilterClinical(b.Clinical, "", latest, latest)

	s := Snapshot{Month: latest}
	s.TotalBudget, s.TotalActual = Totals(currentBudget)
	s.VarianceAmount = s.TotalActual - s.TotalBudget
	s.VariancePct = VariancePct(s.TotalActual, s.TotalBudget)

	var satSum, waitSum, noShowSum float64
	for _, r := range currentClinical {
		s.VisitsActual += r.VisitsActual
		s.VisitsBudget += r.VisitsBudget
		satSum += r.PatientSatisfaction
		waitSum += r.AvgWaitDays
		noShowSum += r.NoShowRate
	}
	n := float64(len(currentClinical))
	s.AvgSatisfaction = SafeDiv(satSum, n)
	s.AvgWaitDays = SafeDiv(waitSum, n)
	s.AvgNoShowRate = SafeDiv(noShowSum, n)
	s.VisitVariancePct = VariancePct(s.VisitsActual, s.VisitsBudget)
	s.UtilizationPct = SafeDiv(s.VisitsActual, s.VisitsBudget) * 100

	// Previous-month deltas for the satisfaction and wait KPIs.
	if months := b.Months(); len(months) > 1 {
		prev := months[len(months)-2]
		prevClinical := FilterClinical(b.Clinical, "", prev, prev)
		var prevSat, prevWait float64
		for _, r := range prevClinical {
			prevSat += r.PatientSatisfaction
			prevWait += r.AvgWaitDays
		}
		pn := float64(len(prevClinical))
		s.SatisfactionDelta = s.AvgSatisfaction - SafeDiv(prevSat, pn)
		s.WaitDelta = s.AvgWaitDays - SafeDiv(prevWait, pn)
	}

	s.YTDBudget, s.YTDActual = Totals(b.Budget)
	s.YTDVariancePct = VariancePct(s.YTDActual, s.YTDBudget)

	s.Departments = DeptSummaries(currentBudget)
	s.Trend = MonthlyTrend(b.Budget)

	// Department with the largest absolute variance.
	for _, d := range s.Departments {
		worst := s.WorstVariancePct
		if worst < 0 {
			worst = -worst
		}
		pct := d.VariancePct
		if pct < 0 {
			pct = -pct
		}
		if s.WorstDepartment == "" || pct > worst {
			s.WorstDepartment = d.Department
			s.WorstVariancePct = d.VariancePct
		}
	}

	return s, true
}
