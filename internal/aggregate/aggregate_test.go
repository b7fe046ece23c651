package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/model"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func testBundle() *model.Bundle {
	jan := month(2024, time.January)
	feb := month(2024, time.February)
	return &model.Bundle{
		Budget: []model.BudgetLine{
			{Month: jan, Department: "Cardiology", GLDescription: "Salaries", BudgetAmount: 450000, ActualAmount: 470000},
			{Month: jan, Department: "Cardiology", GLDescription: "Medical Supplies", BudgetAmount: 75000, ActualAmount: 70000},
			{Month: jan, Department: "Orthopedics", GLDescription: "Salaries", BudgetAmount: 480000, ActualAmount: 480000},
			{Month: feb, Department: "Cardiology", GLDescription: "Salaries", BudgetAmount: 450000, ActualAmount: 460000},
			{Month: feb, Department: "Cardiology", GLDescription: "Medical Supplies", BudgetAmount: 75000, ActualAmount: 90000},
			{Month: feb, Department: "Orthopedics", GLDescription: "Salaries", BudgetAmount: 480000, ActualAmount: 450000},
		},
		Clinical: []model.ClinicalRecord{
			{Month: jan, Department: "Cardiology", VisitsActual: 1150, VisitsBudget: 1200, NoShowRate: 0.08, AvgWaitDays: 3, PatientSatisfaction: 90, ProviderWRVUs: 4200},
			{Month: feb, Department: "Cardiology", VisitsActual: 1250, VisitsBudget: 1200, NoShowRate: 0.12, AvgWaitDays: 2, PatientSatisfaction: 88, ProviderWRVUs: 4100},
			{Month: jan, Department: "Orthopedics", VisitsActual: 1000, VisitsBudget: 1100, NoShowRate: 0.05, AvgWaitDays: 4, PatientSatisfaction: 85, ProviderWRVUs: 3900},
			{Month: feb, Department: "Orthopedics", VisitsActual: 1050, VisitsBudget: 1100, NoShowRate: 0.06, AvgWaitDays: 4, PatientSatisfaction: 86, ProviderWRVUs: 3800},
		},
		Payer: []model.PayerRecord{
			{Month: jan, Department: "Cardiology", AvgReimbursement: 150},
			{Month: feb, Department: "Cardiology", AvgReimbursement: 160},
		},
		Staffing: []model.StaffingRecord{
			{Month: jan, Department: "Cardiology", ProviderFTE: 4, RNFTE: 3.5, MAFTE: 4, AdminFTE: 1.5, OvertimeHours: 120},
			{Month: feb, Department: "Cardiology", ProviderFTE: 4, RNFTE: 3.5, MAFTE: 4, AdminFTE: 1.5, OvertimeHours: 260},
		},
	}
}

func TestSafeDiv(t *testing.T) {
	if got := SafeDiv(10, 0); got != 0 {
		t.Errorf("SafeDiv(10,0) = %v, want 0", got)
	}
	if got := SafeDiv(10, 4); got != 2.5 {
		t.Errorf("SafeDiv(10,4) = %v, want 2.5", got)
	}
	if got := SafeDiv(0, 0); got != 0 {
		t.Errorf("SafeDiv(0,0) = %v, want 0", got)
	}
}

func TestVariancePct(t *testing.T) {
	if got := VariancePct(105, 100); math.Abs(got-5) > 1e-9 {
		t.Errorf("VariancePct(105,100) = %v, want 5", got)
	}
	if got := VariancePct(100, 0); got != 0 {
		t.Errorf("VariancePct with zero budget = %v, want 0", got)
	}
}

func TestDeptSummaries(t *testing.T) {
	b := testBundle()
	jan := month(2024, time.January)
	sums := DeptSummaries(FilterBudget(b.Budget, "", jan, jan))
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	// Sorted by department name.
	if sums[0].Department != "Cardiology" || sums[1].Department != "Orthopedics" {
		t.Errorf("unexpected ordering: %+v", sums)
	}
	card := sums[0]
	if card.Budget != 525000 || card.Actual != 540000 {
		t.Errorf("cardiology totals = %+v", card)
	}
	if math.Abs(card.Variance-15000) > 1e-9 {
		t.Errorf("variance = %v, want 15000", card.Variance)
	}
}

func TestMonthlyTrend(t *testing.T) {
	b := testBundle()
	trend := MonthlyTrend(b.Budget)
	if len(trend) != 2 {
		t.Fatalf("expected 2 points, got %d", len(trend))
	}
	if !trend[0].Month.Before(trend[1].Month) {
		t.Error("trend not in chronological order")
	}
	if trend[0].Budget != 1005000 {
		t.Errorf("jan budget = %v, want 1005000", trend[0].Budget)
	}
}

func TestGLVariances_SortedByVariance(t *testing.T) {
	b := testBundle()
	feb := month(2024, time.February)
	rows := FilterBudget(b.Budget, "Cardiology", feb, feb)
	gl := GLVariances(rows)
	if len(gl) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(gl))
	}
	if gl[0].Variance > gl[1].Variance {
		t.Errorf("not sorted ascending: %+v", gl)
	}
	if gl[1].GLDescription != "Medical Supplies" || gl[1].Variance != 15000 {
		t.Errorf("unexpected top overrun: %+v", gl[1])
	}
}

func TestExecutive(t *testing.T) {
	b := testBundle()
	s, ok := Executive(b)
	if !ok {
		t.Fatal("Executive: not ok")
	}
	if !s.Month.Equal(month(2024, time.February)) {
		t.Errorf("latest month = %v", s.Month)
	}
	if s.TotalBudget != 1005000 || s.TotalActual != 1000000 {
		t.Errorf("totals = %v / %v", s.TotalBudget, s.TotalActual)
	}
	if s.VisitsActual != 2300 {
		t.Errorf("visits = %v, want 2300", s.VisitsActual)
	}
	// Satisfaction delta vs January: (88+86)/2 - (90+85)/2 = -0.5
	if math.Abs(s.SatisfactionDelta+0.5) > 1e-9 {
		t.Errorf("satisfaction delta = %v, want -0.5", s.SatisfactionDelta)
	}
	if s.WorstDepartment == "" {
		t.Error("worst department should be identified")
	}
	if len(s.Trend) != 2 || len(s.Departments) != 2 {
		t.Errorf("trend/departments lengths: %d/%d", len(s.Trend), len(s.Departments))
	}
}

func TestExecutive_EmptyBundle(t *testing.T) {
	if _, ok := Executive(&model.Bundle{}); ok {
		t.Error("expected not ok for empty bundle")
	}
}

func TestBaselineFor(t *testing.T) {
	b := testBundle()
	base, ok := BaselineFor(b, "Cardiology")
	if !ok {
		t.Fatal("BaselineFor: not ok")
	}
	if base.Visits != 1200 {
		t.Errorf("baseline visits = %v, want 1200", base.Visits)
	}
	if base.Reimbursement != 155 {
		t.Errorf("baseline reimbursement = %v, want 155", base.Reimbursement)
	}
	// Monthly cost: (540000 + 550000) / 2
	if base.MonthlyCost != 545000 {
		t.Errorf("baseline monthly cost = %v, want 545000", base.MonthlyCost)
	}
	if base.FTE != 13 {
		t.Errorf("baseline fte = %v, want 13", base.FTE)
	}
}

func TestBaselineFor_MissingTable(t *testing.T) {
	b := testBundle()
	if _, ok := BaselineFor(b, "Orthopedics"); ok {
		t.Error("expected not ok when payer/staffing rows are absent")
	}
}

func TestBaseMonthlyBudget(t *testing.T) {
	b := testBundle()
	got := BaseMonthlyBudget(b, "Cardiology")
	if got != 525000 {
		t.Errorf("base monthly budget = %v, want 525000", got)
	}
	if BaseMonthlyBudget(b, "Nonexistent") != 0 {
		t.Error("unknown department should yield 0")
	}
}

func TestRootCause(t *testing.T) {
	b := testBundle()
	cfg := config.Default()
	ind, ok := RootCause(b, "Cardiology", cfg)
	if !ok {
		t.Fatal("RootCause: not ok")
	}
	// Feb: 260 overtime hours / (13 FTE * 160h) = 12.5%
	if math.Abs(ind.OvertimeRatioPct-12.5) > 1e-9 {
		t.Errorf("overtime ratio = %v, want 12.5", ind.OvertimeRatioPct)
	}
	if !ind.OvertimeHigh {
		t.Error("overtime should be flagged above the 10% threshold")
	}
	if !ind.NoShowHigh {
		t.Error("no-show 0.12 should be flagged above the 0.10 threshold")
	}
	// 1250/1200 achievement is above 95, so no volume finding.
	if ind.VisitAchievementPct < 100 {
		t.Errorf("achievement = %v", ind.VisitAchievementPct)
	}
	if len(ind.Findings) != 2 {
		t.Errorf("findings = %v", ind.Findings)
	}
}
