package dataset

import (
	"strings"
	"testing"
	"time"
)

const budgetCSV = `month,department,cost_center,gl_code,gl_description,budget_amount,actual_amount,fte_budget,fte_actual
2024-01-15,Cardiology,CC-100,610001,Salaries,450000,462000,12,12.5
2024-01-15,Cardiology,CC-100,620001,Medical Supplies,"75,000",81000,0,0
`

func TestReadBudgetCSV(t *testing.T) {
	lines, err := ReadBudgetCSV(strings.NewReader(budgetCSV))
	if err != nil {
		t.Fatalf("ReadBudgetCSV: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	first := lines[0]
	wantMonth := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !first.Month.Equal(wantMonth) {
		t.Errorf("month = %v, want truncated %v", first.Month, wantMonth)
	}
	if first.Department != "Cardiology" || first.GLDescription != "Salaries" {
		t.Errorf("unexpected first line: %+v", first)
	}
	if first.ActualAmount != 462000 {
		t.Errorf("actual = %v, want 462000", first.ActualAmount)
	}
	// Quoted thousands separator parses.
	if lines[1].BudgetAmount != 75000 {
		t.Errorf("budget = %v, want 75000", lines[1].BudgetAmount)
	}
}

func TestReadBudgetCSV_MissingColumn(t *testing.T) {
	csv := "month,department,cost_center\n2024-01-01,Cardiology,CC-100\n"
	_, err := ReadBudgetCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), "gl_code") {
		t.Errorf("error should name the missing column, got: %v", err)
	}
}

func TestReadBudgetCSV_BadNumber(t *testing.T) {
	csv := strings.Replace(budgetCSV, "450000", "not-a-number", 1)
	_, err := ReadBudgetCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for bad numeric field")
	}
}

func TestReadClinicalCSV(t *testing.T) {
	csv := `month,department,visits_actual,visits_budget,no_show_rate,avg_wait_days,patient_satisfaction,provider_wrvus
2024-02-01,Primary Care,2650,2800,0.08,2.5,88,4100
`
	recs, err := ReadClinicalCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadClinicalCSV: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.VisitsActual != 2650 || r.NoShowRate != 0.08 || r.ProviderWRVUs != 4100 {
		t.Errorf("unexpected record: %+v", r)
	}
}

func TestReadEquityCSV(t *testing.T) {
	csv := `department,zip_code,svi_score,medicaid_pct,transit_score,language_barrier_pct,complexity_tier_3_pct
Primary Care,29403,0.75,0.45,0.4,0.20,0.25
`
	profiles, err := ReadEquityCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadEquityCSV: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.ZipCode != "29403" || p.SVIScore != 0.75 || p.ComplexityTier3Pct != 0.25 {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestReadStrategicCSV(t *testing.T) {
	csv := `initiative_id,initiative_name,department,status,phase,start_date,target_completion,capex_budget,opex_budget,projected_monthly_revenue
SI-001,New GI Suite,Gastroenterology,Active,Planning,2024-01-15,2024-12-01,500000,180000,75000
`
	inits, err := ReadStrategicCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadStrategicCSV: %v", err)
	}
	if len(inits) != 1 {
		t.Fatalf("expected 1 initiative, got %d", len(inits))
	}
	si := inits[0]
	if si.ID != "SI-001" || si.Status != "Active" {
		t.Errorf("unexpected initiative: %+v", si)
	}
	// Initiative dates keep their day component.
	if si.StartDate.Day() != 15 {
		t.Errorf("start date day = %d, want 15", si.StartDate.Day())
	}
	if si.TotalInvestment() != 680000 {
		t.Errorf("total investment = %v, want 680000", si.TotalInvestment())
	}
}
