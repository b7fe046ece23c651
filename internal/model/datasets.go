package model

// Dataset describes one of the six tabular inputs the bundle carries.
type Dataset struct {
	Name     string   // e.g. "budget"
	FileName string   // canonical CSV file name, e.g. "budget.csv"
	Columns  []string // required CSV header columns
	Monthly  bool     // whether rows carry a month column
}

// AllDatasets lists the supported datasets in canonical order.
var AllDatasets = []Dataset{
	{
		Name:     "budget",
		FileName: "budget.csv",
		Monthly:  true,
		Columns: []string{
			"month", "department", "cost_center", "gl_code", "gl_description",
			"budget_amount", "actual_amount", "fte_budget", "fte_actual",
		},
	},
	{
		Name:     "clinical",
		FileName: "clinical.csv",
		Monthly:  true,
		Columns: []string{
			"month", "department", "visits_actual", "visits_budget",
			"no_show_rate", "avg_wait_days", "patient_satisfaction", "provider_wrvus",
		},
	},
	{
		Name:     "payer",
		FileName: "payer.csv",
		Monthly:  true,
		Columns: []string{
			"month", "department", "commercial_pct", "medicare_pct",
			"medicaid_pct", "self_pay_pct", "avg_reimbursement",
		},
	},
	{
		Name:     "staffing",
		FileName: "staffing.csv",
		Monthly:  true,
		Columns: []string{
			"month", "department", "provider_fte", "rn_fte", "ma_fte",
			"admin_fte", "overtime_hours", "overtime_cost",
		},
	},
	{
		Name:     "equity",
		FileName: "equity.csv",
		Monthly:  false,
		Columns: []string{
			"department", "zip_code", "svi_score", "medicaid_pct",
			"transit_score", "language_barrier_pct", "complexity_tier_3_pct",
		},
	},
	{
		Name:     "strategic",
		FileName: "strategic.csv",
		Monthly:  false,
		Columns: []string{
			"initiative_id", "initiative_name", "department", "status", "phase",
			"start_date", "target_completion", "capex_budget", "opex_budget",
			"projected_monthly_revenue",
		},
	},
}

// DatasetNames returns just the names of all datasets.
func DatasetNames() []string {
	names := make([]string, len(AllDatasets))
	for i, d := range AllDatasets {
		names[i] = d.Name
	}
	return names
}

// DatasetByName returns the Dataset for the given name, or ok=false.
func DatasetByName(name string) (Dataset, bool) {
	for _, d := range AllDatasets {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}
