package model

import "time"

// BudgetLine is one department x month x GL account budget/actual row.
type BudgetLine struct {
	Month         time.Time `json:"month"`
	Department    string    `json:"department"`
	CostCenter    string    `json:"cost_center"`
	GLCode        string    `json:"gl_code"`
	GLDescription string    `json:"gl_description"`
	BudgetAmount  float64   `json:"budget_amount"`
	ActualAmount  float64   `json:"actual_amount"`
	FTEBudget     float64   `json:"fte_budget"`
	FTEActual     float64   `json:"fte_actual"`
}

// ClinicalRecord is one department x month row of operational clinical metrics.
// NoShowRate is a fraction in [0,1]; PatientSatisfaction is 0-100.
type ClinicalRecord struct {
	Month               time.Time `json:"month"`
	Department          string    `json:"department"`
	VisitsActual        float64   `json:"visits_actual"`
	VisitsBudget        float64   `json:"visits_budget"`
	NoShowRate          float64   `json:"no_show_rate"`
	AvgWaitDays         float64   `json:"avg_wait_days"`
	PatientSatisfaction float64   `json:"patient_satisfaction"`
	ProviderWRVUs       float64   `json:"provider_wrvus"`
}

// PayerRecord is one department x month payer-mix row. The four mix
// fractions sum to roughly 1.
type PayerRecord struct {
	Month            time.Time `json:"month"`
	Department       string    `json:"department"`
	CommercialPct    float64   `json:"commercial_pct"`
	MedicarePct      float64   `json:"medicare_pct"`
	MedicaidPct      float64   `json:"medicaid_pct"`
	SelfPayPct       float64   `json:"self_pay_pct"`
	AvgReimbursement float64   `json:"avg_reimbursement"`
}

// StaffingRecord is one department x month staffing row.
type StaffingRecord struct {
	Month         time.Time `json:"month"`
	Department    string    `json:"department"`
	ProviderFTE   float64   `json:"provider_fte"`
	RNFTE         float64   `json:"rn_fte"`
	MAFTE         float64   `json:"ma_fte"`
	AdminFTE      float64   `json:"admin_fte"`
	OvertimeHours float64   `json:"overtime_hours"`
	OvertimeCost  float64   `json:"overtime_cost"`
}

// TotalFTE sums the four role-level FTE columns.
func (s StaffingRecord) TotalFTE() float64 {
	return s.ProviderFTE + s.RNFTE + s.MAFTE + s.AdminFTE
}

// EquityProfile holds one department's social-determinant indicators.
// All fields except ZipCode are fractions in [0,1]. There is no time
// dimension; one row per department.
type EquityProfile struct {
	Department         string  `json:"department"`
	ZipCode            string  `json:"zip_code"`
	SVIScore           float64 `json:"svi_score"`
	MedicaidPct        float64 `json:"medicaid_pct"`
	TransitScore       float64 `json:"transit_score"`
	LanguageBarrierPct float64 `json:"language_barrier_pct"`
	ComplexityTier3Pct float64 `json:"complexity_tier_3_pct"`
}

// Initiative statuses as they appear in the strategic dataset.
const (
	InitiativeActive   = "Active"
	InitiativePlanning = "Planning"
)

// StrategicInitiative is one strategic project with its financial profile.
type StrategicInitiative struct {
	ID                      string    `json:"initiative_id"`
	Name                    string    `json:"initiative_name"`
	Department              string    `json:"department"`
	Status                  string    `json:"status"`
	Phase                   string    `json:"phase"`
	StartDate               time.Time `json:"start_date"`
	TargetCompletion        time.Time `json:"target_completion"`
	CapexBudget             float64   `json:"capex_budget"`
	OpexBudget              float64   `json:"opex_budget"`
	ProjectedMonthlyRevenue float64   `json:"projected_monthly_revenue"`
}

// TotalInvestment is capex plus opex budget.
func (si StrategicInitiative) TotalInvestment() float64 {
	return si.CapexBudget + si.OpexBudget
}

// Change request statuses.
const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestRejected = "Rejected"
)

// ChangeRequest is one mid-year budget modification request. Requests
// live in a session-scoped in-memory log and are never persisted.
type ChangeRequest struct {
	ID            string    `json:"request_id"`
	SubmittedAt   time.Time `json:"date_submitted"`
	Department    string    `json:"department"`
	RequestType   string    `json:"request_type"`
	Details       string    `json:"details"`
	Justification string    `json:"justification"`
	EffectiveDate time.Time `json:"effective_date"`
	Status        string    `json:"status"`
}
