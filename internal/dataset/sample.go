package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mreyes/finboard/internal/model"
	"github.com/mreyes/finboard/internal/normalize"
)

// Sample data dimensions. The generators produce a small but realistic
// bundle: four departments, six months, four GL accounts per department.
var (
	sampleDepartments = []string{"Cardiology", "Primary Care", "Gastroenterology", "Orthopedics"}

	sampleGLAccounts = []struct {
		Code        string
		Description string
	}{
		{"610001", "Salaries"},
		{"620001", "Medical Supplies"},
		{"630001", "IT Costs"},
		{"640001", "Facility Costs"},
	}

	sampleBaseAmounts = map[string]map[string]float64{
		"Cardiology":       {"Salaries": 450000, "Medical Supplies": 75000, "IT Costs": 15000, "Facility Costs": 25000},
		"Primary Care":     {"Salaries": 380000, "Medical Supplies": 45000, "IT Costs": 12000, "Facility Costs": 20000},
		"Gastroenterology": {"Salaries": 420000, "Medical Supplies": 65000, "IT Costs": 14000, "Facility Costs": 23000},
		"Orthopedics":      {"Salaries": 480000, "Medical Supplies": 85000, "IT Costs": 16000, "Facility Costs": 28000},
	}

	sampleBaseVisits = map[string]float64{
		"Cardiology":       1200,
		"Primary Care":     2800,
		"Gastroenterology": 900,
		"Orthopedics":      1100,
	}

	sampleBaseCommercial = map[string]float64{
		"Cardiology":       0.45,
		"Primary Care":     0.35,
		"Gastroenterology": 0.40,
		"Orthopedics":      0.50,
	}

	sampleBaseStaffing = map[string]model.StaffingRecord{
		"Cardiology":       {ProviderFTE: 4.0, RNFTE: 3.5, MAFTE: 4.0, AdminFTE: 1.5},
		"Primary Care":     {ProviderFTE: 3.0, RNFTE: 2.5, MAFTE: 5.0, AdminFTE: 2.0},
		"Gastroenterology": {ProviderFTE: 3.5, RNFTE: 3.0, MAFTE: 3.5, AdminFTE: 1.5},
		"Orthopedics":      {ProviderFTE: 4.5, RNFTE: 4.0, MAFTE: 4.5, AdminFTE: 2.0},
	}
)

const sampleMonths = 6

var sampleStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Sampler generates a deterministic synthetic bundle for a given seed.
// The same seed always yields the same tables, so demos and tests are
// reproducible.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a Sampler seeded with seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// uniform returns a pseudo-random value in [lo, hi).
func (s *Sampler) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Budget generates the sample budget & actuals table.
func (s *Sampler) Budget() []model.BudgetLine {
	var out []model.BudgetLine
	for di, dept := range sampleDepartments {
		for i := 0; i < sampleMonths; i++ {
			month := sampleStart.AddDate(0, i, 0)
			seasonal := 1 + 0.1*math.Sin(float64(i)*math.Pi/6)

			for _, gl := range sampleGLAccounts {
				base := sampleBaseAmounts[dept][gl.Description]

				var variance float64
				switch gl.Description {
				case "Salaries":
					variance = s.uniform(0.98, 1.05)
				case "Medical Supplies":
					variance = s.uniform(0.85, 1.15) * seasonal
				default:
					variance = s.uniform(0.95, 1.05)
				}

				line := model.BudgetLine{
					Month:         month,
					Department:    dept,
					CostCenter:    fmt.Sprintf("CC-%d00", di+1),
					GLCode:        gl.Code,
					GLDescription: gl.Description,
					BudgetAmount:  base,
					ActualAmount:  base * variance,
				}
				if gl.Description == "Salaries" {
					line.FTEBudget = s.uniform(10, 15)
					line.FTEActual = s.uniform(9, 16)
				}
				out = append(out, line)
			}
		}
	}
	return out
}

// Clinical generates the sample clinical metrics table.
func (s *Sampler) Clinical() []model.ClinicalRecord {
	var out []model.ClinicalRecord
	for _, dept := range sampleDepartments {
		for i := 0; i < sampleMonths; i++ {
			seasonal := 1 + 0.15*math.Sin(float64(i)*math.Pi/6)
			visitsBudget := sampleBaseVisits[dept]

			out = append(out, model.ClinicalRecord{
				Month:               sampleStart.AddDate(0, i, 0),
				Department:          dept,
				VisitsActual:        math.Trunc(visitsBudget * seasonal * s.uniform(0.9, 1.1)),
				VisitsBudget:        visitsBudget,
				NoShowRate:          normalize.ClampUnit(s.uniform(0.05, 0.15)),
				AvgWaitDays:         s.uniform(1, 5),
				PatientSatisfaction: s.uniform(80, 95),
				ProviderWRVUs:       s.uniform(3000, 5000),
			})
		}
	}
	return out
}

// Payer generates the sample payer mix table. The four fractions sum to
// roughly 1; self-pay absorbs the remainder and is floored at 0.
func (s *Sampler) Payer() []model.PayerRecord {
	var out []model.PayerRecord
	for _, dept := range sampleDepartments {
		for i := 0; i < sampleMonths; i++ {
			commercial := normalize.ClampUnit(sampleBaseCommercial[dept] + s.uniform(-0.05, 0.05))
			medicare := normalize.ClampUnit(0.30 + s.uniform(-0.05, 0.05))
			medicaid := normalize.ClampUnit(0.15 + s.uniform(-0.05, 0.05))
			selfPay := math.Max(0, 1-commercial-medicare-medicaid)

			out = append(out, model.PayerRecord{
				Month:            sampleStart.AddDate(0, i, 0),
				Department:       dept,
				CommercialPct:    commercial,
				MedicarePct:      medicare,
				MedicaidPct:      medicaid,
				SelfPayPct:       selfPay,
				AvgReimbursement: 150 + commercial*100 - medicaid*50,
			})
		}
	}
	return out
}

// Staffing generates the sample staffing table. Winter months carry an
// overtime surge.
func (s *Sampler) Staffing() []model.StaffingRecord {
	var out []model.StaffingRecord
	for _, dept := range sampleDepartments {
		base := sampleBaseStaffing[dept]
		for i := 0; i < sampleMonths; i++ {
			overtimeFactor := 1.0
			if i == 0 || i == 1 || i == 11 {
				overtimeFactor = 1.5
			}

			out = append(out, model.StaffingRecord{
				Month:         sampleStart.AddDate(0, i, 0),
				Department:    dept,
				ProviderFTE:   base.ProviderFTE + s.uniform(-0.2, 0.2),
				RNFTE:         base.RNFTE + s.uniform(-0.3, 0.3),
				MAFTE:         base.MAFTE + s.uniform(-0.5, 0.5),
				AdminFTE:      base.AdminFTE,
				OvertimeHours: s.uniform(50, 150) * overtimeFactor,
				OvertimeCost:  s.uniform(2000, 6000) * overtimeFactor,
			})
		}
	}
	return out
}

// Equity generates the sample equity profiles. These are fixed, not
// randomized; the indicators describe the served population.
func (s *Sampler) Equity() []model.EquityProfile {
	return []model.EquityProfile{
		{Department: "Cardiology", ZipCode: "29401", SVIScore: 0.45, MedicaidPct: 0.25, TransitScore: 0.7, LanguageBarrierPct: 0.10, ComplexityTier3Pct: 0.30},
		{Department: "Primary Care", ZipCode: "29403", SVIScore: 0.75, MedicaidPct: 0.45, TransitScore: 0.4, LanguageBarrierPct: 0.20, ComplexityTier3Pct: 0.25},
		{Department: "Gastroenterology", ZipCode: "29405", SVIScore: 0.55, MedicaidPct: 0.30, TransitScore: 0.6, LanguageBarrierPct: 0.15, ComplexityTier3Pct: 0.35},
		{Department: "Orthopedics", ZipCode: "29407", SVIScore: 0.35, MedicaidPct: 0.20, TransitScore: 0.8, LanguageBarrierPct: 0.08, ComplexityTier3Pct: 0.40},
	}
}

// Strategic generates the sample strategic initiatives table.
func (s *Sampler) Strategic() []model.StrategicInitiative {
	d := func(y int, m time.Month, day int) time.Time {
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	}
	return []model.StrategicInitiative{
		{
			ID: "SI-001", Name: "New GI Suite", Department: "Gastroenterology",
			Status: model.InitiativeActive, Phase: "Planning",
			StartDate: d(2024, 1, 15), TargetCompletion: d(2024, 12, 1),
			CapexBudget: 500000, OpexBudget: 180000, ProjectedMonthlyRevenue: 75000,
		},
		{
			ID: "SI-002", Name: "Telehealth Expansion", Department: "Primary Care",
			Status: model.InitiativeActive, Phase: "Implementation",
			StartDate: d(2024, 2, 1), TargetCompletion: d(2024, 6, 30),
			CapexBudget: 50000, OpexBudget: 120000, ProjectedMonthlyRevenue: 45000,
		},
		{
			ID: "SI-003", Name: "Cardiac Cath Lab Upgrade", Department: "Cardiology",
			Status: model.InitiativeActive, Phase: "Procurement",
			StartDate: d(2024, 3, 1), TargetCompletion: d(2024, 9, 30),
			CapexBudget: 1200000, OpexBudget: 240000, ProjectedMonthlyRevenue: 150000,
		},
		{
			ID: "SI-004", Name: "Orthopedic Robotics Program", Department: "Orthopedics",
			Status: model.InitiativePlanning, Phase: "Feasibility",
			StartDate: d(2024, 4, 1), TargetCompletion: d(2025, 3, 31),
			CapexBudget: 2000000, OpexBudget: 400000, ProjectedMonthlyRevenue: 200000,
		},
	}
}
