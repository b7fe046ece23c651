package equity

import (
	"math"
	"strings"
	"testing"

	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/model"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestAssessAllIndicatorsFire(t *testing.T) {
	rules := config.Default().Equity
	p := model.EquityProfile{
		Department:         "Primary Care",
		SVIScore:           0.8,
		MedicaidPct:        0.45,
		ComplexityTier3Pct: 0.35,
		LanguageBarrierPct: 0.20,
		TransitScore:       0.4,
	}
	r := Assess(p, 500000, rules)

	if len(r.Adjustments) != 5 {
		t.Fatalf("got %d adjustments, want 5", len(r.Adjustments))
	}
	wantAmounts := []float64{40000, 30000, 50000, 15000, 10000}
	for i, want := range wantAmounts {
		approx(t, r.Adjustments[i].Indicator, r.Adjustments[i].Amount, want)
	}
	approx(t, "Total", r.Total, 145000)
	approx(t, "EquityBudget", r.EquityBudget, 645000)
	approx(t, "AnnualImpact", r.AnnualImpact, 145000*12)
}

func TestAssessSecondTiers(t *testing.T) {
	rules := config.Default().Equity
	p := model.EquityProfile{
		Department:         "Orthopedics",
		SVIScore:           0.6,  // moderate tier, +4%
		MedicaidPct:        0.35, // above-average tier, +3%
		ComplexityTier3Pct: 0.25, // moderate tier, +5%
		LanguageBarrierPct: 0.10, // below threshold
		TransitScore:       0.8,  // good transit, no adjustment
	}
	r := Assess(p, 100000, rules)

	if len(r.Adjustments) != 3 {
		t.Fatalf("got %d adjustments, want 3", len(r.Adjustments))
	}
	approx(t, "Total", r.Total, 4000+3000+5000)
	approx(t, "TotalPct", r.TotalPct, 0.12)
}

func TestAssessNoAdjustments(t *testing.T) {
	rules := config.Default().Equity
	p := model.EquityProfile{
		Department:   "Dermatology",
		SVIScore:     0.2,
		TransitScore: 0.9,
	}
	r := Assess(p, 250000, rules)

	if len(r.Adjustments) != 0 {
		t.Fatalf("got %d adjustments, want 0", len(r.Adjustments))
	}
	approx(t, "EquityBudget", r.EquityBudget, 250000)
	if !strings.Contains(r.Justification, "unadjusted") {
		t.Errorf("justification should note the budget stands unadjusted, got %q", r.Justification)
	}
}

// Increasing a vulnerability indicator must never shrink the total.
func TestAssessMonotonicity(t *testing.T) {
	rules := config.Default().Equity
	base := model.EquityProfile{
		Department:         "Cardiology",
		SVIScore:           0.3,
		MedicaidPct:        0.2,
		ComplexityTier3Pct: 0.1,
		LanguageBarrierPct: 0.05,
		TransitScore:       0.9,
	}

	bump := []func(*model.EquityProfile){
		func(p *model.EquityProfile) { p.SVIScore += 0.05 },
		func(p *model.EquityProfile) { p.MedicaidPct += 0.05 },
		func(p *model.EquityProfile) { p.ComplexityTier3Pct += 0.05 },
	}
	for _, step := range bump {
		prev := Assess(base, 300000, rules).Total
		p := base
		for i := 0; i < 20; i++ {
			step(&p)
			cur := Assess(p, 300000, rules).Total
			if cur < prev {
				t.Fatalf("total adjustment decreased from %v to %v as vulnerability rose", prev, cur)
			}
			prev = cur
		}
	}
}

func TestJustificationNamesReasons(t *testing.T) {
	rules := config.Default().Equity
	p := model.EquityProfile{
		Department: "Primary Care",
		SVIScore:   0.8,
	}
	r := Assess(p, 500000, rules)

	for _, want := range []string{"Primary Care", "High SVI Population", "$40000", "$540000"} {
		if !strings.Contains(r.Justification, want) {
			t.Errorf("justification missing %q: %q", want, r.Justification)
		}
	}
}
