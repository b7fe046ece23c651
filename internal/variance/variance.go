// Package variance builds per-GL budget variance analyses with
// template-driven narratives and severity-graded action items.
package variance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mreyes/finboard/internal/aggregate"
	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/model"
)

// Severity grades, derived from the variance thresholds.
const (
	SeverityNormal   = "normal"
	SeverityWatch    = "watch"    // variance beyond the alert threshold
	SeverityCritical = "critical" // variance beyond twice the alert threshold
)

// Analysis is the drill-down record for one GL line in one department's
// latest month.
type Analysis struct {
	Department    string    `json:"department"`
	Month         time.Time `json:"month"`
	GLDescription string    `json:"gl_description"`
	Budget        float64   `json:"budget"`
	Actual        float64   `json:"actual"`
	Variance      float64   `json:"variance"`
	VariancePct   float64   `json:"variance_pct"`
	Severity      string    `json:"severity"`
	Narrative     string    `json:"narrative"`
	Actions       []string  `json:"actions"`
}

// context carries the operational rows the narrative templates draw on.
type context struct {
	clinical *model.ClinicalRecord
	staffing *model.StaffingRecord
}

// Analyze produces one Analysis per GL description for the department's
// latest month. Rows come back in the GL variance display order.
func Analyze(b *model.Bundle, dept string, cfg config.Config) []Analysis {
	latest, ok := b.LatestMonth()
	if !ok {
		return nil
	}

	rows := aggregate.FilterBudget(b.Budget, dept, latest, latest)
	if len(rows) == 0 {
		return nil
	}

	ctx := contextFor(b, dept, latest)
	glRows := aggregate.GLVariances(rows)

	out := make([]Analysis, 0, len(glRows))
	for _, g := range glRows {
		a := Analysis{
			Department:    dept,
			Month:         latest,
			GLDescription: g.GLDescription,
			Budget:        g.Budget,
			Actual:        g.Actual,
			Variance:      g.Variance,
			VariancePct:   g.VariancePct,
		}
		a.Severity = severity(a.VariancePct, cfg.Thresholds.BudgetVariance)
		a.Narrative = narrative(a, ctx)
		a.Actions = actions(a.Severity)
		out = append(out, a)
	}
	return out
}

func contextFor(b *model.Bundle, dept string, month time.Time) context {
	var ctx context
	for i := range b.Clinical {
		if b.Clinical[i].Department == dept && b.Clinical[i].Month.Equal(month) {
			ctx.clinical = &b.Clinical[i]
			break
		}
	}
	for i := range b.Staffing {
		if b.Staffing[i].Department == dept && b.Staffing[i].Month.Equal(month) {
			ctx.staffing = &b.Staffing[i]
			break
		}
	}
	return ctx
}

func severity(variancePct, threshold float64) string {
	abs := math.Abs(variancePct)
	switch {
	case abs > threshold*2*100:
		return SeverityCritical
	case abs > threshold*100:
		return SeverityWatch
	default:
		return SeverityNormal
	}
}

// narrative picks the template for the GL line. Salary overruns with
// heavy overtime and supply overruns with clinical context get the
// specific analyses; everything else gets the generic review text.
func narrative(a Analysis, ctx context) string {
	over := a.VariancePct > 0
	switch {
	case a.GLDescription == "Salaries" && over && ctx.staffing != nil && ctx.staffing.OvertimeHours > 100:
		return salaryOvertimeNarrative(a, ctx)
	case a.GLDescription == "Salaries" && over:
		return salaryGenericNarrative(a)
	case a.GLDescription == "Medical Supplies" && over && ctx.clinical != nil:
		return supplyNarrative(a, ctx.clinical)
	case a.GLDescription == "Medical Supplies" && over:
		return supplyGenericNarrative(a)
	default:
		return genericNarrative(a)
	}
}

func salaryOvertimeNarrative(a Analysis, ctx context) string {
	var b strings.Builder
	st := ctx.staffing
	fmt.Fprintf(&b, "Salaries ran $%+.0f (%+.1f%%) against budget. ", a.Variance, a.VariancePct)
	overtimeShare := aggregate.SafeDiv(st.OvertimeCost, a.Variance) * 100
	fmt.Fprintf(&b, "Overtime is the primary driver: %.0f hours at $%.0f cost, %.1f%% of the total variance, likely from staffing shortages or elevated patient volume. ",
		st.OvertimeHours, st.OvertimeCost, overtimeShare)
	if c := ctx.clinical; c != nil {
		achievement := (aggregate.SafeDiv(c.VisitsActual, c.VisitsBudget) - 1) * 100
		fmt.Fprintf(&b, "Visit volume ran %.0f (%+.1f%% vs target). ", c.VisitsActual, achievement)
	}
	b.WriteString("Recommended: review the staffing model for permanent hires, analyze scheduling to optimize coverage, and consider float pool or PRN staff for peak periods.")
	return b.String()
}

func salaryGenericNarrative(a Analysis) string {
	return fmt.Sprintf(
		"Salaries ran $%+.0f (%+.1f%%) against budget. Potential drivers include unplanned salary adjustments or market rate corrections, hiring beyond budgeted positions, and shift differential or holiday pay above projections. Recommended: verify new hires against approved positions, review compensation adjustments, and update the remainder-of-year forecast.",
		a.Variance, a.VariancePct)
}

func supplyNarrative(a Analysis, c *model.ClinicalRecord) string {
	visitVariance := (aggregate.SafeDiv(c.VisitsActual, c.VisitsBudget) - 1) * 100
	costPerVisitBudget := aggregate.SafeDiv(a.Budget, c.VisitsBudget)
	costPerVisitActual := aggregate.SafeDiv(a.Actual, c.VisitsActual)
	return fmt.Sprintf(
		"Medical Supplies ran $%+.0f (%+.1f%%) against budget. Visit volume variance was %+.1f%%; budgeted cost per visit $%.2f versus actual $%.2f, a per-visit variance of $%+.2f. No-show rate %.1f%%, provider wRVUs %.0f. Recommended: conduct a supply utilization audit, review vendor contracts, and implement par level monitoring.",
		a.Variance, a.VariancePct,
		visitVariance, costPerVisitBudget, costPerVisitActual, costPerVisitActual-costPerVisitBudget,
		c.NoShowRate*100, c.ProviderWRVUs)
}

func supplyGenericNarrative(a Analysis) string {
	return fmt.Sprintf(
		"Medical Supplies ran $%+.0f (%+.1f%%) against budget. The variance requires investigation of recent supplier price changes, changes in clinical protocols, and inventory management practices.",
		a.Variance, a.VariancePct)
}

func genericNarrative(a Analysis) string {
	direction := "over"
	if a.VariancePct < 0 {
		direction = "under"
	}
	return fmt.Sprintf(
		"%s ran $%+.0f (%.1f%% %s budget). Review transaction detail for unusual items, check for timing differences or accruals, and validate budget assumptions against actual activity. Next steps: pull detailed GL transactions, meet with the department manager, and update the forecast if the variance is permanent.",
		a.GLDescription, a.Variance, math.Abs(a.VariancePct), direction)
}

func actions(sev string) []string {
	switch sev {
	case SeverityCritical:
		return []string{
			"Schedule variance review meeting within 48 hours",
			"Prepare corrective action plan",
			"Update monthly forecast",
			"Report to Finance Director",
		}
	case SeverityWatch:
		return []string{
			"Investigate root cause",
			"Document findings",
			"Determine if temporary or permanent",
			"Update forecast if needed",
		}
	default:
		return nil
	}
}
