// Package equity computes tiered budget adjustments from a
// department's population vulnerability indicators.
package equity

import (
	"fmt"
	"strings"

	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/model"
)

// Adjustment is one matched rule's contribution.
type Adjustment struct {
	Indicator string  `json:"indicator"`
	Reason    string  `json:"reason"`
	Pct       float64 `json:"pct"`
	Amount    float64 `json:"amount"`
}

// Result is the full equity assessment for one department.
type Result struct {
	Department    string       `json:"department"`
	BaseBudget    float64      `json:"base_monthly_budget"`
	Adjustments   []Adjustment `json:"adjustments"`
	Total         float64      `json:"total_adjustment"`
	TotalPct      float64      `json:"total_pct"`
	EquityBudget  float64      `json:"equity_budget"`
	AnnualImpact  float64      `json:"annual_impact"`
	Justification string       `json:"justification"`
}

// matchAbove returns the first tier whose threshold the value exceeds.
func matchAbove(tiers []config.EquityTier, v float64) (config.EquityTier, bool) {
	for _, t := range tiers {
		if v > t.Threshold {
			return t, true
		}
	}
	return config.EquityTier{}, false
}

// matchBelow returns the first tier whose threshold the value falls
// under. Used for access-style indicators where lower is worse.
func matchBelow(tiers []config.EquityTier, v float64) (config.EquityTier, bool) {
	for _, t := range tiers {
		if v < t.Threshold {
			return t, true
		}
	}
	return config.EquityTier{}, false
}

// Assess applies the tiered rules to one department's profile. Each
// indicator contributes at most one adjustment; unmatched indicators
// contribute nothing.
func Assess(p model.EquityProfile, baseBudget float64, rules config.EquityRules) Result {
	r := Result{
		Department: p.Department,
		BaseBudget: baseBudget,
	}

	add := func(indicator string, t config.EquityTier) {
		r.Adjustments = append(r.Adjustments, Adjustment{
			Indicator: indicator,
			Reason:    t.Reason,
			Pct:       t.Pct,
			Amount:    baseBudget * t.Pct,
		})
	}

	if t, ok := matchAbove(rules.SVI, p.SVIScore); ok {
		add("Social Vulnerability Index", t)
	}
	if t, ok := matchAbove(rules.Medicaid, p.MedicaidPct); ok {
		add("Medicaid Population", t)
	}
	if t, ok := matchAbove(rules.Complexity, p.ComplexityTier3Pct); ok {
		add("Clinical Complexity", t)
	}
	if t, ok := matchAbove(rules.Language, p.LanguageBarrierPct); ok {
		add("Language Access", t)
	}
	if t, ok := matchBelow(rules.Transit, p.TransitScore); ok {
		add("Transit Access", t)
	}

	for _, a := range r.Adjustments {
		r.Total += a.Amount
		r.TotalPct += a.Pct
	}
	r.EquityBudget = baseBudget + r.Total
	r.AnnualImpact = r.Total * 12
	r.Justification = justification(p, r)
	return r
}

// justification renders the narrative used on budget review packets.
func justification(p model.EquityProfile, r Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s serves a population with ", r.Department)
	if len(r.Adjustments) == 0 {
		fmt.Fprintf(&b, "no vulnerability indicators above adjustment thresholds; the base monthly budget of $%.0f stands unadjusted.", r.BaseBudget)
		return b.String()
	}

	reasons := make([]string, len(r.Adjustments))
	for i, a := range r.Adjustments {
		reasons[i] = a.Reason
	}
	fmt.Fprintf(&b, "%s. ", strings.Join(reasons, "; "))
	fmt.Fprintf(&b,
		"The recommended equity adjustment adds $%.0f per month (%.1f%% of the $%.0f base), raising the monthly allocation to $%.0f and the annualized commitment to $%.0f.",
		r.Total, r.TotalPct*100, r.BaseBudget, r.EquityBudget, r.AnnualImpact)
	return b.String()
}
