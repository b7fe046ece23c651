package aggregate

import (
	"fmt"
	"time"

	"github.com/mreyes/finboard/internal/config"
	"github.com/mreyes/finboard/internal/model"
)

// Indicators are the root-cause signals shown next to a department's
// variance drill-down, computed from the latest month on record.
type Indicators struct {
	Month               time.Time `json:"month"`
	OvertimeRatioPct    float64   `json:"overtime_ratio_pct"`
	OvertimeHigh        bool      `json:"overtime_high"`
	NoShowRate          float64   `json:"no_show_rate"`
	NoShowHigh          bool      `json:"no_show_high"`
	VisitAchievementPct float64   `json:"visit_achievement_pct"`
	Findings            []string  `json:"findings"`
}

// RootCause computes the drill-down indicators for one department.
// ok=false when either the staffing or clinical table has no rows for
// the department.
func RootCause(b *model.Bundle, dept string, cfg config.Config) (Indicators, bool) {
	th := cfg.Thresholds
	staffing := FilterStaffing(b.Staffing, dept, time.Time{}, time.Time{})
	clinical := FilterClinical(b.Clinical, dept, time.Time{}, time.Time{})
	if len(staffing) == 0 || len(clinical) == 0 {
		return Indicators{}, false
	}

	// Latest month with staffing data.
	latest := staffing[0]
	for _, r := range staffing[1:] {
		if r.Month.After(latest.Month) {
			latest = r
		}
	}
	latestClin := clinical[0]
	for _, r := range clinical[1:] {
		if r.Month.After(latestClin.Month) {
			latestClin = r
		}
	}

	ind := Indicators{Month: latest.Month}

	// Overtime hours as a percentage of regular hours per FTE.
	ind.OvertimeRatioPct = SafeDiv(latest.OvertimeHours, latest.TotalFTE()*cfg.Scorecard.HoursPerFTE) * 100
	ind.OvertimeHigh = ind.OvertimeRatioPct > th.Overtime*100

	ind.NoShowRate = latestClin.NoShowRate
	ind.NoShowHigh = ind.NoShowRate > th.NoShow

	ind.VisitAchievementPct = SafeDiv(latestClin.VisitsActual, latestClin.VisitsBudget) * 100

	if ind.OvertimeHigh {
		ind.Findings = append(ind.Findings,
			fmt.Sprintf("High overtime (%.1f%%)", ind.OvertimeRatioPct))
	}
	if ind.NoShowHigh {
		ind.Findings = append(ind.Findings,
			fmt.Sprintf("No-show rate: %.1f%%", ind.NoShowRate*100))
	}
	if ind.VisitAchievementPct < 95 {
		ind.Findings = append(ind.Findings, "Visit volume below target")
	}

	return ind, true
}
